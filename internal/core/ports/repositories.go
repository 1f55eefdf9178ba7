package ports

import (
	"context"
	"time"

	"client-wallet-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for client wallets.
// Lookups return nil, nil when nothing matches.
type WalletRepository interface {
	Insert(ctx context.Context, wallet *domain.Wallet) error
	Update(ctx context.Context, wallet *domain.Wallet) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByWalletID(ctx context.Context, walletID string) (*domain.Wallet, error)
	FindBySiteAndName(ctx context.Context, siteName, walletName string) (*domain.Wallet, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Wallet, error)
	FindPrimary(ctx context.Context, siteName string) (*domain.Wallet, error)
	ListBySite(ctx context.Context, params WalletListParams) ([]domain.Wallet, error)
	Exists(ctx context.Context, filter WalletFilter) (bool, error)
	CountBySite(ctx context.Context, siteName string) (int, error)
	// SequenceMax returns the highest sequence ever allocated for the site, 0 if none.
	SequenceMax(ctx context.Context, siteName string) (int, error)
	ClearPrimary(ctx context.Context, siteName string) error
}

// WalletListParams filters a per-site wallet listing. Results are ordered by sequence.
type WalletListParams struct {
	SiteName string
	Status   *domain.WalletStatus
}

// WalletFilter is an equality filter for existence checks.
// Zero-valued fields are ignored; ExcludeID removes one row from consideration.
type WalletFilter struct {
	SiteName      string
	WalletName    string
	AccountNumber string
	IsPrimary     *bool
	ExcludeID     *uuid.UUID
}

// SiteTransactor runs fn as one unit of work serialized per site.
// If fn returns an error every write made through repo is rolled back.
type SiteTransactor interface {
	WithinSite(ctx context.Context, siteName string, fn func(repo WalletRepository) error) error
}

// WalletTransactionRepository persists submitted ledger entries.
type WalletTransactionRepository interface {
	Create(ctx context.Context, tx *domain.WalletTransaction) error
	ListByWallet(ctx context.Context, walletID string, limit int) ([]domain.WalletTransaction, error)
	// Balance is the sum of credits minus the sum of debits.
	Balance(ctx context.Context, walletID string) (decimal.Decimal, error)
}

// WalletLogRepository persists settlement logs.
type WalletLogRepository interface {
	Create(ctx context.Context, log *domain.WalletLog) error
	GetByID(ctx context.Context, id string) (*domain.WalletLog, error)
	ListByWallet(ctx context.Context, walletID string, limit int) ([]domain.WalletLog, error)
}

// RelayAttemptRepository persists admin relay delivery state.
type RelayAttemptRepository interface {
	Create(ctx context.Context, attempt *domain.RelayAttempt) error
	Update(ctx context.Context, attempt *domain.RelayAttempt) error
	// ListDue returns PENDING attempts whose next retry is at or before now.
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.RelayAttempt, error)
}
