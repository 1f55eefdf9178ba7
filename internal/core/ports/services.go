package ports

import (
	"context"
	"net/url"
	"time"

	"client-wallet-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// IdentityProtector seals identity numbers for storage.
type IdentityProtector interface {
	// Seal returns the ciphertext and a keyed fingerprint of plaintext.
	Seal(plaintext string) (ciphertext string, fingerprint string, err error)
	Open(ciphertext string) (string, error)
}

// TokenService handles JWT token operations for admin routes.
type TokenService interface {
	Generate(actor string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Actor string
}

// EventPublisher emits domain events. Delivery is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// SettlementDeduper suppresses replayed settlement callbacks.
type SettlementDeduper interface {
	// Claim returns true if key was not seen before and is now held.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// --- Service Ports (Business Logic) ---

// PayloadNormalizer turns a raw webhook body into a canonical envelope.
type PayloadNormalizer interface {
	Normalize(raw []byte, form url.Values) (*domain.Envelope, error)
}

// WalletService defines wallet provisioning and maintenance.
type WalletService interface {
	ReconcileAnnouncement(ctx context.Context, env *domain.Envelope) (*ReconcileResult, error)
	ListWallets(ctx context.Context, siteName string, status *domain.WalletStatus) ([]domain.Wallet, error)
	CreateBulk(ctx context.Context, siteName string, items []WalletInput, actor string) ([]BulkResult, error)
	GetPrimary(ctx context.Context, siteName string) (*domain.Wallet, error)
	SetPrimary(ctx context.Context, siteName, walletID, actor string) (*domain.Wallet, error)
	RecordTransaction(ctx context.Context, req TransactionRequest) (*domain.WalletTransaction, error)
	GetBalance(ctx context.Context, walletID string) (*Balance, error)
}

// ReconcileResult is the outcome of a wallet announcement.
type ReconcileResult struct {
	Wallet   *domain.Wallet
	Replaced bool
	Warning  string
}

// WalletInput holds the attributes of a wallet to create.
type WalletInput struct {
	WalletName      string
	WalletID        string
	Currency        string
	AccountNumber   string
	AccountType     string
	BankCode        string
	BankName        string
	BusinessID      string
	ExchangeRef     string
	Description     string
	IdentityNumber  string
	IsPrimaryWallet bool
	WalletStatus    domain.WalletStatus
}

// BulkResult reports one item of a bulk creation.
type BulkResult struct {
	WalletName string `json:"wallet_name"`
	Success    bool   `json:"success"`
	WalletID   string `json:"wallet_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// TransactionRequest holds validated input for a ledger entry.
type TransactionRequest struct {
	WalletID    string
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
	Reference   string
	Actor       string
}

// Balance is a wallet's computed ledger balance.
type Balance struct {
	WalletID string          `json:"wallet_id"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

// SettlementService records settlement callbacks and relays them to the site admin.
type SettlementService interface {
	RecordSettlement(ctx context.Context, env *domain.Envelope) (*SettlementResult, error)
	ListLogs(ctx context.Context, walletID string, limit int) ([]domain.WalletLog, error)
}

// SettlementResult is returned once the log is stored and the admin accepted it.
type SettlementResult struct {
	Log           *domain.WalletLog
	AdminResponse map[string]any
}
