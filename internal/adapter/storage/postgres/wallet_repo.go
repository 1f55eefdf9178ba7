package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, site_name, wallet_name, wallet_id, wallet_sequence, currency,
		account_number, account_type, bank_code, bank_name, business_id, exchange_ref, description,
		identity_number_enc, identity_fingerprint, is_primary_wallet, wallet_status,
		created_by_user, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	db Querier
}

// NewWalletRepo creates a new WalletRepo over a pool or a transaction.
func NewWalletRepo(db Querier) *WalletRepo {
	return &WalletRepo{db: db}
}

// Insert stores a new wallet and raises the site's sequence high-water mark.
func (r *WalletRepo) Insert(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.db.Exec(ctx, query,
		w.ID, w.SiteName, w.WalletName, w.WalletID, w.WalletSequence, w.Currency,
		w.AccountNumber, w.AccountType, w.BankCode, w.BankName, w.BusinessID, w.ExchangeRef, w.Description,
		w.IdentityNumberEnc, w.IdentityFingerprint, w.IsPrimaryWallet, string(w.WalletStatus),
		w.CreatedByUser, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return mapWalletError(err, w)
	}

	_, err = r.db.Exec(ctx, `INSERT INTO wallet_site_sequences (site_name, high_water) VALUES ($1, $2)
		ON CONFLICT (site_name) DO UPDATE SET high_water = GREATEST(wallet_site_sequences.high_water, EXCLUDED.high_water)`,
		w.SiteName, w.WalletSequence)
	if err != nil {
		return fmt.Errorf("raise sequence high-water: %w", err)
	}
	return nil
}

// Update writes the mutable wallet fields. Sequence and creator never change.
func (r *WalletRepo) Update(ctx context.Context, w *domain.Wallet) error {
	query := `UPDATE wallets SET wallet_name = $1, wallet_id = $2, currency = $3, account_number = $4,
		account_type = $5, bank_code = $6, bank_name = $7, business_id = $8, exchange_ref = $9,
		description = $10, identity_number_enc = $11, identity_fingerprint = $12,
		is_primary_wallet = $13, wallet_status = $14, updated_at = $15
		WHERE id = $16`

	tag, err := r.db.Exec(ctx, query,
		w.WalletName, w.WalletID, w.Currency, w.AccountNumber,
		w.AccountType, w.BankCode, w.BankName, w.BusinessID, w.ExchangeRef,
		w.Description, w.IdentityNumberEnc, w.IdentityFingerprint,
		w.IsPrimaryWallet, string(w.WalletStatus), w.UpdatedAt,
		w.ID,
	)
	if err != nil {
		return mapWalletError(err, w)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound("Wallet")
	}
	return nil
}

// Delete removes a wallet. Deleting a missing wallet is not an error.
func (r *WalletRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM wallets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}

func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	return r.getOne(ctx, "get wallet by id",
		`SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id)
}

func (r *WalletRepo) GetByWalletID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return r.getOne(ctx, "get wallet by wallet_id",
		`SELECT `+walletColumns+` FROM wallets WHERE wallet_id = $1`, walletID)
}

func (r *WalletRepo) FindBySiteAndName(ctx context.Context, siteName, walletName string) (*domain.Wallet, error) {
	return r.getOne(ctx, "find wallet by name",
		`SELECT `+walletColumns+` FROM wallets WHERE site_name = $1 AND wallet_name = $2`, siteName, walletName)
}

// FindByAccountNumber returns the earliest-created wallet holding the account number.
func (r *WalletRepo) FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Wallet, error) {
	return r.getOne(ctx, "find wallet by account number",
		`SELECT `+walletColumns+` FROM wallets WHERE account_number = $1
		ORDER BY created_at, id LIMIT 1`, accountNumber)
}

func (r *WalletRepo) FindPrimary(ctx context.Context, siteName string) (*domain.Wallet, error) {
	return r.getOne(ctx, "find primary wallet",
		`SELECT `+walletColumns+` FROM wallets WHERE site_name = $1 AND is_primary_wallet`, siteName)
}

// ListBySite returns a site's wallets ordered by sequence.
func (r *WalletRepo) ListBySite(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE site_name = $1`
	args := []any{params.SiteName}
	if params.Status != nil {
		query += ` AND wallet_status = $2`
		args = append(args, string(*params.Status))
	}
	query += ` ORDER BY wallet_sequence`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, *w)
	}
	return wallets, rows.Err()
}

// Exists reports whether any wallet matches every non-zero field of the filter.
func (r *WalletRepo) Exists(ctx context.Context, f ports.WalletFilter) (bool, error) {
	var conditions []string
	var args []any
	argIdx := 1

	add := func(cond string, arg any) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, arg)
		argIdx++
	}
	if f.SiteName != "" {
		add("site_name = $%d", f.SiteName)
	}
	if f.WalletName != "" {
		add("wallet_name = $%d", f.WalletName)
	}
	if f.AccountNumber != "" {
		add("account_number = $%d", f.AccountNumber)
	}
	if f.IsPrimary != nil {
		add("is_primary_wallet = $%d", *f.IsPrimary)
	}
	if f.ExcludeID != nil {
		add("id <> $%d", *f.ExcludeID)
	}

	query := `SELECT EXISTS(SELECT 1 FROM wallets`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += `)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wallet exists: %w", err)
	}
	return exists, nil
}

func (r *WalletRepo) CountBySite(ctx context.Context, siteName string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM wallets WHERE site_name = $1`, siteName).Scan(&n); err != nil {
		return 0, fmt.Errorf("count wallets: %w", err)
	}
	return n, nil
}

// SequenceMax returns the larger of the site's high-water mark and its live maximum.
func (r *WalletRepo) SequenceMax(ctx context.Context, siteName string) (int, error) {
	query := `SELECT GREATEST(
		COALESCE((SELECT high_water FROM wallet_site_sequences WHERE site_name = $1), 0),
		COALESCE((SELECT MAX(wallet_sequence) FROM wallets WHERE site_name = $1), 0))`

	var max int
	if err := r.db.QueryRow(ctx, query, siteName).Scan(&max); err != nil {
		return 0, fmt.Errorf("read wallet sequence: %w", err)
	}
	return max, nil
}

func (r *WalletRepo) ClearPrimary(ctx context.Context, siteName string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE wallets SET is_primary_wallet = FALSE, updated_at = NOW() WHERE site_name = $1 AND is_primary_wallet`,
		siteName)
	if err != nil {
		return fmt.Errorf("clear primary wallet: %w", err)
	}
	return nil
}

func (r *WalletRepo) getOne(ctx context.Context, op, query string, args ...any) (*domain.Wallet, error) {
	w, err := scanWallet(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}

func scanWallet(row scanner) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	var status string
	err := row.Scan(
		&w.ID, &w.SiteName, &w.WalletName, &w.WalletID, &w.WalletSequence, &w.Currency,
		&w.AccountNumber, &w.AccountType, &w.BankCode, &w.BankName, &w.BusinessID, &w.ExchangeRef, &w.Description,
		&w.IdentityNumberEnc, &w.IdentityFingerprint, &w.IsPrimaryWallet, &status,
		&w.CreatedByUser, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.WalletStatus = domain.WalletStatus(status)
	return w, nil
}

// mapWalletError turns unique index violations into the matching domain errors.
func mapWalletError(err error, w *domain.Wallet) error {
	switch uniqueViolation(err) {
	case "uq_wallets_wallet_id":
		return apperror.ErrDuplicateWalletID(w.WalletID)
	case "uq_wallets_site_name":
		return apperror.ErrDuplicateWalletName(w.WalletName, w.SiteName)
	case "uq_wallets_site_primary":
		return apperror.ErrPrimaryWalletConflict(w.SiteName)
	default:
		return fmt.Errorf("write wallet: %w", err)
	}
}
