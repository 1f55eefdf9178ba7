package postgres

import (
	"context"
	"fmt"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/pkg/apperror"

	"github.com/shopspring/decimal"
)

// WalletTransactionRepo implements ports.WalletTransactionRepository.
type WalletTransactionRepo struct {
	db Querier
}

// NewWalletTransactionRepo creates a new WalletTransactionRepo.
func NewWalletTransactionRepo(db Querier) *WalletTransactionRepo {
	return &WalletTransactionRepo{db: db}
}

// Create inserts a submitted ledger entry. Amounts travel as text to keep full precision.
func (r *WalletTransactionRepo) Create(ctx context.Context, tx *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (id, wallet_id, site_name, transaction_type, amount,
		description, reference, status, created_by, created_at, submitted_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		tx.ID, tx.WalletID, tx.SiteName, string(tx.TransactionType), tx.Amount.String(),
		tx.Description, tx.Reference, string(tx.Status), tx.CreatedBy, tx.CreatedAt, tx.SubmittedAt,
	)
	if err != nil {
		if uniqueViolation(err) == "uq_wallet_transactions_reference" {
			return apperror.ErrDuplicateReference(tx.Reference)
		}
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

// ListByWallet returns the newest entries first.
func (r *WalletTransactionRepo) ListByWallet(ctx context.Context, walletID string, limit int) ([]domain.WalletTransaction, error) {
	query := `SELECT id, wallet_id, site_name, transaction_type, amount::text,
		description, reference, status, created_by, created_at, submitted_at
		FROM wallet_transactions WHERE wallet_id = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.WalletTransaction{}
	for rows.Next() {
		var (
			t              domain.WalletTransaction
			txType, status string
			amount         string
		)
		if err := rows.Scan(
			&t.ID, &t.WalletID, &t.SiteName, &txType, &amount,
			&t.Description, &t.Reference, &status, &t.CreatedBy, &t.CreatedAt, &t.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wallet transaction: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		t.TransactionType = domain.TransactionType(txType)
		t.Status = domain.TransactionStatus(status)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// Balance sums submitted credits minus debits.
func (r *WalletTransactionRepo) Balance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(CASE WHEN transaction_type = 'Debit' THEN -amount ELSE amount END), 0)::text
		FROM wallet_transactions WHERE wallet_id = $1 AND status = $2`

	var total string
	if err := r.db.QueryRow(ctx, query, walletID, string(domain.TransactionStatusSubmitted)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("wallet balance: %w", err)
	}
	bal, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance %q: %w", total, err)
	}
	return bal, nil
}
