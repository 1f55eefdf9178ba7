package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"client-wallet-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletLogColumns = `id, event, transaction_id, transaction_reference, account_exchange_reference,
		session_id, account_number, account_type, amount::text, source_account_name, source_account_number,
		source_bank_name, source_bank_code, destination_account_number, destination_account_name,
		destination_bank_name, destination_bank_code, transaction_type, status, narration,
		metadata::text, wallet_id, site_name, created_at`

// WalletLogRepo implements ports.WalletLogRepository.
type WalletLogRepo struct {
	db Querier
}

// NewWalletLogRepo creates a new WalletLogRepo.
func NewWalletLogRepo(db Querier) *WalletLogRepo {
	return &WalletLogRepo{db: db}
}

// Create appends a settlement log.
func (r *WalletLogRepo) Create(ctx context.Context, l *domain.WalletLog) error {
	metadata := string(l.Metadata)
	if metadata == "" {
		metadata = "{}"
	}

	query := `INSERT INTO wallet_logs (id, event, transaction_id, transaction_reference, account_exchange_reference,
		session_id, account_number, account_type, amount, source_account_name, source_account_number,
		source_bank_name, source_bank_code, destination_account_number, destination_account_name,
		destination_bank_name, destination_bank_code, transaction_type, status, narration,
		metadata, wallet_id, site_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21::jsonb, $22, $23, $24)`

	_, err := r.db.Exec(ctx, query,
		l.ID, l.Event, l.TransactionID, l.TransactionReference, l.AccountExchangeReference,
		l.SessionID, l.AccountNumber, l.AccountType, l.Amount.String(), l.SourceAccountName, l.SourceAccountNumber,
		l.SourceBankName, l.SourceBankCode, l.DestinationAccountNumber, l.DestinationAccountName,
		l.DestinationBankName, l.DestinationBankCode, l.TransactionType, l.Status, l.Narration,
		metadata, l.WalletID, l.SiteName, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet log: %w", err)
	}
	return nil
}

func (r *WalletLogRepo) GetByID(ctx context.Context, id string) (*domain.WalletLog, error) {
	l, err := scanWalletLog(r.db.QueryRow(ctx, `SELECT `+walletLogColumns+` FROM wallet_logs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet log: %w", err)
	}
	return l, nil
}

// ListByWallet returns the newest logs first.
func (r *WalletLogRepo) ListByWallet(ctx context.Context, walletID string, limit int) ([]domain.WalletLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+walletLogColumns+` FROM wallet_logs WHERE wallet_id = $1 ORDER BY id DESC LIMIT $2`,
		walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("list wallet logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.WalletLog{}
	for rows.Next() {
		l, err := scanWalletLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func scanWalletLog(row scanner) (*domain.WalletLog, error) {
	var (
		l        domain.WalletLog
		amount   string
		metadata string
	)
	err := row.Scan(
		&l.ID, &l.Event, &l.TransactionID, &l.TransactionReference, &l.AccountExchangeReference,
		&l.SessionID, &l.AccountNumber, &l.AccountType, &amount, &l.SourceAccountName, &l.SourceAccountNumber,
		&l.SourceBankName, &l.SourceBankCode, &l.DestinationAccountNumber, &l.DestinationAccountName,
		&l.DestinationBankName, &l.DestinationBankCode, &l.TransactionType, &l.Status, &l.Narration,
		&metadata, &l.WalletID, &l.SiteName, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if l.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	l.Metadata = json.RawMessage(metadata)
	return &l, nil
}
