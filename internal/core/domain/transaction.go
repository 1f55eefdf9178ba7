package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a wallet ledger entry.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "Credit"
	TransactionTypeDebit  TransactionType = "Debit"
)

// Valid reports whether t is Credit or Debit.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// TransactionStatus is the document state of a ledger entry.
type TransactionStatus string

// TransactionStatusSubmitted is the only state a ledger entry is ever stored in.
const TransactionStatusSubmitted TransactionStatus = "Submitted"

var (
	ErrInvalidTransactionType = errors.New("transaction type must be Credit or Debit")
	ErrNonPositiveAmount      = errors.New("amount must be greater than zero")
	ErrWalletNotPersisted     = errors.New("wallet has no wallet_id")
)

// WalletTransaction is an immutable ledger entry against a wallet.
type WalletTransaction struct {
	ID              uuid.UUID         `json:"id"`
	WalletID        string            `json:"wallet_id"`
	SiteName        string            `json:"site_name"`
	TransactionType TransactionType   `json:"transaction_type"`
	Amount          decimal.Decimal   `json:"amount"`
	Description     string            `json:"description,omitempty"`
	Reference       string            `json:"reference"`
	Status          TransactionStatus `json:"status"`
	CreatedBy       string            `json:"created_by"`
	CreatedAt       time.Time         `json:"created_at"`
	SubmittedAt     time.Time         `json:"submitted_at"`
}

// NewTransaction creates a submitted ledger entry for the wallet.
// An empty reference gets a generated WTX- reference.
func (w *Wallet) NewTransaction(txType TransactionType, amount decimal.Decimal, description, reference, actor string) (*WalletTransaction, error) {
	if w.WalletID == "" {
		return nil, ErrWalletNotPersisted
	}
	if !txType.Valid() {
		return nil, ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if reference == "" {
		reference = "WTX-" + ulid.Make().String()
	}

	now := time.Now().UTC()
	return &WalletTransaction{
		ID:              uuid.New(),
		WalletID:        w.WalletID,
		SiteName:        w.SiteName,
		TransactionType: txType,
		Amount:          amount,
		Description:     description,
		Reference:       reference,
		Status:          TransactionStatusSubmitted,
		CreatedBy:       actor,
		CreatedAt:       now,
		SubmittedAt:     now,
	}, nil
}

// Signed returns the amount with debits negated.
func (t *WalletTransaction) Signed() decimal.Decimal {
	if t.TransactionType == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
