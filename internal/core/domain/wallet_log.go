package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// WalletLog is an append-only settlement record for a wallet's account number.
type WalletLog struct {
	ID                       string          `json:"name"`
	Event                    string          `json:"event"`
	TransactionID            string          `json:"transaction_id"`
	TransactionReference     string          `json:"transaction_reference"`
	AccountExchangeReference string          `json:"account_exchange_reference"`
	SessionID                string          `json:"session_id"`
	AccountNumber            string          `json:"account_number"`
	AccountType              string          `json:"account_type"`
	Amount                   decimal.Decimal `json:"amount"`
	SourceAccountName        string          `json:"source_account_name"`
	SourceAccountNumber      string          `json:"source_account_number"`
	SourceBankName           string          `json:"source_bank_name"`
	SourceBankCode           string          `json:"source_bank_code"`
	DestinationAccountNumber string          `json:"destination_account_number"`
	DestinationAccountName   string          `json:"destination_account_name"`
	DestinationBankName      string          `json:"destination_bank_name"`
	DestinationBankCode      string          `json:"destination_bank_code"`
	TransactionType          string          `json:"transaction_type"`
	Status                   string          `json:"status"`
	Narration                string          `json:"narration"`
	Metadata                 json.RawMessage `json:"metadata"`
	WalletID                 string          `json:"wallet_id"`
	SiteName                 string          `json:"site_name"`
	CreatedAt                time.Time       `json:"creation"`
}

// DedupeKey returns the provider identifier used to suppress replays:
// transaction id, then transaction reference, then session id.
func (l *WalletLog) DedupeKey() string {
	switch {
	case l.TransactionID != "":
		return l.TransactionID
	case l.TransactionReference != "":
		return l.TransactionReference
	default:
		return l.SessionID
	}
}
