package dto

import (
	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
)

// SiteURI binds the :site_name path parameter.
type SiteURI struct {
	SiteName string `uri:"site_name" binding:"required,max=253,site_host"`
}

// WalletURI binds the :wallet_id path parameter.
type WalletURI struct {
	WalletID string `uri:"wallet_id" binding:"required,max=300"`
}

// ListWalletsQuery filters the site wallet listing.
type ListWalletsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=Active Inactive Frozen"`
}

// ListLogsQuery bounds the wallet log listing.
type ListLogsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// WalletItem is one wallet of a bulk creation request.
type WalletItem struct {
	WalletName      string `json:"wallet_name" binding:"required,max=140"`
	WalletID        string `json:"wallet_id,omitempty" binding:"omitempty,max=300"`
	Currency        string `json:"currency,omitempty" binding:"omitempty,len=3"`
	AccountNumber   string `json:"account_number,omitempty" binding:"omitempty,numeric,max=20"`
	AccountType     string `json:"account_type,omitempty" binding:"max=140"`
	BankCode        string `json:"bank_code,omitempty" binding:"max=20"`
	BankName        string `json:"bank_name,omitempty" binding:"max=140"`
	BusinessID      string `json:"business_id,omitempty" binding:"max=140"`
	ExchangeRef     string `json:"exchange_ref,omitempty" binding:"max=140"`
	Description     string `json:"description,omitempty"`
	IdentityNumber  string `json:"identity_number,omitempty"`
	IsPrimaryWallet bool   `json:"is_primary_wallet"`
	WalletStatus    string `json:"wallet_status,omitempty" binding:"omitempty,oneof=Active Inactive Frozen"`
}

// ToInput converts the item to a service input.
func (w WalletItem) ToInput() ports.WalletInput {
	return ports.WalletInput{
		WalletName:      w.WalletName,
		WalletID:        w.WalletID,
		Currency:        w.Currency,
		AccountNumber:   w.AccountNumber,
		AccountType:     w.AccountType,
		BankCode:        w.BankCode,
		BankName:        w.BankName,
		BusinessID:      w.BusinessID,
		ExchangeRef:     w.ExchangeRef,
		Description:     w.Description,
		IdentityNumber:  w.IdentityNumber,
		IsPrimaryWallet: w.IsPrimaryWallet,
		WalletStatus:    domain.WalletStatus(w.WalletStatus),
	}
}

// BulkWalletsRequest is the request body for bulk wallet creation.
type BulkWalletsRequest struct {
	Wallets []WalletItem `json:"wallets" binding:"required,min=1,max=100,dive"`
}

// BulkWalletsResponse reports each item of a bulk creation.
type BulkWalletsResponse struct {
	Results []ports.BulkResult `json:"results"`
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
}

// SetPrimaryRequest is the request body for forcing a site's primary wallet.
type SetPrimaryRequest struct {
	WalletID string `json:"wallet_id" binding:"required,max=300"`
}

// TransactionRequest is the request body for a wallet ledger entry.
type TransactionRequest struct {
	TransactionType string `json:"transaction_type" binding:"required,oneof=Credit Debit"`
	Amount          string `json:"amount" binding:"required,max=32"`
	Description     string `json:"description,omitempty" binding:"max=500"`
	Reference       string `json:"reference,omitempty" binding:"omitempty,max=140,safe_id"`
}

// WalletListResponse wraps a site's wallets.
type WalletListResponse struct {
	SiteName string          `json:"site_name"`
	Items    []domain.Wallet `json:"items"`
	Total    int             `json:"total"`
}

// WalletLogListResponse wraps a wallet's settlement logs.
type WalletLogListResponse struct {
	WalletID string             `json:"wallet_id"`
	Items    []domain.WalletLog `json:"items"`
	Total    int                `json:"total"`
}
