package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// WalletStatus is the lifecycle state of a client wallet.
type WalletStatus string

const (
	WalletStatusActive   WalletStatus = "Active"
	WalletStatusInactive WalletStatus = "Inactive"
	WalletStatusFrozen   WalletStatus = "Frozen"
)

// Valid reports whether s is a known wallet status.
func (s WalletStatus) Valid() bool {
	switch s {
	case WalletStatusActive, WalletStatusInactive, WalletStatusFrozen:
		return true
	}
	return false
}

const (
	// GuestActor is the acting identity for unauthenticated webhook writes.
	GuestActor = "Guest"

	DefaultCurrency    = "NGN"
	DefaultAccountType = "Wallet"

	// IdentityNumberLength is the exact digit count of a BVN.
	IdentityNumberLength = 11
)

// MaxSiteNameLength bounds a site name to a DNS host name.
const MaxSiteNameLength = 253

var siteNameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?)*(:[0-9]{1,5})?$`)

// ValidSiteName reports whether s is a lowercase host name with an optional
// port. Site names become the host of the admin relay URL.
func ValidSiteName(s string) bool {
	return len(s) <= MaxSiteNameLength && siteNameRe.MatchString(s)
}

// Wallet is a client site's wallet record.
type Wallet struct {
	ID                  uuid.UUID    `json:"id"`
	SiteName            string       `json:"site_name"`
	WalletName          string       `json:"wallet_name"`
	WalletID            string       `json:"wallet_id"`
	WalletSequence      int          `json:"wallet_sequence"`
	Currency            string       `json:"currency"`
	AccountNumber       string       `json:"account_number,omitempty"`
	AccountType         string       `json:"account_type"`
	BankCode            string       `json:"bank_code,omitempty"`
	BankName            string       `json:"bank_name,omitempty"`
	BusinessID          string       `json:"business_id,omitempty"`
	ExchangeRef         string       `json:"exchange_ref,omitempty"`
	Description         string       `json:"description,omitempty"`
	IdentityNumber      string       `json:"-"` // plaintext, never persisted
	IdentityNumberEnc   string       `json:"-"` // AES-256-GCM ciphertext
	IdentityFingerprint string       `json:"-"`
	IsPrimaryWallet     bool         `json:"is_primary_wallet"`
	WalletStatus        WalletStatus `json:"wallet_status"`
	CreatedByUser       string       `json:"created_by_user"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// FormatWalletID derives the public wallet identifier for a site sequence.
func FormatWalletID(siteName string, sequence int) string {
	return fmt.Sprintf("WLT-%s-%05d", siteName, sequence)
}

// HasIdentity reports whether an identity number is attached, in plaintext or sealed form.
func (w *Wallet) HasIdentity() bool {
	return w.IdentityNumber != "" || w.IdentityNumberEnc != ""
}

// Clone returns a shallow copy of the wallet.
func (w *Wallet) Clone() *Wallet {
	c := *w
	return &c
}
