package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWalletID(t *testing.T) {
	tests := []struct {
		site string
		seq  int
		want string
	}{
		{"shop1", 1, "WLT-shop1-00001"},
		{"shop1.example.com", 42, "WLT-shop1.example.com-00042"},
		{"s", 123456, "WLT-s-123456"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWalletID(tt.site, tt.seq))
		})
	}
}

func TestWalletStatus_Valid(t *testing.T) {
	assert.True(t, WalletStatusActive.Valid())
	assert.True(t, WalletStatusInactive.Valid())
	assert.True(t, WalletStatusFrozen.Valid())
	assert.False(t, WalletStatus("Closed").Valid())
}

func TestValidSiteName(t *testing.T) {
	for _, s := range []string{"shop1", "shop1.example.com", "a-b.example.co", "localhost:8000"} {
		assert.True(t, ValidSiteName(s), s)
	}
	for _, s := range []string{
		"", "Shop One", "Shop1.example.com", "-shop.com", "shop_1.com",
		"attacker.example/x?", "admin@attacker.example", "https://shop1.com", "shop1.com#frag",
		strings.Repeat("a.", 127) + "ab",
	} {
		assert.False(t, ValidSiteName(s), s)
	}
}

func TestWallet_NewTransaction(t *testing.T) {
	w := &Wallet{WalletID: "WLT-shop1-00001", SiteName: "shop1"}

	tx, err := w.NewTransaction(TransactionTypeCredit, decimal.RequireFromString("1500.50"), "top up", "", "admin@shop1")
	require.NoError(t, err)

	assert.Equal(t, "WLT-shop1-00001", tx.WalletID)
	assert.Equal(t, "shop1", tx.SiteName)
	assert.Equal(t, TransactionStatusSubmitted, tx.Status)
	assert.Equal(t, "admin@shop1", tx.CreatedBy)
	assert.True(t, strings.HasPrefix(tx.Reference, "WTX-"))
	assert.Equal(t, tx.CreatedAt, tx.SubmittedAt)
	assert.True(t, tx.Signed().Equal(decimal.RequireFromString("1500.50")))
}

func TestWallet_NewTransaction_Rejects(t *testing.T) {
	w := &Wallet{WalletID: "WLT-shop1-00001", SiteName: "shop1"}

	_, err := w.NewTransaction(TransactionType("Refund"), decimal.NewFromInt(1), "", "", "x")
	assert.ErrorIs(t, err, ErrInvalidTransactionType)

	_, err = w.NewTransaction(TransactionTypeDebit, decimal.Zero, "", "", "x")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = (&Wallet{}).NewTransaction(TransactionTypeDebit, decimal.NewFromInt(1), "", "", "x")
	assert.ErrorIs(t, err, ErrWalletNotPersisted)
}

func TestWalletTransaction_SignedDebit(t *testing.T) {
	w := &Wallet{WalletID: "WLT-shop1-00001"}
	tx, err := w.NewTransaction(TransactionTypeDebit, decimal.NewFromInt(200), "", "REF-1", "x")
	require.NoError(t, err)

	assert.Equal(t, "REF-1", tx.Reference)
	assert.True(t, tx.Signed().Equal(decimal.NewFromInt(-200)))
}

func TestWalletLog_DedupeKey(t *testing.T) {
	assert.Equal(t, "T1", (&WalletLog{TransactionID: "T1", TransactionReference: "R1", SessionID: "S1"}).DedupeKey())
	assert.Equal(t, "R1", (&WalletLog{TransactionReference: "R1", SessionID: "S1"}).DedupeKey())
	assert.Equal(t, "S1", (&WalletLog{SessionID: "S1"}).DedupeKey())
	assert.Equal(t, "", (&WalletLog{}).DedupeKey())
}

func TestPayload_String(t *testing.T) {
	var p Payload
	dec := json.NewDecoder(strings.NewReader(`{"a":"x","n":1234567890123,"f":1.5,"b":true,"nil":null}`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&p))

	assert.Equal(t, "x", p.String("a"))
	assert.Equal(t, "1234567890123", p.String("n"))
	assert.Equal(t, "1.5", p.String("f"))
	assert.Equal(t, "true", p.String("b"))
	assert.Equal(t, "", p.String("nil"))
	assert.Equal(t, "", p.String("missing"))
}

func TestPayload_FirstStringAndHas(t *testing.T) {
	p := Payload{"identity_number": "  ", "bvn": "12345678901"}

	assert.Equal(t, "12345678901", p.FirstString("identity_number", "bvn"))
	assert.False(t, p.Has("identity_number"))
	assert.True(t, p.Has("bvn"))
}

func TestPayload_Decimal(t *testing.T) {
	p := Payload{"s": "100.25", "n": json.Number("7"), "f": 2.5, "bad": "abc"}

	d, err := p.Decimal("s")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("100.25")))

	d, err = p.Decimal("n")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(7)))

	d, err = p.Decimal("f")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("2.5")))

	d, err = p.Decimal("missing")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = p.Decimal("bad")
	assert.Error(t, err)
}

func TestPayload_JSON(t *testing.T) {
	raw, err := Payload{}.JSON("metadata")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))

	raw, err = Payload{"metadata": map[string]any{"channel": "nip"}}.JSON("metadata")
	require.NoError(t, err)
	assert.JSONEq(t, `{"channel":"nip"}`, string(raw))
}
