package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wallet(site, name string, seq int) *domain.Wallet {
	return &domain.Wallet{
		ID:             uuid.New(),
		SiteName:       site,
		WalletName:     name,
		WalletSequence: seq,
		WalletID:       domain.FormatWalletID(site, seq),
		WalletStatus:   domain.WalletStatusActive,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestWalletStore_UniqueRules(t *testing.T) {
	s := NewWalletStore()
	ctx := context.Background()

	main := wallet("shop1", "Main", 1)
	main.IsPrimaryWallet = true
	require.NoError(t, s.Insert(ctx, main))

	err := s.Insert(ctx, wallet("shop1", "Main", 2))
	assert.Equal(t, apperror.CodeDuplicateWalletName, apperror.CodeOf(err))

	dupID := wallet("shop2", "Main", 1)
	dupID.WalletID = main.WalletID
	err = s.Insert(ctx, dupID)
	assert.Equal(t, apperror.CodeDuplicateWalletID, apperror.CodeOf(err))

	second := wallet("shop1", "Savings", 2)
	second.IsPrimaryWallet = true
	err = s.Insert(ctx, second)
	assert.Equal(t, apperror.CodePrimaryWalletConflict, apperror.CodeOf(err))

	err = s.Insert(ctx, wallet("shop1", "Escrow", 1))
	assert.Error(t, err)

	require.NoError(t, s.Insert(ctx, wallet("shop2", "Main", 1)))
}

func TestWalletStore_SequenceHighWater(t *testing.T) {
	s := NewWalletStore()
	ctx := context.Background()

	w := wallet("shop1", "Main", 3)
	require.NoError(t, s.Insert(ctx, w))
	require.NoError(t, s.Delete(ctx, w.ID))

	max, err := s.SequenceMax(ctx, "shop1")
	require.NoError(t, err)
	assert.Equal(t, 3, max)

	n, err := s.CountBySite(ctx, "shop1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWalletStore_WithinSiteRollsBack(t *testing.T) {
	s := NewWalletStore()
	ctx := context.Background()

	keep := wallet("shop1", "Main", 1)
	require.NoError(t, s.Insert(ctx, keep))
	other := wallet("shop2", "Main", 1)
	require.NoError(t, s.Insert(ctx, other))

	boom := errors.New("boom")
	err := s.WithinSite(ctx, "shop1", func(repo ports.WalletRepository) error {
		require.NoError(t, repo.Delete(ctx, keep.ID))
		require.NoError(t, repo.Insert(ctx, wallet("shop1", "Savings", 2)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.GetByID(ctx, keep.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	max, _ := s.SequenceMax(ctx, "shop1")
	assert.Equal(t, 1, max)

	n, _ := s.CountBySite(ctx, "shop2")
	assert.Equal(t, 1, n)
}

func TestWalletStore_WithinSiteCancelled(t *testing.T) {
	s := NewWalletStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithinSite(ctx, "shop1", func(ports.WalletRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWalletStore_FindByAccountNumberEarliest(t *testing.T) {
	s := NewWalletStore()
	ctx := context.Background()

	older := wallet("shop1", "Main", 1)
	older.AccountNumber = "0123456789"
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := wallet("shop2", "Main", 1)
	newer.AccountNumber = "0123456789"
	require.NoError(t, s.Insert(ctx, newer))
	require.NoError(t, s.Insert(ctx, older))

	got, err := s.FindByAccountNumber(ctx, "0123456789")
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)

	got, err = s.FindByAccountNumber(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWalletStore_ListAndFilter(t *testing.T) {
	s := NewWalletStore()
	ctx := context.Background()

	b := wallet("shop1", "B", 2)
	b.WalletStatus = domain.WalletStatusFrozen
	require.NoError(t, s.Insert(ctx, b))
	require.NoError(t, s.Insert(ctx, wallet("shop1", "A", 1)))

	all, err := s.ListBySite(ctx, ports.WalletListParams{SiteName: "shop1"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].WalletName)

	frozen := domain.WalletStatusFrozen
	some, err := s.ListBySite(ctx, ports.WalletListParams{SiteName: "shop1", Status: &frozen})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "B", some[0].WalletName)

	exists, err := s.Exists(ctx, ports.WalletFilter{SiteName: "shop1", WalletName: "B", ExcludeID: &b.ID})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWalletStore_ClearPrimaryAndUpdate(t *testing.T) {
	s := NewWalletStore()
	ctx := context.Background()

	a := wallet("shop1", "A", 1)
	a.IsPrimaryWallet = true
	a.CreatedByUser = "Guest"
	require.NoError(t, s.Insert(ctx, a))

	require.NoError(t, s.ClearPrimary(ctx, "shop1"))
	p, err := s.FindPrimary(ctx, "shop1")
	require.NoError(t, err)
	assert.Nil(t, p)

	a.IsPrimaryWallet = true
	a.CreatedByUser = "someone else"
	a.WalletSequence = 99
	require.NoError(t, s.Update(ctx, a))

	got, _ := s.GetByID(ctx, a.ID)
	assert.True(t, got.IsPrimaryWallet)
	assert.Equal(t, "Guest", got.CreatedByUser)
	assert.Equal(t, 1, got.WalletSequence)

	err = s.Update(ctx, wallet("shop1", "ghost", 5))
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}

func TestTransactionStore(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	mk := func(ref string, typ domain.TransactionType, amt int64) *domain.WalletTransaction {
		return &domain.WalletTransaction{
			WalletID: "W1", Reference: ref, TransactionType: typ,
			Amount: decimal.NewFromInt(amt), Status: domain.TransactionStatusSubmitted,
		}
	}
	require.NoError(t, s.Create(ctx, mk("R1", domain.TransactionTypeCredit, 100)))
	require.NoError(t, s.Create(ctx, mk("R2", domain.TransactionTypeDebit, 30)))

	err := s.Create(ctx, mk("R1", domain.TransactionTypeCredit, 1))
	assert.Equal(t, apperror.CodeDuplicateReference, apperror.CodeOf(err))

	bal, err := s.Balance(ctx, "W1")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(70)))

	list, err := s.ListByWallet(ctx, "W1", 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "R2", list[0].Reference)
}

func TestRelayStore_ListDue(t *testing.T) {
	s := NewRelayStore()
	ctx := context.Background()
	now := time.Now().UTC()

	early := now.Add(-2 * time.Minute)
	late := now.Add(-time.Minute)
	future := now.Add(time.Minute)
	for _, a := range []domain.RelayAttempt{
		{ID: uuid.New(), WalletLogID: "late", Status: domain.RelayStatusPending, NextRetryAt: &late},
		{ID: uuid.New(), WalletLogID: "early", Status: domain.RelayStatusPending, NextRetryAt: &early},
		{ID: uuid.New(), WalletLogID: "future", Status: domain.RelayStatusPending, NextRetryAt: &future},
		{ID: uuid.New(), WalletLogID: "done", Status: domain.RelayStatusDelivered},
	} {
		a := a
		require.NoError(t, s.Create(ctx, &a))
	}

	due, err := s.ListDue(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "early", due[0].WalletLogID)
	assert.Equal(t, "late", due[1].WalletLogID)

	assert.NotNil(t, s.ForLog("done"))
	assert.Error(t, s.Update(ctx, &domain.RelayAttempt{ID: uuid.New()}))
}
