package service

import (
	"context"
	"errors"
	"testing"

	"client-wallet-service/internal/adapter/storage/memory"
	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports/mocks"
	"client-wallet-service/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestWallet(site, name string) *domain.Wallet {
	return &domain.Wallet{
		SiteName:     site,
		WalletName:   name,
		Currency:     domain.DefaultCurrency,
		AccountType:  domain.DefaultAccountType,
		WalletStatus: domain.WalletStatusActive,
	}
}

func TestWalletPipeline_StepOrder(t *testing.T) {
	p := NewWalletPipeline(nil)

	assert.Equal(t, []string{
		"assign_sequence", "stamp_creator", "derive_wallet_id",
		"ensure_single_primary", "check_identity_format", "promote_first_wallet", "seal_identity",
		"unique_wallet_name",
	}, p.StepNames(true))

	assert.Equal(t, []string{
		"ensure_single_primary", "check_identity_format", "promote_first_wallet", "seal_identity",
		"unique_wallet_name",
	}, p.StepNames(false))
}

func TestWalletPipeline_Insert_FirstWalletIsPrimary(t *testing.T) {
	store := memory.NewWalletStore()
	p := NewWalletPipeline(nil)
	ctx := context.Background()

	first := newTestWallet("shop1", "Main")
	require.NoError(t, p.Insert(ctx, store, first, "Guest"))

	assert.Equal(t, 1, first.WalletSequence)
	assert.Equal(t, "WLT-shop1-00001", first.WalletID)
	assert.True(t, first.IsPrimaryWallet)
	assert.Equal(t, "Guest", first.CreatedByUser)
	assert.False(t, first.CreatedAt.IsZero())

	second := newTestWallet("shop1", "Savings")
	require.NoError(t, p.Insert(ctx, store, second, "Guest"))

	assert.Equal(t, 2, second.WalletSequence)
	assert.Equal(t, "WLT-shop1-00002", second.WalletID)
	assert.False(t, second.IsPrimaryWallet)
}

func TestWalletPipeline_Insert_SequencesArePerSite(t *testing.T) {
	store := memory.NewWalletStore()
	p := NewWalletPipeline(nil)
	ctx := context.Background()

	require.NoError(t, p.Insert(ctx, store, newTestWallet("shop1", "Main"), "Guest"))
	other := newTestWallet("shop2", "Main")
	require.NoError(t, p.Insert(ctx, store, other, "Guest"))

	assert.Equal(t, 1, other.WalletSequence)
	assert.True(t, other.IsPrimaryWallet)
}

func TestWalletPipeline_Insert_KeepsProvidedWalletID(t *testing.T) {
	store := memory.NewWalletStore()
	p := NewWalletPipeline(nil)

	w := newTestWallet("shop1", "Main")
	w.WalletID = "EXT-001"
	require.NoError(t, p.Insert(context.Background(), store, w, "Guest"))

	assert.Equal(t, "EXT-001", w.WalletID)
	assert.Equal(t, 1, w.WalletSequence)
}

func TestWalletPipeline_Insert_DuplicateName(t *testing.T) {
	store := memory.NewWalletStore()
	p := NewWalletPipeline(nil)
	ctx := context.Background()

	require.NoError(t, p.Insert(ctx, store, newTestWallet("shop1", "Main"), "Guest"))
	err := p.Insert(ctx, store, newTestWallet("shop1", "Main"), "Guest")

	require.Error(t, err)
	assert.Equal(t, apperror.CodeDuplicateWalletName, apperror.CodeOf(err))
	assert.Equal(t, "Wallet name 'Main' already exists for site 'shop1'", errorMessage(err))
}

func TestWalletPipeline_Insert_SecondPrimaryRejected(t *testing.T) {
	store := memory.NewWalletStore()
	p := NewWalletPipeline(nil)
	ctx := context.Background()

	require.NoError(t, p.Insert(ctx, store, newTestWallet("shop1", "Main"), "Guest"))

	w := newTestWallet("shop1", "Savings")
	w.IsPrimaryWallet = true
	err := p.Insert(ctx, store, w, "Guest")

	assert.Equal(t, apperror.CodePrimaryWalletConflict, apperror.CodeOf(err))
}

func TestWalletPipeline_Insert_InvalidIdentity(t *testing.T) {
	store := memory.NewWalletStore()
	p := NewWalletPipeline(nil)

	w := newTestWallet("shop1", "Main")
	w.IdentityNumber = "12345"
	err := p.Insert(context.Background(), store, w, "admin")

	assert.Equal(t, apperror.CodeInvalidIdentityFormat, apperror.CodeOf(err))
	n, _ := store.CountBySite(context.Background(), "shop1")
	assert.Zero(t, n)
}

func TestWalletPipeline_Insert_SealsIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	protector := mocks.NewMockIdentityProtector(ctrl)
	protector.EXPECT().Seal("12345678901").Return("ciphertext", "fingerprint", nil)

	store := memory.NewWalletStore()
	p := NewWalletPipeline(protector)

	w := newTestWallet("shop1", "Main")
	w.IdentityNumber = "12345678901"
	require.NoError(t, p.Insert(context.Background(), store, w, "Guest"))

	assert.Equal(t, "ciphertext", w.IdentityNumberEnc)
	assert.Equal(t, "fingerprint", w.IdentityFingerprint)
}

func TestWalletPipeline_Insert_SealFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	protector := mocks.NewMockIdentityProtector(ctrl)
	protector.EXPECT().Seal(gomock.Any()).Return("", "", errors.New("cipher unavailable"))

	p := NewWalletPipeline(protector)
	w := newTestWallet("shop1", "Main")
	w.IdentityNumber = "12345678901"
	err := p.Insert(context.Background(), memory.NewWalletStore(), w, "Guest")

	assert.Equal(t, "SYS_003", apperror.CodeOf(err))
}

func TestWalletPipeline_Insert_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockWalletRepository(ctrl)
	repo.EXPECT().SequenceMax(gomock.Any(), "shop1").Return(0, errors.New("connection reset"))

	err := NewWalletPipeline(nil).Insert(context.Background(), repo, newTestWallet("shop1", "Main"), "Guest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read sequence")
}

func TestWalletPipeline_Update_RenameToTakenName(t *testing.T) {
	store := memory.NewWalletStore()
	p := NewWalletPipeline(nil)
	ctx := context.Background()

	require.NoError(t, p.Insert(ctx, store, newTestWallet("shop1", "Main"), "Guest"))
	second := newTestWallet("shop1", "Savings")
	require.NoError(t, p.Insert(ctx, store, second, "Guest"))

	second.WalletName = "Main"
	err := p.Update(ctx, store, second, "admin")
	assert.Equal(t, apperror.CodeDuplicateWalletName, apperror.CodeOf(err))

	second.WalletName = "Savings"
	second.Description = "rainy day"
	require.NoError(t, p.Update(ctx, store, second, "admin"))

	got, err := store.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "rainy day", got.Description)
	assert.Equal(t, 2, got.WalletSequence)
}
