package service

import (
	"context"
	"fmt"
	"time"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"

	"github.com/google/uuid"
)

// Phase groups pipeline steps. Phases always run in the order
// pre_insert, pre_save, validate.
type Phase string

const (
	PhasePreInsert Phase = "pre_insert"
	PhasePreSave   Phase = "pre_save"
	PhaseValidate  Phase = "validate"
)

// StepContext carries the collaborators a step may read.
type StepContext struct {
	Repo   ports.WalletRepository
	Actor  string
	Insert bool
}

// WalletStep is one named unit of the write pipeline.
type WalletStep struct {
	Name  string
	Phase Phase
	Run   func(ctx context.Context, sc *StepContext, w *domain.Wallet) error
}

// WalletPipeline enforces wallet invariants before a write reaches the repository.
type WalletPipeline struct {
	steps     []WalletStep
	protector ports.IdentityProtector
	now       func() time.Time
}

// NewWalletPipeline builds the pipeline with its standard steps.
// protector may be nil, in which case identity numbers are not sealed.
func NewWalletPipeline(protector ports.IdentityProtector) *WalletPipeline {
	p := &WalletPipeline{
		protector: protector,
		now:       func() time.Time { return time.Now().UTC() },
	}
	p.steps = []WalletStep{
		{Name: "assign_sequence", Phase: PhasePreInsert, Run: assignSequence},
		{Name: "stamp_creator", Phase: PhasePreInsert, Run: stampCreator},
		{Name: "derive_wallet_id", Phase: PhasePreInsert, Run: deriveWalletID},
		{Name: "ensure_single_primary", Phase: PhasePreSave, Run: ensureSinglePrimary},
		{Name: "check_identity_format", Phase: PhasePreSave, Run: checkIdentityFormat},
		{Name: "promote_first_wallet", Phase: PhasePreSave, Run: promoteFirstWallet},
		{Name: "seal_identity", Phase: PhasePreSave, Run: p.sealIdentity},
		{Name: "unique_wallet_name", Phase: PhaseValidate, Run: uniqueWalletName},
	}
	return p
}

// StepNames lists the steps that run for an insert or an update, in order.
func (p *WalletPipeline) StepNames(insert bool) []string {
	var names []string
	for _, phase := range phasesFor(insert) {
		for _, s := range p.steps {
			if s.Phase == phase {
				names = append(names, s.Name)
			}
		}
	}
	return names
}

// Insert runs every phase and then inserts the wallet.
func (p *WalletPipeline) Insert(ctx context.Context, repo ports.WalletRepository, w *domain.Wallet, actor string) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	now := p.now()
	w.CreatedAt = now
	w.UpdatedAt = now

	if err := p.run(ctx, &StepContext{Repo: repo, Actor: actor, Insert: true}, w); err != nil {
		return err
	}
	if err := repo.Insert(ctx, w); err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// Update runs the pre_save and validate phases and then updates the wallet.
func (p *WalletPipeline) Update(ctx context.Context, repo ports.WalletRepository, w *domain.Wallet, actor string) error {
	w.UpdatedAt = p.now()

	if err := p.run(ctx, &StepContext{Repo: repo, Actor: actor}, w); err != nil {
		return err
	}
	if err := repo.Update(ctx, w); err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	return nil
}

func (p *WalletPipeline) run(ctx context.Context, sc *StepContext, w *domain.Wallet) error {
	for _, phase := range phasesFor(sc.Insert) {
		for _, s := range p.steps {
			if s.Phase != phase {
				continue
			}
			if err := s.Run(ctx, sc, w); err != nil {
				return err
			}
		}
	}
	return nil
}

func phasesFor(insert bool) []Phase {
	if insert {
		return []Phase{PhasePreInsert, PhasePreSave, PhaseValidate}
	}
	return []Phase{PhasePreSave, PhaseValidate}
}

func assignSequence(ctx context.Context, sc *StepContext, w *domain.Wallet) error {
	max, err := sc.Repo.SequenceMax(ctx, w.SiteName)
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}
	w.WalletSequence = max + 1
	return nil
}

func stampCreator(_ context.Context, sc *StepContext, w *domain.Wallet) error {
	w.CreatedByUser = sc.Actor
	return nil
}

func deriveWalletID(_ context.Context, _ *StepContext, w *domain.Wallet) error {
	if w.WalletID == "" {
		w.WalletID = domain.FormatWalletID(w.SiteName, w.WalletSequence)
	}
	return nil
}

func ensureSinglePrimary(ctx context.Context, sc *StepContext, w *domain.Wallet) error {
	if !w.IsPrimaryWallet {
		return nil
	}
	primary := true
	exists, err := sc.Repo.Exists(ctx, ports.WalletFilter{
		SiteName:  w.SiteName,
		IsPrimary: &primary,
		ExcludeID: &w.ID,
	})
	if err != nil {
		return fmt.Errorf("check primary wallet: %w", err)
	}
	if exists {
		return apperror.ErrPrimaryWalletConflict(w.SiteName)
	}
	return nil
}

func checkIdentityFormat(_ context.Context, _ *StepContext, w *domain.Wallet) error {
	if w.IdentityNumber != "" && !isIdentityNumber(w.IdentityNumber) {
		return apperror.ErrInvalidIdentityFormat()
	}
	return nil
}

func promoteFirstWallet(ctx context.Context, sc *StepContext, w *domain.Wallet) error {
	if w.IsPrimaryWallet {
		return nil
	}
	count, err := sc.Repo.CountBySite(ctx, w.SiteName)
	if err != nil {
		return fmt.Errorf("count wallets: %w", err)
	}
	if count == 0 {
		w.IsPrimaryWallet = true
	}
	return nil
}

func (p *WalletPipeline) sealIdentity(_ context.Context, _ *StepContext, w *domain.Wallet) error {
	if w.IdentityNumber == "" || p.protector == nil {
		return nil
	}
	enc, fingerprint, err := p.protector.Seal(w.IdentityNumber)
	if err != nil {
		return apperror.ErrEncryptionFailure(err)
	}
	w.IdentityNumberEnc = enc
	w.IdentityFingerprint = fingerprint
	return nil
}

func uniqueWalletName(ctx context.Context, sc *StepContext, w *domain.Wallet) error {
	exists, err := sc.Repo.Exists(ctx, ports.WalletFilter{
		SiteName:   w.SiteName,
		WalletName: w.WalletName,
		ExcludeID:  &w.ID,
	})
	if err != nil {
		return fmt.Errorf("check wallet name: %w", err)
	}
	if exists {
		return apperror.ErrDuplicateWalletName(w.WalletName, w.SiteName)
	}
	return nil
}
