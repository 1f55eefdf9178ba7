package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"
	"client-wallet-service/pkg/logger"

	"github.com/rs/zerolog"
)

// Event routing keys published by the wallet and settlement services.
const (
	EventKeyWalletCreated      = "wallet.created"
	EventKeyWalletReplaced     = "wallet.replaced"
	EventKeyWalletPrimarySet   = "wallet.primary_set"
	EventKeyTransactionCreated = "wallet_transaction.submitted"
	EventKeyWalletLogRecorded  = "wallet_log.recorded"
)

// WalletSettings holds the configurable defaults of the wallet service.
type WalletSettings struct {
	IdentityPolicy     IdentityPolicy
	DefaultCurrency    string
	DefaultAccountType string
}

func (s WalletSettings) withDefaults() WalletSettings {
	if s.IdentityPolicy == "" {
		s.IdentityPolicy = IdentityPolicyLenient
	}
	if s.DefaultCurrency == "" {
		s.DefaultCurrency = domain.DefaultCurrency
	}
	if s.DefaultAccountType == "" {
		s.DefaultAccountType = domain.DefaultAccountType
	}
	return s
}

// walletService implements ports.WalletService.
type walletService struct {
	repo       ports.WalletRepository
	transactor ports.SiteTransactor
	txRepo     ports.WalletTransactionRepository
	pipeline   *WalletPipeline
	events     ports.EventPublisher
	settings   WalletSettings
	log        zerolog.Logger
}

// NewWalletService creates a new wallet service.
func NewWalletService(
	repo ports.WalletRepository,
	transactor ports.SiteTransactor,
	txRepo ports.WalletTransactionRepository,
	pipeline *WalletPipeline,
	events ports.EventPublisher,
	settings WalletSettings,
	log zerolog.Logger,
) ports.WalletService {
	return &walletService{
		repo:       repo,
		transactor: transactor,
		txRepo:     txRepo,
		pipeline:   pipeline,
		events:     events,
		settings:   settings.withDefaults(),
		log:        log,
	}
}

// ReconcileAnnouncement creates the announced wallet, replacing any wallet
// with the same name in the same site.
func (s *walletService) ReconcileAnnouncement(ctx context.Context, env *domain.Envelope) (*ports.ReconcileResult, error) {
	if env == nil {
		return nil, apperror.ErrMalformedRequest()
	}
	if env.Event != domain.EventWalletCreated {
		return nil, apperror.ErrUnexpectedEvent(env.Event, domain.EventWalletCreated)
	}

	data := env.Data
	input := inputFromPayload(data)
	siteName := strings.TrimSpace(data.String("site_name"))
	if input.WalletName == "" {
		return nil, apperror.ErrMissingField("wallet_name")
	}
	if siteName == "" {
		return nil, apperror.ErrMissingField("site_name")
	}
	if !domain.ValidSiteName(siteName) {
		return nil, apperror.ErrInvalidSiteName(siteName)
	}

	outcome := ValidateIdentityNumber(data.FirstString("identity_number", "bvn"))
	identity, warning, err := s.settings.IdentityPolicy.Resolve(outcome)
	if err != nil {
		return nil, err
	}
	input.IdentityNumber = identity

	if input.WalletStatus != "" && !input.WalletStatus.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("invalid wallet_status %q", input.WalletStatus))
	}

	var (
		created  *domain.Wallet
		replaced *domain.Wallet
	)
	err = s.transactor.WithinSite(ctx, siteName, func(repo ports.WalletRepository) error {
		existing, err := repo.FindBySiteAndName(ctx, siteName, input.WalletName)
		if err != nil {
			return fmt.Errorf("find wallet: %w", err)
		}
		if existing != nil {
			if err := repo.Delete(ctx, existing.ID); err != nil {
				return fmt.Errorf("delete wallet: %w", err)
			}
			replaced = existing
		}

		w := s.buildWallet(siteName, input)
		if replaced != nil && replaced.IsPrimaryWallet {
			w.IsPrimaryWallet = true
		}
		if err := s.pipeline.Insert(ctx, repo, w, domain.GuestActor); err != nil {
			return err
		}
		created = w
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).
			Str("site_name", siteName).
			Str("wallet_name", input.WalletName).
			Str("identity_number", logger.MaskIdentity(identity)).
			Msg("wallet announcement rejected")
		return nil, err
	}

	evt := s.log.Info().
		Str("site_name", created.SiteName).
		Str("wallet_id", created.WalletID).
		Int("wallet_sequence", created.WalletSequence).
		Bool("is_primary_wallet", created.IsPrimaryWallet).
		Str("identity_number", logger.MaskIdentity(identity)).
		Bool("replaced", replaced != nil)
	if warning != "" {
		evt = evt.Str("warning", warning)
	}
	evt.Msg("wallet announcement reconciled")

	key := EventKeyWalletCreated
	if replaced != nil {
		key = EventKeyWalletReplaced
	}
	s.publish(ctx, key, created)

	return &ports.ReconcileResult{
		Wallet:   created,
		Replaced: replaced != nil,
		Warning:  warning,
	}, nil
}

// ListWallets returns the site's wallets ordered by sequence.
func (s *walletService) ListWallets(ctx context.Context, siteName string, status *domain.WalletStatus) ([]domain.Wallet, error) {
	if siteName == "" {
		return nil, apperror.ErrMissingField("site_name")
	}
	if status != nil && !status.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("invalid wallet_status %q", *status))
	}
	wallets, err := s.repo.ListBySite(ctx, ports.WalletListParams{SiteName: siteName, Status: status})
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return wallets, nil
}

// CreateBulk creates each item in its own unit of work; one failure does not
// affect the others.
func (s *walletService) CreateBulk(ctx context.Context, siteName string, items []ports.WalletInput, actor string) ([]ports.BulkResult, error) {
	if siteName == "" {
		return nil, apperror.ErrMissingField("site_name")
	}
	if !domain.ValidSiteName(siteName) {
		return nil, apperror.ErrInvalidSiteName(siteName)
	}

	results := make([]ports.BulkResult, 0, len(items))
	for _, item := range items {
		item.WalletName = strings.TrimSpace(item.WalletName)
		res := ports.BulkResult{WalletName: item.WalletName}

		w, err := s.createOne(ctx, siteName, item, actor)
		if err != nil {
			res.Error = errorMessage(err)
			s.log.Warn().Err(err).Str("site_name", siteName).Str("wallet_name", item.WalletName).Msg("bulk wallet item failed")
		} else {
			res.Success = true
			res.WalletID = w.WalletID
			s.publish(ctx, EventKeyWalletCreated, w)
		}
		results = append(results, res)
	}

	s.log.Info().Str("site_name", siteName).Int("items", len(items)).Str("actor", actor).Msg("bulk wallet creation finished")
	return results, nil
}

func (s *walletService) createOne(ctx context.Context, siteName string, item ports.WalletInput, actor string) (*domain.Wallet, error) {
	if item.WalletName == "" {
		return nil, apperror.ErrMissingField("wallet_name")
	}
	if item.WalletStatus != "" && !item.WalletStatus.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("invalid wallet_status %q", item.WalletStatus))
	}

	w := s.buildWallet(siteName, item)
	err := s.transactor.WithinSite(ctx, siteName, func(repo ports.WalletRepository) error {
		return s.pipeline.Insert(ctx, repo, w, actor)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// GetPrimary returns the site's primary wallet.
func (s *walletService) GetPrimary(ctx context.Context, siteName string) (*domain.Wallet, error) {
	w, err := s.repo.FindPrimary(ctx, siteName)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if w == nil {
		return nil, apperror.ErrNotFound("Primary wallet")
	}
	return w, nil
}

// SetPrimary makes walletID the site's only primary wallet.
func (s *walletService) SetPrimary(ctx context.Context, siteName, walletID, actor string) (*domain.Wallet, error) {
	var target *domain.Wallet
	err := s.transactor.WithinSite(ctx, siteName, func(repo ports.WalletRepository) error {
		w, err := repo.GetByWalletID(ctx, walletID)
		if err != nil {
			return fmt.Errorf("get wallet: %w", err)
		}
		if w == nil || w.SiteName != siteName {
			return apperror.ErrNotFound("Wallet")
		}
		if err := repo.ClearPrimary(ctx, siteName); err != nil {
			return fmt.Errorf("clear primary: %w", err)
		}
		w.IsPrimaryWallet = true
		if err := s.pipeline.Update(ctx, repo, w, actor); err != nil {
			return err
		}
		target = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("site_name", siteName).Str("wallet_id", walletID).Str("actor", actor).Msg("primary wallet set")
	s.publish(ctx, EventKeyWalletPrimarySet, target)
	return target, nil
}

// RecordTransaction creates and submits a ledger entry for a wallet.
func (s *walletService) RecordTransaction(ctx context.Context, req ports.TransactionRequest) (*domain.WalletTransaction, error) {
	w, err := s.repo.GetByWalletID(ctx, req.WalletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if w == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}

	tx, err := w.NewTransaction(req.Type, req.Amount, req.Description, req.Reference, req.Actor)
	if err != nil {
		return nil, apperror.ErrInvalidTransaction(err.Error())
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("wallet_id", tx.WalletID).
		Str("reference", tx.Reference).
		Str("transaction_type", string(tx.TransactionType)).
		Str("amount", tx.Amount.String()).
		Str("actor", req.Actor).
		Msg("wallet transaction submitted")
	s.publish(ctx, EventKeyTransactionCreated, tx)
	return tx, nil
}

// GetBalance returns the wallet's submitted credits minus debits.
func (s *walletService) GetBalance(ctx context.Context, walletID string) (*ports.Balance, error) {
	w, err := s.repo.GetByWalletID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if w == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	bal, err := s.txRepo.Balance(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return &ports.Balance{WalletID: w.WalletID, Currency: w.Currency, Balance: bal}, nil
}

func (s *walletService) buildWallet(siteName string, in ports.WalletInput) *domain.Wallet {
	w := &domain.Wallet{
		SiteName:        siteName,
		WalletName:      in.WalletName,
		WalletID:        in.WalletID,
		Currency:        in.Currency,
		AccountNumber:   in.AccountNumber,
		AccountType:     in.AccountType,
		BankCode:        in.BankCode,
		BankName:        in.BankName,
		BusinessID:      in.BusinessID,
		ExchangeRef:     in.ExchangeRef,
		Description:     in.Description,
		IdentityNumber:  in.IdentityNumber,
		IsPrimaryWallet: in.IsPrimaryWallet,
		WalletStatus:    in.WalletStatus,
	}
	if w.Currency == "" {
		w.Currency = s.settings.DefaultCurrency
	}
	if w.AccountType == "" {
		w.AccountType = s.settings.DefaultAccountType
	}
	if w.WalletStatus == "" {
		w.WalletStatus = domain.WalletStatusActive
	}
	return w
}

func (s *walletService) publish(ctx context.Context, key string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, payload); err != nil {
		s.log.Warn().Err(err).Str("routing_key", key).Msg("event publish failed")
	}
}

func inputFromPayload(p domain.Payload) ports.WalletInput {
	return ports.WalletInput{
		WalletName:    strings.TrimSpace(p.String("wallet_name")),
		WalletID:      strings.TrimSpace(p.String("wallet_id")),
		Currency:      strings.TrimSpace(p.String("currency")),
		AccountNumber: strings.TrimSpace(p.String("account_number")),
		AccountType:   strings.TrimSpace(p.String("account_type")),
		BankCode:      p.String("bank_code"),
		BankName:      p.String("bank_name"),
		BusinessID:    p.String("business_id"),
		ExchangeRef:   p.String("exchange_ref"),
		Description:   p.String("description"),
		WalletStatus:  domain.WalletStatus(strings.TrimSpace(p.String("wallet_status"))),
	}
}

// errorMessage returns the client-facing text of err.
func errorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
