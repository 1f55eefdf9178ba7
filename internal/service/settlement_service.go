package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// DefaultRetryIntervals is the relay back-off used when none is configured.
var DefaultRetryIntervals = []time.Duration{
	1 * time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	1 * time.Hour,
	6 * time.Hour,
}

// SettlementSettings configures the settlement relay.
type SettlementSettings struct {
	EventName      string
	RetryIntervals []time.Duration
	DedupeTTL      time.Duration
}

func (s SettlementSettings) withDefaults() SettlementSettings {
	if s.EventName == "" {
		s.EventName = domain.EventWalletCreated
	}
	if len(s.RetryIntervals) == 0 {
		s.RetryIntervals = DefaultRetryIntervals
	}
	if s.DedupeTTL <= 0 {
		s.DedupeTTL = 72 * time.Hour
	}
	return s
}

// relayEnvelope is the JSON body posted to the admin endpoint.
type relayEnvelope struct {
	Event string            `json:"event"`
	Data  *domain.WalletLog `json:"data"`
}

// settlementService implements ports.SettlementService.
type settlementService struct {
	wallets  ports.WalletRepository
	logs     ports.WalletLogRepository
	attempts ports.RelayAttemptRepository
	deduper  ports.SettlementDeduper
	events   ports.EventPublisher
	relay    *AdminRelay
	settings SettlementSettings
	log      zerolog.Logger
	now      func() time.Time
}

// NewSettlementService creates a new settlement service.
// deduper and events may be nil.
func NewSettlementService(
	wallets ports.WalletRepository,
	logs ports.WalletLogRepository,
	attempts ports.RelayAttemptRepository,
	deduper ports.SettlementDeduper,
	events ports.EventPublisher,
	relay *AdminRelay,
	settings SettlementSettings,
	log zerolog.Logger,
) ports.SettlementService {
	return &settlementService{
		wallets:  wallets,
		logs:     logs,
		attempts: attempts,
		deduper:  deduper,
		events:   events,
		relay:    relay,
		settings: settings.withDefaults(),
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordSettlement stores a settlement log for a known account number and
// relays it to the owning site's admin endpoint. A relay failure is returned
// but the stored log is kept.
func (s *settlementService) RecordSettlement(ctx context.Context, env *domain.Envelope) (*ports.SettlementResult, error) {
	if env == nil {
		return nil, apperror.ErrMalformedRequest()
	}

	accountNumber := strings.TrimSpace(env.Data.String("accountNumber"))
	if accountNumber == "" {
		return nil, apperror.ErrMissingAccountNumber()
	}

	wallet, err := s.wallets.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if wallet == nil {
		return nil, apperror.ErrUnknownWallet(accountNumber)
	}

	entry, err := s.buildLog(env, wallet, accountNumber)
	if err != nil {
		return nil, err
	}

	claimKey := entry.DedupeKey()
	claimed := false
	if claimKey != "" && s.deduper != nil {
		ok, err := s.deduper.Claim(ctx, claimKey, s.settings.DedupeTTL)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("dedupe_key", claimKey).Msg("settlement dedupe unavailable, continuing")
		case !ok:
			return nil, apperror.ErrDuplicateSettlement(claimKey)
		default:
			claimed = true
		}
	}

	if err := s.logs.Create(ctx, entry); err != nil {
		if claimed {
			if relErr := s.deduper.Release(ctx, claimKey); relErr != nil {
				s.log.Warn().Err(relErr).Str("dedupe_key", claimKey).Msg("failed to release settlement claim")
			}
		}
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("wallet_log_id", entry.ID).
		Str("wallet_id", entry.WalletID).
		Str("site_name", entry.SiteName).
		Str("amount", entry.Amount.String()).
		Msg("settlement log recorded")

	if s.events != nil {
		if err := s.events.Publish(ctx, EventKeyWalletLogRecorded, entry); err != nil {
			s.log.Warn().Err(err).Str("wallet_log_id", entry.ID).Msg("event publish failed")
		}
	}

	adminResponse, err := s.relayLog(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &ports.SettlementResult{Log: entry, AdminResponse: adminResponse}, nil
}

// ListLogs returns a wallet's settlement logs, newest first.
func (s *settlementService) ListLogs(ctx context.Context, walletID string, limit int) ([]domain.WalletLog, error) {
	w, err := s.wallets.GetByWalletID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if w == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	switch {
	case limit <= 0:
		limit = 50
	case limit > 500:
		limit = 500
	}
	logs, err := s.logs.ListByWallet(ctx, walletID, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return logs, nil
}

// relayLog delivers the log once and records the attempt for the retry sweeper.
func (s *settlementService) relayLog(ctx context.Context, entry *domain.WalletLog) (map[string]any, error) {
	url, err := s.relay.URLFor(entry.SiteName)
	if err != nil {
		s.log.Error().Err(err).Str("wallet_log_id", entry.ID).Str("site_name", entry.SiteName).Msg("admin relay target rejected")
		return nil, err
	}
	body, err := json.Marshal(relayEnvelope{Event: s.settings.EventName, Data: entry})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal relay payload: %w", err))
	}

	now := s.now()
	attempt := &domain.RelayAttempt{
		ID:          uuid.New(),
		WalletLogID: entry.ID,
		SiteName:    entry.SiteName,
		TargetURL:   url,
		Payload:     string(body),
		Attempt:     1,
		Status:      domain.RelayStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	adminResponse, status, relayErr := s.relay.Post(ctx, url, body)
	applyRelayOutcome(attempt, status, relayErr, s.settings.RetryIntervals, s.now())

	if err := s.attempts.Create(ctx, attempt); err != nil {
		s.log.Error().Err(err).Str("wallet_log_id", entry.ID).Msg("failed to record relay attempt")
	}

	if relayErr != nil {
		evt := s.log.Warn().Err(relayErr).
			Str("wallet_log_id", entry.ID).
			Str("target_url", url).
			Int("status", status).
			Str("relay_status", string(attempt.Status))
		if attempt.NextRetryAt != nil {
			evt = evt.Time("next_retry_at", *attempt.NextRetryAt)
		}
		evt.Msg("admin relay failed")
		return nil, relayErr
	}

	s.log.Info().Str("wallet_log_id", entry.ID).Int("status", status).Msg("admin relay delivered")
	return adminResponse, nil
}

func (s *settlementService) buildLog(env *domain.Envelope, wallet *domain.Wallet, accountNumber string) (*domain.WalletLog, error) {
	d := env.Data

	amount, err := d.Decimal("amount")
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("invalid amount %q", d.String("amount")))
	}
	metadata, err := d.JSON("metadata")
	if err != nil {
		return nil, apperror.Validation("invalid metadata")
	}

	return &domain.WalletLog{
		ID:                       ulid.Make().String(),
		Event:                    env.Event,
		TransactionID:            d.String("transactionId"),
		TransactionReference:     d.String("transactionReference"),
		AccountExchangeReference: d.String("accountExchangeReference"),
		SessionID:                d.String("sessionId"),
		AccountNumber:            accountNumber,
		AccountType:              d.String("accountType"),
		Amount:                   amount,
		SourceAccountName:        d.String("sourceAccountName"),
		SourceAccountNumber:      d.String("sourceAccountNumber"),
		SourceBankName:           d.String("sourceBankName"),
		SourceBankCode:           d.String("sourceBankCode"),
		DestinationAccountNumber: d.String("destinationAccountNumber"),
		DestinationAccountName:   d.String("destinationAccountName"),
		DestinationBankName:      d.String("destinationBankName"),
		DestinationBankCode:      d.String("destinationBankCode"),
		TransactionType:          d.String("type"),
		Status:                   d.String("status"),
		Narration:                d.String("narration"),
		Metadata:                 metadata,
		WalletID:                 wallet.WalletID,
		SiteName:                 wallet.SiteName,
		CreatedAt:                s.now(),
	}, nil
}
