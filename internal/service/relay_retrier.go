package service

import (
	"context"
	"fmt"
	"time"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RelayRetrier re-sends admin relays that failed with a retryable error.
type RelayRetrier struct {
	attempts  ports.RelayAttemptRepository
	relay     *AdminRelay
	intervals []time.Duration
	batch     int
	log       zerolog.Logger
	now       func() time.Time
}

// NewRelayRetrier creates a retrier. Empty intervals fall back to DefaultRetryIntervals.
func NewRelayRetrier(attempts ports.RelayAttemptRepository, relay *AdminRelay, intervals []time.Duration, batch int, log zerolog.Logger) *RelayRetrier {
	if len(intervals) == 0 {
		intervals = DefaultRetryIntervals
	}
	if batch <= 0 {
		batch = 50
	}
	return &RelayRetrier{
		attempts:  attempts,
		relay:     relay,
		intervals: intervals,
		batch:     batch,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RelaySweepResult summarizes one RetryDue pass.
type RelaySweepResult struct {
	Due       int
	Delivered int
	Failed    int
}

// RetryDue re-posts every due attempt once.
func (r *RelayRetrier) RetryDue(ctx context.Context) (RelaySweepResult, error) {
	var res RelaySweepResult

	due, err := r.attempts.ListDue(ctx, r.now(), r.batch)
	if err != nil {
		return res, fmt.Errorf("list due relay attempts: %w", err)
	}
	res.Due = len(due)

	for i := range due {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		a := &due[i]
		a.Attempt++

		_, status, relayErr := r.relay.Post(ctx, a.TargetURL, []byte(a.Payload))
		applyRelayOutcome(a, status, relayErr, r.intervals, r.now())

		switch a.Status {
		case domain.RelayStatusDelivered:
			res.Delivered++
			r.log.Info().Str("wallet_log_id", a.WalletLogID).Int("attempt", a.Attempt).Msg("relay retry delivered")
		case domain.RelayStatusFailed:
			res.Failed++
			r.log.Error().Err(relayErr).Str("wallet_log_id", a.WalletLogID).Int("attempt", a.Attempt).Msg("relay retries exhausted")
		default:
			r.log.Warn().Err(relayErr).Str("wallet_log_id", a.WalletLogID).Int("attempt", a.Attempt).Time("next_retry_at", *a.NextRetryAt).Msg("relay retry failed")
		}

		if err := r.attempts.Update(ctx, a); err != nil {
			r.log.Error().Err(err).Str("relay_attempt_id", a.ID.String()).Msg("failed to update relay attempt")
		}
	}

	return res, nil
}

// Schedule registers RetryDue on a cron scheduler. Runs never overlap and
// panics are recovered. The caller starts and stops the returned scheduler.
func (r *RelayRetrier) Schedule(spec string, runTimeout time.Duration) (*cron.Cron, error) {
	cronLog := cronLogger{log: r.log}
	c := cron.New(cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		res, err := r.RetryDue(ctx)
		if err != nil {
			r.log.Error().Err(err).Msg("relay retry sweep failed")
			return
		}
		if res.Due > 0 {
			r.log.Info().Int("due", res.Due).Int("delivered", res.Delivered).Int("failed", res.Failed).Msg("relay retry sweep finished")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling relay retries %q: %w", spec, err)
	}
	return c, nil
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
