package postgres

import (
	"context"
	"fmt"
	"time"

	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"
)

// Transactor implements ports.SiteTransactor using pgxpool.Pool.
type Transactor struct {
	pool        Pool
	lockTimeout time.Duration
}

// NewTransactor creates a new Transactor wrapping the connection pool.
// A zero lockTimeout waits for the site lock indefinitely.
func NewTransactor(pool Pool, lockTimeout time.Duration) *Transactor {
	return &Transactor{pool: pool, lockTimeout: lockTimeout}
}

// WithinSite runs fn in a transaction holding the site's advisory lock.
// The lock is released on commit or rollback.
func (t *Transactor) WithinSite(ctx context.Context, siteName string, fn func(repo ports.WalletRepository) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("begin transaction: %w", err))
	}

	if t.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)",
			fmt.Sprintf("%dms", t.lockTimeout.Milliseconds())); err != nil {
			_ = tx.Rollback(ctx)
			return apperror.ErrDatabaseError(fmt.Errorf("set lock timeout: %w", err))
		}
	}

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", siteName); err != nil {
		_ = tx.Rollback(ctx)
		if isLockTimeout(err) {
			return apperror.ErrLockTimeout(err)
		}
		return apperror.ErrDatabaseError(fmt.Errorf("acquire site lock: %w", err))
	}

	if err := fn(NewWalletRepo(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
