package postgres

import (
	"context"
	"fmt"
	"time"

	"client-wallet-service/internal/core/domain"
)

const relayAttemptColumns = `id, wallet_log_id, site_name, target_url, payload,
		http_status, attempt, status, next_retry_at, last_error, created_at, updated_at`

// RelayAttemptRepo implements ports.RelayAttemptRepository.
type RelayAttemptRepo struct {
	db Querier
}

// NewRelayAttemptRepo creates a PostgreSQL-backed RelayAttemptRepository.
func NewRelayAttemptRepo(db Querier) *RelayAttemptRepo {
	return &RelayAttemptRepo{db: db}
}

func (r *RelayAttemptRepo) Create(ctx context.Context, a *domain.RelayAttempt) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO relay_attempts (`+relayAttemptColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.WalletLogID, a.SiteName, a.TargetURL, a.Payload,
		a.HTTPStatus, a.Attempt, string(a.Status), a.NextRetryAt, a.LastError,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert relay attempt: %w", err)
	}
	return nil
}

func (r *RelayAttemptRepo) Update(ctx context.Context, a *domain.RelayAttempt) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE relay_attempts
		 SET http_status = $1, attempt = $2, status = $3, next_retry_at = $4, last_error = $5, updated_at = $6
		 WHERE id = $7`,
		a.HTTPStatus, a.Attempt, string(a.Status), a.NextRetryAt, a.LastError, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update relay attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("relay attempt not found: %s", a.ID)
	}
	return nil
}

// ListDue returns pending attempts whose retry time has passed, oldest first.
func (r *RelayAttemptRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.RelayAttempt, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+relayAttemptColumns+`
		 FROM relay_attempts
		 WHERE status = $1 AND next_retry_at <= $2
		 ORDER BY next_retry_at
		 LIMIT $3`,
		string(domain.RelayStatusPending), now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due relay attempts: %w", err)
	}
	defer rows.Close()

	attempts := []domain.RelayAttempt{}
	for rows.Next() {
		var a domain.RelayAttempt
		var status string
		if err := rows.Scan(
			&a.ID, &a.WalletLogID, &a.SiteName, &a.TargetURL, &a.Payload,
			&a.HTTPStatus, &a.Attempt, &status, &a.NextRetryAt, &a.LastError,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan relay attempt: %w", err)
		}
		a.Status = domain.RelayStatus(status)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
