package domain

import (
	"time"

	"github.com/google/uuid"
)

// RelayStatus represents the delivery state of an admin relay.
type RelayStatus string

const (
	RelayStatusPending   RelayStatus = "PENDING"
	RelayStatusDelivered RelayStatus = "DELIVERED"
	RelayStatusFailed    RelayStatus = "FAILED"
)

// RelayAttempt tracks delivery of one wallet log to the site's admin endpoint.
type RelayAttempt struct {
	ID          uuid.UUID   `json:"id"`
	WalletLogID string      `json:"wallet_log_id"`
	SiteName    string      `json:"site_name"`
	TargetURL   string      `json:"target_url"`
	Payload     string      `json:"payload"` // JSON string
	HTTPStatus  *int        `json:"http_status"`
	Attempt     int         `json:"attempt"`
	Status      RelayStatus `json:"status"`
	NextRetryAt *time.Time  `json:"next_retry_at"`
	LastError   *string     `json:"last_error"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
