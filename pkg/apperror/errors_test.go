package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("WAL_002", "duplicate", http.StatusConflict),
			expected: "[WAL_002] duplicate",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("WAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestWebhookErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"MalformedRequest", ErrMalformedRequest(), "WH_001", 400},
		{"MissingField", ErrMissingField("wallet_name"), "WH_002", 400},
		{"UnexpectedEvent", ErrUnexpectedEvent("x", "wallet_created"), "WH_003", 400},
		{"InvalidSiteName", ErrInvalidSiteName("Shop One"), "WH_004", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestWalletErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidIdentityFormat", ErrInvalidIdentityFormat(), "WAL_001", 422},
		{"DuplicateWalletName", ErrDuplicateWalletName("Main", "a.example.com"), "WAL_002", 409},
		{"PrimaryWalletConflict", ErrPrimaryWalletConflict("a.example.com"), "WAL_003", 409},
		{"MissingAccountNumber", ErrMissingAccountNumber(), "WAL_004", 400},
		{"UnknownWallet", ErrUnknownWallet("0123456789"), "WAL_005", 404},
		{"InvalidTransaction", ErrInvalidTransaction("amount must be positive"), "WAL_006", 400},
		{"DuplicateWalletID", ErrDuplicateWalletID("WLT-a-00001"), "WAL_007", 409},
		{"DuplicateReference", ErrDuplicateReference("WTX-1"), "WAL_008", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestWalletErrorMessages(t *testing.T) {
	assert.Equal(t, "Wallet name 'Main' already exists for site 'a.example.com'",
		ErrDuplicateWalletName("Main", "a.example.com").Message)
	assert.Equal(t, "Client Wallet with account number 0123456789 does not exist.",
		ErrUnknownWallet("0123456789").Message)
	assert.Contains(t, ErrPrimaryWalletConflict("a.example.com").Message, "A primary wallet already exists for site a.example.com")
}

func TestRelayErrors(t *testing.T) {
	inner := fmt.Errorf("dial tcp: refused")

	rejected := ErrAdminRelayRejected()
	assert.Equal(t, "RLY_001", rejected.Code)
	assert.Equal(t, 502, rejected.HTTPStatus)
	assert.Equal(t, "Unexpected response from Admin API.", rejected.Message)

	failed := ErrAdminRelayFailed("Failed to POST data to Admin API.", inner)
	assert.Equal(t, "RLY_002", failed.Code)
	assert.True(t, errors.Is(failed, inner))

	dup := ErrDuplicateSettlement("TX-1")
	assert.Equal(t, "RLY_003", dup.Code)
	assert.Equal(t, 409, dup.HTTPStatus)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	lockErr := ErrLockTimeout(inner)
	assert.Equal(t, "SYS_002", lockErr.Code)
	assert.Equal(t, 503, lockErr.HTTPStatus)

	encErr := ErrEncryptionFailure(inner)
	assert.Equal(t, "SYS_003", encErr.Code)
	assert.Equal(t, 500, encErr.HTTPStatus)
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Wallet")
	assert.Contains(t, err.Message, "Wallet")
	assert.Equal(t, "GEN_001", err.Code)
}

func TestInvalidSiteName_TruncatesEcho(t *testing.T) {
	err := ErrInvalidSiteName(strings.Repeat("a", 100) + "/evil")
	assert.NotContains(t, err.Message, "/evil")
	assert.Contains(t, err.Message, strings.Repeat("a", 64))
}

func TestPayloadTooLarge(t *testing.T) {
	err := ErrPayloadTooLarge(1024)
	assert.Equal(t, "GEN_003", err.Code)
	assert.Equal(t, 413, err.HTTPStatus)
	assert.Equal(t, "Request body exceeds 1024 bytes", err.Message)
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("reconcile: %w", ErrDuplicateWalletName("Main", "a.example.com"))

	assert.Equal(t, CodeDuplicateWalletName, CodeOf(wrapped))
	assert.True(t, HasCode(wrapped, CodeDuplicateWalletName))
	assert.False(t, HasCode(wrapped, CodeUnknownWallet))
	assert.Equal(t, "", CodeOf(fmt.Errorf("plain")))
	assert.False(t, HasCode(nil, CodeUnknownWallet))
}
