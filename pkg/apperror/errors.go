package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// Error codes exposed to webhook callers and admin clients.
const (
	CodeMalformedRequest      = "WH_001"
	CodeMissingField          = "WH_002"
	CodeUnexpectedEvent       = "WH_003"
	CodeInvalidSiteName       = "WH_004"
	CodeInvalidIdentityFormat = "WAL_001"
	CodeDuplicateWalletName   = "WAL_002"
	CodePrimaryWalletConflict = "WAL_003"
	CodeMissingAccountNumber  = "WAL_004"
	CodeUnknownWallet         = "WAL_005"
	CodeInvalidTransaction    = "WAL_006"
	CodeDuplicateWalletID     = "WAL_007"
	CodeDuplicateReference    = "WAL_008"
	CodeAdminRelayRejected    = "RLY_001"
	CodeAdminRelayFailed      = "RLY_002"
	CodeDuplicateSettlement   = "RLY_003"
	CodeNotFound              = "GEN_001"
	CodeValidation            = "GEN_002"
)

// ---- Webhook ingestion (WH) ----

func ErrMalformedRequest() *AppError {
	return New(CodeMalformedRequest, "Could not parse request data", http.StatusBadRequest)
}

func ErrMalformedRequestWrap(err error) *AppError {
	return Wrap(CodeMalformedRequest, "Could not parse request data", http.StatusBadRequest, err)
}

func ErrMissingField(field string) *AppError {
	return New(CodeMissingField, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

func ErrUnexpectedEvent(got, want string) *AppError {
	return New(CodeUnexpectedEvent, fmt.Sprintf("Unexpected event %q, expected %q", got, want), http.StatusBadRequest)
}

func ErrInvalidSiteName(site string) *AppError {
	if len(site) > 64 {
		site = site[:64]
	}
	return New(CodeInvalidSiteName,
		fmt.Sprintf("Invalid site_name %q: expected a lowercase host name", site), http.StatusBadRequest)
}

// ---- Wallet invariants (WAL) ----

func ErrInvalidIdentityFormat() *AppError {
	return New(CodeInvalidIdentityFormat, "BVN must be exactly 11 digits", http.StatusUnprocessableEntity)
}

func ErrDuplicateWalletName(walletName, siteName string) *AppError {
	return New(CodeDuplicateWalletName,
		fmt.Sprintf("Wallet name '%s' already exists for site '%s'", walletName, siteName),
		http.StatusConflict)
}

func ErrPrimaryWalletConflict(siteName string) *AppError {
	return New(CodePrimaryWalletConflict,
		fmt.Sprintf("A primary wallet already exists for site %s. Please uncheck 'Is Primary Wallet' or update the existing primary wallet.", siteName),
		http.StatusConflict)
}

func ErrMissingAccountNumber() *AppError {
	return New(CodeMissingAccountNumber, "Account number is missing in transaction data.", http.StatusBadRequest)
}

func ErrUnknownWallet(accountNumber string) *AppError {
	return New(CodeUnknownWallet,
		fmt.Sprintf("Client Wallet with account number %s does not exist.", accountNumber),
		http.StatusNotFound)
}

func ErrInvalidTransaction(message string) *AppError {
	return New(CodeInvalidTransaction, message, http.StatusBadRequest)
}

func ErrDuplicateWalletID(walletID string) *AppError {
	return New(CodeDuplicateWalletID, fmt.Sprintf("Wallet ID '%s' already exists", walletID), http.StatusConflict)
}

func ErrDuplicateReference(reference string) *AppError {
	return New(CodeDuplicateReference, fmt.Sprintf("Transaction reference '%s' already exists", reference), http.StatusConflict)
}

// ---- Admin relay (RLY) ----

func ErrAdminRelayRejected() *AppError {
	return New(CodeAdminRelayRejected, "Unexpected response from Admin API.", http.StatusBadGateway)
}

func ErrAdminRelayFailed(message string, err error) *AppError {
	return Wrap(CodeAdminRelayFailed, message, http.StatusBadGateway, err)
}

func ErrDuplicateSettlement(key string) *AppError {
	return New(CodeDuplicateSettlement,
		fmt.Sprintf("Settlement event %s has already been recorded.", key),
		http.StatusConflict)
}

// ---- Generic ----

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrPayloadTooLarge(limit int64) *AppError {
	return New("GEN_003", fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a GEN_002 validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
