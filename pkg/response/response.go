package response

import (
	"errors"
	"net/http"
	"time"

	"client-wallet-service/pkg/apperror"
	"client-wallet-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorResponse{
			ErrorCode: appErr.Code,
			Message:   appErr.Message,
			RequestID: getRequestID(c),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		ErrorCode: "SYS_000",
		Message:   "Internal server error",
		RequestID: getRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// WebhookResponse is the envelope returned to webhook callers.
type WebhookResponse struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message,omitempty"`
	Info           string      `json:"info,omitempty"`
	Error          string      `json:"error,omitempty"`
	Warning        string      `json:"warning,omitempty"`
	WalletData     interface{} `json:"wallet_data,omitempty"`
	WalletResponse interface{} `json:"wallet_response,omitempty"`
	AdminResponse  interface{} `json:"admin_response,omitempty"`
}

// maxWebhookErrorLen bounds error text echoed back to webhook callers.
const maxWebhookErrorLen = 255

// Webhook sends a successful webhook envelope with the given status.
func Webhook(c *gin.Context, status int, body WebhookResponse) {
	body.Success = true
	c.JSON(status, body)
}

// WebhookError sends {success:false, error} using the AppError's status,
// or 500 for unknown errors.
func WebhookError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus
		message = appErr.Message
	}

	c.JSON(status, WebhookResponse{
		Success: false,
		Error:   logger.Truncate(message, maxWebhookErrorLen),
	})
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
