package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"
	"client-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	msgWalletCreated = "Wallet created successfully"
	msgBankDataSaved = "Bank data saved successfully"

	maxMultipartMemory = 1 << 20
)

// WebhookHandler serves the unauthenticated provider callbacks.
type WebhookHandler struct {
	normalizer  ports.PayloadNormalizer
	wallets     ports.WalletService
	settlements ports.SettlementService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(normalizer ports.PayloadNormalizer, wallets ports.WalletService, settlements ports.SettlementService) *WebhookHandler {
	return &WebhookHandler{normalizer: normalizer, wallets: wallets, settlements: settlements}
}

// WalletCreated handles POST /wallet-created.
func (h *WebhookHandler) WalletCreated(c *gin.Context) {
	env, err := h.envelope(c)
	if err != nil {
		response.WebhookError(c, err)
		return
	}

	res, err := h.wallets.ReconcileAnnouncement(c.Request.Context(), env)
	if err != nil {
		response.WebhookError(c, err)
		return
	}

	response.Webhook(c, http.StatusOK, response.WebhookResponse{
		Message:    msgWalletCreated,
		WalletData: res.Wallet,
		Warning:    res.Warning,
	})
}

// WalletLog handles POST /wallet-log.
func (h *WebhookHandler) WalletLog(c *gin.Context) {
	env, err := h.envelope(c)
	if err != nil {
		response.WebhookError(c, err)
		return
	}

	res, err := h.settlements.RecordSettlement(c.Request.Context(), env)
	if err != nil {
		response.WebhookError(c, err)
		return
	}

	response.Webhook(c, http.StatusOK, response.WebhookResponse{
		Info:           msgBankDataSaved,
		WalletResponse: res.Log,
		AdminResponse:  res.AdminResponse,
	})
}

// envelope reads the body once and hands it to the normalizer. Multipart
// bodies are parsed here; urlencoded bodies are parsed by the normalizer.
func (h *WebhookHandler) envelope(c *gin.Context) (*domain.Envelope, error) {
	if c.Request.Body == nil {
		return nil, apperror.ErrMalformedRequest()
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperror.ErrPayloadTooLarge(maxErr.Limit)
		}
		return nil, apperror.ErrMalformedRequestWrap(err)
	}

	var form url.Values
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err == nil {
			form = c.Request.PostForm
		}
	}

	return h.normalizer.Normalize(raw, form)
}
