package handler

import (
	"client-wallet-service/internal/adapter/http/dto"
	"client-wallet-service/internal/adapter/http/middleware"
	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"
	"client-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler handles the admin wallet endpoints.
type WalletHandler struct {
	wallets     ports.WalletService
	settlements ports.SettlementService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets ports.WalletService, settlements ports.SettlementService) *WalletHandler {
	return &WalletHandler{wallets: wallets, settlements: settlements}
}

// ListWallets handles GET /api/v1/sites/:site_name/wallets.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	var uri dto.SiteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	var q dto.ListWalletsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var status *domain.WalletStatus
	if q.Status != "" {
		s := domain.WalletStatus(q.Status)
		status = &s
	}

	wallets, err := h.wallets.ListWallets(c.Request.Context(), uri.SiteName, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	if wallets == nil {
		wallets = []domain.Wallet{}
	}

	response.OK(c, dto.WalletListResponse{
		SiteName: uri.SiteName,
		Items:    wallets,
		Total:    len(wallets),
	})
}

// CreateBulk handles POST /api/v1/sites/:site_name/wallets/bulk.
func (h *WalletHandler) CreateBulk(c *gin.Context) {
	var uri dto.SiteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	var req dto.BulkWalletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	items := make([]ports.WalletInput, len(req.Wallets))
	for i, w := range req.Wallets {
		items[i] = w.ToInput()
	}

	results, err := h.wallets.CreateBulk(c.Request.Context(), uri.SiteName, items, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.BulkWalletsResponse{Results: results}
	for _, r := range results {
		if r.Success {
			resp.Created++
		} else {
			resp.Failed++
		}
	}
	if resp.Failed == 0 {
		response.Created(c, resp)
		return
	}
	response.OK(c, resp)
}

// GetPrimary handles GET /api/v1/sites/:site_name/wallets/primary.
func (h *WalletHandler) GetPrimary(c *gin.Context) {
	var uri dto.SiteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	w, err := h.wallets.GetPrimary(c.Request.Context(), uri.SiteName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, w)
}

// SetPrimary handles PUT /api/v1/sites/:site_name/wallets/primary.
func (h *WalletHandler) SetPrimary(c *gin.Context) {
	var uri dto.SiteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	var req dto.SetPrimaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	w, err := h.wallets.SetPrimary(c.Request.Context(), uri.SiteName, req.WalletID, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, w)
}

// RecordTransaction handles POST /api/v1/wallets/:wallet_id/transactions.
func (h *WalletHandler) RecordTransaction(c *gin.Context) {
	var uri dto.WalletURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidTransaction("amount must be a decimal number"))
		return
	}

	tx, err := h.wallets.RecordTransaction(c.Request.Context(), ports.TransactionRequest{
		WalletID:    uri.WalletID,
		Type:        domain.TransactionType(req.TransactionType),
		Amount:      amount,
		Description: req.Description,
		Reference:   req.Reference,
		Actor:       middleware.Actor(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tx)
}

// GetBalance handles GET /api/v1/wallets/:wallet_id/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	var uri dto.WalletURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	bal, err := h.wallets.GetBalance(c.Request.Context(), uri.WalletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bal)
}

// ListLogs handles GET /api/v1/wallets/:wallet_id/logs.
func (h *WalletHandler) ListLogs(c *gin.Context) {
	var uri dto.WalletURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	var q dto.ListLogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	logs, err := h.settlements.ListLogs(c.Request.Context(), uri.WalletID, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if logs == nil {
		logs = []domain.WalletLog{}
	}

	response.OK(c, dto.WalletLogListResponse{
		WalletID: uri.WalletID,
		Items:    logs,
		Total:    len(logs),
	})
}
