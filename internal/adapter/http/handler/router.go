package handler

import (
	"client-wallet-service/internal/adapter/http/middleware"
	redisStore "client-wallet-service/internal/adapter/storage/redis"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Normalizer     ports.PayloadNormalizer
	WalletSvc      ports.WalletService
	SettlementSvc  ports.SettlementService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimitRules map[string]middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	MaxBodyBytes   int64
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode == "" {
		deps.Mode = gin.ReleaseMode
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = 1 << 20
	}
	gin.SetMode(deps.Mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check (deep, pings every configured dependency)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rl := func(group string, write middleware.ErrorWriter) gin.HandlerFunc {
		return middleware.RateLimiter(deps.RateLimitStore, group, deps.RateLimitRules[group], write, deps.Logger)
	}

	// --- Guest webhook routes ---
	webhookHandler := NewWebhookHandler(deps.Normalizer, deps.WalletSvc, deps.SettlementSvc)
	webhooks := r.Group("",
		middleware.MaxBodySize(deps.MaxBodyBytes, response.WebhookError),
		rl("webhook", response.WebhookError),
	)
	{
		webhooks.POST("/wallet-created", webhookHandler.WalletCreated)
		webhooks.POST("/wallet-log", webhookHandler.WalletLog)
	}

	// --- JWT-authenticated admin routes ---
	v1 := r.Group("/api/v1",
		middleware.MaxBodySize(deps.MaxBodyBytes, response.Error),
		middleware.JWTAuth(deps.TokenSvc, deps.Logger),
		rl("admin", response.Error),
	)
	walletHandler := NewWalletHandler(deps.WalletSvc, deps.SettlementSvc)

	sites := v1.Group("/sites/:site_name/wallets")
	{
		sites.GET("", walletHandler.ListWallets)
		sites.POST("/bulk", walletHandler.CreateBulk)
		sites.GET("/primary", walletHandler.GetPrimary)
		sites.PUT("/primary", walletHandler.SetPrimary)
	}

	wallets := v1.Group("/wallets/:wallet_id")
	{
		wallets.POST("/transactions", walletHandler.RecordTransaction)
		wallets.GET("/balance", walletHandler.GetBalance)
		wallets.GET("/logs", walletHandler.ListLogs)
	}

	return r
}
