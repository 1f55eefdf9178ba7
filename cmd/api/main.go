package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"client-wallet-service/config"
	httpHandler "client-wallet-service/internal/adapter/http/handler"
	"client-wallet-service/internal/adapter/http/middleware"
	"client-wallet-service/internal/adapter/messaging/rabbitmq"
	redisStorage "client-wallet-service/internal/adapter/storage/redis"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/internal/service"
	"client-wallet-service/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CWS_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting Client Wallet Service")

	ctx := context.Background()

	// Storage
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise storage")
	}
	defer store.Close()

	healthCheckers := store.health

	// Redis (optional): settlement de-duplication and rate limiting
	var (
		deduper        ports.SettlementDeduper
		rateLimitStore *redisStorage.RateLimitStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		deduper = redisStorage.NewSettlementDeduper(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled: settlement replays are not suppressed and rate limiting is off")
	}

	// Events
	events := newEventPublisher(cfg.AMQP, log)
	defer events.Close()

	// Core services
	vault, err := service.NewIdentityVault(cfg.Identity.Key, cfg.Identity.FingerprintKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise identity vault")
	}
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	walletSvc := service.NewWalletService(
		store.wallets,
		store.transactor,
		store.transactions,
		service.NewWalletPipeline(vault),
		events,
		service.WalletSettings{
			IdentityPolicy:     service.IdentityPolicy(cfg.Wallet.IdentityPolicy),
			DefaultCurrency:    cfg.Wallet.DefaultCurrency,
			DefaultAccountType: cfg.Wallet.DefaultAccountType,
		},
		log.With().Str("component", "wallet_service").Logger(),
	)

	httpClient := &http.Client{Timeout: cfg.Relay.Timeout}
	relay := service.NewAdminRelay(httpClient, cfg.Relay.URLTemplate, cfg.Relay.Timeout)
	settlementSvc := service.NewSettlementService(
		store.wallets,
		store.logs,
		store.attempts,
		deduper,
		events,
		relay,
		service.SettlementSettings{
			EventName:      cfg.Relay.EventName,
			RetryIntervals: cfg.Relay.RetryIntervals,
			DedupeTTL:      cfg.Relay.DedupeTTL,
		},
		log.With().Str("component", "settlement_service").Logger(),
	)

	// Relay retry sweeper
	retrier := service.NewRelayRetrier(store.attempts, relay, cfg.Relay.RetryIntervals, cfg.Relay.RetryBatch,
		log.With().Str("component", "relay_retrier").Logger())
	scheduler, err := retrier.Schedule(cfg.Relay.RetrySchedule, cfg.Relay.Timeout*time.Duration(max(cfg.Relay.RetryBatch, 1)))
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Relay.RetrySchedule).Msg("Invalid relay retry schedule")
	}
	scheduler.Start()

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Normalizer:     service.NewPayloadNormalizer(),
		WalletSvc:      walletSvc,
		SettlementSvc:  settlementSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		RateLimitRules: middleware.RateLimitRules(cfg.RateLimit),
		HealthCheckers: healthCheckers,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Wait for an in-flight sweep to finish.
	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn().Msg("Relay sweep still running at shutdown")
	}

	log.Info().Msg("Server exited")
}

// eventPublisher is a ports.EventPublisher that owns broker resources.
type eventPublisher interface {
	ports.EventPublisher
	Close()
}

// newEventPublisher connects to the broker, falling back to a no-op publisher
// when no URL is configured or the broker is unreachable.
func newEventPublisher(cfg config.AMQPConfig, log zerolog.Logger) eventPublisher {
	if cfg.URL == "" {
		log.Info().Msg("AMQP not configured, domain events disabled")
		return rabbitmq.NewFallback(log)
	}
	producer, err := rabbitmq.NewEventProducer(cfg.URL, cfg.Exchange, log)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, domain events disabled")
		return rabbitmq.NewFallback(log)
	}
	log.Info().Str("exchange", cfg.Exchange).Msg("RabbitMQ connected")
	return producer
}
