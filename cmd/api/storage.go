package main

import (
	"context"
	"fmt"

	"client-wallet-service/config"
	"client-wallet-service/internal/adapter/storage/memory"
	pgStorage "client-wallet-service/internal/adapter/storage/postgres"
	"client-wallet-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// storage groups the repositories of the selected driver.
type storage struct {
	wallets      ports.WalletRepository
	transactor   ports.SiteTransactor
	transactions ports.WalletTransactionRepository
	logs         ports.WalletLogRepository
	attempts     ports.RelayAttemptRepository
	health       []ports.HealthChecker
	close        func()
}

func (s *storage) Close() {
	if s.close != nil {
		s.close()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		wallets := memory.NewWalletStore()
		return &storage{
			wallets:      wallets,
			transactor:   wallets,
			transactions: memory.NewTransactionStore(),
			logs:         memory.NewLogStore(),
			attempts:     memory.NewRelayStore(),
		}, nil

	case "postgres":
		if cfg.Database.AutoMigrate {
			if err := pgStorage.Migrate(cfg.Database.MigrateDSN(), log); err != nil {
				return nil, err
			}
		}

		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("PostgreSQL connected")

		return &storage{
			wallets:      pgStorage.NewWalletRepo(pool),
			transactor:   pgStorage.NewTransactor(pool, cfg.Database.LockTimeout),
			transactions: pgStorage.NewWalletTransactionRepo(pool),
			logs:         pgStorage.NewWalletLogRepo(pool),
			attempts:     pgStorage.NewRelayAttemptRepo(pool),
			health:       []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
			close:        pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
