package memory

import (
	"context"
	"sort"
	"sync"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/pkg/apperror"

	"github.com/shopspring/decimal"
)

// TransactionStore implements ports.WalletTransactionRepository.
type TransactionStore struct {
	mu  sync.RWMutex
	txs []domain.WalletTransaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

func (s *TransactionStore) Create(ctx context.Context, tx *domain.WalletTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.txs {
		if existing.Reference == tx.Reference {
			return apperror.ErrDuplicateReference(tx.Reference)
		}
	}
	s.txs = append(s.txs, *tx)
	return nil
}

// ListByWallet returns the newest entries first.
func (s *TransactionStore) ListByWallet(ctx context.Context, walletID string, limit int) ([]domain.WalletTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.WalletTransaction{}
	for i := len(s.txs) - 1; i >= 0; i-- {
		if s.txs[i].WalletID != walletID {
			continue
		}
		out = append(out, s.txs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *TransactionStore) Balance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for i := range s.txs {
		tx := &s.txs[i]
		if tx.WalletID == walletID && tx.Status == domain.TransactionStatusSubmitted {
			total = total.Add(tx.Signed())
		}
	}
	return total, nil
}

// LogStore implements ports.WalletLogRepository.
type LogStore struct {
	mu   sync.RWMutex
	logs map[string]domain.WalletLog
}

func NewLogStore() *LogStore {
	return &LogStore{logs: make(map[string]domain.WalletLog)}
}

func (s *LogStore) Create(ctx context.Context, log *domain.WalletLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[log.ID] = *log
	return nil
}

func (s *LogStore) GetByID(ctx context.Context, id string) (*domain.WalletLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.logs[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// ListByWallet returns the newest logs first. Log IDs are ULIDs, so they sort by time.
func (s *LogStore) ListByWallet(ctx context.Context, walletID string, limit int) ([]domain.WalletLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.WalletLog{}
	for _, l := range s.logs {
		if l.WalletID == walletID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
