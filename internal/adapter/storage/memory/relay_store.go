package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"client-wallet-service/internal/core/domain"

	"github.com/google/uuid"
)

// RelayStore implements ports.RelayAttemptRepository.
type RelayStore struct {
	mu       sync.RWMutex
	attempts map[uuid.UUID]domain.RelayAttempt
}

func NewRelayStore() *RelayStore {
	return &RelayStore{attempts: make(map[uuid.UUID]domain.RelayAttempt)}
}

func (s *RelayStore) Create(ctx context.Context, a *domain.RelayAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[a.ID] = *a
	return nil
}

func (s *RelayStore) Update(ctx context.Context, a *domain.RelayAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attempts[a.ID]; !ok {
		return fmt.Errorf("relay attempt %s not found", a.ID)
	}
	s.attempts[a.ID] = *a
	return nil
}

func (s *RelayStore) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.RelayAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.RelayAttempt{}
	for _, a := range s.attempts {
		if a.Status != domain.RelayStatusPending || a.NextRetryAt == nil || a.NextRetryAt.After(now) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextRetryAt.Before(*out[j].NextRetryAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Get returns the attempt with id, or nil.
func (s *RelayStore) Get(id uuid.UUID) *domain.RelayAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil
	}
	return &a
}

// ForLog returns the attempt recorded for a wallet log, or nil.
func (s *RelayStore) ForLog(walletLogID string) *domain.RelayAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.attempts {
		if a.WalletLogID == walletLogID {
			return &a
		}
	}
	return nil
}
