// Package memory provides in-process implementations of the storage ports.
// It backs the memory storage driver and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"

	"github.com/google/uuid"
)

// WalletStore implements ports.WalletRepository and ports.SiteTransactor.
// It enforces the same uniqueness rules as the PostgreSQL indexes.
type WalletStore struct {
	mu        sync.RWMutex
	wallets   map[uuid.UUID]*domain.Wallet
	highWater map[string]int

	locksMu   sync.Mutex
	siteLocks map[string]*sync.Mutex
}

// NewWalletStore creates an empty store.
func NewWalletStore() *WalletStore {
	return &WalletStore{
		wallets:   make(map[uuid.UUID]*domain.Wallet),
		highWater: make(map[string]int),
		siteLocks: make(map[string]*sync.Mutex),
	}
}

// WithinSite serializes fn against other units of work for the same site.
// When fn fails, the site's wallets and sequence mark are restored.
func (s *WalletStore) WithinSite(ctx context.Context, siteName string, fn func(repo ports.WalletRepository) error) error {
	lock := s.siteLock(siteName)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.snapshot(siteName)
	if err := fn(s); err != nil {
		s.restore(siteName, snap)
		return err
	}
	return nil
}

func (s *WalletStore) siteLock(siteName string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.siteLocks[siteName]
	if !ok {
		l = &sync.Mutex{}
		s.siteLocks[siteName] = l
	}
	return l
}

type siteSnapshot struct {
	wallets   []*domain.Wallet
	highWater int
}

func (s *WalletStore) snapshot(siteName string) siteSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := siteSnapshot{highWater: s.highWater[siteName]}
	for _, w := range s.wallets {
		if w.SiteName == siteName {
			snap.wallets = append(snap.wallets, w.Clone())
		}
	}
	return snap
}

func (s *WalletStore) restore(siteName string, snap siteSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.wallets {
		if w.SiteName == siteName {
			delete(s.wallets, id)
		}
	}
	for _, w := range snap.wallets {
		s.wallets[w.ID] = w
	}
	s.highWater[siteName] = snap.highWater
}

func (s *WalletStore) Insert(ctx context.Context, w *domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[w.ID]; ok {
		return fmt.Errorf("wallet %s already exists", w.ID)
	}
	if err := s.checkUnique(w); err != nil {
		return err
	}
	s.wallets[w.ID] = w.Clone()
	if w.WalletSequence > s.highWater[w.SiteName] {
		s.highWater[w.SiteName] = w.WalletSequence
	}
	return nil
}

func (s *WalletStore) Update(ctx context.Context, w *domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.wallets[w.ID]
	if !ok {
		return apperror.ErrNotFound("Wallet")
	}
	if err := s.checkUnique(w); err != nil {
		return err
	}
	updated := w.Clone()
	updated.WalletSequence = existing.WalletSequence
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedByUser = existing.CreatedByUser
	s.wallets[w.ID] = updated
	return nil
}

// checkUnique mirrors the unique indexes of the wallets table. Caller holds mu.
func (s *WalletStore) checkUnique(w *domain.Wallet) error {
	for id, other := range s.wallets {
		if id == w.ID {
			continue
		}
		if other.WalletID == w.WalletID {
			return apperror.ErrDuplicateWalletID(w.WalletID)
		}
		if other.SiteName != w.SiteName {
			continue
		}
		switch {
		case other.WalletName == w.WalletName:
			return apperror.ErrDuplicateWalletName(w.WalletName, w.SiteName)
		case other.WalletSequence == w.WalletSequence && w.WalletSequence != 0:
			return fmt.Errorf("wallet sequence %d already used for site %s", w.WalletSequence, w.SiteName)
		case other.IsPrimaryWallet && w.IsPrimaryWallet:
			return apperror.ErrPrimaryWalletConflict(w.SiteName)
		}
	}
	return nil
}

func (s *WalletStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wallets, id)
	return nil
}

func (s *WalletStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	if !ok {
		return nil, nil
	}
	return w.Clone(), nil
}

func (s *WalletStore) GetByWalletID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return s.findOne(func(w *domain.Wallet) bool { return w.WalletID == walletID }), nil
}

func (s *WalletStore) FindBySiteAndName(ctx context.Context, siteName, walletName string) (*domain.Wallet, error) {
	return s.findOne(func(w *domain.Wallet) bool {
		return w.SiteName == siteName && w.WalletName == walletName
	}), nil
}

// FindByAccountNumber returns the earliest-created wallet with the account number.
func (s *WalletStore) FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Wallet, error) {
	return s.findOne(func(w *domain.Wallet) bool { return w.AccountNumber == accountNumber }), nil
}

func (s *WalletStore) FindPrimary(ctx context.Context, siteName string) (*domain.Wallet, error) {
	return s.findOne(func(w *domain.Wallet) bool {
		return w.SiteName == siteName && w.IsPrimaryWallet
	}), nil
}

func (s *WalletStore) findOne(match func(w *domain.Wallet) bool) *domain.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.Wallet
	for _, w := range s.wallets {
		if !match(w) {
			continue
		}
		if found == nil || w.CreatedAt.Before(found.CreatedAt) ||
			(w.CreatedAt.Equal(found.CreatedAt) && w.ID.String() < found.ID.String()) {
			found = w
		}
	}
	if found == nil {
		return nil
	}
	return found.Clone()
}

func (s *WalletStore) ListBySite(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Wallet{}
	for _, w := range s.wallets {
		if w.SiteName != params.SiteName {
			continue
		}
		if params.Status != nil && w.WalletStatus != *params.Status {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WalletSequence < out[j].WalletSequence })
	return out, nil
}

func (s *WalletStore) Exists(ctx context.Context, f ports.WalletFilter) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, w := range s.wallets {
		if f.ExcludeID != nil && id == *f.ExcludeID {
			continue
		}
		if f.SiteName != "" && w.SiteName != f.SiteName {
			continue
		}
		if f.WalletName != "" && w.WalletName != f.WalletName {
			continue
		}
		if f.AccountNumber != "" && w.AccountNumber != f.AccountNumber {
			continue
		}
		if f.IsPrimary != nil && w.IsPrimaryWallet != *f.IsPrimary {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (s *WalletStore) CountBySite(ctx context.Context, siteName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, w := range s.wallets {
		if w.SiteName == siteName {
			n++
		}
	}
	return n, nil
}

func (s *WalletStore) SequenceMax(ctx context.Context, siteName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	max := s.highWater[siteName]
	for _, w := range s.wallets {
		if w.SiteName == siteName && w.WalletSequence > max {
			max = w.WalletSequence
		}
	}
	return max, nil
}

func (s *WalletStore) ClearPrimary(ctx context.Context, siteName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wallets {
		if w.SiteName == siteName && w.IsPrimaryWallet {
			w.IsPrimaryWallet = false
		}
	}
	return nil
}
