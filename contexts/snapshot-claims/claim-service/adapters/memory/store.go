package memory

import (
	"context"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"

	"claimerapi/contexts/snapshot-claims/claim-service/domain/entities"
	domainerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
	"claimerapi/contexts/snapshot-claims/claim-service/ports"
)

// Store is an in-memory ClaimRepository used by tests. It enforces the same
// source-address uniqueness the Postgres index does, so the insert race
// behaves like production.
type Store struct {
	mu     sync.RWMutex
	claims map[string]entities.Claim
	order  []string

	now time.Time
}

func NewStore(seed []entities.Claim) *Store {
	store := &Store{
		claims: make(map[string]entities.Claim, len(seed)),
		now:    time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}
	for _, claim := range seed {
		key := strings.TrimSpace(claim.SourceAddress)
		if _, exists := store.claims[key]; exists {
			continue
		}
		store.claims[key] = claim
		store.order = append(store.order, key)
	}
	return store
}

func (s *Store) FindBySourceAddress(_ context.Context, sourceAddress string) (entities.Claim, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, found := s.claims[strings.TrimSpace(sourceAddress)]
	return claim, found, nil
}

func (s *Store) Insert(_ context.Context, claim entities.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(claim.SourceAddress)
	if _, exists := s.claims[key]; exists {
		return domainerrors.ErrDuplicateAddress
	}
	s.claims[key] = claim
	s.order = append(s.order, key)
	return nil
}

func (s *Store) ListAll(_ context.Context, opts ports.ListOptions) ([]entities.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Claim, 0, len(s.order))
	for _, key := range s.order {
		items = append(items, s.claims[key])
	}
	sort.SliceStable(items, func(i, j int) bool {
		if opts.Order == ports.OrderOldestFirst {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(items) {
			return nil, nil
		}
		items = items[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items, nil
}

func (s *Store) SumBalances(_ context.Context) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := new(big.Int)
	for _, claim := range s.claims {
		if claim.ClaimedBalance != nil {
			sum.Add(sum, claim.ClaimedBalance)
		}
	}
	return sum, nil
}

func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.claims)), nil
}

// Now implements ports.Clock with a fixed, advanceable instant.
func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.now
}

func (s *Store) AdvanceTo(instant time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = instant
}
