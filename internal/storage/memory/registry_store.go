package memory

import (
	"context"
	"sort"
	"sync"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
)

// RegistryStore is an in-memory implementation of storage.RegistryStore.
type RegistryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.RegistryEntry // keyed by pool_id
}

// NewRegistryStore creates a new in-memory registry store.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{
		data: make(map[string]*domain.RegistryEntry),
	}
}

// Insert adds a new registry entry. Returns ErrDuplicateKey if pool_id exists.
func (s *RegistryStore) Insert(_ context.Context, e *domain.RegistryEntry) error {
	if e == nil || e.PoolID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[e.PoolID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	entryCopy := *e
	s.data[e.PoolID] = &entryCopy
	return nil
}

// GetByPoolID retrieves an entry by pool ID. Returns ErrNotFound if not exists.
func (s *RegistryStore) GetByPoolID(_ context.Context, poolID string) (*domain.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.data[poolID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	entryCopy := *e
	return &entryCopy, nil
}

// Finalize records the receipt reference and graduation time on an entry.
func (s *RegistryStore) Finalize(_ context.Context, poolID, receiptID string, graduatedAt int64) error {
	if poolID == "" || receiptID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.data[poolID]
	if !exists {
		return storage.ErrNotFound
	}
	if e.ReceiptID != "" {
		return storage.ErrAlreadyFinalized
	}

	e.ReceiptID = receiptID
	e.GraduatedAt = graduatedAt
	return nil
}

// GetGraduated retrieves all finalized entries, ordered by graduated_at ASC.
func (s *RegistryStore) GetGraduated(_ context.Context) ([]*domain.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.RegistryEntry
	for _, e := range s.data {
		if e.Graduated() {
			entryCopy := *e
			result = append(result, &entryCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].GraduatedAt < result[j].GraduatedAt
	})

	return result, nil
}

// Counters returns the registry-wide aggregate counters.
func (s *RegistryStore) Counters(_ context.Context) (domain.RegistryCounters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counters := domain.RegistryCounters{TotalPools: uint64(len(s.data))}
	for _, e := range s.data {
		if e.Graduated() {
			counters.TotalGraduated++
		}
	}
	return counters, nil
}

// Verify interface compliance at compile time.
var _ storage.RegistryStore = (*RegistryStore)(nil)
