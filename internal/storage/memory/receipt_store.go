package memory

import (
	"context"
	"sync"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
)

// ReceiptStore is an in-memory implementation of storage.ReceiptStore.
type ReceiptStore struct {
	mu     sync.RWMutex
	data   map[string]*domain.GraduationReceipt // keyed by receipt_id
	byPool map[string]string                    // pool_id -> receipt_id
}

// NewReceiptStore creates a new in-memory receipt store.
func NewReceiptStore() *ReceiptStore {
	return &ReceiptStore{
		data:   make(map[string]*domain.GraduationReceipt),
		byPool: make(map[string]string),
	}
}

// Insert adds a new receipt. Returns ErrDuplicateKey if receipt_id or the
// pool already has a receipt.
func (s *ReceiptStore) Insert(_ context.Context, r *domain.GraduationReceipt) error {
	if r == nil || r.ReceiptID == "" || r.PoolID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.ReceiptID]; exists {
		return storage.ErrDuplicateKey
	}
	if _, exists := s.byPool[r.PoolID]; exists {
		return storage.ErrDuplicateKey
	}

	receiptCopy := *r
	s.data[r.ReceiptID] = &receiptCopy
	s.byPool[r.PoolID] = r.ReceiptID
	return nil
}

// GetByID retrieves a receipt by its ID. Returns ErrNotFound if not exists.
func (s *ReceiptStore) GetByID(_ context.Context, receiptID string) (*domain.GraduationReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[receiptID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	receiptCopy := *r
	return &receiptCopy, nil
}

// GetByPoolID retrieves the receipt for a pool. Returns ErrNotFound if not exists.
func (s *ReceiptStore) GetByPoolID(_ context.Context, poolID string) (*domain.GraduationReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	receiptID, exists := s.byPool[poolID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	receiptCopy := *s.data[receiptID]
	return &receiptCopy, nil
}

// DeleteByPoolID removes a receipt. Used only by the migration batch
// rollback path; receipts are otherwise append-only.
func (s *ReceiptStore) DeleteByPoolID(poolID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receiptID, exists := s.byPool[poolID]
	if !exists {
		return
	}
	delete(s.data, receiptID)
	delete(s.byPool, poolID)
}

// Verify interface compliance at compile time.
var _ storage.ReceiptStore = (*ReceiptStore)(nil)
