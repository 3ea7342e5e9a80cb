package storage

import (
	"context"

	"solana-launchpad/internal/domain"
)

// RegistryStore provides access to the graduation registry. Entries are
// created once at pool registration, finalized exactly once at graduation
// completion, and never deleted.
type RegistryStore interface {
	// Insert adds a new registry entry. Returns ErrDuplicateKey if pool_id exists.
	Insert(ctx context.Context, e *domain.RegistryEntry) error

	// GetByPoolID retrieves an entry by pool ID. Returns ErrNotFound if not exists.
	GetByPoolID(ctx context.Context, poolID string) (*domain.RegistryEntry, error)

	// Finalize records the receipt reference and graduation time on an entry.
	// Returns ErrNotFound for unknown pools, ErrAlreadyFinalized when the
	// entry already carries a receipt.
	Finalize(ctx context.Context, poolID, receiptID string, graduatedAt int64) error

	// GetGraduated retrieves all finalized entries, ordered by graduated_at ASC.
	GetGraduated(ctx context.Context) ([]*domain.RegistryEntry, error)

	// Counters returns the registry-wide aggregate counters.
	Counters(ctx context.Context) (domain.RegistryCounters, error)
}

// ReceiptStore provides access to graduation receipts. Append-only.
type ReceiptStore interface {
	// Insert adds a new receipt. Returns ErrDuplicateKey if receipt_id exists.
	Insert(ctx context.Context, r *domain.GraduationReceipt) error

	// GetByID retrieves a receipt by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, receiptID string) (*domain.GraduationReceipt, error)

	// GetByPoolID retrieves the receipt for a pool. Returns ErrNotFound if not exists.
	GetByPoolID(ctx context.Context, poolID string) (*domain.GraduationReceipt, error)
}

// GraduationEventStore provides access to the PoolGraduated event log
// consumed by external indexers.
type GraduationEventStore interface {
	// InsertBulk adds multiple events.
	InsertBulk(ctx context.Context, events []*domain.GraduationEvent) error

	// GetByPoolID retrieves all events for a pool, ordered by timestamp ASC.
	GetByPoolID(ctx context.Context, poolID string) ([]*domain.GraduationEvent, error)

	// GetByTimeRange retrieves events within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, start, end int64) ([]*domain.GraduationEvent, error)
}
