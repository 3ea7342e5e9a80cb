package postgres

import (
	"context"
	"fmt"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
)

// RegistryStore implements storage.RegistryStore using PostgreSQL.
type RegistryStore struct {
	pool *Pool
}

// NewRegistryStore creates a new RegistryStore.
func NewRegistryStore(pool *Pool) *RegistryStore {
	return &RegistryStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RegistryStore = (*RegistryStore)(nil)

// Insert adds a new registry entry. Returns ErrDuplicateKey if pool_id exists.
func (s *RegistryStore) Insert(ctx context.Context, e *domain.RegistryEntry) error {
	if e == nil || e.PoolID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO registry_entries (
			pool_id, mint, creator, receipt_id, registered_at, graduated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		e.PoolID,
		string(e.Mint),
		string(e.Creator),
		e.ReceiptID,
		e.RegisteredAt,
		e.GraduatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert registry entry: %w", err)
	}
	return nil
}

// GetByPoolID retrieves an entry by pool ID. Returns ErrNotFound if not exists.
func (s *RegistryStore) GetByPoolID(ctx context.Context, poolID string) (*domain.RegistryEntry, error) {
	query := `
		SELECT pool_id, mint, creator, COALESCE(receipt_id, ''), registered_at, graduated_at
		FROM registry_entries
		WHERE pool_id = $1
	`

	var e domain.RegistryEntry
	var mint, creator string
	row := s.pool.QueryRow(ctx, query, poolID)
	err := row.Scan(&e.PoolID, &mint, &creator, &e.ReceiptID, &e.RegisteredAt, &e.GraduatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get registry entry by pool id: %w", err)
	}
	e.Mint = domain.Address(mint)
	e.Creator = domain.Address(creator)
	return &e, nil
}

// Finalize records the receipt reference and graduation time on an entry.
// The WHERE clause guards both existence and single finalization.
func (s *RegistryStore) Finalize(ctx context.Context, poolID, receiptID string, graduatedAt int64) error {
	if poolID == "" || receiptID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		UPDATE registry_entries
		SET receipt_id = $2, graduated_at = $3
		WHERE pool_id = $1 AND receipt_id IS NULL
	`

	tag, err := s.pool.Exec(ctx, query, poolID, receiptID, graduatedAt)
	if err != nil {
		return fmt.Errorf("finalize registry entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish missing entry from double finalization.
		if _, err := s.GetByPoolID(ctx, poolID); err != nil {
			return err
		}
		return storage.ErrAlreadyFinalized
	}
	return nil
}

// GetGraduated retrieves all finalized entries, ordered by graduated_at ASC.
func (s *RegistryStore) GetGraduated(ctx context.Context) ([]*domain.RegistryEntry, error) {
	query := `
		SELECT pool_id, mint, creator, COALESCE(receipt_id, ''), registered_at, graduated_at
		FROM registry_entries
		WHERE receipt_id IS NOT NULL
		ORDER BY graduated_at ASC, pool_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get graduated entries: %w", err)
	}
	defer rows.Close()

	var result []*domain.RegistryEntry
	for rows.Next() {
		var e domain.RegistryEntry
		var mint, creator string
		if err := rows.Scan(&e.PoolID, &mint, &creator, &e.ReceiptID, &e.RegisteredAt, &e.GraduatedAt); err != nil {
			return nil, fmt.Errorf("scan registry entry: %w", err)
		}
		e.Mint = domain.Address(mint)
		e.Creator = domain.Address(creator)
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registry entries: %w", err)
	}
	return result, nil
}

// Counters returns the registry-wide aggregate counters.
func (s *RegistryStore) Counters(ctx context.Context) (domain.RegistryCounters, error) {
	query := `
		SELECT COUNT(*), COUNT(receipt_id)
		FROM registry_entries
	`

	var counters domain.RegistryCounters
	row := s.pool.QueryRow(ctx, query)
	if err := row.Scan(&counters.TotalPools, &counters.TotalGraduated); err != nil {
		return domain.RegistryCounters{}, fmt.Errorf("count registry entries: %w", err)
	}
	return counters, nil
}
