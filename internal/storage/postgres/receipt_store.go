package postgres

import (
	"context"
	"fmt"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
)

// ReceiptStore implements storage.ReceiptStore using PostgreSQL.
type ReceiptStore struct {
	pool *Pool
}

// NewReceiptStore creates a new ReceiptStore.
func NewReceiptStore(pool *Pool) *ReceiptStore {
	return &ReceiptStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ReceiptStore = (*ReceiptStore)(nil)

// Insert adds a new receipt. Returns ErrDuplicateKey if receipt_id or pool_id exists.
func (s *ReceiptStore) Insert(ctx context.Context, r *domain.GraduationReceipt) error {
	if r == nil || r.ReceiptID == "" || r.PoolID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO graduation_receipts (
			receipt_id, pool_id, venue_id, venue_pool_id,
			total_liquidity, creator_share, community_share, graduated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		r.ReceiptID,
		r.PoolID,
		string(r.VenueID),
		r.VenuePoolID,
		r.TotalLiquidity,
		r.CreatorShare,
		r.CommunityShare,
		r.GraduatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID retrieves a receipt by its ID. Returns ErrNotFound if not exists.
func (s *ReceiptStore) GetByID(ctx context.Context, receiptID string) (*domain.GraduationReceipt, error) {
	query := receiptSelect + ` WHERE receipt_id = $1`
	return s.getOne(ctx, query, receiptID)
}

// GetByPoolID retrieves the receipt for a pool. Returns ErrNotFound if not exists.
func (s *ReceiptStore) GetByPoolID(ctx context.Context, poolID string) (*domain.GraduationReceipt, error) {
	query := receiptSelect + ` WHERE pool_id = $1`
	return s.getOne(ctx, query, poolID)
}

const receiptSelect = `
	SELECT receipt_id, pool_id, venue_id, venue_pool_id,
	       total_liquidity, creator_share, community_share, graduated_at
	FROM graduation_receipts
`

func (s *ReceiptStore) getOne(ctx context.Context, query string, arg any) (*domain.GraduationReceipt, error) {
	var r domain.GraduationReceipt
	var venueID string
	row := s.pool.QueryRow(ctx, query, arg)
	err := row.Scan(
		&r.ReceiptID,
		&r.PoolID,
		&venueID,
		&r.VenuePoolID,
		&r.TotalLiquidity,
		&r.CreatorShare,
		&r.CommunityShare,
		&r.GraduatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	r.VenueID = domain.VenueID(venueID)
	return &r, nil
}
