package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
)

// GraduationEventStore implements storage.GraduationEventStore using ClickHouse.
// The event log is the indexer-facing mirror of completed graduations.
type GraduationEventStore struct {
	conn *Conn
}

// NewGraduationEventStore creates a new GraduationEventStore.
func NewGraduationEventStore(conn *Conn) *GraduationEventStore {
	return &GraduationEventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.GraduationEventStore = (*GraduationEventStore)(nil)

// InsertBulk adds multiple events.
func (s *GraduationEventStore) InsertBulk(ctx context.Context, events []*domain.GraduationEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO graduation_events (
			pool_id, mint, venue_id, venue_pool_id,
			total_liquidity, creator_share, community_share, timestamp_ms
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, e := range events {
		err = batch.Append(
			e.PoolID, string(e.Mint), string(e.VenueID), e.VenuePoolID,
			e.TotalLiquidity, e.CreatorShare, e.CommunityShare, e.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByPoolID retrieves all events for a pool, ordered by timestamp ASC.
func (s *GraduationEventStore) GetByPoolID(ctx context.Context, poolID string) ([]*domain.GraduationEvent, error) {
	query := `
		SELECT pool_id, mint, venue_id, venue_pool_id,
		       total_liquidity, creator_share, community_share, timestamp_ms
		FROM graduation_events
		WHERE pool_id = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, poolID)
	if err != nil {
		return nil, fmt.Errorf("query by pool id: %w", err)
	}
	defer rows.Close()

	return scanGraduationEvents(rows)
}

// GetByTimeRange retrieves events within [start, end] (inclusive).
func (s *GraduationEventStore) GetByTimeRange(ctx context.Context, start, end int64) ([]*domain.GraduationEvent, error) {
	query := `
		SELECT pool_id, mint, venue_id, venue_pool_id,
		       total_liquidity, creator_share, community_share, timestamp_ms
		FROM graduation_events
		WHERE timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanGraduationEvents(rows)
}

func scanGraduationEvents(rows driver.Rows) ([]*domain.GraduationEvent, error) {
	var result []*domain.GraduationEvent
	for rows.Next() {
		var e domain.GraduationEvent
		var mint, venueID string
		err := rows.Scan(
			&e.PoolID, &mint, &venueID, &e.VenuePoolID,
			&e.TotalLiquidity, &e.CreatorShare, &e.CommunityShare, &e.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan graduation event: %w", err)
		}
		e.Mint = domain.Address(mint)
		e.VenueID = domain.VenueID(venueID)
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate graduation events: %w", err)
	}
	return result, nil
}
