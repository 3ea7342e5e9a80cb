package memory

import (
	"context"
	"sort"
	"sync"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
)

// GraduationEventStore is an in-memory implementation of
// storage.GraduationEventStore.
type GraduationEventStore struct {
	mu   sync.RWMutex
	data []*domain.GraduationEvent
}

// NewGraduationEventStore creates a new in-memory graduation event store.
func NewGraduationEventStore() *GraduationEventStore {
	return &GraduationEventStore{}
}

// InsertBulk adds multiple events.
func (s *GraduationEventStore) InsertBulk(_ context.Context, events []*domain.GraduationEvent) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if e == nil || e.PoolID == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		eventCopy := *e
		s.data = append(s.data, &eventCopy)
	}
	return nil
}

// GetByPoolID retrieves all events for a pool, ordered by timestamp ASC.
func (s *GraduationEventStore) GetByPoolID(_ context.Context, poolID string) ([]*domain.GraduationEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.GraduationEvent
	for _, e := range s.data {
		if e.PoolID == poolID {
			eventCopy := *e
			result = append(result, &eventCopy)
		}
	}
	sortEventsByTimestamp(result)
	return result, nil
}

// GetByTimeRange retrieves events within [start, end] (inclusive).
func (s *GraduationEventStore) GetByTimeRange(_ context.Context, start, end int64) ([]*domain.GraduationEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.GraduationEvent
	for _, e := range s.data {
		if e.Timestamp >= start && e.Timestamp <= end {
			eventCopy := *e
			result = append(result, &eventCopy)
		}
	}
	sortEventsByTimestamp(result)
	return result, nil
}

func sortEventsByTimestamp(events []*domain.GraduationEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
}

// Compile-time interface check.
var _ storage.GraduationEventStore = (*GraduationEventStore)(nil)
