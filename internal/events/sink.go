// Package events fans out PoolGraduated events to external indexers: a
// WebSocket hub for live subscribers and a store sink for the durable event
// log.
package events

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
)

// Sink receives graduation events as they are finalized.
type Sink interface {
	Publish(ctx context.Context, event *domain.GraduationEvent) error
}

// StoreSink adapts a GraduationEventStore to the Sink interface.
type StoreSink struct {
	store storage.GraduationEventStore
}

// NewStoreSink creates a sink backed by an event store.
func NewStoreSink(store storage.GraduationEventStore) *StoreSink {
	return &StoreSink{store: store}
}

// Publish appends the event to the store.
func (s *StoreSink) Publish(ctx context.Context, event *domain.GraduationEvent) error {
	return s.store.InsertBulk(ctx, []*domain.GraduationEvent{event})
}

// MultiSink publishes to every sink in order, stopping at the first error.
type MultiSink []Sink

// Publish fans the event out to all sinks.
func (m MultiSink) Publish(ctx context.Context, event *domain.GraduationEvent) error {
	for _, sink := range m {
		if err := sink.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// MeteredSink counts successful publishes on the wrapped sink.
type MeteredSink struct {
	Sink      Sink
	Published prometheus.Counter
}

// Publish delegates to the wrapped sink, incrementing the counter on
// success.
func (m MeteredSink) Publish(ctx context.Context, event *domain.GraduationEvent) error {
	if err := m.Sink.Publish(ctx, event); err != nil {
		return err
	}
	if m.Published != nil {
		m.Published.Inc()
	}
	return nil
}

// Verify interface compliance at compile time.
var (
	_ Sink = (*StoreSink)(nil)
	_ Sink = (MultiSink)(nil)
	_ Sink = MeteredSink{}
)
