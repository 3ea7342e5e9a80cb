package graduation

import (
	"context"
	"fmt"
	"log"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/events"
	"solana-launchpad/internal/idhash"
	"solana-launchpad/internal/storage"
)

// receiptRollback is implemented by receipt stores that can compensate a
// partially-applied completion (receipt inserted, entry finalization
// failed). The in-memory store implements it; durable stores rely on the
// host transaction instead.
type receiptRollback interface {
	DeleteByPoolID(poolID string)
}

// Finalizer validates that a ticket is fully extracted, records the
// graduation in the registry, emits the PoolGraduated event, and consumes
// the ticket. There is no partial completion: either the registry reflects
// the graduation and the receipt is returned, or nothing changed.
type Finalizer struct {
	registry storage.RegistryStore
	receipts storage.ReceiptStore
	sink     events.Sink
}

// NewFinalizer creates a Finalizer. The sink may be nil when no indexer
// feed is wired.
func NewFinalizer(registry storage.RegistryStore, receipts storage.ReceiptStore, sink events.Sink) *Finalizer {
	return &Finalizer{
		registry: registry,
		receipts: receipts,
		sink:     sink,
	}
}

// Complete finalizes a migration. Preconditions: every extraction flag on
// the ticket is true; the first missing one (in the fixed base → tokens →
// staking order) names the failure. The ticket is consumed on success and
// no caller can use it afterwards.
func (f *Finalizer) Complete(
	ctx context.Context,
	ticket *MigrationTicket,
	venuePoolID string,
	totalLiquidity, creatorShare, communityShare uint64,
	nowMs int64,
) (*domain.GraduationReceipt, error) {
	if ticket.consumed {
		return nil, ErrTicketConsumed
	}
	if err := ticket.pendingExtraction(); err != nil {
		return nil, err
	}

	receipt := &domain.GraduationReceipt{
		ReceiptID:      idhash.ComputeReceiptID(ticket.poolID, ticket.venueID, venuePoolID, nowMs),
		PoolID:         ticket.poolID,
		VenueID:        ticket.venueID,
		VenuePoolID:    venuePoolID,
		TotalLiquidity: totalLiquidity,
		CreatorShare:   creatorShare,
		CommunityShare: communityShare,
		GraduatedAt:    nowMs,
	}

	if err := f.receipts.Insert(ctx, receipt); err != nil {
		return nil, fmt.Errorf("insert receipt: %w", err)
	}
	if err := f.registry.Finalize(ctx, ticket.poolID, receipt.ReceiptID, nowMs); err != nil {
		// Compensate the receipt insert so the registry and receipt store
		// never disagree.
		if rb, ok := f.receipts.(receiptRollback); ok {
			rb.DeleteByPoolID(ticket.poolID)
		}
		return nil, fmt.Errorf("finalize registry entry: %w", err)
	}

	ticket.consumed = true

	if f.sink != nil {
		event := &domain.GraduationEvent{
			PoolID:         ticket.poolID,
			Mint:           ticket.mint,
			VenueID:        ticket.venueID,
			VenuePoolID:    venuePoolID,
			TotalLiquidity: totalLiquidity,
			CreatorShare:   creatorShare,
			CommunityShare: communityShare,
			Timestamp:      nowMs,
		}
		if err := f.sink.Publish(ctx, event); err != nil {
			// Event delivery is best-effort: the registry is authoritative
			// and the event log can be rebuilt from it.
			log.Printf("publish graduation event for pool %s: %v", ticket.poolID, err)
		}
	}

	return receipt, nil
}
