package memory

import (
	"context"
	"errors"
	"testing"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
)

func testEntry(poolID string) *domain.RegistryEntry {
	return &domain.RegistryEntry{
		PoolID:       poolID,
		Mint:         "mint",
		Creator:      "creator",
		RegisteredAt: 1_000,
	}
}

func TestRegistryStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewRegistryStore()

	if err := s.Insert(ctx, testEntry("p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := s.Insert(ctx, testEntry("p1")); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("duplicate err = %v, want ErrDuplicateKey", err)
	}

	got, err := s.GetByPoolID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByPoolID failed: %v", err)
	}
	if got.PoolID != "p1" || got.Graduated() {
		t.Errorf("entry = %+v", got)
	}

	if _, err := s.GetByPoolID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", err)
	}
}

func TestRegistryStore_Finalize(t *testing.T) {
	ctx := context.Background()
	s := NewRegistryStore()
	if err := s.Insert(ctx, testEntry("p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := s.Finalize(ctx, "p1", "r1", 2_000); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if err := s.Finalize(ctx, "p1", "r2", 3_000); !errors.Is(err, storage.ErrAlreadyFinalized) {
		t.Fatalf("re-finalize err = %v, want ErrAlreadyFinalized", err)
	}
	if err := s.Finalize(ctx, "missing", "r1", 2_000); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", err)
	}

	got, _ := s.GetByPoolID(ctx, "p1")
	if got.ReceiptID != "r1" || got.GraduatedAt != 2_000 {
		t.Errorf("finalized entry = %+v", got)
	}
}

func TestRegistryStore_GetGraduatedOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewRegistryStore()

	for _, poolID := range []string{"p1", "p2", "p3"} {
		if err := s.Insert(ctx, testEntry(poolID)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	// Finalize out of order.
	if err := s.Finalize(ctx, "p2", "r2", 3_000); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if err := s.Finalize(ctx, "p1", "r1", 5_000); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	got, err := s.GetGraduated(ctx)
	if err != nil {
		t.Fatalf("GetGraduated failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].PoolID != "p2" || got[1].PoolID != "p1" {
		t.Errorf("order = [%s, %s], want [p2, p1]", got[0].PoolID, got[1].PoolID)
	}

	counters, _ := s.Counters(ctx)
	if counters.TotalPools != 3 || counters.TotalGraduated != 2 {
		t.Errorf("counters = %+v, want 3 pools / 2 graduated", counters)
	}
}

func TestRegistryStore_DefensiveCopies(t *testing.T) {
	ctx := context.Background()
	s := NewRegistryStore()
	e := testEntry("p1")
	if err := s.Insert(ctx, e); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	e.ReceiptID = "mutated"
	got, _ := s.GetByPoolID(ctx, "p1")
	if got.ReceiptID != "" {
		t.Error("store shared memory with the caller's entry")
	}

	got.ReceiptID = "mutated-again"
	fresh, _ := s.GetByPoolID(ctx, "p1")
	if fresh.ReceiptID != "" {
		t.Error("store returned a shared pointer")
	}
}

func testReceipt(receiptID, poolID string) *domain.GraduationReceipt {
	return &domain.GraduationReceipt{
		ReceiptID:      receiptID,
		PoolID:         poolID,
		VenueID:        domain.VenueAMM,
		VenuePoolID:    "vp",
		TotalLiquidity: 100,
		CreatorShare:   5,
		CommunityShare: 90,
		GraduatedAt:    2_000,
	}
}

func TestReceiptStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewReceiptStore()

	if err := s.Insert(ctx, testReceipt("r1", "p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := s.Insert(ctx, testReceipt("r1", "p2")); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("duplicate id err = %v, want ErrDuplicateKey", err)
	}
	if err := s.Insert(ctx, testReceipt("r2", "p1")); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("second receipt for pool err = %v, want ErrDuplicateKey", err)
	}

	byID, err := s.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	byPool, err := s.GetByPoolID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByPoolID failed: %v", err)
	}
	if byID.ReceiptID != byPool.ReceiptID {
		t.Errorf("lookups disagree: %s vs %s", byID.ReceiptID, byPool.ReceiptID)
	}
}

func TestReceiptStore_DeleteByPoolID(t *testing.T) {
	ctx := context.Background()
	s := NewReceiptStore()
	if err := s.Insert(ctx, testReceipt("r1", "p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	s.DeleteByPoolID("p1")

	if _, err := s.GetByPoolID(ctx, "p1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetByID(ctx, "r1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// The pool can take a fresh receipt afterwards.
	if err := s.Insert(ctx, testReceipt("r2", "p1")); err != nil {
		t.Errorf("re-insert after delete failed: %v", err)
	}

	// Deleting a missing pool is a no-op.
	s.DeleteByPoolID("missing")
}

func TestGraduationEventStore_Queries(t *testing.T) {
	ctx := context.Background()
	s := NewGraduationEventStore()

	events := []*domain.GraduationEvent{
		{PoolID: "p1", VenueID: domain.VenueAMM, Timestamp: 3_000},
		{PoolID: "p2", VenueID: domain.VenueCLMM, Timestamp: 1_000},
		{PoolID: "p1", VenueID: domain.VenueAMM, Timestamp: 2_000},
	}
	if err := s.InsertBulk(ctx, events); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	if err := s.InsertBulk(ctx, nil); err != nil {
		t.Fatalf("empty InsertBulk failed: %v", err)
	}

	byPool, err := s.GetByPoolID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByPoolID failed: %v", err)
	}
	if len(byPool) != 2 || byPool[0].Timestamp != 2_000 || byPool[1].Timestamp != 3_000 {
		t.Errorf("byPool = %+v, want two events ascending", byPool)
	}

	inRange, err := s.GetByTimeRange(ctx, 1_000, 2_000)
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(inRange) != 2 {
		t.Fatalf("range returned %d events, want 2 (bounds inclusive)", len(inRange))
	}
	if inRange[0].Timestamp != 1_000 || inRange[1].Timestamp != 2_000 {
		t.Errorf("range order = %+v", inRange)
	}
}
