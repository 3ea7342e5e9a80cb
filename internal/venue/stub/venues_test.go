package stub

import (
	"context"
	"errors"
	"testing"
)

func TestAMMVenue_CreateAndAddLiquidity(t *testing.T) {
	v := NewAMMVenue()
	ctx := context.Background()

	poolID, lp, err := v.CreatePool(ctx, "MintA", 40_000, 90_000, 30)
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}
	if lp != 60_000 {
		t.Errorf("initial lp = %d, want 60000 (geometric mean)", lp)
	}

	// Doubling both reserves mints the same amount of LP again.
	minted, err := v.AddLiquidity(ctx, poolID, 40_000, 90_000)
	if err != nil {
		t.Fatalf("AddLiquidity failed: %v", err)
	}
	if minted != lp {
		t.Errorf("minted lp = %d, want %d", minted, lp)
	}

	base, tokens, supply, err := v.PoolReserves(poolID)
	if err != nil {
		t.Fatalf("PoolReserves failed: %v", err)
	}
	if base != 80_000 || tokens != 180_000 {
		t.Errorf("reserves = (%d, %d), want (80000, 180000)", base, tokens)
	}
	if supply != 120_000 {
		t.Errorf("lp supply = %d, want 120000", supply)
	}
}

func TestAMMVenue_AddLiquidityErrors(t *testing.T) {
	v := NewAMMVenue()
	ctx := context.Background()

	if _, err := v.AddLiquidity(ctx, "missing", 1, 1); !errors.Is(err, ErrPoolNotFound) {
		t.Errorf("expected ErrPoolNotFound, got %v", err)
	}

	poolID, _, err := v.CreatePool(ctx, "MintA", 1_000, 1_000, 30)
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}
	if _, err := v.AddLiquidity(ctx, poolID, 0, 1_000); !errors.Is(err, ErrZeroLiquidity) {
		t.Errorf("expected ErrZeroLiquidity, got %v", err)
	}
	if _, _, err := v.CreatePool(ctx, "MintB", 1_000, 0, 30); !errors.Is(err, ErrZeroLiquidity) {
		t.Errorf("expected ErrZeroLiquidity, got %v", err)
	}
}

func TestCLMMVenue_Positions(t *testing.T) {
	v := NewCLMMVenue()
	ctx := context.Background()

	poolID, err := v.CreatePool(ctx, "MintA", 30)
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}

	if _, err := v.OpenPosition(ctx, "missing", "Owner1", 1_000, 1_000); !errors.Is(err, ErrPoolNotFound) {
		t.Errorf("expected ErrPoolNotFound, got %v", err)
	}

	first, err := v.OpenPosition(ctx, poolID, "Owner1", 2_500, 2_500)
	if err != nil {
		t.Fatalf("OpenPosition failed: %v", err)
	}
	if first.Liquidity != 2_500 {
		t.Errorf("liquidity = %d, want 2500", first.Liquidity)
	}
	second, err := v.OpenPosition(ctx, poolID, "Owner2", 1_000, 1_000)
	if err != nil {
		t.Fatalf("OpenPosition failed: %v", err)
	}
	if first.PositionID == second.PositionID {
		t.Error("position IDs must be unique")
	}

	positions, err := v.Positions(poolID)
	if err != nil {
		t.Fatalf("Positions failed: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
	if positions[0].Owner != "Owner1" || positions[1].Owner != "Owner2" {
		t.Errorf("owners = %s, %s", positions[0].Owner, positions[1].Owner)
	}
}
