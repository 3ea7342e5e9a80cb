// Package venue implements the per-family graduation adapters. Each adapter
// wraps the generic ticket extraction with venue-specific validation and
// bookkeeping; the ticket's accounting rules are never altered here.
package venue

import (
	"context"
	"errors"

	"solana-launchpad/internal/domain"
)

// Adapter errors.
var (
	// ErrWrongVenueType is returned when a ticket's venue identifier does
	// not match the adapter's venue family.
	ErrWrongVenueType = errors.New("wrong venue type")

	// ErrVenueNotConfigured is returned when the Parameter Set has no
	// address configured for the adapter's venue.
	ErrVenueNotConfigured = errors.New("venue not configured")

	// ErrBelowMinimumLiquidity is returned when either extracted amount is
	// below the venue-specific floor. Dust pools would fail venue math
	// downstream; the adapter rejects them up front.
	ErrBelowMinimumLiquidity = errors.New("below minimum liquidity")
)

// Position is the unique, non-divisible output of a concentrated-liquidity
// venue. A position cannot be subdivided after creation; proportional splits
// are achieved by opening multiple positions.
type Position struct {
	PositionID  string
	VenuePoolID string
	Owner       domain.Address
	BaseAmount  uint64
	TokenAmount uint64
	Liquidity   uint64
}

// AMM is the consumed entry point of a fungible-LP constant-product venue.
type AMM interface {
	// CreatePool creates a venue pool funded with both assets and returns
	// the pool identifier and the minted fungible LP amount.
	CreatePool(ctx context.Context, mint domain.Address, baseIn, tokensIn uint64, feeTierBps uint16) (venuePoolID string, lpAmount uint64, err error)

	// AddLiquidity adds to an existing pool, minting additional LP.
	AddLiquidity(ctx context.Context, venuePoolID string, baseIn, tokensIn uint64) (lpAmount uint64, err error)
}

// CLMM is the consumed entry point of a concentrated-liquidity venue.
type CLMM interface {
	// CreatePool creates an empty venue pool for the mint.
	CreatePool(ctx context.Context, mint domain.Address, feeTierBps uint16) (venuePoolID string, err error)

	// OpenPosition opens one position funded with both assets.
	OpenPosition(ctx context.Context, venuePoolID string, owner domain.Address, baseIn, tokensIn uint64) (*Position, error)
}
