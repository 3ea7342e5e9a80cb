// Package stub provides in-memory venue implementations for tests and the
// demo pipeline.
package stub

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/idhash"
	"solana-launchpad/internal/venue"
)

// ErrPoolNotFound is returned when a venue pool ID is unknown.
var ErrPoolNotFound = errors.New("venue pool not found")

// ErrZeroLiquidity is returned when pool creation or a position would hold
// nothing on one side.
var ErrZeroLiquidity = errors.New("zero liquidity")

type ammPool struct {
	mint         domain.Address
	baseReserve  uint64
	tokenReserve uint64
	lpSupply     uint64
	feeTierBps   uint16
}

// AMMVenue is an in-memory fungible-LP venue implementing venue.AMM.
type AMMVenue struct {
	mu    sync.Mutex
	pools map[string]*ammPool
}

// NewAMMVenue creates an empty stub AMM venue.
func NewAMMVenue() *AMMVenue {
	return &AMMVenue{pools: make(map[string]*ammPool)}
}

// CreatePool creates a pool and mints LP equal to the geometric mean of the
// deposits, the usual constant-product bootstrap.
func (v *AMMVenue) CreatePool(_ context.Context, mint domain.Address, baseIn, tokensIn uint64, feeTierBps uint16) (string, uint64, error) {
	if baseIn == 0 || tokensIn == 0 {
		return "", 0, ErrZeroLiquidity
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	venuePoolID := idhash.DeriveVenuePoolAddress(
		[]byte("amm"), []byte(mint), []byte{byte(len(v.pools))},
	)
	lp := isqrt(baseIn, tokensIn)
	v.pools[venuePoolID] = &ammPool{
		mint:         mint,
		baseReserve:  baseIn,
		tokenReserve: tokensIn,
		lpSupply:     lp,
		feeTierBps:   feeTierBps,
	}
	return venuePoolID, lp, nil
}

// AddLiquidity mints LP proportional to the base deposit.
func (v *AMMVenue) AddLiquidity(_ context.Context, venuePoolID string, baseIn, tokensIn uint64) (uint64, error) {
	if baseIn == 0 || tokensIn == 0 {
		return 0, ErrZeroLiquidity
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	p, ok := v.pools[venuePoolID]
	if !ok {
		return 0, ErrPoolNotFound
	}
	lp := p.lpSupply * baseIn / p.baseReserve
	p.baseReserve += baseIn
	p.tokenReserve += tokensIn
	p.lpSupply += lp
	return lp, nil
}

// PoolReserves returns the pool's reserves for test assertions.
func (v *AMMVenue) PoolReserves(venuePoolID string) (base, tokens, lpSupply uint64, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	p, ok := v.pools[venuePoolID]
	if !ok {
		return 0, 0, 0, ErrPoolNotFound
	}
	return p.baseReserve, p.tokenReserve, p.lpSupply, nil
}

type clmmPool struct {
	mint       domain.Address
	feeTierBps uint16
	positions  []*venue.Position
}

// CLMMVenue is an in-memory concentrated-liquidity venue implementing
// venue.CLMM.
type CLMMVenue struct {
	mu    sync.Mutex
	pools map[string]*clmmPool
	seq   int
}

// NewCLMMVenue creates an empty stub CLMM venue.
func NewCLMMVenue() *CLMMVenue {
	return &CLMMVenue{pools: make(map[string]*clmmPool)}
}

// CreatePool creates an empty pool for the mint.
func (v *CLMMVenue) CreatePool(_ context.Context, mint domain.Address, feeTierBps uint16) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	venuePoolID := idhash.DeriveVenuePoolAddress(
		[]byte("clmm"), []byte(mint), []byte{byte(len(v.pools))},
	)
	v.pools[venuePoolID] = &clmmPool{mint: mint, feeTierBps: feeTierBps}
	return venuePoolID, nil
}

// OpenPosition opens one full-range position; its liquidity is the
// geometric mean of the deposits.
func (v *CLMMVenue) OpenPosition(_ context.Context, venuePoolID string, owner domain.Address, baseIn, tokensIn uint64) (*venue.Position, error) {
	if baseIn == 0 || tokensIn == 0 {
		return nil, ErrZeroLiquidity
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	p, ok := v.pools[venuePoolID]
	if !ok {
		return nil, ErrPoolNotFound
	}
	v.seq++
	pos := &venue.Position{
		PositionID:  fmt.Sprintf("%s-pos-%d", venuePoolID[:8], v.seq),
		VenuePoolID: venuePoolID,
		Owner:       owner,
		BaseAmount:  baseIn,
		TokenAmount: tokensIn,
		Liquidity:   isqrt(baseIn, tokensIn),
	}
	p.positions = append(p.positions, pos)
	return pos, nil
}

// Positions returns the pool's positions for test assertions.
func (v *CLMMVenue) Positions(venuePoolID string) ([]*venue.Position, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	p, ok := v.pools[venuePoolID]
	if !ok {
		return nil, ErrPoolNotFound
	}
	result := make([]*venue.Position, len(p.positions))
	copy(result, p.positions)
	return result, nil
}

// isqrt returns floor(sqrt(a*b)) without overflowing the product.
func isqrt(a, b uint64) uint64 {
	return uint64(math.Sqrt(float64(a)) * math.Sqrt(float64(b)))
}

// Verify interface compliance at compile time.
var (
	_ venue.AMM  = (*AMMVenue)(nil)
	_ venue.CLMM = (*CLMMVenue)(nil)
)
