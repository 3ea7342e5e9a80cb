// Package curve implements the Pricing Ledger: per-pool bonding-curve
// balances, fee accrual, and the one-way graduated transition. Trade pricing
// itself is an external collaborator; the ledger only accounts for the
// amounts trades move.
package curve

import (
	"errors"
	"sync"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/idhash"
)

// Ledger errors.
var (
	// ErrPoolNotFound is returned when a pool ID is unknown to the ledger.
	ErrPoolNotFound = errors.New("pool not found")

	// ErrPoolExists is returned when creating a pool with an existing ID.
	ErrPoolExists = errors.New("pool already exists")

	// ErrAlreadyGraduated is returned by mark-graduated and trade recording
	// on a graduated pool. Graduation is one-way.
	ErrAlreadyGraduated = errors.New("pool already graduated")

	// ErrPoolPaused is returned by state-changing operations on a paused pool.
	ErrPoolPaused = errors.New("pool paused")

	// ErrNotGraduated is returned when draining reserves before graduation.
	ErrNotGraduated = errors.New("pool not graduated")

	// ErrReserveUnderflow is returned when a trade would overdraw a reserve.
	ErrReserveUnderflow = errors.New("reserve underflow")

	// ErrReserveOverflow is returned when a trade would overflow a reserve
	// or the accrued fees. Accounting overflow aborts, never wraps.
	ErrReserveOverflow = errors.New("reserve overflow")

	// ErrInvalidFeeBps is returned when a pool's trade fee exceeds the bps
	// denominator.
	ErrInvalidFeeBps = errors.New("trade fee bps out of range")
)

// bpsDenominator is the basis-point scale: 10000 bps = 100%.
const bpsDenominator = 10_000

// poolState is the mutable per-pool curve state.
type poolState struct {
	mint              domain.Address
	creator           domain.Address
	baseReserve       uint64
	tokenReserve      uint64
	circulatingSupply uint64
	feesAccrued       uint64 // trade fees withheld from the base reserve
	tradeFeeBps       uint16
	paused            bool
	graduated         bool
}

// Ledger is the Pricing Ledger. A single mutex serializes all pool mutation,
// giving the single-writer-per-pool discipline graduation relies on.
type Ledger struct {
	mu    sync.RWMutex
	pools map[string]*poolState
}

// NewLedger creates an empty Pricing Ledger.
func NewLedger() *Ledger {
	return &Ledger{pools: make(map[string]*poolState)}
}

// CreatePool registers a new curve pool and returns its deterministic ID.
func (l *Ledger) CreatePool(mint, creator domain.Address, tokenReserve uint64, tradeFeeBps uint16, createdAt int64) (string, error) {
	if err := mint.Validate(); err != nil {
		return "", err
	}
	if err := creator.Validate(); err != nil {
		return "", err
	}
	if tradeFeeBps > bpsDenominator {
		return "", ErrInvalidFeeBps
	}

	poolID := idhash.ComputePoolID(mint, creator, createdAt)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.pools[poolID]; exists {
		return "", ErrPoolExists
	}
	l.pools[poolID] = &poolState{
		mint:         mint,
		creator:      creator,
		tokenReserve: tokenReserve,
		tradeFeeBps:  tradeFeeBps,
	}
	return poolID, nil
}

// Balances returns the pool's base reserve, token reserve, and circulating
// supply.
func (l *Ledger) Balances(poolID string) (baseReserve, tokenReserve, circulatingSupply uint64, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.pools[poolID]
	if !ok {
		return 0, 0, 0, ErrPoolNotFound
	}
	return p.baseReserve, p.tokenReserve, p.circulatingSupply, nil
}

// IsPaused reports whether the pool is paused.
func (l *Ledger) IsPaused(poolID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.pools[poolID]
	if !ok {
		return false, ErrPoolNotFound
	}
	return p.paused, nil
}

// IsGraduated reports whether the pool has graduated.
func (l *Ledger) IsGraduated(poolID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.pools[poolID]
	if !ok {
		return false, ErrPoolNotFound
	}
	return p.graduated, nil
}

// MarkGraduated flips the pool's graduated flag. The transition is one-way
// and idempotency-guarded: a second call fails with ErrAlreadyGraduated, a
// paused pool fails with ErrPoolPaused.
func (l *Ledger) MarkGraduated(poolID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if p.graduated {
		return ErrAlreadyGraduated
	}
	if p.paused {
		return ErrPoolPaused
	}
	p.graduated = true
	return nil
}

// DrainReserves zeroes the pool's reserves and returns the drained amounts.
// Only valid on a graduated pool: the amounts move into the migration
// ticket's custody.
func (l *Ledger) DrainReserves(poolID string) (baseReserve, tokenReserve uint64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pools[poolID]
	if !ok {
		return 0, 0, ErrPoolNotFound
	}
	if !p.graduated {
		return 0, 0, ErrNotGraduated
	}
	baseReserve, tokenReserve = p.baseReserve, p.tokenReserve
	p.baseReserve = 0
	p.tokenReserve = 0
	return baseReserve, tokenReserve, nil
}

// Snapshot returns a copy of the pool's state.
func (l *Ledger) Snapshot(poolID string) (*domain.PoolSnapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.pools[poolID]
	if !ok {
		return nil, ErrPoolNotFound
	}
	return &domain.PoolSnapshot{
		PoolID:            poolID,
		Mint:              p.mint,
		Creator:           p.creator,
		BaseReserve:       p.baseReserve,
		TokenReserve:      p.tokenReserve,
		CirculatingSupply: p.circulatingSupply,
		TradeFeeBps:       p.tradeFeeBps,
		Paused:            p.paused,
		Graduated:         p.graduated,
	}, nil
}

// SetPaused pauses or unpauses a pool. Graduated pools cannot be re-paused.
func (l *Ledger) SetPaused(poolID string, paused bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if p.graduated {
		return ErrAlreadyGraduated
	}
	p.paused = paused
	return nil
}
