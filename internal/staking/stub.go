package staking

import (
	"context"
	"fmt"
	"sync"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/idhash"
)

// StubCreator is an in-memory staking subsystem for tests and the demo
// pipeline.
type StubCreator struct {
	mu    sync.Mutex
	pools map[string]*Pool
}

// NewStubCreator creates an empty stub staking subsystem.
func NewStubCreator() *StubCreator {
	return &StubCreator{pools: make(map[string]*Pool)}
}

// CreatePool creates a staking pool from the ticket view's parameters.
func (s *StubCreator) CreatePool(_ context.Context, view TicketView, fundingTokens uint64, nowMs int64) (*Pool, *auth.AdminCap, error) {
	cfg := view.StakingConfig()

	admin, err := auth.NewAdminCap()
	if err != nil {
		return nil, nil, fmt.Errorf("issue staking admin cap: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := &Pool{
		StakingPoolID: idhash.DeriveVenuePoolAddress([]byte("staking"), []byte(view.PoolID())),
		SourcePoolID:  view.PoolID(),
		Mint:          view.Mint(),
		FundingTokens: fundingTokens,
		RewardRateBps: cfg.RewardRateBps,
		DurationMs:    cfg.DurationMs,
		MinStakeMs:    cfg.MinStakeMs,
		UnstakeFeeBps: cfg.UnstakeFeeBps,
		AdminHolder:   view.StakingAdminRecipient(),
		CreatedAt:     nowMs,
	}
	s.pools[pool.StakingPoolID] = pool
	return pool, admin, nil
}

// GetPool returns a created pool for test assertions.
func (s *StubCreator) GetPool(stakingPoolID string) (*Pool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pools[stakingPoolID]
	return p, ok
}

// Verify interface compliance at compile time.
var _ Creator = (*StubCreator)(nil)
