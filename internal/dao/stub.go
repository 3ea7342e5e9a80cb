package dao

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/idhash"
	"solana-launchpad/internal/venue"
)

// ErrTreasuryNotFound is returned when a treasury ID is unknown.
var ErrTreasuryNotFound = errors.New("treasury not found")

type treasuryState struct {
	treasury  *Treasury
	fungibles map[domain.Address]uint64
	positions []*venue.Position
}

// StubCreator is an in-memory DAO subsystem for tests and the demo pipeline.
type StubCreator struct {
	mu         sync.Mutex
	daos       map[string]*Governance
	treasuries map[string]*treasuryState
}

// NewStubCreator creates an empty stub DAO subsystem.
func NewStubCreator() *StubCreator {
	return &StubCreator{
		daos:       make(map[string]*Governance),
		treasuries: make(map[string]*treasuryState),
	}
}

// CreateDAO creates the governance object from the ticket view's parameters.
func (s *StubCreator) CreateDAO(_ context.Context, view TicketView, stakingPoolID, name string, nowMs int64) (*Governance, *auth.AdminCap, error) {
	cfg := view.DAOConfig()

	admin, err := auth.NewAdminCap()
	if err != nil {
		return nil, nil, fmt.Errorf("issue dao admin cap: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gov := &Governance{
		DAOID:          idhash.DeriveVenuePoolAddress([]byte("dao"), []byte(view.PoolID())),
		SourcePoolID:   view.PoolID(),
		Name:           name,
		StakingPoolID:  stakingPoolID,
		CouncilSize:    cfg.CouncilSize,
		QuorumBps:      cfg.QuorumBps,
		VotingPeriodMs: cfg.VotingPeriodMs,
		AdminHolder:    view.DAOAdminRecipient(),
		CreatedAt:      nowMs,
	}
	s.daos[gov.DAOID] = gov
	return gov, admin, nil
}

// CreateTreasury creates the DAO's treasury.
func (s *StubCreator) CreateTreasury(_ context.Context, daoID string) (*Treasury, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Treasury{
		TreasuryID: idhash.DeriveVenuePoolAddress([]byte("treasury"), []byte(daoID)),
		DAOID:      daoID,
	}
	s.treasuries[t.TreasuryID] = &treasuryState{
		treasury:  t,
		fungibles: make(map[domain.Address]uint64),
	}
	return t, nil
}

// DepositFungible deposits a fungible amount into a treasury.
func (s *StubCreator) DepositFungible(_ context.Context, treasuryID string, mint domain.Address, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.treasuries[treasuryID]
	if !ok {
		return ErrTreasuryNotFound
	}
	t.fungibles[mint] += amount
	return nil
}

// DepositPosition deposits a unique venue position into a treasury.
func (s *StubCreator) DepositPosition(_ context.Context, treasuryID string, position *venue.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.treasuries[treasuryID]
	if !ok {
		return ErrTreasuryNotFound
	}
	t.positions = append(t.positions, position)
	return nil
}

// TreasuryHoldings returns a treasury's fungible balance and position count
// for test assertions.
func (s *StubCreator) TreasuryHoldings(treasuryID string, mint domain.Address) (fungible uint64, positions int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.treasuries[treasuryID]
	if !ok {
		return 0, 0, ErrTreasuryNotFound
	}
	return t.fungibles[mint], len(t.positions), nil
}

// Verify interface compliance at compile time.
var _ Creator = (*StubCreator)(nil)
