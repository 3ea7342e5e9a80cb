// Package dao defines the consumed DAO-subsystem interface. Governance
// mechanics are external; the graduation core only creates the DAO, its
// treasury, and deposits graduated assets.
package dao

import (
	"context"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/params"
	"solana-launchpad/internal/venue"
)

// TicketView is the read-only slice of a migration ticket the DAO subsystem
// consumes.
type TicketView interface {
	PoolID() string
	Mint() domain.Address
	DAOConfig() params.DAOParams
	DAOAdminRecipient() domain.Address
}

// Governance is a DAO created at graduation.
type Governance struct {
	DAOID          string
	SourcePoolID   string
	Name           string
	StakingPoolID  string
	CouncilSize    uint8
	QuorumBps      uint16
	VotingPeriodMs int64
	AdminHolder    domain.Address
	CreatedAt      int64
}

// Treasury holds a DAO's assets.
type Treasury struct {
	TreasuryID string
	DAOID      string
}

// Creator is the consumed DAO-creation entry point.
type Creator interface {
	// CreateDAO creates the governance object and its admin capability.
	CreateDAO(ctx context.Context, view TicketView, stakingPoolID, name string, nowMs int64) (*Governance, *auth.AdminCap, error)

	// CreateTreasury creates the DAO's treasury.
	CreateTreasury(ctx context.Context, daoID string) (*Treasury, error)

	// DepositFungible deposits a fungible amount into a treasury.
	DepositFungible(ctx context.Context, treasuryID string, mint domain.Address, amount uint64) error

	// DepositPosition deposits a unique venue position into a treasury.
	DepositPosition(ctx context.Context, treasuryID string, position *venue.Position) error
}
