// Package staking defines the consumed staking-subsystem interface. The
// graduation core reads staking parameters through the ticket's read-only
// accessors and funds the pool with the extracted staking tokens; reward
// mechanics live in the external subsystem.
package staking

import (
	"context"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/params"
)

// TicketView is the read-only slice of a migration ticket the staking
// subsystem consumes.
type TicketView interface {
	PoolID() string
	Mint() domain.Address
	StakingConfig() params.StakingParams
	StakingAdminRecipient() domain.Address
}

// Pool is a staking pool created at graduation.
type Pool struct {
	StakingPoolID string
	SourcePoolID  string
	Mint          domain.Address
	FundingTokens uint64
	RewardRateBps uint16
	DurationMs    int64
	MinStakeMs    int64
	UnstakeFeeBps uint16
	AdminHolder   domain.Address
	CreatedAt     int64
}

// Creator is the consumed pool-creation entry point.
type Creator interface {
	// CreatePool creates a staking pool funded with the extracted staking
	// tokens and returns it with its admin capability. The capability's
	// operational control belongs to the ticket's resolved recipient.
	CreatePool(ctx context.Context, view TicketView, fundingTokens uint64, nowMs int64) (*Pool, *auth.AdminCap, error)
}
