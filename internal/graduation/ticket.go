package graduation

import (
	"fmt"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/params"
)

// MigrationTicket carries the locked balances of one graduation between
// lock time and completion. It is single-use: each of the three balances is
// extractable exactly once, and the ticket is consumed permanently by a
// successful completion. The zero value is unusable; tickets are created
// only by Coordinator.BeginMigration.
type MigrationTicket struct {
	poolID  string
	mint    domain.Address
	creator domain.Address
	venueID domain.VenueID

	// Locked amounts, fixed at creation. Only the extracted flags change.
	liquidityBase   uint64
	liquidityTokens uint64
	stakingTokens   uint64
	feeCollected    uint64

	baseExtracted    bool
	tokensExtracted  bool
	stakingExtracted bool

	// Sub-flow decisions pre-computed from the Parameter Set at lock time.
	createStakingPool bool
	createDAO         bool
	stakingAdmin      domain.Address
	daoAdmin          domain.Address
	stakingConfig     params.StakingParams
	daoConfig         params.DAOParams

	consumed bool
}

// ExtractLiquidityBase returns the full locked base-asset amount for venue
// liquidity. Fails with ErrAlreadyExtracted on a second call.
func (t *MigrationTicket) ExtractLiquidityBase() (uint64, error) {
	if t.consumed {
		return 0, ErrTicketConsumed
	}
	if t.baseExtracted {
		return 0, fmt.Errorf("%w: liquidity base", ErrAlreadyExtracted)
	}
	t.baseExtracted = true
	return t.liquidityBase, nil
}

// ExtractLiquidityTokens returns the full locked token amount for venue
// liquidity. Fails with ErrAlreadyExtracted on a second call.
func (t *MigrationTicket) ExtractLiquidityTokens() (uint64, error) {
	if t.consumed {
		return 0, ErrTicketConsumed
	}
	if t.tokensExtracted {
		return 0, fmt.Errorf("%w: liquidity tokens", ErrAlreadyExtracted)
	}
	t.tokensExtracted = true
	return t.liquidityTokens, nil
}

// ExtractStakingTokens returns the locked staking allocation. When staking
// is disabled the amount is zero, but the call is still required before
// completion: the extracted flag is a gate independent of amount.
func (t *MigrationTicket) ExtractStakingTokens() (uint64, error) {
	if t.consumed {
		return 0, ErrTicketConsumed
	}
	if t.stakingExtracted {
		return 0, fmt.Errorf("%w: staking tokens", ErrAlreadyExtracted)
	}
	t.stakingExtracted = true
	return t.stakingTokens, nil
}

// Read accessors. None of these mutate state; downstream venue logic uses
// them for routing decisions before extraction.

// PoolID identifies the source pool.
func (t *MigrationTicket) PoolID() string { return t.poolID }

// Mint is the launched token's mint address.
func (t *MigrationTicket) Mint() domain.Address { return t.mint }

// Creator is the pool creator.
func (t *MigrationTicket) Creator() domain.Address { return t.creator }

// VenueID is the destination venue family chosen at lock time.
func (t *MigrationTicket) VenueID() domain.VenueID { return t.venueID }

// LiquidityBaseAmount returns the locked base-asset amount.
func (t *MigrationTicket) LiquidityBaseAmount() uint64 { return t.liquidityBase }

// LiquidityTokenAmount returns the locked liquidity-token amount.
func (t *MigrationTicket) LiquidityTokenAmount() uint64 { return t.liquidityTokens }

// StakingTokenAmount returns the locked staking allocation.
func (t *MigrationTicket) StakingTokenAmount() uint64 { return t.stakingTokens }

// FeeCollected reports the graduation fee already transferred to the
// platform treasury at lock time.
func (t *MigrationTicket) FeeCollected() uint64 { return t.feeCollected }

// ShouldCreateStakingPool reports the staking decision made at lock time.
func (t *MigrationTicket) ShouldCreateStakingPool() bool { return t.createStakingPool }

// ShouldCreateDAO reports the DAO decision made at lock time.
func (t *MigrationTicket) ShouldCreateDAO() bool { return t.createDAO }

// StakingAdminRecipient is the resolved recipient of the staking-pool admin
// capability.
func (t *MigrationTicket) StakingAdminRecipient() domain.Address { return t.stakingAdmin }

// DAOAdminRecipient is the resolved recipient of the DAO admin capability.
func (t *MigrationTicket) DAOAdminRecipient() domain.Address { return t.daoAdmin }

// StakingConfig returns the staking parameters copied at lock time.
func (t *MigrationTicket) StakingConfig() params.StakingParams { return t.stakingConfig }

// DAOConfig returns the DAO parameters copied at lock time.
func (t *MigrationTicket) DAOConfig() params.DAOParams { return t.daoConfig }

// Consumed reports whether completion has consumed the ticket.
func (t *MigrationTicket) Consumed() bool { return t.consumed }

// pendingExtraction returns the first unextracted balance in the fixed
// check order (base, tokens, staking), or nil when all were extracted.
func (t *MigrationTicket) pendingExtraction() error {
	if !t.baseExtracted {
		return ErrBaseNotExtracted
	}
	if !t.tokensExtracted {
		return ErrTokensNotExtracted
	}
	if !t.stakingExtracted {
		return ErrStakingNotExtracted
	}
	return nil
}

// DestroyForTesting force-discards a ticket, extracted or not. It exists
// only for test teardown; production code has no path that discards a
// ticket without completing it.
func (t *MigrationTicket) DestroyForTesting() {
	t.consumed = true
}
