// Package graduation implements the graduation protocol core: the
// coordinator that locks a pool's economic state, the single-use migration
// ticket that carries the locked balances, and the finalizer that records
// the completed migration. The whole flow is designed to run inside one
// atomic batch (see internal/migration).
package graduation

import (
	"fmt"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/bank"
	"solana-launchpad/internal/curve"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/params"
)

// Coordinator validates graduation eligibility, flips the ledger's
// graduated flag exactly once per pool, computes the fund split, and issues
// the migration ticket.
type Coordinator struct {
	admin  *auth.AdminCap
	ledger *curve.Ledger
	book   *bank.Book
	params *params.Set
}

// NewCoordinator creates a Coordinator. The admin capability gates
// BeginMigration.
func NewCoordinator(admin *auth.AdminCap, ledger *curve.Ledger, book *bank.Book, paramSet *params.Set) *Coordinator {
	return &Coordinator{
		admin:  admin,
		ledger: ledger,
		book:   book,
		params: paramSet,
	}
}

// BeginMigration locks a pool for graduation and returns its migration
// ticket. In order:
//
//  1. graduation fee = base reserve × fee bps, transferred to the platform
//     treasury
//  2. liquidity base = base reserve − fee
//  3. creator token share transferred to the creator
//  4. platform token share transferred to the platform treasury
//  5. remaining tokens split into liquidity and staking allocations
//  6. pool marked graduated (one-way)
//  7. ticket issued with all extracted flags false
//
// The fee and share transfers settle before the ticket is handed back; they
// are not part of the ticket's accounting. All failure modes are
// non-retryable within the current pool state.
func (c *Coordinator) BeginMigration(cap *auth.AdminCap, poolID string, venueID domain.VenueID) (*MigrationTicket, error) {
	if err := c.admin.Verify(cap); err != nil {
		return nil, err
	}

	snap, err := c.ledger.Snapshot(poolID)
	if err != nil {
		return nil, err
	}
	if snap.Paused {
		return nil, curve.ErrPoolPaused
	}
	if snap.Graduated {
		return nil, curve.ErrAlreadyGraduated
	}
	if snap.BaseReserve < c.params.GraduationThreshold() {
		return nil, fmt.Errorf("%w: reserve %d below threshold %d",
			ErrNotReady, snap.BaseReserve, c.params.GraduationThreshold())
	}

	fee := ApplyBps(snap.BaseReserve, c.params.GraduationFeeBps())
	liquidityBase := snap.BaseReserve - fee
	if liquidityBase < c.params.MinPostFeeLiquidity() {
		return nil, fmt.Errorf("%w: %d below minimum %d",
			ErrInsufficientLiquidity, liquidityBase, c.params.MinPostFeeLiquidity())
	}

	creatorTokens := ApplyBps(snap.TokenReserve, c.params.CreatorGraduationBps())
	platformTokens := ApplyBps(snap.TokenReserve, c.params.PlatformGraduationBps())
	remaining := snap.TokenReserve - creatorTokens - platformTokens

	stakingEnabled := c.params.StakingEnabledFor(poolID)
	var stakingTokens uint64
	if stakingEnabled {
		stakingTokens = ApplyBps(remaining, c.params.Staking().AllocationBps)
	}
	liquidityTokens := remaining - stakingTokens

	// One-way transition. After this point every failure aborts the whole
	// batch; there is no partial graduation.
	if err := c.ledger.MarkGraduated(poolID); err != nil {
		return nil, err
	}

	drainedBase, drainedTokens, err := c.ledger.DrainReserves(poolID)
	if err != nil {
		return nil, err
	}
	if drainedBase != snap.BaseReserve || drainedTokens != snap.TokenReserve {
		return nil, fmt.Errorf("%w: snapshot (%d, %d) vs drained (%d, %d)",
			ErrAccountingMismatch, snap.BaseReserve, snap.TokenReserve, drainedBase, drainedTokens)
	}

	// Immediate allocations settle now; the ticket carries only the three
	// to-be-extracted balances.
	if err := c.book.CreditBase(c.params.PlatformTreasury(), fee); err != nil {
		return nil, fmt.Errorf("credit graduation fee: %w", err)
	}
	if err := c.book.CreditToken(snap.Creator, snap.Mint, creatorTokens); err != nil {
		return nil, fmt.Errorf("credit creator share: %w", err)
	}
	if err := c.book.CreditToken(c.params.PlatformTreasury(), snap.Mint, platformTokens); err != nil {
		return nil, fmt.Errorf("credit platform share: %w", err)
	}

	stakingAdmin := ResolveDestination(c.params.StakingAdminDestination(), snap.Creator, c.params)
	daoAdmin := ResolveDestination(c.params.DAOAdminDestination(), snap.Creator, c.params)

	return &MigrationTicket{
		poolID:  poolID,
		mint:    snap.Mint,
		creator: snap.Creator,
		venueID: venueID,

		liquidityBase:   liquidityBase,
		liquidityTokens: liquidityTokens,
		stakingTokens:   stakingTokens,
		feeCollected:    fee,

		createStakingPool: stakingEnabled,
		createDAO:         c.params.DAO().Enabled,
		stakingAdmin:      stakingAdmin,
		daoAdmin:          daoAdmin,
		stakingConfig:     c.params.Staking(),
		daoConfig:         c.params.DAO(),
	}, nil
}
