// Package migration executes the full graduation batch: lock, extract,
// venue operations, staking/DAO creation, completion. The batch is
// all-or-nothing: any failure restores the pricing ledger and balance book
// to their pre-batch state, so persistent state never reflects a partial
// migration.
package migration

import (
	"context"
	"fmt"
	"log"
	"time"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/bank"
	"solana-launchpad/internal/curve"
	"solana-launchpad/internal/dao"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/graduation"
	"solana-launchpad/internal/observability"
	"solana-launchpad/internal/params"
	"solana-launchpad/internal/staking"
	"solana-launchpad/internal/venue"
)

// Options for creating a Runner.
type Options struct {
	AdminCap    *auth.AdminCap
	Ledger      *curve.Ledger
	Book        *bank.Book
	Params      *params.Set
	Coordinator *graduation.Coordinator
	Finalizer   *graduation.Finalizer

	AMMAdapter  *venue.AMMAdapter
	CLMMAdapter *venue.CLMMAdapter

	Staking staking.Creator
	DAO     dao.Creator

	Metrics *observability.Metrics
	Verbose bool
}

// Runner coordinates migration batches. One Runner serves all pools; the
// ledger's single-writer discipline serializes concurrent attempts on the
// same pool, and the second attempt always observes graduated=true.
type Runner struct {
	opts Options
	now  func() int64
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{
		opts: opts,
		now:  func() int64 { return time.Now().UnixMilli() },
	}
}

// Result contains the effects of one completed migration batch.
type Result struct {
	Receipt      *domain.GraduationReceipt
	VenuePoolID  string
	FeeCollected uint64

	LPCreatorShare   uint64
	LPPlatformShare  uint64
	LPCommunityShare uint64

	// PlatformPosition is set on concentrated-liquidity migrations, where
	// the platform share is a unique position rather than a fungible amount.
	PlatformPosition *venue.Position

	StakingPool *staking.Pool
	DAO         *dao.Governance
	Treasury    *dao.Treasury
}

// Run executes one migration batch for the pool. On any failure the ledger
// and the balance book are restored to their pre-batch state and the error
// is returned; the attempt can be retried from scratch once the triggering
// condition is fixed.
func (r *Runner) Run(ctx context.Context, poolID string) (*Result, error) {
	start := time.Now()

	ledgerSnap, err := r.opts.Ledger.CaptureState(poolID)
	if err != nil {
		return nil, err
	}
	bookSnap := r.opts.Book.Snapshot()

	result, err := r.run(ctx, poolID)
	if err != nil {
		// Roll the batch back in full: no partial migration survives.
		if restoreErr := r.opts.Ledger.RestoreState(ledgerSnap); restoreErr != nil {
			return nil, fmt.Errorf("rollback ledger after %v: %w", err, restoreErr)
		}
		r.opts.Book.Restore(bookSnap)
		if r.opts.Metrics != nil {
			r.opts.Metrics.GraduationFailures.WithLabelValues(failureReason(err)).Inc()
		}
		return nil, err
	}

	if r.opts.Metrics != nil {
		r.opts.Metrics.GraduationsTotal.Inc()
		r.opts.Metrics.GraduationFees.Add(float64(result.FeeCollected))
		r.opts.Metrics.VenueMigrations.WithLabelValues(string(result.Receipt.VenueID)).Inc()
		r.opts.Metrics.MigrationDuration.Observe(time.Since(start).Seconds())
	}
	return result, nil
}

func (r *Runner) run(ctx context.Context, poolID string) (*Result, error) {
	nowMs := r.now()
	venueID := r.opts.Params.VenueID()

	ticket, err := r.opts.Coordinator.BeginMigration(r.opts.AdminCap, poolID, venueID)
	if err != nil {
		return nil, fmt.Errorf("begin migration: %w", err)
	}
	r.log("locked pool %s for %s migration: base=%d tokens=%d staking=%d",
		poolID, venueID, ticket.LiquidityBaseAmount(), ticket.LiquidityTokenAmount(), ticket.StakingTokenAmount())

	// Staking extraction is unconditional: completion gates on the
	// extracted flag even when the locked amount is zero.
	stakingTokens, err := ticket.ExtractStakingTokens()
	if err != nil {
		return nil, fmt.Errorf("extract staking tokens: %w", err)
	}

	var result *Result
	var complete completeFunc
	switch venueID {
	case domain.VenueAMM:
		result, complete, err = r.migrateAMM(ctx, ticket)
	case domain.VenueCLMM:
		result, complete, err = r.migrateCLMM(ctx, ticket)
	default:
		return nil, fmt.Errorf("%w: %s", venue.ErrVenueNotConfigured, venueID)
	}
	if err != nil {
		return nil, err
	}
	result.FeeCollected = ticket.FeeCollected()

	if ticket.ShouldCreateStakingPool() {
		pool, _, err := r.opts.Staking.CreatePool(ctx, ticket, stakingTokens, nowMs)
		if err != nil {
			return nil, fmt.Errorf("create staking pool: %w", err)
		}
		result.StakingPool = pool
		if r.opts.Metrics != nil {
			r.opts.Metrics.StakingPoolsCreated.Inc()
		}
		r.log("created staking pool %s funded with %d tokens", pool.StakingPoolID, stakingTokens)
	}

	if ticket.ShouldCreateDAO() {
		if err := r.createDAO(ctx, ticket, result, nowMs); err != nil {
			return nil, err
		}
	}

	// Completion runs last so every fallible sub-flow has already
	// succeeded; no registry entry or receipt can outlive an aborted batch.
	receipt, err := complete(ctx, nowMs)
	if err != nil {
		return nil, fmt.Errorf("complete migration: %w", err)
	}
	result.Receipt = receipt

	return result, nil
}

func (r *Runner) createDAO(ctx context.Context, ticket *graduation.MigrationTicket, result *Result, nowMs int64) error {
	stakingPoolID := ""
	if result.StakingPool != nil {
		stakingPoolID = result.StakingPool.StakingPoolID
	}

	gov, _, err := r.opts.DAO.CreateDAO(ctx, ticket, stakingPoolID, string(ticket.Mint()), nowMs)
	if err != nil {
		return fmt.Errorf("create dao: %w", err)
	}
	treasury, err := r.opts.DAO.CreateTreasury(ctx, gov.DAOID)
	if err != nil {
		return fmt.Errorf("create dao treasury: %w", err)
	}

	// The platform share funds the DAO treasury when one exists: a
	// fungible LP amount for AMM migrations, the whole position for
	// concentrated-liquidity migrations.
	switch {
	case result.PlatformPosition != nil:
		if err := r.opts.DAO.DepositPosition(ctx, treasury.TreasuryID, result.PlatformPosition); err != nil {
			return fmt.Errorf("deposit platform position: %w", err)
		}
	case result.LPPlatformShare > 0:
		lpMint := domain.Address(result.VenuePoolID)
		if err := r.opts.DAO.DepositFungible(ctx, treasury.TreasuryID, lpMint, result.LPPlatformShare); err != nil {
			return fmt.Errorf("deposit platform lp share: %w", err)
		}
	}

	result.DAO = gov
	result.Treasury = treasury
	if r.opts.Metrics != nil {
		r.opts.Metrics.DAOsCreated.Inc()
	}
	r.log("created dao %s with treasury %s", gov.DAOID, treasury.TreasuryID)
	return nil
}

func (r *Runner) log(format string, args ...any) {
	if r.opts.Verbose {
		log.Printf(format, args...)
	}
}

// failureReason buckets errors for the failure counter.
func failureReason(err error) string {
	switch {
	case isAny(err, graduation.ErrNotReady):
		return "not_ready"
	case isAny(err, curve.ErrAlreadyGraduated):
		return "already_graduated"
	case isAny(err, curve.ErrPoolPaused):
		return "paused"
	case isAny(err, graduation.ErrInsufficientLiquidity):
		return "insufficient_liquidity"
	case isAny(err, venue.ErrWrongVenueType):
		return "wrong_venue_type"
	case isAny(err, venue.ErrVenueNotConfigured):
		return "venue_not_configured"
	case isAny(err, venue.ErrBelowMinimumLiquidity):
		return "below_minimum_liquidity"
	default:
		return "other"
	}
}
