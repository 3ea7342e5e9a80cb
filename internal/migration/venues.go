package migration

import (
	"context"
	"errors"
	"fmt"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/graduation"
)

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// completeFunc records the graduation in the registry and consumes the
// ticket. The runner calls it as the batch's very last step, after the
// staking/DAO sub-flows, so no persistent record exists for a batch that
// can still fail.
type completeFunc func(ctx context.Context, nowMs int64) (*domain.GraduationReceipt, error)

// migrateAMM moves the liquidity into the fungible-LP venue: create the
// venue pool, split the minted LP, settle the creator share (and the
// platform share when no DAO will take it). Completion is deferred to the
// returned completeFunc.
func (r *Runner) migrateAMM(ctx context.Context, ticket *graduation.MigrationTicket) (*Result, completeFunc, error) {
	adapter := r.opts.AMMAdapter

	base, tokens, err := adapter.ExtractForVenue(ticket, r.opts.Params)
	if err != nil {
		return nil, nil, fmt.Errorf("extract for amm venue: %w", err)
	}

	venuePoolID, lpAmount, err := adapter.CreateVenuePool(ctx, ticket.Mint(), base, tokens)
	if err != nil {
		return nil, nil, fmt.Errorf("create amm venue pool: %w", err)
	}
	r.log("created amm pool %s: lp=%d", venuePoolID, lpAmount)

	creatorShare, platformShare, communityShare := adapter.SplitLP(lpAmount, r.opts.Params)

	// The creator share settles immediately; the platform share settles
	// here only when no DAO treasury will take it; the community share
	// stays locked in the venue.
	lpMint := domain.Address(venuePoolID)
	if err := r.opts.Book.CreditToken(ticket.Creator(), lpMint, creatorShare); err != nil {
		return nil, nil, fmt.Errorf("credit creator lp share: %w", err)
	}
	if !ticket.ShouldCreateDAO() && platformShare > 0 {
		if err := r.opts.Book.CreditToken(r.opts.Params.PlatformTreasury(), lpMint, platformShare); err != nil {
			return nil, nil, fmt.Errorf("credit platform lp share: %w", err)
		}
	}

	result := &Result{
		VenuePoolID:      venuePoolID,
		LPCreatorShare:   creatorShare,
		LPPlatformShare:  platformShare,
		LPCommunityShare: communityShare,
	}
	complete := func(ctx context.Context, nowMs int64) (*domain.GraduationReceipt, error) {
		receipt, _, _, _, err := adapter.CompleteForVenue(
			ctx, r.opts.Finalizer, ticket, r.opts.Params, venuePoolID, lpAmount, nowMs)
		return receipt, err
	}
	return result, complete, nil
}

// migrateCLMM moves the liquidity into the concentrated-liquidity venue:
// one position per share, since positions cannot be subdivided. Completion
// is deferred to the returned completeFunc.
func (r *Runner) migrateCLMM(ctx context.Context, ticket *graduation.MigrationTicket) (*Result, completeFunc, error) {
	adapter := r.opts.CLMMAdapter

	base, tokens, err := adapter.ExtractForVenue(ticket, r.opts.Params)
	if err != nil {
		return nil, nil, fmt.Errorf("extract for clmm venue: %w", err)
	}

	venuePoolID, err := adapter.CreateVenuePool(ctx, ticket.Mint())
	if err != nil {
		return nil, nil, fmt.Errorf("create clmm venue pool: %w", err)
	}

	creatorPos, platformPos, communityPos, err := adapter.OpenPositions(
		ctx, ticket, r.opts.Params, venuePoolID, base, tokens)
	if err != nil {
		return nil, nil, fmt.Errorf("open clmm positions: %w", err)
	}
	r.log("created clmm pool %s with per-share positions", venuePoolID)

	result := &Result{
		VenuePoolID: venuePoolID,
	}
	if creatorPos != nil {
		result.LPCreatorShare = creatorPos.Liquidity
	}
	if platformPos != nil {
		result.LPPlatformShare = platformPos.Liquidity
		result.PlatformPosition = platformPos
	}
	if communityPos != nil {
		result.LPCommunityShare = communityPos.Liquidity
	}
	complete := func(ctx context.Context, nowMs int64) (*domain.GraduationReceipt, error) {
		return adapter.CompleteForVenue(
			ctx, r.opts.Finalizer, ticket, venuePoolID, creatorPos, platformPos, communityPos, nowMs)
	}
	return result, complete, nil
}
