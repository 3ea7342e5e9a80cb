package venue

import (
	"context"
	"fmt"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/graduation"
	"solana-launchpad/internal/params"
)

// CLMMAdapter migrates graduated liquidity into a concentrated-liquidity
// venue. Positions are unique and non-divisible, so the
// creator/platform/community split is achieved by opening one position per
// share with proportionally allocated amounts.
type CLMMAdapter struct {
	clmm       CLMM
	minBase    uint64
	minTokens  uint64
	feeTierBps uint16
}

// NewCLMMAdapter creates an adapter over a CLMM venue with its minimum
// liquidity floors.
func NewCLMMAdapter(clmm CLMM, minBase, minTokens uint64, feeTierBps uint16) *CLMMAdapter {
	return &CLMMAdapter{
		clmm:       clmm,
		minBase:    minBase,
		minTokens:  minTokens,
		feeTierBps: feeTierBps,
	}
}

// VenueID returns the adapter's venue family.
func (a *CLMMAdapter) VenueID() domain.VenueID {
	return domain.VenueCLMM
}

// ExtractForVenue validates the ticket against this venue and extracts both
// liquidity balances. The ticket is untouched when validation fails.
func (a *CLMMAdapter) ExtractForVenue(ticket *graduation.MigrationTicket, p *params.Set) (base, tokens uint64, err error) {
	if ticket.VenueID() != a.VenueID() {
		return 0, 0, fmt.Errorf("%w: ticket is for %s, adapter is %s",
			ErrWrongVenueType, ticket.VenueID(), a.VenueID())
	}
	if p.VenueAddress(a.VenueID()).IsZero() {
		return 0, 0, fmt.Errorf("%w: %s", ErrVenueNotConfigured, a.VenueID())
	}
	if ticket.LiquidityBaseAmount() < a.minBase || ticket.LiquidityTokenAmount() < a.minTokens {
		return 0, 0, fmt.Errorf("%w: (%d, %d) below floor (%d, %d)",
			ErrBelowMinimumLiquidity,
			ticket.LiquidityBaseAmount(), ticket.LiquidityTokenAmount(),
			a.minBase, a.minTokens)
	}

	base, err = ticket.ExtractLiquidityBase()
	if err != nil {
		return 0, 0, err
	}
	tokens, err = ticket.ExtractLiquidityTokens()
	if err != nil {
		return 0, 0, err
	}
	return base, tokens, nil
}

// CreateVenuePool creates the empty CLMM pool for the mint.
func (a *CLMMAdapter) CreateVenuePool(ctx context.Context, mint domain.Address) (string, error) {
	return a.clmm.CreatePool(ctx, mint, a.feeTierBps)
}

// OpenPositions opens the per-share positions: creator, platform, and
// community, each funded with proportionally allocated amounts. Shares with
// zero allocation are skipped. The community share absorbs rounding; when it
// is skipped, its remainder folds into another position, so the opened
// amounts always sum exactly to the extracted amounts.
func (a *CLMMAdapter) OpenPositions(
	ctx context.Context,
	ticket *graduation.MigrationTicket,
	p *params.Set,
	venuePoolID string,
	base, tokens uint64,
) (creatorPos, platformPos, communityPos *Position, err error) {
	creatorBps, platformBps, _ := p.LPSplit()

	creatorBase := graduation.ApplyBps(base, creatorBps)
	creatorTokens := graduation.ApplyBps(tokens, creatorBps)
	platformBase := graduation.ApplyBps(base, platformBps)
	platformTokens := graduation.ApplyBps(tokens, platformBps)
	communityBase := base - creatorBase - platformBase
	communityTokens := tokens - creatorTokens - platformTokens

	// A position needs liquidity on both sides. When the community
	// remainder is one-sided (a zero community share leaves only rounding
	// dust), fold it into the platform share, or the creator share when
	// the platform share is empty, so no extracted amount is dropped.
	if communityBase == 0 || communityTokens == 0 {
		switch {
		case platformBase > 0 && platformTokens > 0:
			platformBase += communityBase
			platformTokens += communityTokens
		case creatorBase > 0 && creatorTokens > 0:
			creatorBase += communityBase
			creatorTokens += communityTokens
		}
		communityBase, communityTokens = 0, 0
	}

	if creatorBase > 0 && creatorTokens > 0 {
		creatorPos, err = a.clmm.OpenPosition(ctx, venuePoolID, ticket.Creator(), creatorBase, creatorTokens)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open creator position: %w", err)
		}
	}
	if platformBase > 0 && platformTokens > 0 {
		platformPos, err = a.clmm.OpenPosition(ctx, venuePoolID, p.PlatformTreasury(), platformBase, platformTokens)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open platform position: %w", err)
		}
	}
	if communityBase > 0 && communityTokens > 0 {
		communityPos, err = a.clmm.OpenPosition(ctx, venuePoolID, p.DAOTreasury(), communityBase, communityTokens)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open community position: %w", err)
		}
	}

	return creatorPos, platformPos, communityPos, nil
}

// CompleteForVenue sums the position liquidity and delegates to the generic
// finalizer. The receipt's creator and community amounts are the respective
// positions' liquidity, zero for skipped shares.
func (a *CLMMAdapter) CompleteForVenue(
	ctx context.Context,
	fin *graduation.Finalizer,
	ticket *graduation.MigrationTicket,
	venuePoolID string,
	creatorPos, platformPos, communityPos *Position,
	nowMs int64,
) (*domain.GraduationReceipt, error) {
	var total, creatorShare, communityShare uint64
	for _, pos := range []*Position{creatorPos, platformPos, communityPos} {
		if pos != nil {
			total += pos.Liquidity
		}
	}
	if creatorPos != nil {
		creatorShare = creatorPos.Liquidity
	}
	if communityPos != nil {
		communityShare = communityPos.Liquidity
	}

	return fin.Complete(ctx, ticket, venuePoolID, total, creatorShare, communityShare, nowMs)
}
