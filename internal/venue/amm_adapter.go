package venue

import (
	"context"
	"fmt"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/graduation"
	"solana-launchpad/internal/params"
)

// AMMAdapter migrates graduated liquidity into a fungible-LP AMM. The LP
// output is divisible, so the creator/platform/community split is applied
// directly to the minted LP amount.
type AMMAdapter struct {
	amm        AMM
	minBase    uint64
	minTokens  uint64
	feeTierBps uint16
}

// NewAMMAdapter creates an adapter over an AMM venue with its minimum
// liquidity floors.
func NewAMMAdapter(amm AMM, minBase, minTokens uint64, feeTierBps uint16) *AMMAdapter {
	return &AMMAdapter{
		amm:        amm,
		minBase:    minBase,
		minTokens:  minTokens,
		feeTierBps: feeTierBps,
	}
}

// VenueID returns the adapter's venue family.
func (a *AMMAdapter) VenueID() domain.VenueID {
	return domain.VenueAMM
}

// ExtractForVenue validates the ticket against this venue and extracts both
// liquidity balances. The ticket is untouched when validation fails.
func (a *AMMAdapter) ExtractForVenue(ticket *graduation.MigrationTicket, p *params.Set) (base, tokens uint64, err error) {
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

// CreateVenuePool creates the AMM pool with the extracted amounts.
func (a *AMMAdapter) CreateVenuePool(ctx context.Context, mint domain.Address, base, tokens uint64) (venuePoolID string, lpAmount uint64, err error) {
	return a.amm.CreatePool(ctx, mint, base, tokens, a.feeTierBps)
}

// SplitLP divides a fungible LP amount by the configured bps shares.
// Community absorbs rounding so the three shares always sum to lpAmount.
func (a *AMMAdapter) SplitLP(lpAmount uint64, p *params.Set) (creator, platform, community uint64) {
	creatorBps, platformBps, _ := p.LPSplit()
	creator = graduation.ApplyBps(lpAmount, creatorBps)
	platform = graduation.ApplyBps(lpAmount, platformBps)
	community = lpAmount - creator - platform
	return creator, platform, community
}

// CompleteForVenue splits the LP output and delegates to the generic
// finalizer.
func (a *AMMAdapter) CompleteForVenue(
	ctx context.Context,
	fin *graduation.Finalizer,
	ticket *graduation.MigrationTicket,
	p *params.Set,
	venuePoolID string,
	lpAmount uint64,
	nowMs int64,
) (*domain.GraduationReceipt, uint64, uint64, uint64, error) {
	creator, platform, community := a.SplitLP(lpAmount, p)

	receipt, err := fin.Complete(ctx, ticket, venuePoolID, lpAmount, creator, community, nowMs)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return receipt, creator, platform, community, nil
}
