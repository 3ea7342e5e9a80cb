package venue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mr-tron/base58"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/bank"
	"solana-launchpad/internal/curve"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/graduation"
	"solana-launchpad/internal/params"
	"solana-launchpad/internal/storage/memory"
	"solana-launchpad/internal/venue"
	"solana-launchpad/internal/venue/stub"
)

func testAddress(seed byte) domain.Address {
	var buf [32]byte
	for i := range buf {
		buf[i] = seed
	}
	return domain.Address(base58.Encode(buf[:]))
}

type adapterEnv struct {
	admin     *auth.AdminCap
	params    *params.Set
	coord     *graduation.Coordinator
	finalizer *graduation.Finalizer
	registry  *memory.RegistryStore
	ledger    *curve.Ledger
}

func newAdapterEnv(t *testing.T) *adapterEnv {
	t.Helper()

	admin, err := auth.NewAdminCap()
	if err != nil {
		t.Fatalf("NewAdminCap failed: %v", err)
	}
	p, err := params.NewSet(admin, testAddress(0xAA), testAddress(0xBB))
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	if err := p.SetGraduationThreshold(admin, 69_000); err != nil {
		t.Fatalf("SetGraduationThreshold failed: %v", err)
	}
	if err := p.SetMinPostFeeLiquidity(admin, 1_000); err != nil {
		t.Fatalf("SetMinPostFeeLiquidity failed: %v", err)
	}
	if err := p.ConfigureVenueAddress(admin, domain.VenueAMM, testAddress(0x10)); err != nil {
		t.Fatalf("ConfigureVenueAddress AMM failed: %v", err)
	}
	if err := p.ConfigureVenueAddress(admin, domain.VenueCLMM, testAddress(0x11)); err != nil {
		t.Fatalf("ConfigureVenueAddress CLMM failed: %v", err)
	}

	ledger := curve.NewLedger()
	registry := memory.NewRegistryStore()
	return &adapterEnv{
		admin:     admin,
		params:    p,
		coord:     graduation.NewCoordinator(admin, ledger, bank.NewBook(), p),
		finalizer: graduation.NewFinalizer(registry, memory.NewReceiptStore(), nil),
		registry:  registry,
		ledger:    ledger,
	}
}

// issueTicket creates a registered pool with base reserve 75,900 and token
// reserve 600,000 and locks it for the given venue.
func (e *adapterEnv) issueTicket(t *testing.T, venueID domain.VenueID) *graduation.MigrationTicket {
	t.Helper()

	mint := testAddress(0x01)
	creator := testAddress(0x02)
	poolID, err := e.ledger.CreatePool(mint, creator, 675_900, 0, 1_700_000_000_000)
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}
	if err := e.ledger.RecordBuy(poolID, 75_900, 75_900); err != nil {
		t.Fatalf("RecordBuy failed: %v", err)
	}
	entry := &domain.RegistryEntry{PoolID: poolID, Mint: mint, Creator: creator, RegisteredAt: 1}
	if err := e.registry.Insert(context.Background(), entry); err != nil {
		t.Fatalf("registry Insert failed: %v", err)
	}

	ticket, err := e.coord.BeginMigration(e.admin, poolID, venueID)
	if err != nil {
		t.Fatalf("BeginMigration failed: %v", err)
	}
	return ticket
}

func TestAMMAdapter_EndToEnd(t *testing.T) {
	env := newAdapterEnv(t)
	ctx := context.Background()
	ticket := env.issueTicket(t, domain.VenueAMM)
	adapter := venue.NewAMMAdapter(stub.NewAMMVenue(), 1_000, 1_000, 30)

	base, tokens, err := adapter.ExtractForVenue(ticket, env.params)
	if err != nil {
		t.Fatalf("ExtractForVenue failed: %v", err)
	}
	if base != 72_105 || tokens != 579_000 {
		t.Errorf("extracted = (%d, %d), want (72105, 579000)", base, tokens)
	}

	venuePoolID, lpAmount, err := adapter.CreateVenuePool(ctx, ticket.Mint(), base, tokens)
	if err != nil {
		t.Fatalf("CreateVenuePool failed: %v", err)
	}
	if lpAmount == 0 {
		t.Fatal("no LP minted")
	}

	if _, err := ticket.ExtractStakingTokens(); err != nil {
		t.Fatalf("ExtractStakingTokens failed: %v", err)
	}

	receipt, creator, platform, community, err := adapter.CompleteForVenue(
		ctx, env.finalizer, ticket, env.params, venuePoolID, lpAmount, 2)
	if err != nil {
		t.Fatalf("CompleteForVenue failed: %v", err)
	}
	if creator+platform+community != lpAmount {
		t.Errorf("LP split %d + %d + %d != %d", creator, platform, community, lpAmount)
	}
	if receipt.TotalLiquidity != lpAmount {
		t.Errorf("receipt liquidity = %d, want %d", receipt.TotalLiquidity, lpAmount)
	}
	if receipt.VenueID != domain.VenueAMM {
		t.Errorf("receipt venue = %s, want AMM", receipt.VenueID)
	}
	if !ticket.Consumed() {
		t.Error("ticket not consumed")
	}
}

func TestAMMAdapter_SplitLP_CommunityAbsorbsRounding(t *testing.T) {
	env := newAdapterEnv(t)
	adapter := venue.NewAMMAdapter(stub.NewAMMVenue(), 1, 1, 30)

	// Default split 500/500/9000 over an amount that does not divide evenly.
	for _, lp := range []uint64{1, 7, 9_999, 123_457} {
		creator, platform, community := adapter.SplitLP(lp, env.params)
		if creator+platform+community != lp {
			t.Errorf("split of %d does not conserve: %d + %d + %d", lp, creator, platform, community)
		}
	}
}

func TestAMMAdapter_WrongVenueTicket(t *testing.T) {
	env := newAdapterEnv(t)
	ticket := env.issueTicket(t, domain.VenueCLMM)
	defer ticket.DestroyForTesting()
	adapter := venue.NewAMMAdapter(stub.NewAMMVenue(), 1_000, 1_000, 30)

	_, _, err := adapter.ExtractForVenue(ticket, env.params)
	if !errors.Is(err, venue.ErrWrongVenueType) {
		t.Fatalf("err = %v, want ErrWrongVenueType", err)
	}

	// Validation failure must leave the ticket extractable.
	if _, err := ticket.ExtractLiquidityBase(); err != nil {
		t.Errorf("ticket was mutated by failed validation: %v", err)
	}
}

func TestAMMAdapter_UnconfiguredVenue(t *testing.T) {
	env := newAdapterEnv(t)
	ticket := env.issueTicket(t, domain.VenueAMM)
	defer ticket.DestroyForTesting()

	if err := env.params.ConfigureVenueAddress(env.admin, domain.VenueAMM, ""); err != nil {
		t.Fatalf("de-configure failed: %v", err)
	}

	adapter := venue.NewAMMAdapter(stub.NewAMMVenue(), 1_000, 1_000, 30)
	_, _, err := adapter.ExtractForVenue(ticket, env.params)
	if !errors.Is(err, venue.ErrVenueNotConfigured) {
		t.Fatalf("err = %v, want ErrVenueNotConfigured", err)
	}
}

func TestAMMAdapter_MinimumFloorsCheckedBeforeExtraction(t *testing.T) {
	env := newAdapterEnv(t)
	ticket := env.issueTicket(t, domain.VenueAMM)
	defer ticket.DestroyForTesting()

	adapter := venue.NewAMMAdapter(stub.NewAMMVenue(), 100_000, 1_000, 30)
	_, _, err := adapter.ExtractForVenue(ticket, env.params)
	if !errors.Is(err, venue.ErrBelowMinimumLiquidity) {
		t.Fatalf("err = %v, want ErrBelowMinimumLiquidity", err)
	}

	// Neither balance was extracted by the failed attempt.
	if _, err := ticket.ExtractLiquidityBase(); err != nil {
		t.Errorf("base extraction blocked after failed floor check: %v", err)
	}
	if _, err := ticket.ExtractLiquidityTokens(); err != nil {
		t.Errorf("token extraction blocked after failed floor check: %v", err)
	}
}

func TestCLMMAdapter_EndToEnd(t *testing.T) {
	env := newAdapterEnv(t)
	ctx := context.Background()
	ticket := env.issueTicket(t, domain.VenueCLMM)
	clmmVenue := stub.NewCLMMVenue()
	adapter := venue.NewCLMMAdapter(clmmVenue, 1_000, 1_000, 30)

	base, tokens, err := adapter.ExtractForVenue(ticket, env.params)
	if err != nil {
		t.Fatalf("ExtractForVenue failed: %v", err)
	}

	venuePoolID, err := adapter.CreateVenuePool(ctx, ticket.Mint())
	if err != nil {
		t.Fatalf("CreateVenuePool failed: %v", err)
	}

	creatorPos, platformPos, communityPos, err := adapter.OpenPositions(ctx, ticket, env.params, venuePoolID, base, tokens)
	if err != nil {
		t.Fatalf("OpenPositions failed: %v", err)
	}
	if creatorPos == nil || platformPos == nil || communityPos == nil {
		t.Fatal("expected three positions with the default split")
	}

	// Position amounts conserve the extracted liquidity exactly.
	sumBase := creatorPos.BaseAmount + platformPos.BaseAmount + communityPos.BaseAmount
	sumTokens := creatorPos.TokenAmount + platformPos.TokenAmount + communityPos.TokenAmount
	if sumBase != base || sumTokens != tokens {
		t.Errorf("positions hold (%d, %d), extracted (%d, %d)", sumBase, sumTokens, base, tokens)
	}

	// Owners: creator, platform treasury, DAO treasury.
	if creatorPos.Owner != ticket.Creator() {
		t.Errorf("creator position owner = %s", creatorPos.Owner)
	}
	if platformPos.Owner != env.params.PlatformTreasury() {
		t.Errorf("platform position owner = %s", platformPos.Owner)
	}
	if communityPos.Owner != env.params.DAOTreasury() {
		t.Errorf("community position owner = %s", communityPos.Owner)
	}

	if _, err := ticket.ExtractStakingTokens(); err != nil {
		t.Fatalf("ExtractStakingTokens failed: %v", err)
	}
	receipt, err := adapter.CompleteForVenue(ctx, env.finalizer, ticket, venuePoolID, creatorPos, platformPos, communityPos, 2)
	if err != nil {
		t.Fatalf("CompleteForVenue failed: %v", err)
	}
	wantTotal := creatorPos.Liquidity + platformPos.Liquidity + communityPos.Liquidity
	if receipt.TotalLiquidity != wantTotal {
		t.Errorf("receipt liquidity = %d, want %d", receipt.TotalLiquidity, wantTotal)
	}
	if receipt.CreatorShare != creatorPos.Liquidity {
		t.Errorf("receipt creator share = %d, want %d", receipt.CreatorShare, creatorPos.Liquidity)
	}

	positions, err := clmmVenue.Positions(venuePoolID)
	if err != nil {
		t.Fatalf("Positions failed: %v", err)
	}
	if len(positions) != 3 {
		t.Errorf("venue holds %d positions, want 3", len(positions))
	}
}

func TestCLMMAdapter_ZeroShareSkipsPosition(t *testing.T) {
	env := newAdapterEnv(t)
	ctx := context.Background()

	// All liquidity to the community: no creator or platform positions.
	if err := env.params.SetLPSplit(env.admin, 0, 0, 10_000); err != nil {
		t.Fatalf("SetLPSplit failed: %v", err)
	}
	ticket := env.issueTicket(t, domain.VenueCLMM)
	adapter := venue.NewCLMMAdapter(stub.NewCLMMVenue(), 1_000, 1_000, 30)

	base, tokens, err := adapter.ExtractForVenue(ticket, env.params)
	if err != nil {
		t.Fatalf("ExtractForVenue failed: %v", err)
	}
	venuePoolID, err := adapter.CreateVenuePool(ctx, ticket.Mint())
	if err != nil {
		t.Fatalf("CreateVenuePool failed: %v", err)
	}
	creatorPos, platformPos, communityPos, err := adapter.OpenPositions(ctx, ticket, env.params, venuePoolID, base, tokens)
	if err != nil {
		t.Fatalf("OpenPositions failed: %v", err)
	}
	if creatorPos != nil || platformPos != nil {
		t.Error("zero shares must not open positions")
	}
	if communityPos == nil {
		t.Fatal("community position missing")
	}
	if communityPos.BaseAmount != base || communityPos.TokenAmount != tokens {
		t.Errorf("community position holds (%d, %d), want (%d, %d)",
			communityPos.BaseAmount, communityPos.TokenAmount, base, tokens)
	}

	if _, err := ticket.ExtractStakingTokens(); err != nil {
		t.Fatalf("ExtractStakingTokens failed: %v", err)
	}
	receipt, err := adapter.CompleteForVenue(ctx, env.finalizer, ticket, venuePoolID, creatorPos, platformPos, communityPos, 2)
	if err != nil {
		t.Fatalf("CompleteForVenue failed: %v", err)
	}
	if receipt.CreatorShare != 0 {
		t.Errorf("creator share = %d, want 0", receipt.CreatorShare)
	}
	if receipt.TotalLiquidity != communityPos.Liquidity {
		t.Errorf("total = %d, want %d", receipt.TotalLiquidity, communityPos.Liquidity)
	}
}

func TestCLMMAdapter_ZeroCommunityShareSkipsPosition(t *testing.T) {
	env := newAdapterEnv(t)
	ctx := context.Background()

	// No community allocation: only creator and platform positions open.
	if err := env.params.SetLPSplit(env.admin, 5_000, 5_000, 0); err != nil {
		t.Fatalf("SetLPSplit failed: %v", err)
	}
	ticket := env.issueTicket(t, domain.VenueCLMM)
	adapter := venue.NewCLMMAdapter(stub.NewCLMMVenue(), 1_000, 1_000, 30)

	base, tokens, err := adapter.ExtractForVenue(ticket, env.params)
	if err != nil {
		t.Fatalf("ExtractForVenue failed: %v", err)
	}
	venuePoolID, err := adapter.CreateVenuePool(ctx, ticket.Mint())
	if err != nil {
		t.Fatalf("CreateVenuePool failed: %v", err)
	}
	creatorPos, platformPos, communityPos, err := adapter.OpenPositions(ctx, ticket, env.params, venuePoolID, base, tokens)
	if err != nil {
		t.Fatalf("OpenPositions failed: %v", err)
	}
	if communityPos != nil {
		t.Error("zero community share must not open a position")
	}
	if creatorPos == nil || platformPos == nil {
		t.Fatal("creator and platform positions missing")
	}
	if creatorPos.BaseAmount+platformPos.BaseAmount != base {
		t.Errorf("position base amounts sum to %d, want %d",
			creatorPos.BaseAmount+platformPos.BaseAmount, base)
	}
	if creatorPos.TokenAmount+platformPos.TokenAmount != tokens {
		t.Errorf("position token amounts sum to %d, want %d",
			creatorPos.TokenAmount+platformPos.TokenAmount, tokens)
	}

	if _, err := ticket.ExtractStakingTokens(); err != nil {
		t.Fatalf("ExtractStakingTokens failed: %v", err)
	}
	receipt, err := adapter.CompleteForVenue(ctx, env.finalizer, ticket, venuePoolID, creatorPos, platformPos, communityPos, 2)
	if err != nil {
		t.Fatalf("CompleteForVenue failed: %v", err)
	}
	if receipt.CommunityShare != 0 {
		t.Errorf("community share = %d, want 0", receipt.CommunityShare)
	}
	if receipt.TotalLiquidity != creatorPos.Liquidity+platformPos.Liquidity {
		t.Errorf("total = %d, want %d", receipt.TotalLiquidity, creatorPos.Liquidity+platformPos.Liquidity)
	}
}

func TestCLMMAdapter_WrongVenueTicket(t *testing.T) {
	env := newAdapterEnv(t)
	ticket := env.issueTicket(t, domain.VenueAMM)
	defer ticket.DestroyForTesting()
	adapter := venue.NewCLMMAdapter(stub.NewCLMMVenue(), 1_000, 1_000, 30)

	_, _, err := adapter.ExtractForVenue(ticket, env.params)
	if !errors.Is(err, venue.ErrWrongVenueType) {
		t.Fatalf("err = %v, want ErrWrongVenueType", err)
	}
}
