// Package main runs an end-to-end graduation demo on in-memory stores:
// create pools, accumulate trading volume, migrate one pool to an AMM venue
// and one to a concentrated-liquidity venue with staking and a DAO.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mr-tron/base58"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/bank"
	"solana-launchpad/internal/curve"
	"solana-launchpad/internal/dao"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/graduation"
	"solana-launchpad/internal/migration"
	"solana-launchpad/internal/params"
	"solana-launchpad/internal/staking"
	"solana-launchpad/internal/storage"
	"solana-launchpad/internal/storage/memory"
	"solana-launchpad/internal/venue"
	venuestub "solana-launchpad/internal/venue/stub"
)

func main() {
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	ctx := context.Background()

	if err := run(ctx, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, verbose bool) error {
	adminCap, err := auth.NewAdminCap()
	if err != nil {
		return err
	}

	platformTreasury := randomAddress()
	daoTreasury := randomAddress()

	paramSet, err := params.NewSet(adminCap, platformTreasury, daoTreasury)
	if err != nil {
		return err
	}

	// Thresholds scaled down so the demo graduates quickly.
	if err := paramSet.SetGraduationThreshold(adminCap, 69_000); err != nil {
		return err
	}
	if err := paramSet.SetMinPostFeeLiquidity(adminCap, 1_000); err != nil {
		return err
	}
	if err := paramSet.ConfigureVenueAddress(adminCap, domain.VenueAMM, randomAddress()); err != nil {
		return err
	}
	if err := paramSet.ConfigureVenueAddress(adminCap, domain.VenueCLMM, randomAddress()); err != nil {
		return err
	}

	ledger := curve.NewLedger()
	book := bank.NewBook()
	registryStore := memory.NewRegistryStore()
	receiptStore := memory.NewReceiptStore()

	coordinator := graduation.NewCoordinator(adminCap, ledger, book, paramSet)
	finalizer := graduation.NewFinalizer(registryStore, receiptStore, nil)

	runner := migration.New(migration.Options{
		AdminCap:    adminCap,
		Ledger:      ledger,
		Book:        book,
		Params:      paramSet,
		Coordinator: coordinator,
		Finalizer:   finalizer,
		AMMAdapter:  venue.NewAMMAdapter(venuestub.NewAMMVenue(), 1_000, 1_000, 30),
		CLMMAdapter: venue.NewCLMMAdapter(venuestub.NewCLMMVenue(), 1_000, 1_000, 30),
		Staking:     staking.NewStubCreator(),
		DAO:         dao.NewStubCreator(),
		Verbose:     verbose,
	})

	fmt.Println("=== Graduation Demo ===")

	// Pool 1: AMM migration, staking and DAO disabled.
	pool1, err := launchPool(ctx, ledger, registryStore, "pool one")
	if err != nil {
		return err
	}
	if err := ledger.RecordBuy(pool1, 76_000, 500_000); err != nil {
		return err
	}
	result1, err := runner.Run(ctx, pool1)
	if err != nil {
		return fmt.Errorf("migrate pool 1: %w", err)
	}
	printResult("AMM", result1)

	// Pool 2: CLMM migration with staking pool and DAO.
	if err := paramSet.SetVenue(adminCap, domain.VenueCLMM); err != nil {
		return err
	}
	stakingCfg := paramSet.Staking()
	stakingCfg.EnabledByDefault = true
	if err := paramSet.SetStakingParams(adminCap, stakingCfg); err != nil {
		return err
	}
	daoCfg := paramSet.DAO()
	daoCfg.Enabled = true
	if err := paramSet.SetDAOParams(adminCap, daoCfg); err != nil {
		return err
	}

	pool2, err := launchPool(ctx, ledger, registryStore, "pool two")
	if err != nil {
		return err
	}
	if err := ledger.RecordBuy(pool2, 120_000, 800_000); err != nil {
		return err
	}
	result2, err := runner.Run(ctx, pool2)
	if err != nil {
		return fmt.Errorf("migrate pool 2: %w", err)
	}
	printResult("CLMM", result2)

	counters, err := registryStore.Counters(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nRegistry: %d pools, %d graduated\n", counters.TotalPools, counters.TotalGraduated)
	return nil
}

// launchPool creates a curve pool and its registry entry.
func launchPool(ctx context.Context, ledger *curve.Ledger, registryStore storage.RegistryStore, name string) (string, error) {
	mint := randomAddress()
	creator := randomAddress()
	nowMs := time.Now().UnixMilli()

	poolID, err := ledger.CreatePool(mint, creator, 1_000_000, 100, nowMs)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	entry := &domain.RegistryEntry{
		PoolID:       poolID,
		Mint:         mint,
		Creator:      creator,
		RegisteredAt: nowMs,
	}
	if err := registryStore.Insert(ctx, entry); err != nil {
		return "", fmt.Errorf("register %s: %w", name, err)
	}
	log.Printf("launched %s: %s", name, poolID[:12])
	return poolID, nil
}

func printResult(label string, result *migration.Result) {
	fmt.Printf("\n[%s] pool %s graduated\n", label, result.Receipt.PoolID[:12])
	fmt.Printf("  venue pool:     %s\n", result.VenuePoolID)
	fmt.Printf("  total liquidity: %d (creator %d, community %d)\n",
		result.Receipt.TotalLiquidity, result.Receipt.CreatorShare, result.Receipt.CommunityShare)
	if result.StakingPool != nil {
		fmt.Printf("  staking pool:   %s (funded %d)\n",
			result.StakingPool.StakingPoolID, result.StakingPool.FundingTokens)
	}
	if result.DAO != nil {
		fmt.Printf("  dao:            %s\n", result.DAO.DAOID)
	}
}

// randomAddress generates a fresh base58 32-byte address.
func randomAddress() domain.Address {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	return domain.Address(base58.Encode(buf[:]))
}
