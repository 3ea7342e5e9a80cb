package graduation

import (
	"testing"

	"github.com/mr-tron/base58"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/bank"
	"solana-launchpad/internal/curve"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/params"
)

// testAddress returns a deterministic valid base58 address from a seed byte.
func testAddress(seed byte) domain.Address {
	var buf [32]byte
	for i := range buf {
		buf[i] = seed
	}
	return domain.Address(base58.Encode(buf[:]))
}

// testEnv bundles the components a coordinator test needs.
type testEnv struct {
	admin  *auth.AdminCap
	ledger *curve.Ledger
	book   *bank.Book
	params *params.Set
	coord  *Coordinator
}

// newTestEnv creates a coordinator wired to fresh components with a
// threshold of 69,000 and a minimum post-fee liquidity of 1,000.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	admin, err := auth.NewAdminCap()
	if err != nil {
		t.Fatalf("NewAdminCap failed: %v", err)
	}

	paramSet, err := params.NewSet(admin, testAddress(0xAA), testAddress(0xBB))
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	if err := paramSet.SetGraduationThreshold(admin, 69_000); err != nil {
		t.Fatalf("SetGraduationThreshold failed: %v", err)
	}
	if err := paramSet.SetMinPostFeeLiquidity(admin, 1_000); err != nil {
		t.Fatalf("SetMinPostFeeLiquidity failed: %v", err)
	}

	ledger := curve.NewLedger()
	book := bank.NewBook()

	return &testEnv{
		admin:  admin,
		ledger: ledger,
		book:   book,
		params: paramSet,
		coord:  NewCoordinator(admin, ledger, book, paramSet),
	}
}

// createPool creates a pool with the given reserves by recording a single
// fee-free buy, and returns its ID plus mint and creator addresses.
func (e *testEnv) createPool(t *testing.T, baseReserve, tokenReserve uint64) (string, domain.Address, domain.Address) {
	t.Helper()

	mint := testAddress(0x01)
	creator := testAddress(0x02)

	// Initial token supply covers both the final token reserve and the
	// amount bought into circulation.
	poolID, err := e.ledger.CreatePool(mint, creator, tokenReserve+baseReserve, 0, 1_700_000_000_000)
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}
	if baseReserve > 0 {
		if err := e.ledger.RecordBuy(poolID, baseReserve, baseReserve); err != nil {
			t.Fatalf("RecordBuy failed: %v", err)
		}
	}
	return poolID, mint, creator
}
