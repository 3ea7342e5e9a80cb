package domain

// PoolSnapshot is the Pricing Ledger state read at graduation time.
// All amounts are in integer base units (lamports for the base asset,
// raw token units for the token side).
type PoolSnapshot struct {
	PoolID            string  // deterministic pool identifier
	Mint              Address // token mint address
	Creator           Address // pool creator
	BaseReserve       uint64  // base-asset reserve accumulated by the curve
	TokenReserve      uint64  // token reserve remaining on the curve
	CirculatingSupply uint64  // tokens sold into circulation
	TradeFeeBps       uint16  // per-trade fee rate
	Paused            bool
	Graduated         bool // monotonic false→true, set exactly once
}

// VenueID identifies a destination venue family for graduated liquidity.
type VenueID string

// Destination venue families.
const (
	// VenueAMM is the fungible-LP constant-product AMM family.
	VenueAMM VenueID = "AMM"
	// VenueCLMM is the concentrated-liquidity position-manager family.
	VenueCLMM VenueID = "CLMM"
)

// AdminDestination selects who receives operational control of a sub-flow
// artifact (staking-pool admin, DAO admin) created at graduation.
type AdminDestination uint8

const (
	// DestinationCreator routes the capability to the pool creator.
	DestinationCreator AdminDestination = 0
	// DestinationDAOTreasury routes the capability to the DAO treasury.
	DestinationDAOTreasury AdminDestination = 1
	// DestinationPlatformTreasury routes the capability to the platform treasury.
	DestinationPlatformTreasury AdminDestination = 2
)

// Valid reports whether the selector is one of the three defined routes.
func (d AdminDestination) Valid() bool {
	return d <= DestinationPlatformTreasury
}

func (d AdminDestination) String() string {
	switch d {
	case DestinationCreator:
		return "creator"
	case DestinationDAOTreasury:
		return "dao_treasury"
	case DestinationPlatformTreasury:
		return "platform_treasury"
	default:
		return "invalid"
	}
}
