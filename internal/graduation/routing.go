package graduation

import (
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/params"
)

// ResolveDestination maps an admin-destination selector to a concrete
// address. Selectors are validated when configured, so an unknown value here
// is a corrupted Parameter Set; returning the platform treasury keeps the
// value custodied rather than lost, and the selector setter makes the case
// unreachable.
func ResolveDestination(dest domain.AdminDestination, creator domain.Address, p *params.Set) domain.Address {
	switch dest {
	case domain.DestinationCreator:
		return creator
	case domain.DestinationDAOTreasury:
		return p.DAOTreasury()
	case domain.DestinationPlatformTreasury:
		return p.PlatformTreasury()
	default:
		return p.PlatformTreasury()
	}
}
