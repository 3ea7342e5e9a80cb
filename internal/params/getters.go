package params

import "solana-launchpad/internal/domain"

// GraduationThreshold returns the base-asset reserve required to graduate.
func (s *Set) GraduationThreshold() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graduationThreshold
}

// MinPostFeeLiquidity returns the minimum base-asset amount after fees.
func (s *Set) MinPostFeeLiquidity() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minPostFeeLiquidity
}

// GraduationFeeBps returns the graduation fee rate.
func (s *Set) GraduationFeeBps() uint16 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graduationFeeBps
}

// CreatorGraduationBps returns the creator token share taken at graduation.
func (s *Set) CreatorGraduationBps() uint16 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creatorGraduationBps
}

// PlatformGraduationBps returns the platform token share taken at graduation.
func (s *Set) PlatformGraduationBps() uint16 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.platformGraduationBps
}

// LPSplit returns the creator/platform/community LP output split.
func (s *Set) LPSplit() (creatorBps, platformBps, communityBps uint16) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creatorLPBps, s.platformLPBps, s.communityLPBps
}

// Staking returns the staking configuration.
func (s *Set) Staking() StakingParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staking
}

// DAO returns the DAO configuration.
func (s *Set) DAO() DAOParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dao
}

// VenueID returns the chosen destination venue family.
func (s *Set) VenueID() domain.VenueID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.venueID
}

// VenueAddress returns the configured address for a venue family, or the
// zero address if the venue is not configured.
func (s *Set) VenueAddress(venueID domain.VenueID) domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.venueAddresses[venueID]
}

// PlatformTreasury returns the platform treasury address.
func (s *Set) PlatformTreasury() domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.platformTreasury
}

// DAOTreasury returns the DAO treasury address.
func (s *Set) DAOTreasury() domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.daoTreasury
}

// StakingAdminDestination returns the routing selector for the staking-pool
// admin capability.
func (s *Set) StakingAdminDestination() domain.AdminDestination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stakingAdminDestination
}

// DAOAdminDestination returns the routing selector for the DAO admin
// capability.
func (s *Set) DAOAdminDestination() domain.AdminDestination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.daoAdminDestination
}

// StakingEnabledFor resolves staking enablement for a pool: per-pool
// override when present, else the platform default.
func (s *Set) StakingEnabledFor(poolID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if enabled, ok := s.stakingEnabledOverride[poolID]; ok {
		return enabled
	}
	return s.staking.EnabledByDefault
}
