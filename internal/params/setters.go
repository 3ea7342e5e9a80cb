package params

import (
	"fmt"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/domain"
)

// SetGraduationThreshold sets the base-asset reserve required to graduate.
func (s *Set) SetGraduationThreshold(cap *auth.AdminCap, threshold uint64) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if threshold == 0 {
		return ErrZeroThreshold
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graduationThreshold = threshold
	s.bump()
	return nil
}

// SetMinPostFeeLiquidity sets the minimum base-asset amount that must remain
// after the graduation fee.
func (s *Set) SetMinPostFeeLiquidity(cap *auth.AdminCap, min uint64) error {
	if err := s.authorize(cap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.minPostFeeLiquidity = min
	s.bump()
	return nil
}

// SetGraduationFeeBps sets the graduation fee, capped at MaxGraduationFeeBps.
func (s *Set) SetGraduationFeeBps(cap *auth.AdminCap, bps uint16) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if bps > MaxGraduationFeeBps {
		return ErrFeeTooHigh
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graduationFeeBps = bps
	s.bump()
	return nil
}

// SetGraduationShares sets the creator and platform token shares taken at
// graduation. Creator is capped; platform is range-bounded.
func (s *Set) SetGraduationShares(cap *auth.AdminCap, creatorBps, platformBps uint16) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if creatorBps > MaxCreatorGraduationBps {
		return ErrCreatorShareTooHigh
	}
	if platformBps < MinPlatformGraduationBps || platformBps > MaxPlatformGraduationBps {
		return ErrPlatformShareOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creatorGraduationBps = creatorBps
	s.platformGraduationBps = platformBps
	s.bump()
	return nil
}

// SetLPSplit sets the creator/platform/community split applied to the venue
// liquidity output. The shares must sum to exactly 10000 bps.
func (s *Set) SetLPSplit(cap *auth.AdminCap, creatorBps, platformBps, communityBps uint16) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if int(creatorBps)+int(platformBps)+int(communityBps) != BpsDenominator {
		return ErrLPSplitExceedsTotal
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creatorLPBps = creatorBps
	s.platformLPBps = platformBps
	s.communityLPBps = communityBps
	s.bump()
	return nil
}

// SetStakingParams replaces the staking configuration.
func (s *Set) SetStakingParams(cap *auth.AdminCap, p StakingParams) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if p.AllocationBps > MaxStakingAllocationBps {
		return ErrStakingAllocationTooHigh
	}
	if p.EnabledByDefault && (p.DurationMs <= 0 || p.MinStakeMs <= 0) {
		return ErrZeroDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.staking = p
	s.bump()
	return nil
}

// SetDAOParams replaces the DAO configuration.
func (s *Set) SetDAOParams(cap *auth.AdminCap, p DAOParams) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if p.QuorumBps == 0 || p.QuorumBps > BpsDenominator {
		return ErrQuorumOutOfRange
	}
	if p.Enabled && p.VotingPeriodMs <= 0 {
		return ErrZeroDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dao = p
	s.bump()
	return nil
}

// SetVenue selects the destination venue family for graduations.
// The venue must already have a configured address.
func (s *Set) SetVenue(cap *auth.AdminCap, venueID domain.VenueID) error {
	if err := s.authorize(cap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.venueAddresses[venueID]; !ok {
		return fmt.Errorf("%w: %s", ErrVenueNotConfigured, venueID)
	}
	s.venueID = venueID
	s.bump()
	return nil
}

// ConfigureVenueAddress registers the on-venue program address for a venue
// family. A zero address de-configures the venue.
func (s *Set) ConfigureVenueAddress(cap *auth.AdminCap, venueID domain.VenueID, addr domain.Address) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if !addr.IsZero() {
		if err := addr.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if addr.IsZero() {
		delete(s.venueAddresses, venueID)
	} else {
		s.venueAddresses[venueID] = addr
	}
	s.bump()
	return nil
}

// SetStakingAdminDestination selects who receives the staking-pool admin
// capability at graduation. Out-of-range selectors are rejected here, never
// at graduation time.
func (s *Set) SetStakingAdminDestination(cap *auth.AdminCap, dest domain.AdminDestination) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if !dest.Valid() {
		return ErrInvalidDestination
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakingAdminDestination = dest
	s.bump()
	return nil
}

// SetDAOAdminDestination selects who receives the DAO admin capability.
func (s *Set) SetDAOAdminDestination(cap *auth.AdminCap, dest domain.AdminDestination) error {
	if err := s.authorize(cap); err != nil {
		return err
	}
	if !dest.Valid() {
		return ErrInvalidDestination
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.daoAdminDestination = dest
	s.bump()
	return nil
}

// SetPoolStakingOverride sets a per-pool staking enablement override.
func (s *Set) SetPoolStakingOverride(cap *auth.AdminCap, poolID string, enabled bool) error {
	if err := s.authorize(cap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakingEnabledOverride[poolID] = enabled
	s.bump()
	return nil
}

// ClearPoolStakingOverride removes a per-pool override, restoring the
// platform default.
func (s *Set) ClearPoolStakingOverride(cap *auth.AdminCap, poolID string) error {
	if err := s.authorize(cap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stakingEnabledOverride, poolID)
	s.bump()
	return nil
}
