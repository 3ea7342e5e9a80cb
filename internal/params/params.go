// Package params holds the platform Parameter Set: versioned, admin-gated
// configuration consumed read-only by the graduation protocol. All setters
// validate ranges at set time; getters never re-validate.
package params

import (
	"errors"
	"fmt"
	"sync"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/domain"
)

// BpsDenominator is the basis-point scale: 10000 bps = 100%.
const BpsDenominator = 10000

// Hard caps enforced at set time.
const (
	// MaxGraduationFeeBps caps the graduation fee at 10%.
	MaxGraduationFeeBps = 1000
	// MaxCreatorGraduationBps caps the creator token share at 5%.
	MaxCreatorGraduationBps = 500
	// MinPlatformGraduationBps floors the platform token share at 2.5%.
	MinPlatformGraduationBps = 250
	// MaxPlatformGraduationBps caps the platform token share at 5%.
	MaxPlatformGraduationBps = 500
	// MaxStakingAllocationBps caps the staking earmark at 50% of remaining tokens.
	MaxStakingAllocationBps = 5000
)

// Configuration errors.
var (
	ErrFeeTooHigh                = errors.New("graduation fee exceeds cap")
	ErrCreatorShareTooHigh       = errors.New("creator graduation share exceeds cap")
	ErrPlatformShareOutOfRange   = errors.New("platform graduation share out of range")
	ErrLPSplitExceedsTotal       = errors.New("lp split shares exceed 10000 bps")
	ErrStakingAllocationTooHigh  = errors.New("staking allocation exceeds cap")
	ErrInvalidDestination        = errors.New("invalid destination selector")
	ErrVenueNotConfigured        = errors.New("venue not configured")
	ErrZeroThreshold             = errors.New("graduation threshold must be positive")
	ErrZeroDuration              = errors.New("duration must be positive")
	ErrQuorumOutOfRange          = errors.New("quorum bps out of range")
)

// StakingParams configures staking pools created at graduation.
type StakingParams struct {
	EnabledByDefault bool
	AllocationBps    uint16 // share of post-allocation tokens earmarked for staking
	RewardRateBps    uint16 // annualized reward rate
	DurationMs       int64  // reward emission duration
	MinStakeMs       int64  // minimum stake duration
	UnstakeFeeBps    uint16 // early-unstake fee
}

// DAOParams configures DAOs created at graduation.
type DAOParams struct {
	Enabled        bool
	CouncilSize    uint8
	QuorumBps      uint16
	VotingPeriodMs int64
}

// Set is the versioned platform Parameter Set. All mutation goes through
// admin-gated setters; reads are lock-protected and validation-free.
type Set struct {
	mu      sync.RWMutex
	admin   *auth.AdminCap
	version uint64

	graduationThreshold   uint64 // base units required to graduate
	minPostFeeLiquidity   uint64 // minimum base units after the graduation fee
	graduationFeeBps      uint16
	creatorGraduationBps  uint16
	platformGraduationBps uint16

	// LP output split, applied at venue completion.
	creatorLPBps   uint16
	platformLPBps  uint16
	communityLPBps uint16

	staking StakingParams
	dao     DAOParams

	venueID          domain.VenueID
	venueAddresses   map[domain.VenueID]domain.Address
	platformTreasury domain.Address
	daoTreasury      domain.Address

	stakingAdminDestination domain.AdminDestination
	daoAdminDestination     domain.AdminDestination

	// Per-pool overrides, keyed by pool ID. Override present wins over the
	// platform default.
	stakingEnabledOverride map[string]bool
}

// NewSet creates a Parameter Set owned by the given admin capability, with
// platform defaults. Treasury addresses are required up front because fee
// routing has no fallback.
func NewSet(admin *auth.AdminCap, platformTreasury, daoTreasury domain.Address) (*Set, error) {
	if err := platformTreasury.Validate(); err != nil {
		return nil, fmt.Errorf("platform treasury: %w", err)
	}
	if err := daoTreasury.Validate(); err != nil {
		return nil, fmt.Errorf("dao treasury: %w", err)
	}

	return &Set{
		admin:   admin,
		version: 1,

		graduationThreshold:   69_000_000_000, // 69 SOL in lamports
		minPostFeeLiquidity:   1_000_000_000,
		graduationFeeBps:      500,
		creatorGraduationBps:  100,
		platformGraduationBps: 250,

		creatorLPBps:   500,
		platformLPBps:  500,
		communityLPBps: 9000,

		staking: StakingParams{
			EnabledByDefault: false,
			AllocationBps:    1000,
			RewardRateBps:    500,
			DurationMs:       180 * 24 * 60 * 60 * 1000,
			MinStakeMs:       7 * 24 * 60 * 60 * 1000,
			UnstakeFeeBps:    100,
		},
		dao: DAOParams{
			Enabled:        false,
			CouncilSize:    5,
			QuorumBps:      2000,
			VotingPeriodMs: 3 * 24 * 60 * 60 * 1000,
		},

		venueID:          domain.VenueAMM,
		venueAddresses:   make(map[domain.VenueID]domain.Address),
		platformTreasury: platformTreasury,
		daoTreasury:      daoTreasury,

		stakingAdminDestination: domain.DestinationPlatformTreasury,
		daoAdminDestination:     domain.DestinationCreator,

		stakingEnabledOverride: make(map[string]bool),
	}, nil
}

func (s *Set) authorize(cap *auth.AdminCap) error {
	return s.admin.Verify(cap)
}

func (s *Set) bump() {
	s.version++
}

// Version returns the current parameter version.
func (s *Set) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
