package domain

// GraduationEvent is the PoolGraduated event emitted for external indexers
// when a migration completes.
type GraduationEvent struct {
	PoolID         string  `json:"pool_id"`
	Mint           Address `json:"mint"`
	VenueID        VenueID `json:"venue_id"`
	VenuePoolID    string  `json:"venue_pool_id"`
	TotalLiquidity uint64  `json:"total_liquidity"`
	CreatorShare   uint64  `json:"creator_share"`
	CommunityShare uint64  `json:"community_share"`
	Timestamp      int64   `json:"timestamp"` // Unix ms
}
