package domain

// GraduationReceipt is the immutable record produced by completing a
// graduation. Created only by the completion finalizer, one per pool.
// Corresponds to graduation_receipts table in PostgreSQL.
type GraduationReceipt struct {
	ReceiptID      string  // deterministic hash, PRIMARY KEY
	PoolID         string  // graduated pool
	VenueID        VenueID // destination venue family
	VenuePoolID    string  // venue pool or position-manager identifier
	TotalLiquidity uint64  // total liquidity output (LP amount or summed position liquidity)
	CreatorShare   uint64  // creator's portion of the liquidity output
	CommunityShare uint64  // community (locked) portion
	GraduatedAt    int64   // Unix timestamp in milliseconds
}

// RegistryEntry is the permanent per-pool record in the graduation registry.
// Created once at pool registration, updated exactly once at graduation
// completion, never deleted.
type RegistryEntry struct {
	PoolID       string
	Mint         Address
	Creator      Address
	ReceiptID    string // empty until graduation completes
	RegisteredAt int64  // Unix timestamp in milliseconds
	GraduatedAt  int64  // 0 until graduation completes
}

// Graduated reports whether the entry has been finalized.
func (e *RegistryEntry) Graduated() bool {
	return e.ReceiptID != ""
}

// RegistryCounters are the registry-wide aggregate counters.
type RegistryCounters struct {
	TotalPools     uint64
	TotalGraduated uint64
}
