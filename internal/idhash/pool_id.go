package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"solana-launchpad/internal/domain"
)

// ComputePoolID computes a deterministic pool identifier using SHA256.
// Formula: SHA256(mint|creator|created_at)
// Returns hex-encoded hash (64 characters).
func ComputePoolID(mint, creator domain.Address, createdAt int64) string {
	data := fmt.Sprintf("%s|%s|%d", mint, creator, createdAt)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ComputeReceiptID computes a deterministic receipt identifier using SHA256.
// Formula: SHA256(pool_id|venue_id|venue_pool_id|graduated_at)
// Returns hex-encoded hash (64 characters).
func ComputeReceiptID(poolID string, venueID domain.VenueID, venuePoolID string, graduatedAt int64) string {
	data := fmt.Sprintf("%s|%s|%s|%d", poolID, venueID, venuePoolID, graduatedAt)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
