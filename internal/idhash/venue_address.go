package idhash

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// DeriveVenuePoolAddress derives a deterministic venue pool address from
// seed material, using the Solana PDA algorithm so the result can never
// collide with a real keypair:
//  1. Concatenate all seeds with a bump byte
//  2. Append a domain-separation marker
//  3. SHA256 hash
//  4. Keep the first bump whose hash is off the ed25519 curve
//
// Returns empty string if no valid bump exists (practically unreachable).
func DeriveVenuePoolAddress(seeds ...[]byte) string {
	for bump := byte(255); bump > 0; bump-- {
		data := make([]byte, 0)
		for _, seed := range seeds {
			data = append(data, seed...)
		}
		data = append(data, bump)
		data = append(data, []byte("VenuePoolAddress")...)

		hash := sha256.Sum256(data)

		if !isOnCurve(hash[:]) {
			return base58.Encode(hash[:])
		}
	}

	return ""
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
