// Package auth implements bearer admin capabilities. Privileged operations
// take an explicit capability parameter checked by the callee, never ambient
// identity.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// ErrUnauthorized is returned when a presented capability does not match the
// one the resource was created with.
var ErrUnauthorized = errors.New("unauthorized: admin capability mismatch")

// AdminCap is an unforgeable bearer token granting admin rights over the
// resource it was issued for. The secret is never exposed; only Verify and
// ID are available to callers.
type AdminCap struct {
	secret [32]byte
}

// NewAdminCap issues a fresh capability with a random secret.
func NewAdminCap() (*AdminCap, error) {
	cap := &AdminCap{}
	if _, err := rand.Read(cap.secret[:]); err != nil {
		return nil, fmt.Errorf("generate capability secret: %w", err)
	}
	return cap, nil
}

// ID returns the base58-encoded capability identifier, safe to log.
func (c *AdminCap) ID() string {
	// Identifier is the secret's prefix only; it cannot be replayed.
	return base58.Encode(c.secret[:8])
}

// Verify checks that other is the same capability, in constant time.
func (c *AdminCap) Verify(other *AdminCap) error {
	if c == nil || other == nil {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare(c.secret[:], other.secret[:]) != 1 {
		return ErrUnauthorized
	}
	return nil
}
