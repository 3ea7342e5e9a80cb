package domain

import (
	"errors"

	"github.com/mr-tron/base58"
)

// Address is a base58-encoded 32-byte account address (ed25519 key material
// or a derived program address).
type Address string

// ZeroAddress is the unset address value.
const ZeroAddress Address = ""

// ErrInvalidAddress is returned when an address is not valid base58 of the
// expected length.
var ErrInvalidAddress = errors.New("invalid address")

// Validate checks that the address decodes to exactly 32 bytes.
func (a Address) Validate() error {
	decoded, err := base58.Decode(string(a))
	if err != nil {
		return ErrInvalidAddress
	}
	if len(decoded) != 32 {
		return ErrInvalidAddress
	}
	return nil
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
