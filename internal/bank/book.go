// Package bank tracks account balances for the base asset and launched
// tokens. Graduation transfers (fees, creator and platform allocations,
// venue funding) settle through a Book.
package bank

import (
	"errors"
	"sync"

	"solana-launchpad/internal/domain"
)

// Balance errors.
var (
	// ErrInsufficientBalance is returned when a debit exceeds the account balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAmountOverflow is returned when a credit would overflow uint64.
	ErrAmountOverflow = errors.New("amount overflow")
)

type tokenKey struct {
	owner domain.Address
	mint  domain.Address
}

// Book is a mutex-guarded balance ledger. All amounts are integer base units.
type Book struct {
	mu     sync.RWMutex
	base   map[domain.Address]uint64
	tokens map[tokenKey]uint64
}

// NewBook creates an empty balance book.
func NewBook() *Book {
	return &Book{
		base:   make(map[domain.Address]uint64),
		tokens: make(map[tokenKey]uint64),
	}
}

// CreditBase adds base-asset units to an account.
func (b *Book) CreditBase(owner domain.Address, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.base[owner]
	if cur+amount < cur {
		return ErrAmountOverflow
	}
	b.base[owner] = cur + amount
	return nil
}

// DebitBase removes base-asset units from an account.
func (b *Book) DebitBase(owner domain.Address, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.base[owner]
	if cur < amount {
		return ErrInsufficientBalance
	}
	b.base[owner] = cur - amount
	return nil
}

// BaseBalance returns an account's base-asset balance.
func (b *Book) BaseBalance(owner domain.Address) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.base[owner]
}

// CreditToken adds token units of a mint to an account.
func (b *Book) CreditToken(owner, mint domain.Address, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := tokenKey{owner: owner, mint: mint}
	cur := b.tokens[key]
	if cur+amount < cur {
		return ErrAmountOverflow
	}
	b.tokens[key] = cur + amount
	return nil
}

// DebitToken removes token units of a mint from an account.
func (b *Book) DebitToken(owner, mint domain.Address, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := tokenKey{owner: owner, mint: mint}
	cur := b.tokens[key]
	if cur < amount {
		return ErrInsufficientBalance
	}
	b.tokens[key] = cur - amount
	return nil
}

// TokenBalance returns an account's balance of a mint.
func (b *Book) TokenBalance(owner, mint domain.Address) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tokens[tokenKey{owner: owner, mint: mint}]
}

// Snapshot captures the full balance state for batch rollback.
func (b *Book) Snapshot() *BookSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := &BookSnapshot{
		base:   make(map[domain.Address]uint64, len(b.base)),
		tokens: make(map[tokenKey]uint64, len(b.tokens)),
	}
	for k, v := range b.base {
		snap.base[k] = v
	}
	for k, v := range b.tokens {
		snap.tokens[k] = v
	}
	return snap
}

// Restore replaces the book's state with a previously captured snapshot.
func (b *Book) Restore(snap *BookSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.base = make(map[domain.Address]uint64, len(snap.base))
	b.tokens = make(map[tokenKey]uint64, len(snap.tokens))
	for k, v := range snap.base {
		b.base[k] = v
	}
	for k, v := range snap.tokens {
		b.tokens[k] = v
	}
}

// BookSnapshot is an opaque point-in-time copy of a Book's balances.
type BookSnapshot struct {
	base   map[domain.Address]uint64
	tokens map[tokenKey]uint64
}
