package curve

// PoolStateSnapshot is an opaque point-in-time copy of one pool's mutable
// state, captured before a migration batch so a failed batch can roll the
// ledger back.
type PoolStateSnapshot struct {
	poolID string
	state  poolState
}

// CaptureState copies the pool's full mutable state for rollback.
func (l *Ledger) CaptureState(poolID string) (*PoolStateSnapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.pools[poolID]
	if !ok {
		return nil, ErrPoolNotFound
	}
	return &PoolStateSnapshot{poolID: poolID, state: *p}, nil
}

// RestoreState replaces the pool's state with a previously captured copy.
// This is the rollback half of the all-or-nothing migration batch; it is
// never called outside a failed batch.
func (l *Ledger) RestoreState(snap *PoolStateSnapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.pools[snap.poolID]; !ok {
		return ErrPoolNotFound
	}
	restored := snap.state
	l.pools[snap.poolID] = &restored
	return nil
}
