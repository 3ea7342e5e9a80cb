package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/storage"
	"solana-launchpad/internal/storage/postgres"
)

func testEntry(n int) *domain.RegistryEntry {
	return &domain.RegistryEntry{
		PoolID:       fmt.Sprintf("pool-%03d", n),
		Mint:         domain.Address(fmt.Sprintf("Mint%03d", n)),
		Creator:      domain.Address(fmt.Sprintf("Creator%03d", n)),
		RegisteredAt: 1_700_000_000_000 + int64(n),
	}
}

func TestRegistryStore_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewRegistryStore(pool)
	ctx := context.Background()

	entry := testEntry(1)
	require.NoError(t, store.Insert(ctx, entry))

	got, err := store.GetByPoolID(ctx, entry.PoolID)
	require.NoError(t, err)

	assert.Equal(t, entry.PoolID, got.PoolID)
	assert.Equal(t, entry.Mint, got.Mint)
	assert.Equal(t, entry.Creator, got.Creator)
	assert.Empty(t, got.ReceiptID)
	assert.Equal(t, entry.RegisteredAt, got.RegisteredAt)
	assert.Zero(t, got.GraduatedAt)
	assert.False(t, got.Graduated())
}

func TestRegistryStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewRegistryStore(pool)
	ctx := context.Background()

	entry := testEntry(1)
	require.NoError(t, store.Insert(ctx, entry))

	err := store.Insert(ctx, entry)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestRegistryStore_GetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewRegistryStore(pool)

	_, err := store.GetByPoolID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRegistryStore_Finalize(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewRegistryStore(pool)
	ctx := context.Background()

	entry := testEntry(1)
	require.NoError(t, store.Insert(ctx, entry))

	err := store.Finalize(ctx, entry.PoolID, "receipt-001", 1_700_000_100_000)
	require.NoError(t, err)

	got, err := store.GetByPoolID(ctx, entry.PoolID)
	require.NoError(t, err)
	assert.Equal(t, "receipt-001", got.ReceiptID)
	assert.Equal(t, int64(1_700_000_100_000), got.GraduatedAt)
	assert.True(t, got.Graduated())

	// Second finalization must be rejected, even with a different receipt.
	err = store.Finalize(ctx, entry.PoolID, "receipt-002", 1_700_000_200_000)
	assert.ErrorIs(t, err, storage.ErrAlreadyFinalized)

	got, err = store.GetByPoolID(ctx, entry.PoolID)
	require.NoError(t, err)
	assert.Equal(t, "receipt-001", got.ReceiptID)
}

func TestRegistryStore_FinalizeMissingPool(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewRegistryStore(pool)

	err := store.Finalize(context.Background(), "missing", "receipt-001", 1_700_000_100_000)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRegistryStore_GetGraduatedOrdering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewRegistryStore(pool)
	ctx := context.Background()

	for n := 1; n <= 5; n++ {
		require.NoError(t, store.Insert(ctx, testEntry(n)))
	}

	// Finalize three entries out of insertion order.
	require.NoError(t, store.Finalize(ctx, "pool-003", "receipt-003", 1_700_000_300_000))
	require.NoError(t, store.Finalize(ctx, "pool-001", "receipt-001", 1_700_000_100_000))
	require.NoError(t, store.Finalize(ctx, "pool-005", "receipt-005", 1_700_000_500_000))

	graduated, err := store.GetGraduated(ctx)
	require.NoError(t, err)
	require.Len(t, graduated, 3)

	assert.Equal(t, "pool-001", graduated[0].PoolID)
	assert.Equal(t, "pool-003", graduated[1].PoolID)
	assert.Equal(t, "pool-005", graduated[2].PoolID)

	counters, err := store.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), counters.TotalPools)
	assert.Equal(t, uint64(3), counters.TotalGraduated)
}

func TestRegistryStore_InsertInvalid(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewRegistryStore(pool)
	ctx := context.Background()

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, &domain.RegistryEntry{}), storage.ErrInvalidInput)
}
