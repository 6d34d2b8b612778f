package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/storage"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestStoreWritesThroughOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	store := NewStore(ctx, st, testLogger())

	require.NoError(t, store.AddItem(ctx, line("P1", "M", "Red", 50000, 1)))

	data, err := st.Get(ctx, storageKey)
	require.NoError(t, err)

	var saved Snapshot
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Len(t, saved, 1)
	assert.Equal(t, 1, saved[0].Quantity)

	require.NoError(t, store.Clear(ctx))

	data, err = st.Get(ctx, storageKey)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Empty(t, saved)
}

func TestStoreRestoresPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()

	first := NewStore(ctx, st, testLogger())
	require.NoError(t, first.AddItem(ctx, line("P1", "M", "Red", 50000, 2)))
	require.NoError(t, first.AddItem(ctx, line("P2", "", "", 30000, 1)))

	// A fresh store over the same substrate sees the same cart.
	second := NewStore(ctx, st, testLogger())
	assert.Equal(t, first.Lines(), second.Lines())
	assert.Equal(t, int64(130000), second.Total())
	assert.Equal(t, 3, second.Count())
}

func TestStoreStartsEmptyOnCorruptData(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "not json", data: []byte("{{{")},
		{name: "not an array", data: []byte(`{"id": 5}`)},
		{name: "array of wrong type", data: []byte(`[42]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, st.Set(ctx, storageKey, tt.data))

			store := NewStore(ctx, st, testLogger())
			assert.Empty(t, store.Lines())

			// The store stays usable after a corrupt restore.
			require.NoError(t, store.AddItem(ctx, line("P1", "", "", 100, 1)))
			assert.Equal(t, 1, store.Count())
		})
	}
}

func TestStoreStartsEmptyWithNoSavedCart(t *testing.T) {
	store := NewStore(context.Background(), storage.NewMemoryStore(), testLogger())
	assert.Empty(t, store.Lines())
	assert.Equal(t, int64(0), store.Total())
}

func TestStoreAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, storage.NewMemoryStore(), testLogger())

	assert.Error(t, store.AddItem(ctx, line("P1", "", "", 100, 0)))
	assert.Error(t, store.AddItem(ctx, line("P1", "", "", 100, -2)))
	assert.Empty(t, store.Lines())
}

func TestStoreMergeScenario(t *testing.T) {
	// Adding P1/M/Red x1 then P1/M/Red x2 at Rs 500 yields one line,
	// quantity 3, total Rs 1500.
	ctx := context.Background()
	store := NewStore(ctx, storage.NewMemoryStore(), testLogger())

	require.NoError(t, store.AddItem(ctx, line("P1", "M", "Red", 50000, 1)))
	require.NoError(t, store.AddItem(ctx, line("P1", "M", "Red", 50000, 2)))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, int64(150000), store.Total())
}

func TestStoreLinesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, storage.NewMemoryStore(), testLogger())
	require.NoError(t, store.AddItem(ctx, line("P1", "", "", 100, 1)))

	lines := store.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, store.Lines()[0].Quantity)
}

// flakyStore fails writes on demand
type flakyStore struct {
	*storage.MemoryStore
	failSet bool
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("substrate unavailable")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestStoreKeepsSnapshotWhenWriteThroughFails(t *testing.T) {
	ctx := context.Background()
	st := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	store := NewStore(ctx, st, testLogger())
	require.NoError(t, store.AddItem(ctx, line("P1", "M", "Red", 50000, 1)))

	st.failSet = true
	require.Error(t, store.AddItem(ctx, line("P1", "M", "Red", 50000, 2)))

	// The failed mutation is not visible in memory or in the substrate.
	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	data, err := st.Get(ctx, storageKey)
	require.NoError(t, err)
	var saved Snapshot
	require.NoError(t, json.Unmarshal(data, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, 1, saved[0].Quantity)

	// Once the substrate recovers, the retried mutation applies cleanly.
	st.failSet = false
	require.NoError(t, store.AddItem(ctx, line("P1", "M", "Red", 50000, 2)))
	assert.Equal(t, 3, store.Count())
}

func TestStorePersistenceRoundTripIsLossless(t *testing.T) {
	original := Snapshot{
		line("P1", "M", "Red", 50000, 3),
		line("P2", "", "", 120050, 1),
	}
	original[1].Image = "p2.jpg"
	original[1].MaxQuantity = 10

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Snapshot
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, original, restored)
}
