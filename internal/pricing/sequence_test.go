package pricing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextContractNumber_SequentialWithinPeriod(t *testing.T) {
	store := NewMemorySequenceStore()
	at := time.Date(2026, time.February, 16, 12, 0, 0, 0, time.UTC)

	want := []string{"MSAN/001/02/2026", "MSAN/002/02/2026", "MSAN/003/02/2026"}
	for _, w := range want {
		got, err := NextContractNumber(context.Background(), store, at)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
}

func TestNextContractNumber_NewPeriodResets(t *testing.T) {
	store := NewMemorySequenceStore()
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := NextContractNumber(context.Background(), store, feb)
		require.NoError(t, err)
	}

	got, err := NextContractNumber(context.Background(), store, mar)
	require.NoError(t, err)
	assert.Equal(t, "MSAN/001/03/2026", got)

	// The old period keeps counting where it left off.
	got, err = NextContractNumber(context.Background(), store, feb)
	require.NoError(t, err)
	assert.Equal(t, "MSAN/004/02/2026", got)
}

func TestPeriodKey(t *testing.T) {
	assert.Equal(t, "2026_02", PeriodKey(time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025_12", PeriodKey(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)))
}

func TestMemorySequenceStore_ConcurrentCallersGetDistinctValues(t *testing.T) {
	store := NewMemorySequenceStore()

	const callers = 50
	var wg sync.WaitGroup
	results := make(chan int64, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := store.Next(context.Background(), "2026_02")
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool)
	for n := range results {
		assert.False(t, seen[n], "duplicate counter value %d", n)
		seen[n] = true
	}
	assert.Len(t, seen, callers)
}
