package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ContractNumberPrefix is the fixed prefix of generated contract numbers.
const ContractNumberPrefix = "MSAN"

// SequenceStore hands out monotonically increasing counters per key.
// Next must be atomic: two concurrent callers may never receive the same
// value for the same key.
type SequenceStore interface {
	Next(ctx context.Context, key string) (int64, error)
}

// PeriodKey returns the year+month sequence key for a point in time,
// e.g. "2026_08". Contract counters are scoped to this key and restart
// at 1 in each new period.
func PeriodKey(at time.Time) string {
	return fmt.Sprintf("%d_%02d", at.Year(), int(at.Month()))
}

// NextContractNumber issues the next contract number for the period of
// at, formatted as MSAN/{counter:3}/{month:2}/{year}.
func NextContractNumber(ctx context.Context, store SequenceStore, at time.Time) (string, error) {
	n, err := store.Next(ctx, PeriodKey(at))
	if err != nil {
		return "", fmt.Errorf("failed to advance contract sequence: %w", err)
	}
	return fmt.Sprintf("%s/%03d/%02d/%d", ContractNumberPrefix, n, int(at.Month()), at.Year()), nil
}

// MemorySequenceStore is a mutex-guarded in-process SequenceStore for
// single-instance deployments and tests. Multi-instance deployments use
// the Redis-backed store instead.
type MemorySequenceStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemorySequenceStore() *MemorySequenceStore {
	return &MemorySequenceStore{counters: make(map[string]int64)}
}

func (s *MemorySequenceStore) Next(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}
