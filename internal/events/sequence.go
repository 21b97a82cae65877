package events

import (
	"context"
	"errors"
	"sync"
)

// SequenceSource hands out per-partition monotonic sequence numbers so
// consumers can detect gaps and reorderings.
type SequenceSource interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type memorySequence struct {
	mu   sync.Mutex
	last map[string]int64
}

func NewMemorySequence() SequenceSource {
	return &memorySequence{last: make(map[string]int64)}
}

func (s *memorySequence) NextSequence(_ context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, errors.New("events: partition key must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last[partitionKey]++
	return s.last[partitionKey], nil
}
