package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/readloop/internal/shared"
)

// MemorySlot keeps values in process memory.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemorySlot creates an empty [MemorySlot].
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string][]byte)}
}

// Read returns a copy of the value under key.
func (s *MemorySlot) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrSlotEmpty, key)
	}
	return append([]byte(nil), v...), nil
}

// Write stores a copy of value under key.
func (s *MemorySlot) Write(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op.
func (s *MemorySlot) Close() error { return nil }
