package cache

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// MemoryStore process-wide in-memory store.
// Records are cloned on both Set and Get so callers never share slices with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.DateAvailabilityRecord
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.DateAvailabilityRecord)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (domain.DateAvailabilityRecord, bool, error) {
	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()

	if !ok {
		return domain.DateAvailabilityRecord{}, false, nil
	}
	return record.Clone(), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, record domain.DateAvailabilityRecord) error {
	s.mu.Lock()
	s.records[key] = record.Clone()
	s.mu.Unlock()
	return nil
}
