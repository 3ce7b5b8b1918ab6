package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// memoryStore keeps the ownership ledger in process memory. It is the
// store of record for the memory storage backend and the default for
// tests and local development.
type memoryStore struct {
	mu      sync.Mutex
	entries []domain.InventoryEntry
	owned   map[int]int // catalogID -> index into entries

	notifier notifier
}

// NewMemoryStore creates an empty in-memory ownership ledger
func NewMemoryStore() Store {
	return &memoryStore{owned: make(map[int]int)}
}

func (s *memoryStore) ListOwned(ctx context.Context) ([]domain.InventoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntries(s.entries), nil
}

func (s *memoryStore) TryAcquire(ctx context.Context, catalogID int) (*AcquireResult, error) {
	s.mu.Lock()
	if idx, ok := s.owned[catalogID]; ok {
		existing := s.entries[idx]
		s.mu.Unlock()
		return &AcquireResult{Granted: false, Entry: existing}, nil
	}

	entry := domain.InventoryEntry{
		EntryID:    uuid.NewString(),
		CatalogID:  catalogID,
		AcquiredAt: time.Now().UTC(),
	}
	s.entries = append(s.entries, entry)
	s.owned[catalogID] = len(s.entries) - 1
	snapshot := copyEntries(s.entries)
	s.mu.Unlock()

	s.notifier.publish(snapshot)
	return &AcquireResult{Granted: true, Entry: entry}, nil
}

func (s *memoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = nil
	s.owned = make(map[int]int)
	s.mu.Unlock()

	s.notifier.publish(nil)
	return nil
}

func (s *memoryStore) Subscribe(fn func([]domain.InventoryEntry)) func() {
	s.mu.Lock()
	snapshot := copyEntries(s.entries)
	s.mu.Unlock()

	return s.notifier.subscribe(fn, snapshot)
}
