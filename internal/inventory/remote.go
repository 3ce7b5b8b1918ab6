package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/repository"
)

// remoteStore backs the ownership ledger with an authoritative remote
// repository. A local snapshot cache feeds subscriber replay; all
// ownership decisions defer to the repository, whose create-if-absent
// write closes the race between concurrent acquisitions of the same
// catalog item.
type remoteStore struct {
	userID string
	repo   repository.Inventory

	mu    sync.Mutex
	cache []domain.InventoryEntry

	notifier notifier
}

// NewRemoteStore creates a ledger for one player backed by repo
func NewRemoteStore(userID string, repo repository.Inventory) Store {
	return &remoteStore{userID: userID, repo: repo}
}

func (s *remoteStore) ListOwned(ctx context.Context) ([]domain.InventoryEntry, error) {
	entries, err := s.repo.ListEntries(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory entries: %w", err)
	}

	s.mu.Lock()
	s.cache = copyEntries(entries)
	s.mu.Unlock()

	return entries, nil
}

func (s *remoteStore) TryAcquire(ctx context.Context, catalogID int) (*AcquireResult, error) {
	entry := domain.InventoryEntry{
		EntryID:    uuid.NewString(),
		CatalogID:  catalogID,
		AcquiredAt: time.Now().UTC(),
	}

	// The repository re-checks existence at write time, so two rapid
	// acquisitions of the same catalog item resolve to one row and the
	// loser sees the winner's entry.
	inserted, authoritative, err := s.repo.InsertEntryIfAbsent(ctx, s.userID, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire item %d: %w", catalogID, err)
	}

	result := &AcquireResult{Granted: inserted, Entry: *authoritative}
	if inserted {
		s.refreshAndNotify(ctx)
	}
	return result, nil
}

func (s *remoteStore) Clear(ctx context.Context) error {
	if err := s.repo.ClearEntries(ctx, s.userID); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}

	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()

	s.notifier.publish(nil)
	return nil
}

func (s *remoteStore) Subscribe(fn func([]domain.InventoryEntry)) func() {
	s.mu.Lock()
	snapshot := copyEntries(s.cache)
	s.mu.Unlock()

	return s.notifier.subscribe(fn, snapshot)
}

// refreshAndNotify reloads the authoritative snapshot and fans it out.
// A failed reload only degrades notification freshness, not the acquire
// that already succeeded, so it is logged and swallowed here.
func (s *remoteStore) refreshAndNotify(ctx context.Context) {
	entries, err := s.repo.ListEntries(ctx, s.userID)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to refresh inventory snapshot", "error", err, "user_id", s.userID)
		return
	}

	s.mu.Lock()
	s.cache = copyEntries(entries)
	s.mu.Unlock()

	s.notifier.publish(entries)
}
