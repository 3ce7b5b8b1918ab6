package inventory

import (
	"context"
	"sync"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// AcquireResult reports the outcome of a TryAcquire call. Granted is
// false when the player already owned the catalog item; Entry then holds
// the pre-existing record. Re-acquiring an owned item is a normal
// outcome, never an error.
type AcquireResult struct {
	Granted bool
	Entry   domain.InventoryEntry
}

// Store is the per-player ownership ledger: it records which catalog
// items the player owns, suppresses duplicate acquisition by catalog ID,
// and notifies subscribers on every change.
//
// A Store instance is scoped to one player session. Obtain instances
// through a Provider rather than holding process-wide globals.
type Store interface {
	// ListOwned returns the current ownership snapshot. Side-effect-free.
	ListOwned(ctx context.Context) ([]domain.InventoryEntry, error)

	// TryAcquire records ownership of catalogID unless an entry already
	// exists. Persistence errors propagate unwrapped in meaning: the
	// store never decides retry policy, the coordinator does.
	TryAcquire(ctx context.Context, catalogID int) (*AcquireResult, error)

	// Clear removes all entries and notifies subscribers with an empty
	// snapshot. Test/reset utility only.
	Clear(ctx context.Context) error

	// Subscribe registers an observer. The observer is invoked
	// synchronously with the current snapshot before Subscribe returns,
	// and again after every granted acquire and every Clear. The returned
	// function unsubscribes; calling it more than once is safe.
	Subscribe(fn func([]domain.InventoryEntry)) func()
}

// notifier implements the subscription mechanism shared by both store
// implementations. Delivery is synchronous and serialized, so all
// subscribers observe snapshots in the order they were produced.
type notifier struct {
	mu   sync.Mutex
	subs map[int]func([]domain.InventoryEntry)
	next int
}

func (n *notifier) subscribe(fn func([]domain.InventoryEntry), snapshot []domain.InventoryEntry) func() {
	n.mu.Lock()
	if n.subs == nil {
		n.subs = make(map[int]func([]domain.InventoryEntry))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()

	// Replay-on-subscribe: a new observer sees the current state
	// immediately even if no acquisition happens afterwards.
	fn(snapshot)

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *notifier) publish(snapshot []domain.InventoryEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, fn := range n.subs {
		fn(snapshot)
	}
}

func copyEntries(entries []domain.InventoryEntry) []domain.InventoryEntry {
	snapshot := make([]domain.InventoryEntry, len(entries))
	copy(snapshot, entries)
	return snapshot
}
