package inventory

import (
	"sync"

	"github.com/amigo-fit/amigo-server/internal/repository"
)

// Provider owns per-player Store instances and their lifecycle: a store
// is created lazily on first use (login) and dropped on Release (logout).
type Provider interface {
	StoreFor(userID string) Store
	Release(userID string)
}

type remoteProvider struct {
	repo repository.Inventory

	mu     sync.Mutex
	stores map[string]Store
}

// NewRemoteProvider creates a provider whose stores are backed by repo.
// Releasing a store discards only the session object; the ledger itself
// lives in the repository.
func NewRemoteProvider(repo repository.Inventory) Provider {
	return &remoteProvider{repo: repo, stores: make(map[string]Store)}
}

func (p *remoteProvider) StoreFor(userID string) Store {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, ok := p.stores[userID]
	if !ok {
		store = NewRemoteStore(userID, p.repo)
		p.stores[userID] = store
	}
	return store
}

func (p *remoteProvider) Release(userID string) {
	p.mu.Lock()
	delete(p.stores, userID)
	p.mu.Unlock()
}

type memoryProvider struct {
	mu     sync.Mutex
	stores map[string]Store
}

// NewMemoryProvider creates a provider of in-memory stores. The stores
// are the system of record for the memory backend, so Release keeps
// them: dropping the session must not delete a player's inventory.
func NewMemoryProvider() Provider {
	return &memoryProvider{stores: make(map[string]Store)}
}

func (p *memoryProvider) StoreFor(userID string) Store {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, ok := p.stores[userID]
	if !ok {
		store = NewMemoryStore()
		p.stores[userID] = store
	}
	return store
}

func (p *memoryProvider) Release(userID string) {}
