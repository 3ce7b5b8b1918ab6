package concurrency

import "sync"

// PlayerLocks hands out one mutex per player ID. The purchase
// coordinator serializes all wallet/inventory operations for a player
// through it: two concurrent purchases must never both pass the balance
// check against a stale balance.
type PlayerLocks struct {
	locks sync.Map
}

// NewPlayerLocks creates a new PlayerLocks
func NewPlayerLocks() *PlayerLocks {
	return &PlayerLocks{}
}

// Get returns the mutex for the given player, creating it on first use
func (pl *PlayerLocks) Get(playerID string) *sync.Mutex {
	lock, _ := pl.locks.LoadOrStore(playerID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Do runs fn while holding the player's lock. Operations for one player
// run to completion in the order their Do calls acquire the lock.
func (pl *PlayerLocks) Do(playerID string, fn func() error) error {
	lock := pl.Get(playerID)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}
