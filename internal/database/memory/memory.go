// Package memory is the development/test backend: one mutex-guarded
// store implementing every repository interface, so the server runs with
// no database at all when STORAGE_BACKEND=memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// Store holds all backend state in memory
type Store struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	usernames map[string]string // username -> userID
	inventory map[string]map[int]domain.InventoryEntry
	requests  map[string]domain.FriendRequest
	friends   map[string]map[string]time.Time
}

// NewStore creates a new empty Store
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*domain.User),
		usernames: make(map[string]string),
		inventory: make(map[string]map[int]domain.InventoryEntry),
		requests:  make(map[string]domain.FriendRequest),
		friends:   make(map[string]map[string]time.Time),
	}
}

// --- repository.User ---

func (s *Store) CreateUserIfMissing(_ context.Context, user *domain.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return false, nil
	}
	if _, taken := s.usernames[user.Username]; taken {
		return false, domain.ErrUsernameTaken
	}

	u := *user
	u.CreatedAt = time.Now().UTC()
	s.users[user.ID] = &u
	s.usernames[u.Username] = u.ID
	return true, nil
}

func (s *Store) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.usernames[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *s.users[userID]
	return &copied, nil
}

func (s *Store) UpdateUsername(_ context.Context, userID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if owner, taken := s.usernames[username]; taken && owner != userID {
		return domain.ErrUsernameTaken
	}

	delete(s.usernames, u.Username)
	u.Username = username
	s.usernames[username] = userID
	return nil
}

func (s *Store) UpdatePetName(_ context.Context, userID, petName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PetName = petName
	return nil
}

func (s *Store) UpdateEquippedItems(_ context.Context, userID string, catalogIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	equipped := make([]int, len(catalogIDs))
	copy(equipped, catalogIDs)
	u.EquippedItems = equipped
	return nil
}

func (s *Store) UpdateSteps(_ context.Context, userID string, dailySteps, totalDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DailySteps = dailySteps
	u.TotalSteps += totalDelta
	return nil
}

func (s *Store) ResetDailySteps(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for _, u := range s.users {
		if u.DailySteps != 0 {
			u.DailySteps = 0
			affected++
		}
	}
	return affected, nil
}

func (s *Store) TopByDailySteps(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.LeaderboardEntry, 0, len(s.users))
	for _, u := range s.users {
		entries = append(entries, domain.LeaderboardEntry{UserID: u.ID, Username: u.Username, Steps: u.DailySteps})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Steps != entries[j].Steps {
			return entries[i].Steps > entries[j].Steps
		}
		return entries[i].Username < entries[j].Username
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// --- repository.Wallet ---

func (s *Store) GetBalance(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return u.Coins, nil
}

func (s *Store) Debit(_ context.Context, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: debit amount cannot be negative", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if u.Coins < amount {
		return 0, domain.ErrInsufficientFunds
	}
	u.Coins -= amount
	return u.Coins, nil
}

func (s *Store) Credit(_ context.Context, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: credit amount cannot be negative", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Coins += amount
	return u.Coins, nil
}

// --- repository.Inventory ---

func (s *Store) ListEntries(_ context.Context, userID string) ([]domain.InventoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := s.inventory[userID]
	entries := make([]domain.InventoryEntry, 0, len(owned))
	for _, e := range owned {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AcquiredAt.Before(entries[j].AcquiredAt)
	})
	return entries, nil
}

func (s *Store) InsertEntryIfAbsent(_ context.Context, userID string, entry domain.InventoryEntry) (bool, *domain.InventoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false, nil, domain.ErrUserNotFound
	}

	owned, ok := s.inventory[userID]
	if !ok {
		owned = make(map[int]domain.InventoryEntry)
		s.inventory[userID] = owned
	}
	if existing, dup := owned[entry.CatalogID]; dup {
		copied := existing
		return false, &copied, nil
	}

	owned[entry.CatalogID] = entry
	copied := entry
	return true, &copied, nil
}

func (s *Store) ClearEntries(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inventory, userID)
	return nil
}

// --- repository.Social ---

func (s *Store) CreateFriendRequest(_ context.Context, request *domain.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[request.FromID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := s.users[request.ToID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, r := range s.requests {
		if r.FromID == request.FromID && r.ToID == request.ToID {
			return domain.ErrFriendRequestExists
		}
	}

	s.requests[request.ID] = *request
	return nil
}

func (s *Store) GetFriendRequest(_ context.Context, requestID string) (*domain.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[requestID]
	if !ok {
		return nil, domain.ErrFriendRequestNotFound
	}
	copied := r
	return &copied, nil
}

func (s *Store) DeleteFriendRequest(_ context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[requestID]; !ok {
		return domain.ErrFriendRequestNotFound
	}
	delete(s.requests, requestID)
	return nil
}

func (s *Store) HasPendingRequestBetween(_ context.Context, userA, userB string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if (r.FromID == userA && r.ToID == userB) || (r.FromID == userB && r.ToID == userA) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListIncomingRequests(_ context.Context, userID string) ([]domain.FriendRequest, error) {
	return s.listRequests(func(r domain.FriendRequest) bool { return r.ToID == userID }), nil
}

func (s *Store) ListOutgoingRequests(_ context.Context, userID string) ([]domain.FriendRequest, error) {
	return s.listRequests(func(r domain.FriendRequest) bool { return r.FromID == userID }), nil
}

func (s *Store) listRequests(match func(domain.FriendRequest) bool) []domain.FriendRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var requests []domain.FriendRequest
	for _, r := range s.requests {
		if match(r) {
			requests = append(requests, r)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests
}

func (s *Store) AreFriends(_ context.Context, userA, userB string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.friends[userA][userB]
	return ok, nil
}

func (s *Store) CreateFriendship(_ context.Context, userA, userB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ua, ok := s.users[userA]
	if !ok {
		return domain.ErrUserNotFound
	}
	ub, ok := s.users[userB]
	if !ok {
		return domain.ErrUserNotFound
	}
	if _, dup := s.friends[userA][userB]; dup {
		return domain.ErrAlreadyFriends
	}

	now := time.Now().UTC()
	for _, pair := range [][2]string{{userA, userB}, {userB, userA}} {
		edges, ok := s.friends[pair[0]]
		if !ok {
			edges = make(map[string]time.Time)
			s.friends[pair[0]] = edges
		}
		edges[pair[1]] = now
	}
	ua.FriendCount++
	ub.FriendCount++
	return nil
}

func (s *Store) ListFriends(_ context.Context, userID string) ([]domain.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var friends []domain.Friend
	for friendID, since := range s.friends[userID] {
		f := domain.Friend{UserID: friendID, Since: since}
		if u, ok := s.users[friendID]; ok {
			f.Username = u.Username
		}
		friends = append(friends, f)
	}
	sort.Slice(friends, func(i, j int) bool {
		if !friends[i].Since.Equal(friends[j].Since) {
			return friends[i].Since.Before(friends[j].Since)
		}
		return friends[i].UserID < friends[j].UserID
	})
	return friends, nil
}
