package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/repository"
)

// cacheSize bounds the number of distinct limits ever cached; in
// practice there is one
const cacheSize = 8

// Service serves the daily-steps leaderboard
type Service interface {
	// Top returns up to limit entries ranked by daily steps, densely
	// numbered from 1. Results may be cached briefly; the board does not
	// need step-level freshness.
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	users    repository.User
	maxLimit int
	cache    *expirable.LRU[int, []domain.LeaderboardEntry]
}

// NewService creates a new leaderboard service. maxLimit caps the page
// size a caller can request; ttl is how long a computed board is served
// before the repository is queried again.
func NewService(users repository.User, maxLimit int, ttl time.Duration) (Service, error) {
	if maxLimit <= 0 {
		return nil, fmt.Errorf("max limit must be positive, got %d", maxLimit)
	}
	return &service{
		users:    users,
		maxLimit: maxLimit,
		cache:    expirable.NewLRU[int, []domain.LeaderboardEntry](cacheSize, nil, ttl),
	}, nil
}

func (s *service) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	if cached, ok := s.cache.Get(limit); ok {
		return cached, nil
	}

	entries, err := s.users.TopByDailySteps(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	s.cache.Add(limit, entries)
	log.Debug("Leaderboard refreshed", "limit", limit, "entries", len(entries))
	return entries, nil
}
