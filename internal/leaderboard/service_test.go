package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateUserIfMissing(ctx context.Context, u *domain.User) (bool, error) {
	args := m.Called(ctx, u)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateUsername(ctx context.Context, userID, username string) error {
	args := m.Called(ctx, userID, username)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePetName(ctx context.Context, userID, petName string) error {
	args := m.Called(ctx, userID, petName)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateEquippedItems(ctx context.Context, userID string, catalogIDs []int) error {
	args := m.Called(ctx, userID, catalogIDs)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateSteps(ctx context.Context, userID string, dailySteps, totalDelta int) error {
	args := m.Called(ctx, userID, dailySteps, totalDelta)
	return args.Error(0)
}

func (m *MockUserRepo) TopByDailySteps(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func board() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{UserID: "a", Username: "ana", Steps: 12000},
		{UserID: "b", Username: "ben", Steps: 9000},
		{UserID: "c", Username: "cal", Steps: 100},
	}
}

func TestTopAssignsDenseRanks(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	svc, err := NewService(repo, 50, time.Minute)
	require.NoError(t, err)

	repo.On("TopByDailySteps", ctx, 3).Return(board(), nil)

	entries, err := svc.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestTopServesCachedBoard(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	svc, err := NewService(repo, 50, time.Minute)
	require.NoError(t, err)

	repo.On("TopByDailySteps", ctx, 3).Return(board(), nil).Once()

	_, err = svc.Top(ctx, 3)
	require.NoError(t, err)
	_, err = svc.Top(ctx, 3)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "TopByDailySteps", 1)
}

func TestTopCacheExpires(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	svc, err := NewService(repo, 50, 10*time.Millisecond)
	require.NoError(t, err)

	repo.On("TopByDailySteps", ctx, 3).Return(board(), nil)

	_, err = svc.Top(ctx, 3)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = svc.Top(ctx, 3)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "TopByDailySteps", 2)
}

func TestTopClampsLimit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	svc, err := NewService(repo, 50, time.Minute)
	require.NoError(t, err)

	repo.On("TopByDailySteps", ctx, 50).Return(board(), nil)

	// Oversized and non-positive limits both fall back to the cap
	_, err = svc.Top(ctx, 500)
	require.NoError(t, err)
	_, err = svc.Top(ctx, 0)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "TopByDailySteps", 1) // second hit is cached
}

func TestTopRepositoryErrorNotCached(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	svc, err := NewService(repo, 50, time.Minute)
	require.NoError(t, err)

	repo.On("TopByDailySteps", ctx, 3).Return(nil, errors.New("down")).Once()
	repo.On("TopByDailySteps", ctx, 3).Return(board(), nil).Once()

	_, err = svc.Top(ctx, 3)
	require.Error(t, err)

	entries, err := svc.Top(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
