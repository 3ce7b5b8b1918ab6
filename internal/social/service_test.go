package social

import (
	"context"
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

// MockSocialRepo
type MockSocialRepo struct {
	mock.Mock
}

func (m *MockSocialRepo) CreateFriendRequest(ctx context.Context, request *domain.FriendRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockSocialRepo) GetFriendRequest(ctx context.Context, requestID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *MockSocialRepo) DeleteFriendRequest(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *MockSocialRepo) HasPendingRequestBetween(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepo) ListIncomingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

func (m *MockSocialRepo) ListOutgoingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

func (m *MockSocialRepo) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepo) CreateFriendship(ctx context.Context, userA, userB string) error {
	args := m.Called(ctx, userA, userB)
	return args.Error(0)
}

func (m *MockSocialRepo) ListFriends(ctx context.Context, userID string) ([]domain.Friend, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Friend), args.Error(1)
}

func existingUser(id string) *domain.User {
	return &domain.User{ID: id, Username: "u-" + id}
}

func TestSendFriendRequestHappyPath(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	repo := new(MockSocialRepo)
	svc := NewService(users, repo)

	users.On("GetUserByID", ctx, "alice").Return(existingUser("alice"), nil)
	users.On("GetUserByID", ctx, "bob").Return(existingUser("bob"), nil)
	repo.On("AreFriends", ctx, "alice", "bob").Return(false, nil)
	repo.On("HasPendingRequestBetween", ctx, "alice", "bob").Return(false, nil)
	repo.On("CreateFriendRequest", ctx, mock.MatchedBy(func(r *domain.FriendRequest) bool {
		return r.FromID == "alice" && r.ToID == "bob" && r.Status == domain.FriendRequestPending && r.ID != ""
	})).Return(nil)

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", request.ToID)

	repo.AssertExpectations(t)
}

func TestSendFriendRequestToSelf(t *testing.T) {
	ctx := context.Background()
	svc := NewService(new(MockUserRepo), new(MockSocialRepo))

	_, err := svc.SendFriendRequest(ctx, "alice", "alice")
	assert.ErrorIs(t, err, domain.ErrSelfFriendRequest)
}

func TestSendFriendRequestUnknownRecipient(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	svc := NewService(users, new(MockSocialRepo))

	users.On("GetUserByID", ctx, "alice").Return(existingUser("alice"), nil)
	users.On("GetUserByID", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := svc.SendFriendRequest(ctx, "alice", "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSendFriendRequestAlreadyFriends(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	repo := new(MockSocialRepo)
	svc := NewService(users, repo)

	users.On("GetUserByID", ctx, mock.Anything).Return(existingUser("x"), nil)
	repo.On("AreFriends", ctx, "alice", "bob").Return(true, nil)

	_, err := svc.SendFriendRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrAlreadyFriends)
}

func TestSendFriendRequestDuplicatePending(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	repo := new(MockSocialRepo)
	svc := NewService(users, repo)

	users.On("GetUserByID", ctx, mock.Anything).Return(existingUser("x"), nil)
	repo.On("AreFriends", ctx, "alice", "bob").Return(false, nil)
	// A pending request in the reverse direction blocks a new one too
	repo.On("HasPendingRequestBetween", ctx, "alice", "bob").Return(true, nil)

	_, err := svc.SendFriendRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrFriendRequestExists)

	repo.AssertNotCalled(t, "CreateFriendRequest", mock.Anything, mock.Anything)
}

func TestAcceptFriendRequest(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSocialRepo)
	svc := NewService(new(MockUserRepo), repo)

	request := &domain.FriendRequest{ID: "req-1", FromID: "alice", ToID: "bob", CreatedAt: time.Now()}
	repo.On("GetFriendRequest", ctx, "req-1").Return(request, nil)
	repo.On("CreateFriendship", ctx, "alice", "bob").Return(nil)
	repo.On("DeleteFriendRequest", ctx, "req-1").Return(nil)

	require.NoError(t, svc.AcceptFriendRequest(ctx, "req-1", "bob"))
	repo.AssertExpectations(t)
}

func TestAcceptFriendRequestOnlyRecipient(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSocialRepo)
	svc := NewService(new(MockUserRepo), repo)

	request := &domain.FriendRequest{ID: "req-1", FromID: "alice", ToID: "bob"}
	repo.On("GetFriendRequest", ctx, "req-1").Return(request, nil)

	// The sender cannot accept their own request
	err := svc.AcceptFriendRequest(ctx, "req-1", "alice")
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	repo.AssertNotCalled(t, "CreateFriendship", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptFriendRequestRacingAccept(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSocialRepo)
	svc := NewService(new(MockUserRepo), repo)

	request := &domain.FriendRequest{ID: "req-1", FromID: "alice", ToID: "bob"}
	repo.On("GetFriendRequest", ctx, "req-1").Return(request, nil)
	repo.On("CreateFriendship", ctx, "alice", "bob").Return(domain.ErrAlreadyFriends)
	repo.On("DeleteFriendRequest", ctx, "req-1").Return(nil)

	require.NoError(t, svc.AcceptFriendRequest(ctx, "req-1", "bob"))
	repo.AssertExpectations(t)
}

func TestDeclineFriendRequestByRecipient(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSocialRepo)
	svc := NewService(new(MockUserRepo), repo)

	request := &domain.FriendRequest{ID: "req-1", FromID: "alice", ToID: "bob"}
	repo.On("GetFriendRequest", ctx, "req-1").Return(request, nil)
	repo.On("DeleteFriendRequest", ctx, "req-1").Return(nil)

	require.NoError(t, svc.DeclineFriendRequest(ctx, "req-1", "bob"))
}

func TestDeclineFriendRequestSenderCancels(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSocialRepo)
	svc := NewService(new(MockUserRepo), repo)

	request := &domain.FriendRequest{ID: "req-1", FromID: "alice", ToID: "bob"}
	repo.On("GetFriendRequest", ctx, "req-1").Return(request, nil)
	repo.On("DeleteFriendRequest", ctx, "req-1").Return(nil)

	require.NoError(t, svc.DeclineFriendRequest(ctx, "req-1", "alice"))
}

func TestDeclineFriendRequestThirdParty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSocialRepo)
	svc := NewService(new(MockUserRepo), repo)

	request := &domain.FriendRequest{ID: "req-1", FromID: "alice", ToID: "bob"}
	repo.On("GetFriendRequest", ctx, "req-1").Return(request, nil)

	err := svc.DeclineFriendRequest(ctx, "req-1", "mallory")
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestDeclineFriendRequestNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSocialRepo)
	svc := NewService(new(MockUserRepo), repo)

	repo.On("GetFriendRequest", ctx, "missing").Return(nil, domain.ErrFriendRequestNotFound)

	err := svc.DeclineFriendRequest(ctx, "missing", "bob")
	assert.ErrorIs(t, err, domain.ErrFriendRequestNotFound)
}

func TestListFriends(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSocialRepo)
	svc := NewService(new(MockUserRepo), repo)

	friends := []domain.Friend{{UserID: "bob", Username: "u-bob"}}
	repo.On("ListFriends", ctx, "alice").Return(friends, nil)

	got, err := svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, friends, got)
}
