package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, userID, email, username string) (*domain.User, bool, error) {
	args := m.Called(ctx, userID, email, username)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) SetUsername(ctx context.Context, userID, username string) error {
	args := m.Called(ctx, userID, username)
	return args.Error(0)
}

func (m *MockUserService) UpdatePetName(ctx context.Context, userID, petName string) error {
	args := m.Called(ctx, userID, petName)
	return args.Error(0)
}

func (m *MockUserService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) SetEquippedItems(ctx context.Context, userID string, catalogIDs []int) ([]int, error) {
	args := m.Called(ctx, userID, catalogIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func TestHandleRegisterUserCreated(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Register", mock.Anything, "user-1", "a@b.com", "walker").
		Return(&domain.User{ID: "user-1", Username: "walker", PetName: "Sunny"}, true, nil)

	rec := postJSON(t, HandleRegisterUser(svc), RegisterUserRequest{
		UserID: "user-1", Email: "a@b.com", Username: "walker",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp RegisterUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Created)
}

func TestHandleRegisterUserExisting(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Register", mock.Anything, "user-1", "", "walker").
		Return(&domain.User{ID: "user-1", Username: "original"}, false, nil)

	rec := postJSON(t, HandleRegisterUser(svc), RegisterUserRequest{UserID: "user-1", Username: "walker"})

	assert.Equal(t, http.StatusOK, rec.Code, "idempotent re-registration is not an error")
}

func TestHandleRegisterUserValidation(t *testing.T) {
	svc := new(MockUserService)

	// Username with disallowed characters fails before the service runs
	rec := postJSON(t, HandleRegisterUser(svc), RegisterUserRequest{UserID: "user-1", Username: "bad name!"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleGetProfile(t *testing.T) {
	svc := new(MockUserService)
	svc.On("GetProfile", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", Username: "walker", Coins: 300}, nil)

	req := httptest.NewRequest(http.MethodGet, "/?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	HandleGetProfile(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var u domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, 300, u.Coins)
}

func TestHandleGetProfileMissingParam(t *testing.T) {
	svc := new(MockUserService)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetProfile(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetProfileNotFound(t *testing.T) {
	svc := new(MockUserService)
	svc.On("GetProfile", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/?user_id=ghost", nil)
	rec := httptest.NewRecorder()
	HandleGetProfile(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSetUsernameTaken(t *testing.T) {
	svc := new(MockUserService)
	svc.On("SetUsername", mock.Anything, "user-1", "walker").Return(domain.ErrUsernameTaken)

	rec := postJSON(t, HandleSetUsername(svc), SetUsernameRequest{UserID: "user-1", Username: "walker"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgUsernameTakenError)
}

func TestHandleUsernameAvailable(t *testing.T) {
	svc := new(MockUserService)
	svc.On("IsUsernameAvailable", mock.Anything, "walker").Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/?username=walker", nil)
	rec := httptest.NewRecorder()
	HandleUsernameAvailable(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp UsernameAvailableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
}

func TestHandleSetEquippedItems(t *testing.T) {
	svc := new(MockUserService)
	svc.On("SetEquippedItems", mock.Anything, "user-1", []int{3, 1}).Return([]int{3, 1}, nil)

	rec := postJSON(t, HandleSetEquippedItems(svc), SetEquippedItemsRequest{UserID: "user-1", Items: []int{3, 1}})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp EquippedItemsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int{3, 1}, resp.Items)
}

func TestHandleSetEquippedItemsNotOwned(t *testing.T) {
	svc := new(MockUserService)
	svc.On("SetEquippedItems", mock.Anything, "user-1", []int{99}).Return(nil, domain.ErrItemNotOwned)

	rec := postJSON(t, HandleSetEquippedItems(svc), SetEquippedItemsRequest{UserID: "user-1", Items: []int{99}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgItemNotOwnedError)
}

func TestHandleSetPetName(t *testing.T) {
	svc := new(MockUserService)
	svc.On("UpdatePetName", mock.Anything, "user-1", "Biscuit").Return(nil)

	rec := postJSON(t, HandleSetPetName(svc), SetPetNameRequest{UserID: "user-1", PetName: "Biscuit"})

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
