package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/metrics"
	"github.com/amigo-fit/amigo-server/internal/repository"
)

// Service manages the friend graph: requests, accept/decline, and the
// friends list.
type Service interface {
	// SendFriendRequest creates a pending request from one player to
	// another. Self-requests, requests between existing friends, and a
	// second pending request in either direction are rejected.
	SendFriendRequest(ctx context.Context, fromID, toID string) (*domain.FriendRequest, error)

	// AcceptFriendRequest turns the request into a friendship. Only the
	// recipient may accept; the request is deleted afterwards.
	AcceptFriendRequest(ctx context.Context, requestID, userID string) error

	// DeclineFriendRequest deletes the request. The recipient declines,
	// the sender cancels; anyone else is rejected.
	DeclineFriendRequest(ctx context.Context, requestID, userID string) error

	ListFriends(ctx context.Context, userID string) ([]domain.Friend, error)
	ListIncomingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error)
	ListOutgoingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error)
}

type service struct {
	users repository.User
	repo  repository.Social
}

// NewService creates a new social service
func NewService(users repository.User, repo repository.Social) Service {
	return &service{users: users, repo: repo}
}

func (s *service) SendFriendRequest(ctx context.Context, fromID, toID string) (*domain.FriendRequest, error) {
	log := logger.FromContext(ctx)

	if fromID == toID {
		return nil, domain.ErrSelfFriendRequest
	}

	// Both ends must exist before anything is written
	if _, err := s.users.GetUserByID(ctx, fromID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(ctx, toID); err != nil {
		return nil, err
	}

	friends, err := s.repo.AreFriends(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if friends {
		return nil, domain.ErrAlreadyFriends
	}

	pending, err := s.repo.HasPendingRequestBetween(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return nil, domain.ErrFriendRequestExists
	}

	now := time.Now().UTC()
	request := &domain.FriendRequest{
		ID:        uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		Status:    domain.FriendRequestPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateFriendRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	metrics.FriendRequests.WithLabelValues(metrics.OutcomeSent).Inc()
	log.Info("Friend request sent", "from", fromID, "to", toID, "request_id", request.ID)
	return request, nil
}

func (s *service) AcceptFriendRequest(ctx context.Context, requestID, userID string) error {
	log := logger.FromContext(ctx)

	request, err := s.repo.GetFriendRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ToID != userID {
		return fmt.Errorf("%w: only the recipient can accept a friend request", domain.ErrNotAuthorized)
	}

	if err := s.repo.CreateFriendship(ctx, request.FromID, request.ToID); err != nil {
		if errors.Is(err, domain.ErrAlreadyFriends) {
			// A racing accept already created the edge; deleting the
			// request is all that's left
			return s.repo.DeleteFriendRequest(ctx, requestID)
		}
		return fmt.Errorf("failed to create friendship: %w", err)
	}
	if err := s.repo.DeleteFriendRequest(ctx, requestID); err != nil {
		return fmt.Errorf("failed to delete accepted request: %w", err)
	}

	metrics.FriendRequests.WithLabelValues(metrics.OutcomeAccepted).Inc()
	log.Info("Friend request accepted", "request_id", requestID, "from", request.FromID, "to", request.ToID)
	return nil
}

func (s *service) DeclineFriendRequest(ctx context.Context, requestID, userID string) error {
	log := logger.FromContext(ctx)

	request, err := s.repo.GetFriendRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ToID != userID && request.FromID != userID {
		return fmt.Errorf("%w: only the sender or recipient can remove a friend request", domain.ErrNotAuthorized)
	}

	if err := s.repo.DeleteFriendRequest(ctx, requestID); err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}

	metrics.FriendRequests.WithLabelValues(metrics.OutcomeDeclined).Inc()
	log.Info("Friend request removed", "request_id", requestID, "by", userID)
	return nil
}

func (s *service) ListFriends(ctx context.Context, userID string) ([]domain.Friend, error) {
	return s.repo.ListFriends(ctx, userID)
}

func (s *service) ListIncomingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return s.repo.ListIncomingRequests(ctx, userID)
}

func (s *service) ListOutgoingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return s.repo.ListOutgoingRequests(ctx, userID)
}
