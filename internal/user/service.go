package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/inventory"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/metrics"
	"github.com/amigo-fit/amigo-server/internal/repository"
)

// Service manages user profiles
type Service interface {
	// Register creates the profile on first sign-in and is a no-op on
	// every later one. The returned bool reports whether a new profile
	// was created.
	Register(ctx context.Context, userID, email, username string) (*domain.User, bool, error)

	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	SetUsername(ctx context.Context, userID, username string) error
	UpdatePetName(ctx context.Context, userID, petName string) error
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)

	// SetEquippedItems replaces the cosmetics shown on the pet. Every
	// requested catalog ID must be in the user's inventory ledger;
	// repeats collapse to the first occurrence. The stored list is
	// returned.
	SetEquippedItems(ctx context.Context, userID string, catalogIDs []int) ([]int, error)
}

type service struct {
	repo   repository.User
	stores inventory.Provider
}

// NewService creates a new user service. Ownership checks for equipped
// cosmetics go through stores, the same ledger the purchase flow writes.
func NewService(repo repository.User, stores inventory.Provider) Service {
	return &service{repo: repo, stores: stores}
}

func (s *service) Register(ctx context.Context, userID, email, username string) (*domain.User, bool, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, false, err
	}
	if userID == "" {
		return nil, false, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	u := &domain.User{
		ID:            userID,
		Email:         email,
		Username:      username,
		Coins:         0,
		PetName:       domain.DefaultPetName,
		PetLevel:      domain.DefaultPetLevel,
		EquippedItems: []int{},
	}

	created, err := s.repo.CreateUserIfMissing(ctx, u)
	if err != nil {
		return nil, false, fmt.Errorf("failed to register user: %w", err)
	}
	if created {
		metrics.UsersRegistered.Inc()
		log.Info("User registered", "user_id", userID, "username", username)
		return u, true, nil
	}

	// Existing profile wins; the caller's defaults are discarded
	existing, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load existing user: %w", err)
	}
	return existing, false, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) SetUsername(ctx context.Context, userID, username string) error {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return err
	}

	if err := s.repo.UpdateUsername(ctx, userID, username); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to update username: %w", err)
	}

	log.Info("Username updated", "user_id", userID, "username", username)
	return nil
}

func (s *service) UpdatePetName(ctx context.Context, userID, petName string) error {
	petName = strings.TrimSpace(petName)
	if len(petName) < MinPetNameLength || len(petName) > MaxPetNameLength {
		return fmt.Errorf("%w: pet name must be %d-%d characters", domain.ErrInvalidInput, MinPetNameLength, MaxPetNameLength)
	}

	return s.repo.UpdatePetName(ctx, userID, petName)
}

func (s *service) SetEquippedItems(ctx context.Context, userID string, catalogIDs []int) ([]int, error) {
	log := logger.FromContext(ctx)

	entries, err := s.stores.StoreFor(userID).ListOwned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	owned := make(map[int]bool, len(entries))
	for _, e := range entries {
		owned[e.CatalogID] = true
	}

	equipped := make([]int, 0, len(catalogIDs))
	seen := make(map[int]bool, len(catalogIDs))
	for _, id := range catalogIDs {
		if !owned[id] {
			return nil, fmt.Errorf("%w: item %d", domain.ErrItemNotOwned, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		equipped = append(equipped, id)
	}

	if err := s.repo.UpdateEquippedItems(ctx, userID, equipped); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update equipped items: %w", err)
	}

	log.Info("Equipped items updated", "user_id", userID, "items", len(equipped))
	return equipped, nil
}

func (s *service) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return false, err
	}

	_, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return false, nil
}

func validateUsername(username string) error {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	return nil
}
