package steps

import (
	"context"
	"fmt"

	"github.com/amigo-fit/amigo-server/internal/concurrency"
	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/metrics"
	"github.com/amigo-fit/amigo-server/internal/repository"
)

// Result reports the outcome of a step sync
type Result struct {
	DailySteps  int `json:"daily_steps"`
	TotalSteps  int `json:"total_steps"`
	CoinsEarned int `json:"coins_earned"`
	NewBalance  int `json:"new_balance"`
}

// Service records step counts reported by the client's health provider
// and converts accumulated steps into wallet coins.
type Service interface {
	// RecordDailySteps replaces the user's daily count with the reported
	// one. Only forward progress adds to the lifetime total; a lower
	// count means the day rolled over and never subtracts.
	RecordDailySteps(ctx context.Context, userID string, dailySteps int) (*Result, error)
}

type service struct {
	users        repository.User
	wallet       repository.Wallet
	locks        *concurrency.PlayerLocks
	stepsPerCoin int
}

// NewService creates a new steps service
func NewService(users repository.User, wallet repository.Wallet, locks *concurrency.PlayerLocks, stepsPerCoin int) (Service, error) {
	if stepsPerCoin <= 0 {
		return nil, fmt.Errorf("steps per coin must be positive, got %d", stepsPerCoin)
	}
	if locks == nil {
		return nil, fmt.Errorf("player locks are required")
	}
	return &service{users: users, wallet: wallet, locks: locks, stepsPerCoin: stepsPerCoin}, nil
}

func (s *service) RecordDailySteps(ctx context.Context, userID string, dailySteps int) (*Result, error) {
	if dailySteps < 0 {
		return nil, fmt.Errorf("%w: step count cannot be negative", domain.ErrInvalidInput)
	}

	// Read-compute-write below, so two syncs for the same user must
	// never interleave: a replayed report would add its delta twice and
	// credit the step reward twice.
	var result *Result
	err := s.locks.Do(userID, func() error {
		var err error
		result, err = s.recordLocked(ctx, userID, dailySteps)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) recordLocked(ctx context.Context, userID string, dailySteps int) (*Result, error) {
	log := logger.FromContext(ctx)

	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDelta := dailySteps - u.DailySteps
	if totalDelta < 0 {
		totalDelta = 0
	}
	newTotal := u.TotalSteps + totalDelta

	// Coins accrue against the lifetime total so partial days carry
	// their remainder forward instead of losing it
	coinsEarned := newTotal/s.stepsPerCoin - u.TotalSteps/s.stepsPerCoin

	if err := s.users.UpdateSteps(ctx, userID, dailySteps, totalDelta); err != nil {
		return nil, fmt.Errorf("failed to record steps: %w", err)
	}

	balance := u.Coins
	if coinsEarned > 0 {
		balance, err = s.wallet.Credit(ctx, userID, coinsEarned)
		if err != nil {
			return nil, fmt.Errorf("failed to credit step reward: %w", err)
		}
		metrics.CoinsEarned.Add(float64(coinsEarned))
	}
	if totalDelta > 0 {
		metrics.StepsRecorded.Add(float64(totalDelta))
	}

	log.Info("Steps recorded", "user_id", userID, "daily_steps", dailySteps, "coins_earned", coinsEarned)
	return &Result{
		DailySteps:  dailySteps,
		TotalSteps:  newTotal,
		CoinsEarned: coinsEarned,
		NewBalance:  balance,
	}, nil
}
