package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/amigo-fit/amigo-server/internal/concurrency"
	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/gacha"
	"github.com/amigo-fit/amigo-server/internal/inventory"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/metrics"
	"github.com/amigo-fit/amigo-server/internal/repository"
)

// Service coordinates currency debit with inventory mutation: currency
// is never spent without an attempted grant, and nothing is granted
// without payment.
type Service interface {
	// Pull debits one pull cost and draws one item
	Pull(ctx context.Context, userID string) (*domain.PullResult, error)

	// PullBatch debits the full batch cost once upfront, then performs
	// the configured number of independent draws. All results are
	// returned regardless of individual duplicate outcomes.
	PullBatch(ctx context.Context, userID string) ([]domain.PullResult, error)

	// BuyItem debits the item's catalog price and grants that item
	BuyItem(ctx context.Context, userID string, catalogID int) (*domain.PullResult, error)
}

// Options configures purchase behavior
type Options struct {
	PullCost  int
	BatchSize int

	// RefundDuplicates credits the item's cost back when a draw lands on
	// an already-owned item. The shipped behavior keeps the coins spent;
	// the flag exists because the policy is a product decision, not an
	// invariant.
	RefundDuplicates bool
}

type service struct {
	engine *gacha.Engine
	wallet repository.Wallet
	stores inventory.Provider
	locks  *concurrency.PlayerLocks
	byID   map[int]domain.CatalogItem
	opts   Options
}

// acquireAttempts bounds the in-place retries of the idempotent grant
// step after a persistence failure. The debit is never rolled back;
// exhausting the retries surfaces a retryable error instead.
const acquireAttempts = 3

// NewService creates a new purchase service
func NewService(engine *gacha.Engine, wallet repository.Wallet, stores inventory.Provider, locks *concurrency.PlayerLocks, opts Options) (Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: engine is required", domain.ErrInvalidCatalog)
	}
	if opts.PullCost <= 0 {
		return nil, fmt.Errorf("pull cost must be positive, got %d", opts.PullCost)
	}
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", opts.BatchSize)
	}

	byID := make(map[int]domain.CatalogItem)
	for _, item := range engine.Items() {
		byID[item.ID] = item
	}

	return &service{
		engine: engine,
		wallet: wallet,
		stores: stores,
		locks:  locks,
		byID:   byID,
		opts:   opts,
	}, nil
}

func (s *service) Pull(ctx context.Context, userID string) (*domain.PullResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Pull requested", "user_id", userID, "cost", s.opts.PullCost)

	var result *domain.PullResult
	err := s.locks.Do(userID, func() error {
		if err := s.debit(ctx, userID, s.opts.PullCost); err != nil {
			return err
		}

		item := s.engine.Draw()
		granted, err := s.grant(ctx, userID, item, s.opts.PullCost)
		if err != nil {
			return err
		}

		result = &domain.PullResult{Item: item, NewlyGranted: granted}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.GachaPulls.WithLabelValues(string(result.Item.Rarity)).Inc()
	log.Info("Pull resolved", "user_id", userID, "item_id", result.Item.ID, "newly_granted", result.NewlyGranted)
	return result, nil
}

func (s *service) PullBatch(ctx context.Context, userID string) ([]domain.PullResult, error) {
	log := logger.FromContext(ctx)
	batchCost := s.opts.PullCost * s.opts.BatchSize
	log.Info("Batch pull requested", "user_id", userID, "size", s.opts.BatchSize, "cost", batchCost)

	var results []domain.PullResult
	err := s.locks.Do(userID, func() error {
		if err := s.debit(ctx, userID, batchCost); err != nil {
			return err
		}

		items := s.engine.DrawBatch(s.opts.BatchSize)
		results = make([]domain.PullResult, 0, len(items))

		// Once debited the batch runs to completion: every draw gets its
		// grant attempt even if an earlier one failed, and the first
		// failure is surfaced afterwards as retryable.
		var grantErr error
		for _, item := range items {
			granted, err := s.grant(ctx, userID, item, s.opts.PullCost)
			if err != nil {
				if grantErr == nil {
					grantErr = err
				}
				continue
			}
			results = append(results, domain.PullResult{Item: item, NewlyGranted: granted})
		}
		return grantErr
	})
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		metrics.GachaPulls.WithLabelValues(string(result.Item.Rarity)).Inc()
	}
	log.Info("Batch pull resolved", "user_id", userID, "results", len(results))
	return results, nil
}

func (s *service) BuyItem(ctx context.Context, userID string, catalogID int) (*domain.PullResult, error) {
	log := logger.FromContext(ctx)

	item, ok := s.byID[catalogID]
	if !ok {
		return nil, fmt.Errorf("%w: catalog id %d", domain.ErrItemNotFound, catalogID)
	}
	log.Info("Buy requested", "user_id", userID, "item_id", catalogID, "price", item.Price)

	var result *domain.PullResult
	err := s.locks.Do(userID, func() error {
		if err := s.debit(ctx, userID, item.Price); err != nil {
			return err
		}

		granted, err := s.grant(ctx, userID, item, item.Price)
		if err != nil {
			return err
		}

		result = &domain.PullResult{Item: item, NewlyGranted: granted}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ItemsPurchased.WithLabelValues(item.Name).Inc()
	log.Info("Buy resolved", "user_id", userID, "item_id", item.ID, "newly_granted", result.NewlyGranted)
	return result, nil
}

// debit charges the wallet before any draw or grant happens. The
// conditional update in the repository is the balance invariant: an
// insufficient balance rejects with no side effect at all.
func (s *service) debit(ctx context.Context, userID string, cost int) error {
	if _, err := s.wallet.Debit(ctx, userID, cost); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: debit of %d failed: %v", domain.ErrPersistenceUnavailable, cost, err)
	}
	metrics.CoinsSpent.Add(float64(cost))
	return nil
}

// grant records ownership of a drawn or purchased item. An already-owned
// item is a normal outcome: the coins stay spent unless refunds are
// configured. Persistence failures retry the idempotent acquire in
// place; the debit is not rolled back.
func (s *service) grant(ctx context.Context, userID string, item domain.CatalogItem, cost int) (bool, error) {
	log := logger.FromContext(ctx)
	store := s.stores.StoreFor(userID)

	var res *inventory.AcquireResult
	var err error
	for attempt := 1; attempt <= acquireAttempts; attempt++ {
		res, err = store.TryAcquire(ctx, item.ID)
		if err == nil {
			break
		}
		log.Warn("Failed to record ownership, retrying", "user_id", userID, "item_id", item.ID, "attempt", attempt, "error", err)
	}
	if err != nil {
		return false, fmt.Errorf("%w: ownership of item %d not recorded after %d attempts: %v",
			domain.ErrPersistenceUnavailable, item.ID, acquireAttempts, err)
	}

	if !res.Granted {
		metrics.GachaDuplicates.Inc()
		log.Info("Item already owned", "user_id", userID, "item_id", item.ID)
		if s.opts.RefundDuplicates {
			if _, err := s.wallet.Credit(ctx, userID, cost); err != nil {
				return false, fmt.Errorf("%w: duplicate refund of %d failed: %v", domain.ErrPersistenceUnavailable, cost, err)
			}
		}
	}

	return res.Granted, nil
}
