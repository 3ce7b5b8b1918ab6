package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/amigo-fit/amigo-server/internal/catalog"
	"github.com/amigo-fit/amigo-server/internal/concurrency"
	"github.com/amigo-fit/amigo-server/internal/config"
	"github.com/amigo-fit/amigo-server/internal/gacha"
	"github.com/amigo-fit/amigo-server/internal/inventory"
	"github.com/amigo-fit/amigo-server/internal/leaderboard"
	"github.com/amigo-fit/amigo-server/internal/purchase"
	"github.com/amigo-fit/amigo-server/internal/server"
	"github.com/amigo-fit/amigo-server/internal/social"
	"github.com/amigo-fit/amigo-server/internal/steps"
	"github.com/amigo-fit/amigo-server/internal/user"
	"github.com/amigo-fit/amigo-server/internal/validation"
)

// InitializeServices loads the catalog, builds the draw engine, and
// wires every application service against the given repositories.
func InitializeServices(cfg *config.Config, repos *Repositories) (*gacha.Engine, inventory.Provider, server.Services, error) {
	// Schema validation runs before parsing so a malformed catalog
	// fails startup with a field-level error.
	schemaValidator := validation.NewSchemaValidator()
	if err := schemaValidator.ValidateFile(cfg.CatalogPath, cfg.CatalogSchemaPath); err != nil {
		return nil, nil, server.Services{}, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	loader := catalog.NewLoader()
	catalogCfg, err := loader.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, server.Services{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := loader.Validate(catalogCfg); err != nil {
		return nil, nil, server.Services{}, fmt.Errorf("invalid catalog: %w", err)
	}
	slog.Info(LogMsgCatalogLoaded, "path", cfg.CatalogPath, "items", len(catalogCfg.Items))

	engine, err := gacha.NewEngine(catalogCfg.CatalogItems(), gacha.DefaultSource())
	if err != nil {
		return nil, nil, server.Services{}, fmt.Errorf("failed to build draw engine: %w", err)
	}

	// The memory backend keeps the ledger in per-user memory stores;
	// everything else reads and writes through the repository.
	var stores inventory.Provider
	if cfg.StorageBackend == config.BackendMemory {
		stores = inventory.NewMemoryProvider()
	} else {
		stores = inventory.NewRemoteProvider(repos.Inventory)
	}

	purchaseSvc, err := purchase.NewService(engine, repos.Wallet, stores, concurrency.NewPlayerLocks(), purchase.Options{
		PullCost:         cfg.PullCost,
		BatchSize:        cfg.BatchSize,
		RefundDuplicates: cfg.RefundDuplicates,
	})
	if err != nil {
		return nil, nil, server.Services{}, fmt.Errorf("failed to build purchase service: %w", err)
	}

	stepsSvc, err := steps.NewService(repos.User, repos.Wallet, concurrency.NewPlayerLocks(), cfg.StepsPerCoin)
	if err != nil {
		return nil, nil, server.Services{}, fmt.Errorf("failed to build steps service: %w", err)
	}

	leaderboardSvc, err := leaderboard.NewService(repos.User, cfg.LeaderboardLimit, cfg.LeaderboardCacheTTL)
	if err != nil {
		return nil, nil, server.Services{}, fmt.Errorf("failed to build leaderboard service: %w", err)
	}

	services := server.Services{
		User:        user.NewService(repos.User, stores),
		Purchase:    purchaseSvc,
		Steps:       stepsSvc,
		Social:      social.NewService(repos.User, repos.Social),
		Leaderboard: leaderboardSvc,
	}

	return engine, stores, services, nil
}
