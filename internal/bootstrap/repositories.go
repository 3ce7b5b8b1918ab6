package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-fit/amigo-server/internal/database/memory"
	"github.com/amigo-fit/amigo-server/internal/database/postgres"
	"github.com/amigo-fit/amigo-server/internal/repository"
	"github.com/amigo-fit/amigo-server/internal/worker"
)

// Repositories holds all repository implementations used by the
// application. This provides a centralized location for repository
// initialization and makes dependency injection clearer.
type Repositories struct {
	User      repository.User
	Wallet    repository.Wallet
	Inventory repository.Inventory
	Social    repository.Social

	// StepsReset is consumed by the daily reset worker. Both backends
	// implement it on the same store that serves User.
	StepsReset worker.StepsResetter
}

// NewPostgresRepositories creates the production repository set backed
// by the shared connection pool.
func NewPostgresRepositories(dbPool *pgxpool.Pool) *Repositories {
	users := postgres.NewUserRepository(dbPool)
	return &Repositories{
		User:       users,
		Wallet:     postgres.NewWalletRepository(dbPool),
		Inventory:  postgres.NewInventoryRepository(dbPool),
		Social:     postgres.NewSocialRepository(dbPool),
		StepsReset: users,
	}
}

// NewMemoryRepositories backs every repository with one shared
// in-memory store so cross-repository reads stay consistent. Used for
// local development without a database.
func NewMemoryRepositories() *Repositories {
	store := memory.NewStore()
	return &Repositories{
		User:       store,
		Wallet:     store,
		Inventory:  store,
		Social:     store,
		StepsReset: store,
	}
}
