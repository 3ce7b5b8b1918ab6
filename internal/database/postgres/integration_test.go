package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/amigo-fit/amigo-server/internal/database"
	"github.com/amigo-fit/amigo-server/internal/domain"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		connStr, stop := setupContainer(ctx)
		terminate = stop
		if connStr != "" {
			if err := database.RunMigrations(connStr); err != nil {
				fmt.Printf("WARNING: Failed to run migrations: %v\n", err)
			} else if pool, err := database.NewPool(connStr, 10, time.Minute, 5*time.Minute); err == nil {
				testPool = pool
			}
		}
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		container.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func skipWithoutDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
}

func seedUser(t *testing.T, coins int) string {
	t.Helper()
	ctx := context.Background()
	users := NewUserRepository(testPool)

	id := uuid.NewString()
	created, err := users.CreateUserIfMissing(ctx, &domain.User{
		ID:       id,
		Username: "u-" + id[:8],
		Coins:    coins,
		PetName:  domain.DefaultPetName,
		PetLevel: domain.DefaultPetLevel,
	})
	require.NoError(t, err)
	require.True(t, created)
	return id
}

func TestUserRepository_Lifecycle(t *testing.T) {
	skipWithoutDB(t)
	ctx := context.Background()
	users := NewUserRepository(testPool)

	id := seedUser(t, 0)

	u, err := users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPetName, u.PetName)
	assert.Equal(t, 0, u.Coins)

	// A second registration with the same ID changes nothing
	created, err := users.CreateUserIfMissing(ctx, &domain.User{ID: id, Username: "clobber"})
	require.NoError(t, err)
	assert.False(t, created)

	again, err := users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, u.Username, again.Username)

	// Equipped cosmetics round-trip through the integer array column
	require.NoError(t, users.UpdateEquippedItems(ctx, id, []int{2, 5}))
	equipped, err := users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, equipped.EquippedItems)

	// Username uniqueness
	other := seedUser(t, 0)
	err = users.UpdateUsername(ctx, other, u.Username)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = users.GetUserByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestWalletRepository_DebitIsAtomic(t *testing.T) {
	skipWithoutDB(t)
	ctx := context.Background()
	wallet := NewWalletRepository(testPool)

	id := seedUser(t, 100)

	balance, err := wallet.Debit(ctx, id, 60)
	require.NoError(t, err)
	assert.Equal(t, 40, balance)

	_, err = wallet.Debit(ctx, id, 60)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	balance, err = wallet.GetBalance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 40, balance, "failed debit must leave the balance untouched")

	_, err = wallet.Debit(ctx, uuid.NewString(), 10)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestWalletRepository_ConcurrentDebits(t *testing.T) {
	skipWithoutDB(t)
	ctx := context.Background()
	wallet := NewWalletRepository(testPool)

	id := seedUser(t, 500)

	const goroutines = 20
	var wg sync.WaitGroup
	successes := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := wallet.Debit(ctx, id, 100); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	assert.Equal(t, 5, count, "only five 100-coin debits fit in 500")

	balance, err := wallet.GetBalance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestInventoryRepository_InsertIfAbsent(t *testing.T) {
	skipWithoutDB(t)
	ctx := context.Background()
	inv := NewInventoryRepository(testPool)

	id := seedUser(t, 0)

	entry := domain.InventoryEntry{EntryID: uuid.NewString(), CatalogID: 3, AcquiredAt: time.Now().UTC()}
	inserted, got, err := inv.InsertEntryIfAbsent(ctx, id, entry)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, entry.EntryID, got.EntryID)

	later := domain.InventoryEntry{EntryID: uuid.NewString(), CatalogID: 3, AcquiredAt: time.Now().UTC()}
	inserted, got, err = inv.InsertEntryIfAbsent(ctx, id, later)
	require.NoError(t, err)
	assert.False(t, inserted, "second acquire of the same item is a no-op")
	assert.Equal(t, entry.EntryID, got.EntryID, "the original entry survives")

	entries, err := inv.ListEntries(ctx, id)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestInventoryRepository_ConcurrentAcquire(t *testing.T) {
	skipWithoutDB(t)
	ctx := context.Background()
	inv := NewInventoryRepository(testPool)

	id := seedUser(t, 0)

	const goroutines = 16
	var wg sync.WaitGroup
	grants := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry := domain.InventoryEntry{EntryID: uuid.NewString(), CatalogID: 7, AcquiredAt: time.Now().UTC()}
			inserted, _, err := inv.InsertEntryIfAbsent(ctx, id, entry)
			if err != nil {
				t.Errorf("InsertEntryIfAbsent failed: %v", err)
				return
			}
			grants <- inserted
		}()
	}
	wg.Wait()
	close(grants)

	won := 0
	for g := range grants {
		if g {
			won++
		}
	}
	assert.Equal(t, 1, won, "the unique constraint admits exactly one entry")
}

func TestSocialRepository_FriendshipLifecycle(t *testing.T) {
	skipWithoutDB(t)
	ctx := context.Background()
	social := NewSocialRepository(testPool)
	users := NewUserRepository(testPool)

	a := seedUser(t, 0)
	b := seedUser(t, 0)

	now := time.Now().UTC()
	request := &domain.FriendRequest{
		ID: uuid.NewString(), FromID: a, ToID: b,
		Status: domain.FriendRequestPending, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, social.CreateFriendRequest(ctx, request))

	pending, err := social.HasPendingRequestBetween(ctx, b, a)
	require.NoError(t, err)
	assert.True(t, pending, "direction must not matter")

	require.NoError(t, social.CreateFriendship(ctx, a, b))
	require.NoError(t, social.DeleteFriendRequest(ctx, request.ID))

	friends, err := social.AreFriends(ctx, b, a)
	require.NoError(t, err)
	assert.True(t, friends, "friendship is symmetric")

	ua, err := users.GetUserByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 1, ua.FriendCount)

	err = social.CreateFriendship(ctx, a, b)
	assert.ErrorIs(t, err, domain.ErrAlreadyFriends)

	list, err := social.ListFriends(ctx, a)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b, list[0].UserID)
}

func TestSocialRepository_StrayEdgeAbortsWithoutCountBump(t *testing.T) {
	skipWithoutDB(t)
	ctx := context.Background()
	social := NewSocialRepository(testPool)
	users := NewUserRepository(testPool)

	a := seedUser(t, 0)
	b := seedUser(t, 0)

	// One directed edge without its mirror, as a partial write would leave it
	_, err := testPool.Exec(ctx, `INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2)`, a, b)
	require.NoError(t, err)

	err = social.CreateFriendship(ctx, a, b)
	assert.ErrorIs(t, err, domain.ErrAlreadyFriends)

	// The aborted transaction must not bump either counter or fill in
	// the missing mirror edge
	ua, err := users.GetUserByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 0, ua.FriendCount)

	ub, err := users.GetUserByID(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 0, ub.FriendCount)

	mirrored, err := social.AreFriends(ctx, b, a)
	require.NoError(t, err)
	assert.False(t, mirrored)
}
