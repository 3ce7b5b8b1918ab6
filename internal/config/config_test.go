package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, DefaultPullCost, cfg.PullCost)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, DefaultStepsPerCoin, cfg.StepsPerCoin)
	assert.Equal(t, DefaultLeaderboardLimit, cfg.LeaderboardLimit)
	assert.Equal(t, 30*time.Second, cfg.LeaderboardCacheTTL)
	assert.False(t, cfg.RefundDuplicates)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoadRejectsBadBackend(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("PULL_COST", "250")
	t.Setenv("REFUND_DUPLICATES", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, 250, cfg.PullCost)
	assert.True(t, cfg.RefundDuplicates)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "amigo",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "amigo",
	}

	assert.Equal(t, "postgres://amigo:secret@db:5432/amigo?sslmode=disable", cfg.GetDBConnString())
}
