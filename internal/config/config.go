package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	APIKey      string // API key for service-to-service authentication

	// TrustedProxies are the proxy IPs whose X-Forwarded-For headers are
	// honored when resolving client addresses.
	TrustedProxies []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// StorageBackend selects the persistence implementation:
	// "postgres" (default) or "memory" (local development and tests).
	StorageBackend string

	CatalogPath       string
	CatalogSchemaPath string

	PullCost  int
	BatchSize int
	// RefundDuplicates controls whether pulling an already-owned item
	// refunds its cost. The observed product behavior keeps the coins
	// spent, so the default is false.
	RefundDuplicates bool

	StepsPerCoin int

	LeaderboardLimit    int
	LeaderboardCacheTTL time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:       getEnv("ENVIRONMENT", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		APIKey:            getEnv("API_KEY", ""),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "amigo"),
		StorageBackend:    getEnv("STORAGE_BACKEND", BackendPostgres),
		CatalogPath:       getEnv("CATALOG_PATH", DefaultCatalogPath),
		CatalogSchemaPath: getEnv("CATALOG_SCHEMA_PATH", DefaultCatalogSchemaPath),
		RefundDuplicates:  getEnvBool("REFUND_DUPLICATES", false),
		TrustedProxies:    getEnvList("TRUSTED_PROXIES"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.PullCost, err = getEnvInt("PULL_COST", DefaultPullCost); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = getEnvInt("PULL_BATCH_SIZE", DefaultBatchSize); err != nil {
		return nil, err
	}
	if cfg.StepsPerCoin, err = getEnvInt("STEPS_PER_COIN", DefaultStepsPerCoin); err != nil {
		return nil, err
	}
	if cfg.LeaderboardLimit, err = getEnvInt("LEADERBOARD_LIMIT", DefaultLeaderboardLimit); err != nil {
		return nil, err
	}

	ttlSeconds, err := getEnvInt("LEADERBOARD_CACHE_TTL_SECONDS", DefaultLeaderboardCacheTTLSeconds)
	if err != nil {
		return nil, err
	}
	cfg.LeaderboardCacheTTL = time.Duration(ttlSeconds) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.StorageBackend != BackendPostgres && c.StorageBackend != BackendMemory {
		return fmt.Errorf("invalid STORAGE_BACKEND %q: must be %q or %q", c.StorageBackend, BackendPostgres, BackendMemory)
	}
	if c.PullCost <= 0 {
		return fmt.Errorf("PULL_COST must be positive, got %d", c.PullCost)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("PULL_BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.StepsPerCoin <= 0 {
		return fmt.Errorf("STEPS_PER_COIN must be positive, got %d", c.StepsPerCoin)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

// getEnvList parses a comma-separated environment variable, skipping
// empty segments.
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
