package config

// Storage backend selectors
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Defaults applied when the corresponding environment variable is unset
const (
	DefaultPort              = 8080
	DefaultCatalogPath       = "configs/catalog.json"
	DefaultCatalogSchemaPath = "configs/catalog.schema.json"

	// DefaultPullCost is the coin cost of one gacha draw
	DefaultPullCost = 100

	// DefaultBatchSize is the number of draws in a multi-pull
	DefaultBatchSize = 10

	// DefaultStepsPerCoin is the step-to-currency conversion rate
	DefaultStepsPerCoin = 100

	DefaultLeaderboardLimit           = 50
	DefaultLeaderboardCacheTTLSeconds = 30
)
