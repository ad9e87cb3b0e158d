package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "atenea"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"

	defaultRedisURL = "redis://localhost:6379/0"

	defaultEmbeddingProvider  = "openai"
	defaultEmbeddingModel     = "text-embedding-3-small"
	defaultEmbeddingDimension = 1536

	// Ranking pipeline defaults. Values mirror the calibration the
	// scoring formulas were tuned against.
	defaultMinPertinence   = 25
	defaultStageOneCap     = 15
	defaultStageTwoCap     = 5
	defaultRoleNudge       = 5
	defaultSimilarityFloor = 0.30
	defaultRetrieveTopN    = 20
)
