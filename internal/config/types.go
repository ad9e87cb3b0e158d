package config

// AppConfig holds runtime startup configuration loaded from YAML with
// environment-variable overlays.
type AppConfig struct {
	Port     int                   `yaml:"port"`
	Env      string                `yaml:"env"` // "development" | "production"
	Database DatabaseRuntimeConfig `yaml:"database"`
	// RedisURL empty disables rate limiting, idempotence and telemetry.
	RedisURL       string          `yaml:"redis_url"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	JWTSecret      string          `yaml:"jwt_secret"`
	AdminKey       string          `yaml:"admin_key"`
	AI             AIConfig        `yaml:"ai"`
	Embedding      EmbeddingConfig `yaml:"embedding"`
	Ranking        RankingConfig   `yaml:"ranking"`
}

type DatabaseRuntimeConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Loc      string `yaml:"loc"`
}

// AIConfig configures the generation providers used by the ask path
// and the case-analysis insight.
type AIConfig struct {
	Providers []AIProvider `yaml:"providers"`
}

type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // openai | openai-compatible | anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// EmbeddingConfig pins the embedding model used for queries. It must
// match the model the corpus was ingested with; a mismatch is a
// configuration error, not a runtime-recoverable one.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	Dimension int    `yaml:"dimension"`
}

// RankingConfig exposes the empirically tuned pipeline thresholds.
// Defaults preserve the calibrated values; they are configuration, not
// fixed law.
type RankingConfig struct {
	MinPertinence   int     `yaml:"min_pertinence"`
	StageOneCap     int     `yaml:"stage_one_cap"`
	StageTwoCap     int     `yaml:"stage_two_cap"`
	RoleNudge       int     `yaml:"role_nudge"`
	SimilarityFloor float64 `yaml:"similarity_floor"`
	RetrieveTopN    int     `yaml:"retrieve_top_n"`
}
