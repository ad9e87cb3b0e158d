package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config, applies defaults and environment
// overlays, and validates the result. Missing API credentials for the
// generation/embedding path fail here, at startup, with a diagnostic
// naming the variable — never silently later in the request path.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only configuration is allowed
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnvOverlay(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
			Loc:      defaultDBLoc,
		},
		RedisURL: defaultRedisURL,
		Embedding: EmbeddingConfig{
			Provider:  defaultEmbeddingProvider,
			Model:     defaultEmbeddingModel,
			Dimension: defaultEmbeddingDimension,
		},
		Ranking: RankingConfig{
			MinPertinence:   defaultMinPertinence,
			StageOneCap:     defaultStageOneCap,
			StageTwoCap:     defaultStageTwoCap,
			RoleNudge:       defaultRoleNudge,
			SimilarityFloor: defaultSimilarityFloor,
			RetrieveTopN:    defaultRetrieveTopN,
		},
	}
}

// applyDefaults re-fills zero values the YAML decode may have blanked.
func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = defaultEnv
	}
	if strings.TrimSpace(cfg.Embedding.Provider) == "" {
		cfg.Embedding.Provider = defaultEmbeddingProvider
	}
	if strings.TrimSpace(cfg.Embedding.Model) == "" {
		cfg.Embedding.Model = defaultEmbeddingModel
	}
	if cfg.Embedding.Dimension == 0 {
		cfg.Embedding.Dimension = defaultEmbeddingDimension
	}
	r := &cfg.Ranking
	if r.MinPertinence == 0 {
		r.MinPertinence = defaultMinPertinence
	}
	if r.StageOneCap == 0 {
		r.StageOneCap = defaultStageOneCap
	}
	if r.StageTwoCap == 0 {
		r.StageTwoCap = defaultStageTwoCap
	}
	if r.RoleNudge == 0 {
		r.RoleNudge = defaultRoleNudge
	}
	if r.SimilarityFloor == 0 {
		r.SimilarityFloor = defaultSimilarityFloor
	}
	if r.RetrieveTopN == 0 {
		r.RetrieveTopN = defaultRetrieveTopN
	}
}

func applyEnvOverlay(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_DSN")); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("EMBEDDING_PROVIDER")); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv("EMBEDDING_MODEL")); v != "" {
		cfg.Embedding.Model = v
	}

	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return
	}
	if strings.TrimSpace(cfg.Embedding.APIKey) == "" {
		cfg.Embedding.APIKey = key
	}
	if len(cfg.AI.Providers) == 0 {
		cfg.AI.Providers = []AIProvider{{
			ID:      "openai",
			Name:    "OpenAI",
			Type:    "openai",
			APIKey:  key,
			Enabled: true,
		}}
		return
	}
	for i := range cfg.AI.Providers {
		p := &cfg.AI.Providers[i]
		if p.Enabled && strings.TrimSpace(p.APIKey) == "" && strings.EqualFold(p.Type, "openai") {
			p.APIKey = key
		}
	}
}

// Validate enforces startup invariants.
func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if strings.TrimSpace(cfg.Embedding.APIKey) == "" {
		return fmt.Errorf("embedding api key is empty: set OPENAI_API_KEY or embedding.api_key (the ask path cannot start without it)")
	}
	if cfg.EnabledProvider() == nil {
		return fmt.Errorf("no enabled AI provider with an api key: set OPENAI_API_KEY or configure ai.providers")
	}
	if cfg.Embedding.Dimension <= 0 {
		return fmt.Errorf("invalid embedding.dimension %d", cfg.Embedding.Dimension)
	}
	if cfg.Ranking.SimilarityFloor < 0 || cfg.Ranking.SimilarityFloor > 1 {
		return fmt.Errorf("invalid ranking.similarity_floor %v, expected 0-1", cfg.Ranking.SimilarityFloor)
	}
	return nil
}

// EnabledProvider returns the first enabled generation provider that
// carries credentials, or nil.
func (cfg *AppConfig) EnabledProvider() *AIProvider {
	for i := range cfg.AI.Providers {
		p := &cfg.AI.Providers[i]
		if p.Enabled && strings.TrimSpace(p.APIKey) != "" {
			return p
		}
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (cfg *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(cfg.Env), "development")
}

// DSNValue builds the MySQL DSN from the database block.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultDBUser
	}
	password := strings.TrimSpace(c.Password)
	if password == "" {
		password = defaultDBPassword
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(c.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	params := neturl.Values{}
	params.Set("charset", charset)
	params.Set("parseTime", "true")
	params.Set("loc", loc)

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		user, password, net.JoinHostPort(host, strconv.Itoa(port)), name, params.Encode())
}
