package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(writeConfig(t, "env: development\n"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultMinPertinence, cfg.Ranking.MinPertinence)
	assert.Equal(t, defaultStageTwoCap, cfg.Ranking.StageTwoCap)
	assert.Equal(t, defaultSimilarityFloor, cfg.Ranking.SimilarityFloor)
	assert.Equal(t, defaultEmbeddingModel, cfg.Embedding.Model)
	assert.True(t, cfg.IsDev())
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)

	provider := cfg.EnabledProvider()
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.Type)
	assert.Equal(t, "sk-test", provider.APIKey)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := Load(writeConfig(t, "prot: 2333\n"))
	assert.Error(t, err)
}

func TestLoadFailsWithoutEmbeddingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load(writeConfig(t, "env: production\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadYAMLBeatsDefaultsEnvBeatsYAML(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("EMBEDDING_MODEL", "text-embedding-3-large")

	cfg, err := Load(writeConfig(t, `
port: 4444
embedding:
  model: text-embedding-ada-002
ranking:
  min_pertinence: 30
`))
	require.NoError(t, err)

	assert.Equal(t, 4444, cfg.Port)
	assert.Equal(t, 30, cfg.Ranking.MinPertinence)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedding.Model)
}

func TestValidateSimilarityFloorRange(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := Load(writeConfig(t, "ranking:\n  similarity_floor: 1.5\n"))
	assert.Error(t, err)
}

func TestDSNValue(t *testing.T) {
	t.Run("explicit dsn wins", func(t *testing.T) {
		db := DatabaseRuntimeConfig{DSN: "user:pass@tcp(db:3306)/atenea"}
		assert.Equal(t, "user:pass@tcp(db:3306)/atenea", db.DSNValue())
	})

	t.Run("built from parts", func(t *testing.T) {
		db := DatabaseRuntimeConfig{Host: "db", Port: 3307, User: "atenea", Password: "s3cret", Name: "atenea"}
		dsn := db.DSNValue()
		assert.Contains(t, dsn, "atenea:s3cret@tcp(db:3307)/atenea")
		assert.Contains(t, dsn, "parseTime=true")
	})
}
