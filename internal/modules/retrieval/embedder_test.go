package retrieval

import (
	"testing"

	"github.com/astucieuxx/atenea-core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIEmbedderResolvesDimension(t *testing.T) {
	e, err := NewOpenAIEmbedder(config.EmbeddingConfig{
		APIKey: "sk-test",
		Model:  "text-embedding-3-small",
	})
	require.NoError(t, err)
	assert.Equal(t, 1536, e.Dimension())
	assert.Equal(t, "text-embedding-3-small", e.Model())
}

func TestNewOpenAIEmbedderRejectsDimensionMismatch(t *testing.T) {
	_, err := NewOpenAIEmbedder(config.EmbeddingConfig{
		APIKey:    "sk-test",
		Model:     "text-embedding-3-small",
		Dimension: 3072,
	})
	assert.Error(t, err)
}

func TestNewOpenAIEmbedderRequiresKeyAndKnownDimension(t *testing.T) {
	_, err := NewOpenAIEmbedder(config.EmbeddingConfig{Model: "text-embedding-3-small"})
	assert.Error(t, err)

	_, err = NewOpenAIEmbedder(config.EmbeddingConfig{APIKey: "sk-test", Model: "custom-model"})
	assert.Error(t, err)

	e, err := NewOpenAIEmbedder(config.EmbeddingConfig{APIKey: "sk-test", Model: "custom-model", Dimension: 768})
	require.NoError(t, err)
	assert.Equal(t, 768, e.Dimension())
}
