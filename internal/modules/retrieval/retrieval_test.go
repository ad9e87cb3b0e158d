package retrieval

import (
	"context"
	"testing"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(tesisID string, ordinal int, embedding []float32) models.ChunkModel {
	return models.ChunkModel{TesisID: tesisID, Ordinal: ordinal, Embedding: embedding}
}

func builtIndex(t *testing.T) *MemoryIndex {
	t.Helper()
	index := NewMemoryIndex()
	err := index.Rebuild(3, []models.ChunkModel{
		chunk("A", 0, []float32{1, 0, 0}),
		chunk("A", 1, []float32{0.9, 0.1, 0}),
		chunk("B", 0, []float32{0, 1, 0}),
		chunk("C", 0, []float32{0, 0, 1}),
	})
	require.NoError(t, err)
	return index
}

func TestMemoryIndexSearchOrdersBySimilarity(t *testing.T) {
	index := builtIndex(t)

	hits, err := index.Search([]float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 4)

	assert.Equal(t, "A", hits[0].TesisID)
	assert.Equal(t, 0, hits[0].Ordinal)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Equal(t, "A", hits[1].TesisID)
	assert.Equal(t, 1, hits[1].Ordinal)
	assert.Greater(t, hits[1].Score, hits[2].Score)
}

func TestMemoryIndexTopK(t *testing.T) {
	index := builtIndex(t)

	hits, err := index.Search([]float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestMemoryIndexDimensionMismatch(t *testing.T) {
	index := builtIndex(t)

	_, err := index.Search([]float32{1, 0}, 10)
	assert.Error(t, err)

	err = index.Rebuild(3, []models.ChunkModel{chunk("X", 0, []float32{1, 0})})
	assert.Error(t, err)
}

func TestMemoryIndexNotBuilt(t *testing.T) {
	index := NewMemoryIndex()
	_, err := index.Search([]float32{1, 0, 0}, 10)
	assert.Error(t, err)
}

// fixedEmbedder returns the same vector for every input.
type fixedEmbedder struct {
	vector []float32
}

func (f *fixedEmbedder) Model() string  { return "fixed" }
func (f *fixedEmbedder) Dimension() int { return len(f.vector) }
func (f *fixedEmbedder) Embed(context.Context, string) ([]float32, error) {
	return f.vector, nil
}

type mapSource map[string]*models.TesisModel

func (s mapSource) ByIDs(_ context.Context, ids []string) (map[string]*models.TesisModel, error) {
	out := map[string]*models.TesisModel{}
	for _, id := range ids {
		if doc, ok := s[id]; ok {
			out[id] = doc
		}
	}
	return out, nil
}

func testSource() mapSource {
	return mapSource{
		"A": {ID: "A", Title: "Tesis A"},
		"B": {ID: "B", Title: "Tesis B"},
		"C": {ID: "C", Title: "Tesis C"},
	}
}

func TestRetrieveDeduplicatesAtBestChunk(t *testing.T) {
	index := builtIndex(t)
	retriever := NewRetriever(&fixedEmbedder{vector: []float32{1, 0, 0}}, index, testSource(), 10, 0.30)

	res, err := retriever.Retrieve(context.Background(), "consulta")
	require.NoError(t, err)

	require.Len(t, res.Candidates, 3)
	assert.Equal(t, "A", res.Candidates[0].Tesis.ID)
	assert.InDelta(t, 1.0, res.Candidates[0].Similarity, 1e-9)
	assert.True(t, res.HasEvidence)
	assert.InDelta(t, 1.0, res.BestScore, 1e-9)
}

func TestRetrieveAppliesSimilarityFloor(t *testing.T) {
	index := builtIndex(t)
	// orthogonal to everything except C, floor above all scores
	retriever := NewRetriever(&fixedEmbedder{vector: []float32{-1, -1, -1}}, index, testSource(), 10, 0.30)

	res, err := retriever.Retrieve(context.Background(), "consulta")
	require.NoError(t, err)
	assert.False(t, res.HasEvidence)
}

func TestRetrieveSkipsOrphanChunks(t *testing.T) {
	index := builtIndex(t)
	source := testSource()
	delete(source, "B")
	retriever := NewRetriever(&fixedEmbedder{vector: []float32{0, 1, 0}}, index, source, 10, 0.30)

	res, err := retriever.Retrieve(context.Background(), "consulta")
	require.NoError(t, err)

	for _, c := range res.Candidates {
		assert.NotEqual(t, "B", c.Tesis.ID)
	}
}
