package retrieval

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/astucieuxx/atenea-core/internal/models"
)

// Hit is one chunk-level nearest-neighbor match.
type Hit struct {
	TesisID string
	Ordinal int
	Score   float64 // cosine similarity
}

// VectorIndex answers k-NN queries over chunk embeddings. Rebuild is an
// out-of-band maintenance operation; Search runs on the query path.
type VectorIndex interface {
	Rebuild(dimension int, chunks []models.ChunkModel) error
	Search(vector []float32, topK int) ([]Hit, error)
	Size() int
	Dimension() int
}

// MemoryIndex is an exact cosine-similarity index held in memory.
// Vectors are L2-normalized at insert so search reduces to a dot
// product. The corpus is small enough that exact search substitutes for
// an approximate structure without a latency penalty.
type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	refs      []chunkRef
}

type chunkRef struct {
	tesisID string
	ordinal int
}

func NewMemoryIndex() *MemoryIndex { return &MemoryIndex{} }

// Rebuild replaces the whole index. Chunks with a wrong-sized or zero
// vector are rejected: a dimension mismatch means corpus and query
// embedder disagree.
func (m *MemoryIndex) Rebuild(dimension int, chunks []models.ChunkModel) error {
	if dimension <= 0 {
		return errors.New("vector index: invalid dimension")
	}

	vectors := make([][]float32, 0, len(chunks))
	refs := make([]chunkRef, 0, len(chunks))
	for i := range chunks {
		c := &chunks[i]
		if len(c.Embedding) != dimension {
			return errors.New("vector index: chunk embedding dimension mismatch (re-ingest corpus with the configured model)")
		}
		vectors = append(vectors, normalize(c.Embedding))
		refs = append(refs, chunkRef{tesisID: c.TesisID, ordinal: c.Ordinal})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimension = dimension
	m.vectors = vectors
	m.refs = refs
	return nil
}

// Search returns the topK chunks by cosine similarity.
func (m *MemoryIndex) Search(vector []float32, topK int) ([]Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.dimension == 0 {
		return nil, errors.New("vector index: not built")
	}
	if len(vector) != m.dimension {
		return nil, errors.New("vector index: query vector dimension mismatch")
	}
	if topK <= 0 {
		topK = 10
	}

	query := normalize(vector)
	hits := make([]Hit, 0, len(m.vectors))
	for i, v := range m.vectors {
		hits = append(hits, Hit{
			TesisID: m.refs[i].tesisID,
			Ordinal: m.refs[i].ordinal,
			Score:   dot(v, query),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].TesisID != hits[j].TesisID {
			return hits[i].TesisID < hits[j].TesisID
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (m *MemoryIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vectors)
}

func (m *MemoryIndex) Dimension() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dimension
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
