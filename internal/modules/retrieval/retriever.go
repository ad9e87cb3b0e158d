// Package retrieval implements the RAG-path candidate search: embed the
// query, run k-NN over chunk embeddings, and map chunks back to their
// owning tesis, deduplicated at each document's best chunk score.
package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/astucieuxx/atenea-core/internal/models"
	"go.uber.org/zap"
)

// DocumentSource resolves tesis records for retrieved chunk hits.
type DocumentSource interface {
	ByIDs(ctx context.Context, ids []string) (map[string]*models.TesisModel, error)
}

// Candidate is a retrieved tesis with its best chunk similarity.
type Candidate struct {
	Tesis      *models.TesisModel
	Similarity float64
}

// Result is the document-level outcome of one retrieval.
type Result struct {
	Candidates  []Candidate
	BestScore   float64
	HasEvidence bool
}

// Retriever ties the embedder, vector index and document store together.
type Retriever struct {
	embedder Embedder
	index    VectorIndex
	docs     DocumentSource
	topN     int
	floor    float64
	logger   *zap.Logger
}

type Option func(*Retriever)

// WithLogger sets the logger for the retriever.
func WithLogger(l *zap.Logger) Option {
	return func(r *Retriever) {
		if l != nil {
			r.logger = l.Named("Retriever")
		}
	}
}

func NewRetriever(embedder Embedder, index VectorIndex, docs DocumentSource, topN int, floor float64, opts ...Option) *Retriever {
	r := &Retriever{
		embedder: embedder,
		index:    index,
		docs:     docs,
		topN:     topN,
		floor:    floor,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Retrieve embeds the query and returns deduplicated document
// candidates ordered by descending similarity. HasEvidence is false
// when nothing survives or the best similarity falls under the floor.
func (r *Retriever) Retrieve(ctx context.Context, query string) (Result, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.index.Search(vector, r.topN)
	if err != nil {
		return Result{}, fmt.Errorf("vector search: %w", err)
	}

	best := map[string]float64{}
	order := make([]string, 0, len(hits))
	for _, hit := range hits {
		if prev, seen := best[hit.TesisID]; seen {
			if hit.Score > prev {
				best[hit.TesisID] = hit.Score
			}
			continue
		}
		best[hit.TesisID] = hit.Score
		order = append(order, hit.TesisID)
	}

	if len(order) == 0 {
		return Result{HasEvidence: false}, nil
	}

	docs, err := r.docs.ByIDs(ctx, order)
	if err != nil {
		return Result{}, fmt.Errorf("resolve documents: %w", err)
	}

	candidates := make([]Candidate, 0, len(order))
	for _, id := range order {
		doc, ok := docs[id]
		if !ok {
			// chunk referencing a missing tesis means a torn ingestion
			r.logger.Warn("retrieved chunk has no owning tesis", zap.String("tesis_id", id))
			continue
		}
		candidates = append(candidates, Candidate{Tesis: doc, Similarity: best[id]})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].Tesis.ID < candidates[j].Tesis.ID
	})

	result := Result{Candidates: candidates}
	if len(candidates) > 0 {
		result.BestScore = candidates[0].Similarity
		result.HasEvidence = result.BestScore >= r.floor
	}
	return result, nil
}
