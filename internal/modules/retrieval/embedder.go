package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/astucieuxx/atenea-core/internal/config"
	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
)

// Embedder turns a query into the fixed-length vector of the corpus
// embedding space. Implementations must use the exact model the corpus
// was ingested with; a mismatch is a configuration error caught at
// startup, not at query time.
type Embedder interface {
	Model() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

const (
	defaultEmbeddingBaseURL = "https://api.openai.com/v1"
	embedTimeout            = 30 * time.Second
)

// Known dimensions per OpenAI embedding model.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint.
type OpenAIEmbedder struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// NewOpenAIEmbedder validates the embedding configuration and returns a
// ready client.
func NewOpenAIEmbedder(cfg config.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("embedding api key is empty")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("embedding model is empty")
	}

	dimension := cfg.Dimension
	if known, ok := modelDimensions[model]; ok && dimension != 0 && dimension != known {
		return nil, fmt.Errorf("embedding dimension %d does not match model %s (%d): corpus and query embedder must agree", cfg.Dimension, model, known)
	}
	if dimension == 0 {
		dimension = modelDimensions[model]
	}
	if dimension == 0 {
		return nil, fmt.Errorf("unknown dimension for embedding model %s: set embedding.dimension", model)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if baseURL == "" {
		baseURL = defaultEmbeddingBaseURL
	}

	return &OpenAIEmbedder{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		model:     model,
		dimension: dimension,
		client:    &http.Client{Timeout: embedTimeout},
	}, nil
}

func (e *OpenAIEmbedder) Model() string  { return e.model }
func (e *OpenAIEmbedder) Dimension() int { return e.dimension }

// Embed requests one embedding. Transient failures (network, 429, 5xx)
// get a single retry; client errors do not.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.embedOnce(ctx, text)
	if err == nil {
		return vec, nil
	}
	if !isTransient(err) {
		return nil, apperr.Upstream(err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(300 * time.Millisecond):
	}
	vec, err = e.embedOnce(ctx, text)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return vec, nil
}

type transientError struct{ err error }

func (t *transientError) Error() string { return t.err.Error() }
func (t *transientError) Unwrap() error { return t.err }

func isTransient(err error) bool {
	_, ok := err.(*transientError)
	return ok
}

func (e *OpenAIEmbedder) embedOnce(ctx context.Context, text string) ([]float32, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"model": e.model,
		"input": text,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(e.apiKey))

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &transientError{err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{err}
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &transientError{fmt.Errorf("embeddings request failed: %s", resp.Status)}
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("embeddings request rejected: %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var out struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	vec := out.Data[0].Embedding
	if len(vec) != e.dimension {
		return nil, fmt.Errorf("embedding dimension %d does not match configured %d for model %s", len(vec), e.dimension, e.model)
	}
	return vec, nil
}
