package tesis

import (
	"context"
	"errors"
	"sync"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Repository reads the precedent corpus. The query path never writes
// these tables; ingestion owns them.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository { return &Repository{db: db} }

// ByID fetches one tesis by registry number.
func (r *Repository) ByID(ctx context.Context, id string) (*models.TesisModel, error) {
	var doc models.TesisModel
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("tesis %s", id)
		}
		return nil, err
	}
	return &doc, nil
}

// ByIDs resolves a batch of tesis, keyed by registry number. Missing
// ids are simply absent from the map.
func (r *Repository) ByIDs(ctx context.Context, ids []string) (map[string]*models.TesisModel, error) {
	if len(ids) == 0 {
		return map[string]*models.TesisModel{}, nil
	}
	var docs []models.TesisModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&docs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]*models.TesisModel, len(docs))
	for i := range docs {
		out[docs[i].ID] = &docs[i]
	}
	return out, nil
}

// All loads the complete corpus, ordered by registry number.
func (r *Repository) All(ctx context.Context) ([]models.TesisModel, error) {
	var docs []models.TesisModel
	if err := r.db.WithContext(ctx).Order("id").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Chunks loads every embedded chunk, for index builds.
func (r *Repository) Chunks(ctx context.Context) ([]models.ChunkModel, error) {
	var chunks []models.ChunkModel
	if err := r.db.WithContext(ctx).Order("tesis_id, ordinal").Find(&chunks).Error; err != nil {
		return nil, err
	}
	return chunks, nil
}

// Search runs a lexical LIKE search over title and abstract.
func (r *Repository) Search(ctx context.Context, q string, limit int) ([]models.TesisModel, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + q + "%"
	var docs []models.TesisModel
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR abstract LIKE ?", pattern, pattern).
		Order("publication_year DESC").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}

// Corpus is the in-memory snapshot of all tesis the case-analysis path
// scores against. Loaded at startup, replaced wholesale on reindex;
// readers always see a consistent slice.
type Corpus struct {
	mu   sync.RWMutex
	docs []models.TesisModel
}

func NewCorpus() *Corpus { return &Corpus{} }

// Load refreshes the snapshot from the repository.
func (c *Corpus) Load(ctx context.Context, repo *Repository) error {
	docs, err := repo.All(ctx)
	if err != nil {
		return err
	}
	c.Replace(docs)
	return nil
}

// Replace swaps in a new snapshot.
func (c *Corpus) Replace(docs []models.TesisModel) {
	c.mu.Lock()
	c.docs = docs
	c.mu.Unlock()
}

// Docs returns the current snapshot. Callers must not mutate it.
func (c *Corpus) Docs() []models.TesisModel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.docs
}

// Size reports the number of loaded documents.
func (c *Corpus) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}
