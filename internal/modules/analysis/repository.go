package analysis

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"github.com/astucieuxx/atenea-core/internal/pkg/pagination"
	"github.com/astucieuxx/atenea-core/internal/pkg/response"
	"gorm.io/gorm"
)

// Repository persists saved analyses.
type Repository interface {
	Save(ctx context.Context, record *models.AnalysisModel) error
	ByID(ctx context.Context, id string) (*models.AnalysisModel, error)
	List(ctx context.Context, q pagination.Query) ([]models.AnalysisModel, response.Pagination, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository { return &gormRepository{db: db} }

func (r *gormRepository) Save(ctx context.Context, record *models.AnalysisModel) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *gormRepository) ByID(ctx context.Context, id string) (*models.AnalysisModel, error) {
	var record models.AnalysisModel
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("analysis %s", id)
		}
		return nil, err
	}
	return &record, nil
}

func (r *gormRepository) List(ctx context.Context, q pagination.Query) ([]models.AnalysisModel, response.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&models.AnalysisModel{}).Order("created_at DESC")
	var records []models.AnalysisModel
	pg, err := pagination.Paginate(query, q, &records)
	return records, pg, err
}

// memoryRepository backs tests and DB-less runs.
type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]models.AnalysisModel
}

func NewMemoryRepository() Repository {
	return &memoryRepository{records: map[string]models.AnalysisModel{}}
}

func (r *memoryRepository) Save(_ context.Context, record *models.AnalysisModel) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	return nil
}

func (r *memoryRepository) ByID(_ context.Context, id string) (*models.AnalysisModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, apperr.NotFoundf("analysis %s", id)
	}
	return &record, nil
}

func (r *memoryRepository) List(_ context.Context, q pagination.Query) ([]models.AnalysisModel, response.Pagination, error) {
	r.mu.RLock()
	records := make([]models.AnalysisModel, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	page, pg := pagination.Slice(records, q)
	return page, pg, nil
}
