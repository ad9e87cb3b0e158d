package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/astucieuxx/atenea-core/internal/modules/classify"
	"github.com/astucieuxx/atenea-core/internal/modules/rag"
	"github.com/astucieuxx/atenea-core/internal/modules/ranker"
	"github.com/astucieuxx/atenea-core/internal/modules/scoring"
	"github.com/astucieuxx/atenea-core/internal/modules/tesis"
	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"github.com/astucieuxx/atenea-core/internal/pkg/pagination"
	"github.com/astucieuxx/atenea-core/internal/pkg/response"
	"github.com/astucieuxx/atenea-core/internal/pkg/telemetry"
	"go.uber.org/zap"
)

const minDescripcionRunes = 10

// Service runs the case-analysis pipeline: classify the description,
// score the whole corpus against it, rank in two stages and render the
// user-facing views. The strategic insight comes from the generative
// model and degrades to empty when that call fails.
type Service struct {
	corpus    *tesis.Corpus
	engine    *scoring.Engine
	ranker    *ranker.Ranker
	synth     *rag.Synthesizer
	repo      Repository
	telemetry *telemetry.Recorder
	roleNudge int
	logger    *zap.Logger
}

func NewService(
	corpus *tesis.Corpus,
	engine *scoring.Engine,
	rk *ranker.Ranker,
	synth *rag.Synthesizer,
	repo Repository,
	recorder *telemetry.Recorder,
	roleNudge int,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		corpus:    corpus,
		engine:    engine,
		ranker:    rk,
		synth:     synth,
		repo:      repo,
		telemetry: recorder,
		roleNudge: roleNudge,
		logger:    logger.Named("AnalysisService"),
	}
}

// Analyze processes one case description end to end and persists the
// result.
func (s *Service) Analyze(ctx context.Context, descripcion, rolProcesal string) (*Result, error) {
	started := time.Now()

	descripcion = strings.TrimSpace(descripcion)
	if utf8.RuneCountInString(descripcion) < minDescripcionRunes {
		return nil, apperr.Validationf("la descripción del caso requiere al menos %d caracteres", minDescripcionRunes)
	}

	qc := classify.Query(descripcion, rolProcesal)

	scored := s.engine.ScoreAll(s.corpus.Docs(), qc)
	for i := range scored {
		scoring.ApplyRoleNudge(&scored[i], qc.Role, s.roleNudge)
	}
	ranked := s.ranker.Rank(scored)

	views := make([]ScoredTesisView, 0, len(ranked))
	titles := make([]string, 0, len(ranked))
	for _, sc := range ranked {
		views = append(views, viewFor(sc))
		titles = append(titles, sc.Tesis.Title)
	}

	insight := ""
	if s.synth != nil && len(ranked) > 0 {
		text, err := s.synth.Insight(ctx, descripcion, string(qc.Role), titles)
		if err != nil {
			// the ranked list stands on its own without the insight
			s.logger.Warn("insight generation failed", zap.Error(err))
		} else {
			insight = text
		}
	}

	serialized, err := json.Marshal(views)
	if err != nil {
		return nil, fmt.Errorf("serialize ranked tesis: %w", err)
	}

	record := models.AnalysisModel{
		Descripcion:      descripcion,
		RolProcesal:      string(qc.Role),
		ProblemaJuridico: problemaJuridico(qc),
		InsightJuridico:  insight,
		TesisRelevantes:  serialized,
	}
	if err := s.repo.Save(ctx, &record); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	s.telemetry.Record(ctx, telemetry.Event{
		Kind:        "analyze",
		Query:       descripcion,
		ResultCount: len(views),
		HasEvidence: len(views) > 0,
		DurationMS:  time.Since(started).Milliseconds(),
	})

	return &Result{
		ID:               record.ID,
		Descripcion:      record.Descripcion,
		RolProcesal:      record.RolProcesal,
		ProblemaJuridico: record.ProblemaJuridico,
		TesisRelevantes:  views,
		InsightJuridico:  record.InsightJuridico,
		Created:          record.CreatedAt,
	}, nil
}

// ByID loads a saved analysis.
func (s *Service) ByID(ctx context.Context, id string) (*Result, error) {
	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var views []ScoredTesisView
	if len(record.TesisRelevantes) > 0 {
		if err := json.Unmarshal(record.TesisRelevantes, &views); err != nil {
			return nil, fmt.Errorf("decode saved analysis %s: %w", id, err)
		}
	}

	return &Result{
		ID:               record.ID,
		Descripcion:      record.Descripcion,
		RolProcesal:      record.RolProcesal,
		ProblemaJuridico: record.ProblemaJuridico,
		TesisRelevantes:  views,
		InsightJuridico:  record.InsightJuridico,
		Created:          record.CreatedAt,
	}, nil
}

// List pages over saved analyses, newest first.
func (s *Service) List(ctx context.Context, q pagination.Query) ([]models.AnalysisModel, response.Pagination, error) {
	return s.repo.List(ctx, q)
}

// problemaJuridico phrases the legal question the analysis answers,
// from the classified materias and concepts.
func problemaJuridico(qc classify.QueryContext) string {
	focus := "la controversia planteada"
	switch {
	case len(qc.Concepts) > 0:
		focus = joinSpanish(qc.Concepts)
	case len(qc.Terms) > 0:
		focus = joinSpanish(qc.Terms)
	}
	if len(qc.Subjects) > 0 {
		return fmt.Sprintf(
			"Determinar el tratamiento que los criterios del Poder Judicial de la Federación dan a %s en materia %s.",
			focus, joinSpanish(qc.Subjects),
		)
	}
	return fmt.Sprintf(
		"Determinar el tratamiento que los criterios del Poder Judicial de la Federación dan a %s.",
		focus,
	)
}

func joinSpanish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " y " + items[len(items)-1]
}
