// Package ask exposes the grounded question-answering endpoint: embed
// the question, retrieve candidate tesis and synthesize a cited answer.
package ask

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/astucieuxx/atenea-core/internal/modules/rag"
	"github.com/astucieuxx/atenea-core/internal/modules/retrieval"
	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"github.com/astucieuxx/atenea-core/internal/pkg/response"
	"github.com/astucieuxx/atenea-core/internal/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const minQuestionRunes = 10

// AskDTO is the question payload.
type AskDTO struct {
	Question string `json:"question" binding:"required"`
}

type Service struct {
	retriever *retrieval.Retriever
	synth     *rag.Synthesizer
	telemetry *telemetry.Recorder
	logger    *zap.Logger
}

func NewService(retriever *retrieval.Retriever, synth *rag.Synthesizer, recorder *telemetry.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		retriever: retriever,
		synth:     synth,
		telemetry: recorder,
		logger:    logger.Named("AskService"),
	}
}

// Ask answers one question over the corpus. The no-evidence outcome is
// a successful response, not an error.
func (s *Service) Ask(ctx context.Context, question string) (rag.AnswerRecord, error) {
	started := time.Now()

	question = strings.TrimSpace(question)
	if utf8.RuneCountInString(question) < minQuestionRunes {
		return rag.AnswerRecord{}, apperr.Validationf("la pregunta requiere al menos %d caracteres", minQuestionRunes)
	}

	res, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return rag.AnswerRecord{}, err
	}

	record, err := s.synth.Answer(ctx, question, res)
	if err != nil {
		return rag.AnswerRecord{}, err
	}

	s.telemetry.Record(ctx, telemetry.Event{
		Kind:        "ask",
		Query:       question,
		ResultCount: len(record.TesisUsed),
		HasEvidence: record.HasEvidence,
		DurationMS:  time.Since(started).Milliseconds(),
	})
	return record, nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask", h.ask)
}

func (h *Handler) ask(c *gin.Context) {
	var dto AskDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "el campo question es obligatorio")
		return
	}

	record, err := h.svc.Ask(c.Request.Context(), dto.Question)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			response.BadRequest(c, userMessage(err))
		case errors.Is(err, apperr.ErrUpstreamModel):
			h.svc.logger.Error("upstream model failure", zap.Error(err))
			response.InternalError(c, "el servicio de modelos no está disponible, intenta de nuevo")
		default:
			h.svc.logger.Error("ask failed", zap.Error(err))
			response.InternalError(c, "no fue posible responder la pregunta")
		}
		return
	}
	response.OK(c, record)
}

func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
