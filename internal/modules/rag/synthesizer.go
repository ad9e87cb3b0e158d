// Package rag generates grounded answers: a ranked retrieval context is
// handed to a generative model under strict citation instructions, and
// the output goes through citation resolution so every visible marker
// maps to a real retrieved source.
package rag

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/astucieuxx/atenea-core/internal/modules/retrieval"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

// Confidence bands for an AnswerRecord.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// NoEvidenceAnswer is returned verbatim when retrieval produced nothing
// above the similarity floor. It carries no markers by construction.
const NoEvidenceAnswer = "No se encontró precedente aplicable en el corpus consultado. " +
	"Reformula la pregunta con los términos procesales del caso o consulta a un especialista."

// AnswerRecord is the atomic output of one ask request: either fully
// resolved or not returned at all.
type AnswerRecord struct {
	Answer      string   `json:"answer"`
	AnswerHTML  string   `json:"answer_html"`
	TesisUsed   []Source `json:"tesisUsed"`
	Confidence  string   `json:"confidence"`
	HasEvidence bool     `json:"hasEvidence"`
}

// Synthesizer produces AnswerRecords from retrieval results.
type Synthesizer struct {
	provider *Provider
	md       goldmark.Markdown
	logger   *zap.Logger
}

type SynthesizerOption func(*Synthesizer)

// WithLogger sets the logger for the synthesizer.
func WithLogger(l *zap.Logger) SynthesizerOption {
	return func(s *Synthesizer) {
		if l != nil {
			s.logger = l.Named("Synthesizer")
		}
	}
}

func NewSynthesizer(provider *Provider, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		provider: provider,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Answer synthesizes the response for a question over the retrieval
// result. Zero evidence short-circuits to the fixed no-evidence record
// without spending a model call.
func (s *Synthesizer) Answer(ctx context.Context, question string, res retrieval.Result) (AnswerRecord, error) {
	if !res.HasEvidence || len(res.Candidates) == 0 {
		return AnswerRecord{
			Answer:      NoEvidenceAnswer,
			AnswerHTML:  s.renderHTML(NoEvidenceAnswer),
			TesisUsed:   []Source{},
			Confidence:  ConfidenceLow,
			HasEvidence: false,
		}, nil
	}

	sources := make([]Source, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		sources = append(sources, Source{
			ID:             c.Tesis.ID,
			Title:          c.Tesis.Title,
			Citation:       c.Tesis.Cite(),
			RelevanceScore: c.Similarity,
		})
	}

	raw, err := s.provider.Generate(ctx, answerSystemPrompt, buildAnswerPrompt(question, res.Candidates), 800)
	if err != nil {
		return AnswerRecord{}, fmt.Errorf("synthesize answer: %w", err)
	}

	resolution := ResolveCitations(strings.TrimSpace(raw), sources)
	for _, marker := range resolution.Anomalies {
		s.logger.Warn("stripped citation marker with unknown target",
			zap.String("marker", marker),
			zap.Int("sources", len(sources)),
		)
	}

	return AnswerRecord{
		Answer:      resolution.Text,
		AnswerHTML:  s.renderHTML(resolution.Text),
		TesisUsed:   sources,
		Confidence:  confidenceFor(res.BestScore, len(sources)),
		HasEvidence: true,
	}, nil
}

// Insight drafts the strategic paragraph for the case-analysis view.
func (s *Synthesizer) Insight(ctx context.Context, descripcion, role string, titles []string) (string, error) {
	raw, err := s.provider.Generate(ctx, insightSystemPrompt, buildInsightPrompt(descripcion, role, titles), 300)
	if err != nil {
		return "", fmt.Errorf("synthesize insight: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

func (s *Synthesizer) renderHTML(text string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// confidenceFor derives the confidence band from the best retrieval
// similarity and the number of sources backing the answer.
func confidenceFor(bestScore float64, sourceCount int) string {
	switch {
	case bestScore >= 0.55 && sourceCount >= 3:
		return ConfidenceHigh
	case bestScore >= 0.40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
