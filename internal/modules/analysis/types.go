package analysis

import (
	"time"

	"github.com/astucieuxx/atenea-core/internal/modules/scoring"
)

// AnalyzeDTO is the case description submitted for analysis.
type AnalyzeDTO struct {
	Descripcion string `json:"descripcion" binding:"required"`
	RolProcesal string `json:"rol_procesal"`
}

// RiskView is one rendered weakness tag.
type RiskView struct {
	Flag        scoring.RiskFlag `json:"flag"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
}

// ScoredTesisView is the user-facing projection of a ranked tesis.
// Scores surface only as the strength label and the risk list; the raw
// numbers stay internal.
type ScoredTesisView struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Citation        string           `json:"citation"`
	Type            string           `json:"type"`
	IssuingBody     string           `json:"issuing_body"`
	Epoch           string           `json:"epoch"`
	PublicationYear int              `json:"publication_year"`
	Materias        []string         `json:"materias"`
	Strength        scoring.Strength `json:"strength"`
	Risks           []RiskView       `json:"risks"`
}

// Result is the complete analysis returned to the client and persisted
// for later retrieval.
type Result struct {
	ID               string            `json:"id"`
	Descripcion      string            `json:"descripcion"`
	RolProcesal      string            `json:"rol_procesal"`
	ProblemaJuridico string            `json:"problema_juridico"`
	TesisRelevantes  []ScoredTesisView `json:"tesis_relevantes"`
	InsightJuridico  string            `json:"insight_juridico,omitempty"`
	Created          time.Time         `json:"created"`
}

func viewFor(s scoring.Scored) ScoredTesisView {
	risks := make([]RiskView, 0, len(s.Risks))
	for _, f := range s.Risks {
		info := f.Info()
		risks = append(risks, RiskView{Flag: f, Label: info.Label, Description: info.Description})
	}
	return ScoredTesisView{
		ID:              s.Tesis.ID,
		Title:           s.Tesis.Title,
		Citation:        s.Tesis.Cite(),
		Type:            string(s.Tesis.Type),
		IssuingBody:     string(s.Tesis.IssuingBody),
		Epoch:           string(s.Tesis.Epoch),
		PublicationYear: s.Tesis.PublicationYear,
		Materias:        s.Tesis.Subjects,
		Strength:        s.Strength,
		Risks:           risks,
	}
}
