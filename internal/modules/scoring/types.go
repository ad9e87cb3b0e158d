package scoring

import "github.com/astucieuxx/atenea-core/internal/models"

// SubjectTier is the subject-matter match level a document reached.
type SubjectTier int

const (
	SubjectNone SubjectTier = iota
	SubjectPartial
	SubjectExact
)

// Strength is the user-facing label derived from the numeric scores.
// The raw numbers are internal; end users only ever see this label plus
// the risk-flag list.
type Strength string

const (
	StrengthAlta  Strength = "Alta"
	StrengthMedia Strength = "Media"
	StrengthBaja  Strength = "Baja"
)

// Scored annotates a tesis with the per-query scoring dimensions.
// Ephemeral: recomputed per query, never persisted onto the document.
type Scored struct {
	Tesis       *models.TesisModel
	Pertinence  int
	Authority   int
	Risks       []RiskFlag
	Strength    Strength
	SubjectTier SubjectTier
}
