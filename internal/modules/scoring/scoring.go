// Package scoring computes the three per-query dimensions of a tesis:
// pertinence (topical fit), authority (legal weight) and risk flags.
// Score is a pure function of (document, query context); identical
// inputs always produce identical output, which is what makes the
// pipeline auditable.
package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/astucieuxx/atenea-core/internal/modules/classify"
)

// Pertinence point values.
const (
	pointsSubjectExact   = 35
	pointsSubjectPartial = 15
	maxTermPoints        = 35
	pointsPerTerm        = 7
	maxConceptPoints     = 20
	pointsPerConcept     = 10
	maxLexicalPoints     = 10
)

// Authority point tables. Each contributor is a closed table so the
// whole formula reads as a fold over fixed (value, weight) rows.
var typePoints = map[models.TesisType]int{
	models.TesisJurisprudencia: 40,
	models.TesisAislada:        15,
}

var bodyPoints = map[models.IssuingBody]int{
	models.BodyPleno:             30,
	models.BodySCJN:              28,
	models.BodySala:              25,
	models.BodyPlenoRegional:     22,
	models.BodyTribunalColegiado: 18,
	models.BodyTribunalUnitario:  12,
	models.BodyJuzgadoDistrito:   8,
}

var epochPoints = map[models.Epoch]int{
	models.EpochUndecima: 20,
	models.EpochDecima:   17,
	models.EpochNovena:   14,
	models.EpochOctava:   11,
	models.EpochSeptima:  8,
	models.EpochSexta:    5,
}

// recencyBands: years since publication, ordered newest band first.
var recencyBands = []struct {
	maxYears int
	points   int
}{
	{5, 10},
	{10, 8},
	{20, 5},
	{30, 3},
}

// Engine scores documents against a query context. The reference year
// is fixed at construction so recency scoring is deterministic within a
// process and testable with a pinned year.
type Engine struct {
	refYear int
}

func NewEngine() *Engine { return &Engine{refYear: time.Now().Year()} }

// NewEngineAt pins the recency reference year.
func NewEngineAt(refYear int) *Engine { return &Engine{refYear: refYear} }

// Score computes all three dimensions for one document.
func (e *Engine) Score(doc *models.TesisModel, qc classify.QueryContext) Scored {
	tier := subjectTier(doc, qc)
	pertinence := e.pertinence(doc, qc, tier)
	authority := e.authority(doc)

	mustBeInRange("pertinence", pertinence)
	mustBeInRange("authority", authority)

	return Scored{
		Tesis:       doc,
		Pertinence:  pertinence,
		Authority:   authority,
		Risks:       riskFlags(doc, tier),
		Strength:    strengthLabel(pertinence, authority),
		SubjectTier: tier,
	}
}

// ScoreAll scores a whole corpus slice.
func (e *Engine) ScoreAll(docs []models.TesisModel, qc classify.QueryContext) []Scored {
	out := make([]Scored, 0, len(docs))
	for i := range docs {
		out = append(out, e.Score(&docs[i], qc))
	}
	return out
}

func (e *Engine) pertinence(doc *models.TesisModel, qc classify.QueryContext, tier SubjectTier) int {
	score := 0

	switch tier {
	case SubjectExact:
		score += pointsSubjectExact
	case SubjectPartial:
		score += pointsSubjectPartial
	}

	docText := classify.Normalize(doc.Title + " " + doc.Abstract + " " + doc.FullText)

	matchedTerms := 0
	for _, term := range qc.Terms {
		if strings.Contains(docText, term) {
			matchedTerms++
		}
	}
	score += capped(matchedTerms*pointsPerTerm, maxTermPoints)

	matchedConcepts := 0
	for _, concept := range qc.Concepts {
		if strings.Contains(docText, concept) {
			matchedConcepts++
		}
	}
	score += capped(matchedConcepts*pointsPerConcept, maxConceptPoints)

	score += lexicalOverlap(qc.Tokens, doc.Abstract)

	return capped(score, 100)
}

// lexicalOverlap grants up to maxLexicalPoints proportionally to the
// share of query tokens present in the document abstract.
func lexicalOverlap(queryTokens map[string]struct{}, abstract string) int {
	if len(queryTokens) == 0 {
		return 0
	}
	abstractTokens := classify.Tokenize(classify.Normalize(abstract))
	hits := 0
	for tok := range queryTokens {
		if _, ok := abstractTokens[tok]; ok {
			hits++
		}
	}
	return maxLexicalPoints * hits / len(queryTokens)
}

func (e *Engine) authority(doc *models.TesisModel) int {
	score := typePoints[doc.Type]
	score += bodyPoints[doc.IssuingBody]
	score += epochScore(doc.Epoch)
	score += e.recency(doc.PublicationYear)
	return capped(score, 100)
}

func epochScore(e models.Epoch) int {
	if pts, ok := epochPoints[e]; ok {
		return pts
	}
	// pre-sexta material bottoms out at the oldest tracked weight
	return epochPoints[models.EpochSexta]
}

func (e *Engine) recency(publicationYear int) int {
	if publicationYear <= 0 {
		return 0
	}
	years := e.refYear - publicationYear
	if years < 0 {
		years = 0
	}
	for _, band := range recencyBands {
		if years < band.maxYears {
			return band.points
		}
	}
	return 0
}

// subjectTier determines the subject-matter match level: exact when a
// document subject equals a classified materia, partial when a subject
// merely appears among the query tokens.
func subjectTier(doc *models.TesisModel, qc classify.QueryContext) SubjectTier {
	for _, subject := range doc.Subjects {
		s := classify.Normalize(subject)
		for _, materia := range qc.Subjects {
			if s == materia {
				return SubjectExact
			}
		}
	}
	for _, subject := range doc.Subjects {
		if _, ok := qc.Tokens[classify.Normalize(subject)]; ok {
			return SubjectPartial
		}
	}
	return SubjectNone
}

// strengthLabel maps the two scores onto the user-facing label. The
// mapping is monotone: raising either score never lowers the label.
func strengthLabel(pertinence, authority int) Strength {
	switch {
	case authority >= 70 && pertinence >= 50:
		return StrengthAlta
	case authority >= 40 && pertinence >= 30:
		return StrengthMedia
	default:
		return StrengthBaja
	}
}

func capped(v, max int) int {
	if v > max {
		return max
	}
	return v
}

// mustBeInRange guards the scoring invariant. A score outside [0,100]
// is a formula bug and must fail loudly instead of being clamped.
func mustBeInRange(name string, v int) {
	if v < 0 || v > 100 {
		panic(fmt.Sprintf("scoring: %s score %d outside [0,100]", name, v))
	}
}
