package scoring

import (
	"testing"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/astucieuxx/atenea-core/internal/modules/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const refYear = 2026

func jurisprudenciaDoc() *models.TesisModel {
	return &models.TesisModel{
		ID:              "2029345",
		Title:           "AMPARO DIRECTO. PROCEDENCIA CONTRA SENTENCIAS DEFINITIVAS DICTADAS EN JUICIOS LABORALES.",
		Abstract:        "La procedencia del amparo directo contra sentencias definitivas exige el agotamiento previo de los recursos ordinarios.",
		Type:            models.TesisJurisprudencia,
		IssuingBody:     models.BodySala,
		Epoch:           models.EpochUndecima,
		Subjects:        models.StringArray{"laboral", "constitucional"},
		PublicationYear: 2023,
		ReaffirmedBy:    4,
	}
}

func aisladaDoc() *models.TesisModel {
	return &models.TesisModel{
		ID:              "2018777",
		Title:           "AMPARO DIRECTO. PROCEDENCIA CONTRA SENTENCIAS DEFINITIVAS DICTADAS EN JUICIOS LABORALES.",
		Abstract:        "La procedencia del amparo directo contra sentencias definitivas exige el agotamiento previo de los recursos ordinarios.",
		Type:            models.TesisAislada,
		IssuingBody:     models.BodySala,
		Epoch:           models.EpochUndecima,
		Subjects:        models.StringArray{"laboral", "constitucional"},
		PublicationYear: 2023,
		ReaffirmedBy:    0,
	}
}

func laborQuery() classify.QueryContext {
	return classify.Query(
		"Despido injustificado de trabajador; se promueve amparo directo contra la sentencia definitiva "+
			"del juicio laboral y se plantea la procedencia conforme al principio de definitividad",
		"quejoso",
	)
}

func TestScoreDeterministic(t *testing.T) {
	engine := NewEngineAt(refYear)
	doc := jurisprudenciaDoc()
	qc := laborQuery()

	first := engine.Score(doc, qc)
	second := engine.Score(doc, qc)

	assert.Equal(t, first.Pertinence, second.Pertinence)
	assert.Equal(t, first.Authority, second.Authority)
	assert.Equal(t, first.Strength, second.Strength)
	assert.Equal(t, first.Risks, second.Risks)
}

func TestScoreRange(t *testing.T) {
	engine := NewEngineAt(refYear)
	docs := []*models.TesisModel{
		jurisprudenciaDoc(),
		aisladaDoc(),
		{ID: "1", Type: models.TesisAislada, IssuingBody: models.BodyJuzgadoDistrito, Epoch: models.EpochSexta},
	}
	qc := laborQuery()

	for _, doc := range docs {
		s := engine.Score(doc, qc)
		assert.GreaterOrEqual(t, s.Pertinence, 0)
		assert.LessOrEqual(t, s.Pertinence, 100)
		assert.GreaterOrEqual(t, s.Authority, 0)
		assert.LessOrEqual(t, s.Authority, 100)
	}
}

func TestJurisprudenciaOutranksAisladaOnAuthority(t *testing.T) {
	engine := NewEngineAt(refYear)
	qc := laborQuery()

	j := engine.Score(jurisprudenciaDoc(), qc)
	a := engine.Score(aisladaDoc(), qc)

	// same body, epoch and year: the binding criterion must weigh more
	assert.Greater(t, j.Authority, a.Authority)
	assert.Equal(t, j.Pertinence, a.Pertinence)
}

func TestAmparoDirectoScenario(t *testing.T) {
	engine := NewEngineAt(refYear)
	qc := laborQuery()

	require.Contains(t, qc.Subjects, "laboral")
	require.Equal(t, classify.RoleClaimant, qc.Role)

	onTopic := engine.Score(jurisprudenciaDoc(), qc)
	offTopic := engine.Score(&models.TesisModel{
		ID:              "3001",
		Title:           "COMPRAVENTA MERCANTIL. MOMENTO DE LA TRANSMISIÓN DEL RIESGO.",
		Abstract:        "En la compraventa mercantil el riesgo se transmite con la entrega de la cosa.",
		Type:            models.TesisJurisprudencia,
		IssuingBody:     models.BodySala,
		Epoch:           models.EpochUndecima,
		Subjects:        models.StringArray{"mercantil"},
		PublicationYear: 2023,
	}, qc)

	assert.Greater(t, onTopic.Pertinence, offTopic.Pertinence)
	assert.Equal(t, StrengthAlta, onTopic.Strength)
}

func TestStrengthLabelMonotone(t *testing.T) {
	tests := []struct {
		name       string
		pertinence int
		authority  int
		want       Strength
	}{
		{"both high", 60, 80, StrengthAlta},
		{"alta lower bound", 50, 70, StrengthAlta},
		{"media", 35, 45, StrengthMedia},
		{"media lower bound", 30, 40, StrengthMedia},
		{"high authority low pertinence", 10, 90, StrengthBaja},
		{"high pertinence low authority", 90, 10, StrengthBaja},
		{"both low", 5, 5, StrengthBaja},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strengthLabel(tt.pertinence, tt.authority))
		})
	}
}

func TestRiskFlags(t *testing.T) {
	engine := NewEngineAt(refYear)
	qc := laborQuery()

	weak := engine.Score(&models.TesisModel{
		ID:              "4001",
		Title:           "PRUEBA TESTIMONIAL EN EL JUICIO LABORAL.",
		Abstract:        "Valoración de la prueba testimonial.",
		Type:            models.TesisAislada,
		IssuingBody:     models.BodyTribunalUnitario,
		Epoch:           models.EpochNovena,
		Subjects:        models.StringArray{"laboral"},
		PublicationYear: 2001,
		ReaffirmedBy:    0,
	}, qc)

	assert.Contains(t, weak.Risks, RiskIsolatedCriterion)
	assert.Contains(t, weak.Risks, RiskOldEpoch)
	assert.Contains(t, weak.Risks, RiskNotReaffirmed)
	assert.Contains(t, weak.Risks, RiskLimitedAuthority)

	strong := engine.Score(jurisprudenciaDoc(), qc)
	assert.NotContains(t, strong.Risks, RiskIsolatedCriterion)
	assert.NotContains(t, strong.Risks, RiskOldEpoch)
	assert.NotContains(t, strong.Risks, RiskNotReaffirmed)
	assert.NotContains(t, strong.Risks, RiskLimitedAuthority)
}

func TestSubjectMatchTiers(t *testing.T) {
	engine := NewEngineAt(refYear)
	qc := classify.Query(
		"Conflicto por contrato de arrendamiento sobre una parcela agraria y la prescripción de la acción",
		"",
	)
	require.Equal(t, []string{"civil"}, qc.Subjects)
	_, agrariaToken := qc.Tokens["agraria"]
	require.True(t, agrariaToken)

	doc := func(subject string) *models.TesisModel {
		return &models.TesisModel{
			ID:              "5001",
			Title:           "PRESCRIPCIÓN DE LA ACCIÓN DE NULIDAD. CÓMPUTO.",
			Abstract:        "La prescripción de la acción se computa desde que la obligación es exigible.",
			Type:            models.TesisJurisprudencia,
			IssuingBody:     models.BodySala,
			Epoch:           models.EpochUndecima,
			Subjects:        models.StringArray{subject},
			PublicationYear: 2023,
			ReaffirmedBy:    2,
		}
	}

	// same document text, same query: only the subject list varies, so
	// pertinence deltas isolate the tier points
	none := engine.Score(doc("maritimo"), qc)
	partial := engine.Score(doc("agraria"), qc)
	exact := engine.Score(doc("civil"), qc)

	assert.Equal(t, SubjectNone, none.SubjectTier)
	assert.Equal(t, SubjectPartial, partial.SubjectTier)
	assert.Equal(t, SubjectExact, exact.SubjectTier)

	assert.Equal(t, 15, partial.Pertinence-none.Pertinence)
	assert.Equal(t, 35, exact.Pertinence-none.Pertinence)

	assert.Contains(t, partial.Risks, RiskPartialSubjectMatch)
	assert.NotContains(t, none.Risks, RiskPartialSubjectMatch)
	assert.NotContains(t, exact.Risks, RiskPartialSubjectMatch)
}

func TestRiskCatalogComplete(t *testing.T) {
	for _, flag := range []RiskFlag{
		RiskIsolatedCriterion,
		RiskOldEpoch,
		RiskNotReaffirmed,
		RiskLimitedAuthority,
		RiskPartialSubjectMatch,
	} {
		info := flag.Info()
		assert.NotEmpty(t, info.Label, "flag %s", flag)
		assert.NotEmpty(t, info.Description, "flag %s", flag)
	}
}

func TestApplyRoleNudge(t *testing.T) {
	engine := NewEngineAt(refYear)
	qc := laborQuery()

	t.Run("claimant gains on procedencia criteria", func(t *testing.T) {
		s := engine.Score(jurisprudenciaDoc(), qc)
		base := s.Pertinence
		ApplyRoleNudge(&s, classify.RoleClaimant, 5)
		assert.Equal(t, base+5, s.Pertinence)
	})

	t.Run("claimant loses on improcedencia criteria", func(t *testing.T) {
		doc := jurisprudenciaDoc()
		doc.Title = "AMPARO. IMPROCEDENCIA CUANDO NO SE AGOTA EL PRINCIPIO DE DEFINITIVIDAD."
		doc.Abstract = "Resulta improcedente el juicio de amparo si no se agotaron los recursos ordinarios."
		s := engine.Score(doc, qc)
		base := s.Pertinence
		ApplyRoleNudge(&s, classify.RoleClaimant, 5)
		assert.Equal(t, base-5, s.Pertinence)
	})

	t.Run("respondent gains on improcedencia criteria", func(t *testing.T) {
		doc := jurisprudenciaDoc()
		doc.Title = "EXCEPCIÓN DE PRESCRIPCIÓN EN MATERIA LABORAL."
		doc.Abstract = "La excepcion de prescripcion debe analizarse de oficio."
		s := engine.Score(doc, qc)
		base := s.Pertinence
		ApplyRoleNudge(&s, classify.RoleRespondent, 5)
		assert.Equal(t, base+5, s.Pertinence)
	})

	t.Run("no role means no nudge", func(t *testing.T) {
		s := engine.Score(jurisprudenciaDoc(), qc)
		base := s.Pertinence
		ApplyRoleNudge(&s, classify.RoleNone, 5)
		assert.Equal(t, base, s.Pertinence)
	})

	t.Run("result stays inside bounds", func(t *testing.T) {
		s := engine.Score(jurisprudenciaDoc(), qc)
		s.Pertinence = 98
		ApplyRoleNudge(&s, classify.RoleClaimant, 5)
		assert.LessOrEqual(t, s.Pertinence, 100)

		s.Pertinence = 2
		ApplyRoleNudge(&s, classify.RoleRespondent, 5)
		assert.GreaterOrEqual(t, s.Pertinence, 0)
	})
}

func TestRecencyBands(t *testing.T) {
	engine := NewEngineAt(refYear)

	tests := []struct {
		year int
		want int
	}{
		{2025, 10},
		{2019, 8},
		{2010, 5},
		{1999, 3},
		{1980, 0},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.recency(tt.year), "year %d", tt.year)
	}
}
