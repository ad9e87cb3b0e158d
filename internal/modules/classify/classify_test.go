package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFoldsAccents(t *testing.T) {
	assert.Equal(t, "prescripcion", Normalize("Prescripción"))
	assert.Equal(t, "nino", Normalize("NIÑO"))
	assert.Equal(t, "resolucion judicial", Normalize("  Resolución Judicial "))
}

func TestTokenizeFiltersStopwordsAndShortTokens(t *testing.T) {
	tokens := Tokenize(Normalize("El amparo se promueve contra la autoridad"))

	assert.Contains(t, tokens, "amparo")
	assert.Contains(t, tokens, "promueve")
	assert.Contains(t, tokens, "autoridad")
	assert.NotContains(t, tokens, "el")
	assert.NotContains(t, tokens, "se")
	assert.NotContains(t, tokens, "la")
}

func TestQueryDetectsMaterias(t *testing.T) {
	qc := Query("El trabajador demanda por despido y promueve amparo", "")

	assert.Contains(t, qc.Subjects, "laboral")
	assert.Contains(t, qc.Subjects, "constitucional")
	assert.NotContains(t, qc.Subjects, "mercantil")
}

func TestQueryDetectsProceduralTermsAndConcepts(t *testing.T) {
	qc := Query("Se discute la procedencia del amparo directo y la caducidad de la instancia", "")

	assert.Contains(t, qc.Terms, "procedencia")
	assert.Contains(t, qc.Terms, "caducidad")
	assert.Contains(t, qc.Concepts, "amparo directo")
}

func TestQueryIsDeterministic(t *testing.T) {
	text := "Contrato de arrendamiento, prescripción de la acción de pago"
	a := Query(text, "actor")
	b := Query(text, "actor")

	require.Equal(t, a.Subjects, b.Subjects)
	require.Equal(t, a.Terms, b.Terms)
	require.Equal(t, a.Concepts, b.Concepts)
	require.Equal(t, a.Role, b.Role)
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"quejoso", RoleClaimant},
		{"Actor", RoleClaimant},
		{"demandante", RoleClaimant},
		{"recurrente", RoleClaimant},
		{"demandado", RoleRespondent},
		{"autoridad responsable", RoleRespondent},
		{"tercero interesado", RoleRespondent},
		{"", RoleNone},
		{"perito", RoleNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRole(tt.raw), "role %q", tt.raw)
	}
}
