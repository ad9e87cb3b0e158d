package arguments

import (
	"context"
	"errors"
	"testing"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup map[string]*models.TesisModel

func (s stubLookup) ByID(_ context.Context, id string) (*models.TesisModel, error) {
	if doc, ok := s[id]; ok {
		return doc, nil
	}
	return nil, apperr.NotFoundf("tesis %s", id)
}

func fixtureLookup() stubLookup {
	return stubLookup{
		"2029345": {
			ID:              "2029345",
			Title:           "DESPIDO INJUSTIFICADO. CARGA DE LA PRUEBA.",
			Type:            models.TesisJurisprudencia,
			IssuingBody:     models.BodySala,
			Epoch:           models.EpochUndecima,
			Subjects:        models.StringArray{"laboral"},
			PublicationYear: 2023,
			Locator:         models.SourceLocator{Book: "Gaceta del Semanario Judicial", Volume: "IV", Page: "1250"},
		},
		"2018777": {
			ID:          "2018777",
			Title:       "PRUEBA TESTIMONIAL. VALORACIÓN.",
			Type:        models.TesisAislada,
			IssuingBody: models.BodyTribunalColegiado,
			Epoch:       models.EpochDecima,
			Subjects:    models.StringArray{"civil"},
		},
	}
}

func TestDraftStructure(t *testing.T) {
	svc := NewService(fixtureLookup())

	draft, err := svc.Draft(context.Background(), DraftDTO{
		TesisID:     "2029345",
		TipoEscrito: "demanda",
		RolProcesal: "actor",
		Tono:        "formal",
	})
	require.NoError(t, err)

	assert.Equal(t, "2029345", draft.TesisID)
	assert.Equal(t, "demanda", draft.TipoEscrito)
	require.Len(t, draft.Parrafos, 4)
	assert.Contains(t, draft.Parrafos[0], "DESPIDO INJUSTIFICADO")
	assert.Contains(t, draft.Parrafos[1], draft.CitaFormal)
	assert.NotEmpty(t, draft.HTML)
}

func TestDraftCitaFormal(t *testing.T) {
	svc := NewService(fixtureLookup())

	draft, err := svc.Draft(context.Background(), DraftDTO{TesisID: "2029345", TipoEscrito: "amparo"})
	require.NoError(t, err)

	assert.Contains(t, draft.CitaFormal, "Jurisprudencia 2029345")
	assert.Contains(t, draft.CitaFormal, "Undécima Época")
	assert.Contains(t, draft.CitaFormal, "Tomo IV")
	assert.Contains(t, draft.CitaFormal, "p. 1250")
	assert.Contains(t, draft.CitaFormal, "(2023)")
}

func TestDraftJurisprudenciaInvokesObligatoriness(t *testing.T) {
	svc := NewService(fixtureLookup())

	j, err := svc.Draft(context.Background(), DraftDTO{TesisID: "2029345", TipoEscrito: "demanda"})
	require.NoError(t, err)
	assert.Contains(t, j.Parrafos[2], "obligatoria")

	a, err := svc.Draft(context.Background(), DraftDTO{TesisID: "2018777", TipoEscrito: "demanda"})
	require.NoError(t, err)
	assert.Contains(t, a.Parrafos[2], "criterio aislado")
}

func TestDraftTones(t *testing.T) {
	svc := NewService(fixtureLookup())

	for _, tono := range []string{"formal", "persuasivo", "tecnico"} {
		draft, err := svc.Draft(context.Background(), DraftDTO{
			TesisID:     "2029345",
			TipoEscrito: "agravios",
			Tono:        tono,
		})
		require.NoError(t, err, "tono %s", tono)
		assert.Equal(t, tono, draft.Tono)
		assert.Len(t, draft.Parrafos, 4)
	}
}

func TestDraftDefaultsToneToFormal(t *testing.T) {
	svc := NewService(fixtureLookup())

	draft, err := svc.Draft(context.Background(), DraftDTO{TesisID: "2029345", TipoEscrito: "contestacion"})
	require.NoError(t, err)
	assert.Equal(t, string(ToneFormal), draft.Tono)
}

func TestDraftUnknownDocumentKind(t *testing.T) {
	svc := NewService(fixtureLookup())

	_, err := svc.Draft(context.Background(), DraftDTO{TesisID: "2029345", TipoEscrito: "oficio"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestDraftUnknownTesis(t *testing.T) {
	svc := NewService(fixtureLookup())

	_, err := svc.Draft(context.Background(), DraftDTO{TesisID: "0000000", TipoEscrito: "demanda"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
