package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCite(t *testing.T) {
	doc := &TesisModel{
		ID:              "2029345",
		Type:            TesisJurisprudencia,
		Epoch:           EpochUndecima,
		PublicationYear: 2023,
		Locator: SourceLocator{
			Book:   "Gaceta del Semanario Judicial de la Federación",
			Volume: "IV",
			Page:   "1250",
		},
	}

	cite := doc.Cite()
	assert.Equal(t, "Jurisprudencia 2029345, Undécima Época, Gaceta del Semanario Judicial de la Federación, Tomo IV, p. 1250 (2023)", cite)
}

func TestCiteAisladaWithoutLocator(t *testing.T) {
	doc := &TesisModel{ID: "2018777", Type: TesisAislada, Epoch: EpochDecima}

	assert.Equal(t, "Tesis Aislada 2018777, Décima Época", doc.Cite())
}

func TestBodyRankOrdering(t *testing.T) {
	ordered := []IssuingBody{
		BodyJuzgadoDistrito,
		BodyTribunalUnitario,
		BodyTribunalColegiado,
		BodyPlenoRegional,
		BodySala,
		BodySCJN,
		BodyPleno,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank(),
			"%s must outrank %s", ordered[i], ordered[i-1])
	}
}

func TestEpochOrdinal(t *testing.T) {
	assert.Equal(t, 11, EpochUndecima.Ordinal())
	assert.Equal(t, 6, EpochSexta.Ordinal())
	// unknown epochs bottom out instead of panicking
	assert.Equal(t, 6, Epoch("5a").Ordinal())
	assert.False(t, Epoch("5a").Valid())
}
