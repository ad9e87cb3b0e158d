package rag

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSources() []Source {
	return []Source{
		{ID: "2029345", Title: "Primera", Citation: "Jurisprudencia 2029345"},
		{ID: "2018777", Title: "Segunda", Citation: "Tesis Aislada 2018777"},
		{ID: "2001234", Title: "Tercera", Citation: "Jurisprudencia 2001234"},
	}
}

func TestResolveCitationsKeepsValidNumericMarkers(t *testing.T) {
	res := ResolveCitations("La acción procede [1] y así lo confirma [3].", threeSources())

	assert.Equal(t, "La acción procede [1] y así lo confirma [3].", res.Text)
	assert.Empty(t, res.Anomalies)
}

func TestResolveCitationsNormalizesLegacyIDMarkers(t *testing.T) {
	res := ResolveCitations("Así lo sostiene [ID: 2018777].", threeSources())

	assert.Equal(t, "Así lo sostiene [2].", res.Text)
	assert.Empty(t, res.Anomalies)
}

func TestResolveCitationsStripsUnknownMarkers(t *testing.T) {
	res := ResolveCitations("Procede [1], no así [7] ni [ID: 9999999].", threeSources())

	assert.Equal(t, "Procede [1], no así ni.", res.Text)
	assert.ElementsMatch(t, []string{"[7]", "[ID: 9999999]"}, res.Anomalies)
}

func TestResolveCitationsZeroIndexStripped(t *testing.T) {
	res := ResolveCitations("Criterio [0] inexistente.", threeSources())

	assert.Equal(t, "Criterio inexistente.", res.Text)
	assert.Equal(t, []string{"[0]"}, res.Anomalies)
}

func TestResolveCitationsPlainTextPassthrough(t *testing.T) {
	text := "Corchetes sin marcador [no numérico] se conservan tal cual."
	res := ResolveCitations(text, threeSources())

	assert.Equal(t, text, res.Text)
	assert.Empty(t, res.Anomalies)
}

func TestResolveCitationsEmptySourceList(t *testing.T) {
	res := ResolveCitations("Respuesta con marcador [1].", nil)

	assert.Equal(t, "Respuesta con marcador.", res.Text)
	assert.Equal(t, []string{"[1]"}, res.Anomalies)
}

func TestResolveCitationsPreservesMarkdownSpacing(t *testing.T) {
	t.Run("hard break survives a strip elsewhere", func(t *testing.T) {
		text := "Primera línea  \nSegunda línea cita [1] y un marcador muerto [9]."
		res := ResolveCitations(text, threeSources())

		assert.Equal(t, "Primera línea  \nSegunda línea cita [1] y un marcador muerto.", res.Text)
		assert.Equal(t, []string{"[9]"}, res.Anomalies)
	})

	t.Run("text without strips is untouched", func(t *testing.T) {
		text := "Columna    alineada  \ncon espacios [2] deliberados."
		res := ResolveCitations(text, threeSources())

		assert.Equal(t, text, res.Text)
		assert.Empty(t, res.Anomalies)
	})

	t.Run("strip at line start eats the trailing space", func(t *testing.T) {
		res := ResolveCitations("Encabezado\n[8] La línea continúa.", threeSources())

		assert.Equal(t, "Encabezado\nLa línea continúa.", res.Text)
		assert.Equal(t, []string{"[8]"}, res.Anomalies)
	})
}

// After resolution every surviving numeric marker must have a source at
// position k-1.
func TestResolveCitationsInvariant(t *testing.T) {
	sources := threeSources()
	res := ResolveCitations("Se apoya en [2], [ID: 2029345], [5], [ID: 404] y [3].", sources)

	numeric := regexp.MustCompile(`\[(\d+)\]`)
	for _, m := range numeric.FindAllStringSubmatch(res.Text, -1) {
		k, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, k, 1)
		assert.LessOrEqual(t, k, len(sources))
	}
	assert.ElementsMatch(t, []string{"[5]", "[ID: 404]"}, res.Anomalies)
}
