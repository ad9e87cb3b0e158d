// Package classify turns a free-text legal question or case description
// into the structured query context the scoring engine consumes. All of
// it is lexical: materia detection, controlled procedural vocabulary,
// case concepts and a residual token set. Pure and deterministic.
package classify

import (
	"sort"
	"strings"
)

// Role is the declared procedural position of the requester.
type Role string

const (
	RoleNone       Role = ""
	RoleClaimant   Role = "claimant"
	RoleRespondent Role = "respondent"
)

// QueryContext is the classified view of a query used for scoring.
type QueryContext struct {
	Subjects []string            // detected materias
	Terms    []string            // procedural-term dictionary hits
	Concepts []string            // case-specific concept hits
	Tokens   map[string]struct{} // normalized lexical tokens
	Role     Role
}

// materiaKeywords maps each materia tag to the lexical cues that signal it.
var materiaKeywords = map[string][]string{
	"constitucional": {"amparo", "constitucion", "constitucional", "derechos humanos", "control difuso", "quejoso"},
	"penal":          {"delito", "penal", "imputado", "sentencia condenatoria", "prision", "ministerio publico", "victima"},
	"civil":          {"contrato", "civil", "arrendamiento", "compraventa", "responsabilidad civil", "posesion"},
	"mercantil":      {"mercantil", "pagare", "titulo de credito", "sociedad mercantil", "quiebra", "concurso mercantil"},
	"laboral":        {"laboral", "trabajador", "patron", "despido", "salario", "junta de conciliacion", "indemnizacion laboral"},
	"administrativa": {"administrativa", "acto administrativo", "autoridad administrativa", "licitacion", "multa administrativa", "juicio de nulidad"},
	"fiscal":         {"fiscal", "impuesto", "contribuyente", "credito fiscal", "devolucion de impuestos", "sat"},
	"familiar":       {"familiar", "divorcio", "pension alimenticia", "patria potestad", "guarda y custodia", "alimentos"},
}

// proceduralTerms is the controlled vocabulary of procedural terms the
// pertinence formula matches between query and document.
var proceduralTerms = []string{
	"procedencia",
	"improcedencia",
	"sobreseimiento",
	"suspension",
	"suspension definitiva",
	"recurso de revision",
	"recurso de queja",
	"agravio",
	"caducidad",
	"prescripcion",
	"competencia",
	"legitimacion",
	"interes juridico",
	"interes legitimo",
	"suplencia de la queja",
	"cosa juzgada",
	"litispendencia",
	"carga de la prueba",
	"valoracion de pruebas",
	"debido proceso",
	"garantia de audiencia",
	"definitividad",
	"plazo",
	"notificacion",
	"emplazamiento",
}

// caseConcepts are domain concepts matched against document metadata
// and abstract over and above the procedural vocabulary.
var caseConcepts = []string{
	"amparo directo",
	"amparo indirecto",
	"amparo adhesivo",
	"juicio de nulidad",
	"accion de inconstitucionalidad",
	"controversia constitucional",
	"suspension del acto reclamado",
	"interes superior del menor",
	"presuncion de inocencia",
	"reparacion del dano",
	"despido injustificado",
	"libertad provisional",
	"medidas cautelares",
}

var stopwords = map[string]struct{}{
	"a": {}, "al": {}, "ante": {}, "como": {}, "con": {}, "contra": {},
	"cual": {}, "cuando": {}, "de": {}, "del": {}, "donde": {}, "el": {},
	"ella": {}, "en": {}, "entre": {}, "es": {}, "ese": {}, "esta": {},
	"este": {}, "la": {}, "las": {}, "lo": {}, "los": {}, "mas": {},
	"mi": {}, "muy": {}, "no": {}, "o": {}, "para": {}, "pero": {},
	"por": {}, "porque": {}, "que": {}, "se": {}, "si": {}, "sin": {},
	"sobre": {}, "su": {}, "sus": {}, "tambien": {}, "un": {}, "una": {},
	"y": {}, "ya": {}, "fue": {}, "ser": {}, "hay": {}, "me": {},
}

// Query classifies a free-text query under an optional declared role.
func Query(text, rawRole string) QueryContext {
	norm := Normalize(text)

	qc := QueryContext{
		Tokens: Tokenize(norm),
		Role:   NormalizeRole(rawRole),
	}

	for materia, cues := range materiaKeywords {
		for _, cue := range cues {
			if strings.Contains(norm, cue) {
				qc.Subjects = append(qc.Subjects, materia)
				break
			}
		}
	}
	sort.Strings(qc.Subjects)

	for _, term := range proceduralTerms {
		if strings.Contains(norm, term) {
			qc.Terms = append(qc.Terms, term)
		}
	}
	for _, concept := range caseConcepts {
		if strings.Contains(norm, concept) {
			qc.Concepts = append(qc.Concepts, concept)
		}
	}
	return qc
}

// NormalizeRole maps the free-form procedural role names used in
// Mexican practice onto the two sides the scoring nudge distinguishes.
func NormalizeRole(raw string) Role {
	switch Normalize(raw) {
	case "actor", "quejoso", "demandante", "promovente", "recurrente", "claimant":
		return RoleClaimant
	case "demandado", "autoridad responsable", "autoridad", "tercero interesado", "respondent":
		return RoleRespondent
	default:
		return RoleNone
	}
}

// Normalize lowercases and folds accented characters so dictionary
// matching is insensitive to diacritics.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case 'á', 'à', 'ä', 'â':
			b.WriteRune('a')
		case 'é', 'è', 'ë', 'ê':
			b.WriteRune('e')
		case 'í', 'ì', 'ï', 'î':
			b.WriteRune('i')
		case 'ó', 'ò', 'ö', 'ô':
			b.WriteRune('o')
		case 'ú', 'ù', 'ü', 'û':
			b.WriteRune('u')
		case 'ñ':
			b.WriteRune('n')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits normalized text into a stopword-filtered token set.
func Tokenize(norm string) map[string]struct{} {
	tokens := map[string]struct{}{}
	fields := strings.FieldsFunc(norm, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}

// ProceduralTerms exposes the controlled vocabulary for document-side matching.
func ProceduralTerms() []string { return proceduralTerms }
