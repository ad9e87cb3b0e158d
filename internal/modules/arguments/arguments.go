// Package arguments drafts templated argumentation paragraphs that
// weave a tesis into a litigation document, with its formal citation.
package arguments

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/astucieuxx/atenea-core/internal/modules/classify"
	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DocumentKind is the litigation document the paragraphs target.
type DocumentKind string

const (
	DocDemanda      DocumentKind = "demanda"
	DocContestacion DocumentKind = "contestacion"
	DocAmparo       DocumentKind = "amparo"
	DocAgravios     DocumentKind = "agravios"
)

var documentNames = map[DocumentKind]string{
	DocDemanda:      "escrito inicial de demanda",
	DocContestacion: "contestación de demanda",
	DocAmparo:       "demanda de amparo",
	DocAgravios:     "expresión de agravios",
}

func (k DocumentKind) Valid() bool {
	_, ok := documentNames[k]
	return ok
}

// Tone selects the register of the drafted paragraphs.
type Tone string

const (
	ToneFormal     Tone = "formal"
	TonePersuasivo Tone = "persuasivo"
	ToneTecnico    Tone = "tecnico"
)

func (t Tone) Valid() bool {
	return t == ToneFormal || t == TonePersuasivo || t == ToneTecnico
}

// DraftDTO is the drafting request.
type DraftDTO struct {
	TesisID     string `json:"tesis_id"     binding:"required"`
	TipoEscrito string `json:"tipo_escrito" binding:"required"`
	RolProcesal string `json:"rol_procesal"`
	Tono        string `json:"tono"`
}

// Draft is a drafted argument block.
type Draft struct {
	TesisID     string   `json:"tesis_id"`
	TipoEscrito string   `json:"tipo_escrito"`
	Tono        string   `json:"tono"`
	CitaFormal  string   `json:"cita_formal"`
	Parrafos    []string `json:"parrafos"`
	HTML        string   `json:"html"`
}

// DocumentLookup resolves one tesis by registry number.
type DocumentLookup interface {
	ByID(ctx context.Context, id string) (*models.TesisModel, error)
}

type Service struct {
	repo DocumentLookup
	md   goldmark.Markdown
}

func NewService(repo DocumentLookup) *Service {
	return &Service{
		repo: repo,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Draft renders the paragraphs for one tesis and document kind.
func (s *Service) Draft(ctx context.Context, dto DraftDTO) (*Draft, error) {
	kind := DocumentKind(strings.ToLower(strings.TrimSpace(dto.TipoEscrito)))
	if !kind.Valid() {
		return nil, apperr.Validationf("tipo de escrito desconocido: %s", dto.TipoEscrito)
	}
	tone := Tone(strings.ToLower(strings.TrimSpace(dto.Tono)))
	if tone == "" {
		tone = ToneFormal
	}
	if !tone.Valid() {
		return nil, apperr.Validationf("tono desconocido: %s", dto.Tono)
	}

	doc, err := s.repo.ByID(ctx, dto.TesisID)
	if err != nil {
		return nil, err
	}

	role := classify.NormalizeRole(dto.RolProcesal)
	parrafos := buildParagraphs(doc, kind, tone, role)

	return &Draft{
		TesisID:     doc.ID,
		TipoEscrito: string(kind),
		Tono:        string(tone),
		CitaFormal:  doc.Cite(),
		Parrafos:    parrafos,
		HTML:        s.renderHTML(parrafos),
	}, nil
}

func buildParagraphs(doc *models.TesisModel, kind DocumentKind, tone Tone, role classify.Role) []string {
	verbs := toneVerbs(tone)
	docName := documentNames[kind]

	intro := fmt.Sprintf(
		"En apoyo de lo expuesto en la presente %s, %s el criterio sustentado en la tesis «%s», cuyo rubro resulta directamente aplicable al caso.",
		docName, verbs.invoke, doc.Title,
	)

	cita := fmt.Sprintf(
		"Dicho criterio se encuentra publicado bajo la siguiente cita: %s.",
		doc.Cite(),
	)

	aplicacion := applicationParagraph(doc, tone, role, verbs)

	peticion := fmt.Sprintf(
		"Por lo anterior, %s que al resolver se atienda el criterio invocado y se aplique en los términos planteados.",
		verbs.request,
	)

	return []string{intro, cita, aplicacion, peticion}
}

func applicationParagraph(doc *models.TesisModel, tone Tone, role classify.Role, verbs toneVerbSet) string {
	subject := "la controversia"
	if len(doc.Subjects) > 0 {
		subject = "la materia " + doc.Subjects[0]
	}

	var weight string
	if doc.Type == models.TesisJurisprudencia {
		weight = "al tratarse de jurisprudencia, su observancia resulta obligatoria en términos del artículo 217 de la Ley de Amparo"
	} else {
		weight = "si bien se trata de un criterio aislado, su fuerza orientadora robustece la posición planteada"
	}

	position := "la pretensión ejercida"
	if role == classify.RoleRespondent {
		position = "las excepciones y defensas opuestas"
	}

	switch tone {
	case TonePersuasivo:
		return fmt.Sprintf(
			"La aplicación del criterio transcrito a %s es ineludible: %s, y su razón esencial confirma plenamente %s.",
			subject, weight, position,
		)
	case ToneTecnico:
		return fmt.Sprintf(
			"El supuesto normativo examinado en la tesis coincide con los hechos del caso en %s; %s, por lo que su razón esencial sustenta %s.",
			subject, weight, position,
		)
	default:
		return fmt.Sprintf(
			"Resulta aplicable el criterio anterior a %s, en tanto que %s y su razón esencial abona a %s.",
			subject, weight, position,
		)
	}
}

type toneVerbSet struct {
	invoke  string
	request string
}

func toneVerbs(t Tone) toneVerbSet {
	switch t {
	case TonePersuasivo:
		return toneVerbSet{invoke: "se hace valer con especial énfasis", request: "se solicita enfáticamente"}
	case ToneTecnico:
		return toneVerbSet{invoke: "se invoca", request: "se pide"}
	default:
		return toneVerbSet{invoke: "se invoca respetuosamente", request: "se solicita atentamente"}
	}
}

func (s *Service) renderHTML(parrafos []string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(strings.Join(parrafos, "\n\n")), &buf); err != nil {
		return ""
	}
	return buf.String()
}
