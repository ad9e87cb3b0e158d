package models

import "fmt"

// TesisType distinguishes binding jurisprudence from isolated criteria.
type TesisType string

const (
	TesisJurisprudencia TesisType = "jurisprudencia"
	TesisAislada        TesisType = "aislada"
)

func (t TesisType) Valid() bool {
	return t == TesisJurisprudencia || t == TesisAislada
}

// IssuingBody identifies the organ that published a tesis, ordered by
// hierarchy within the federal judiciary.
type IssuingBody string

const (
	BodyPleno             IssuingBody = "pleno"
	BodySCJN              IssuingBody = "scjn"
	BodySala              IssuingBody = "sala"
	BodyPlenoRegional     IssuingBody = "pleno_regional"
	BodyTribunalColegiado IssuingBody = "tribunal_colegiado"
	BodyTribunalUnitario  IssuingBody = "tribunal_unitario"
	BodyJuzgadoDistrito   IssuingBody = "juzgado_distrito"
)

// bodyRank orders issuing bodies from lowest (0) to highest hierarchy.
var bodyRank = map[IssuingBody]int{
	BodyJuzgadoDistrito:   0,
	BodyTribunalUnitario:  1,
	BodyTribunalColegiado: 2,
	BodyPlenoRegional:     3,
	BodySala:              4,
	BodySCJN:              5,
	BodyPleno:             6,
}

func (b IssuingBody) Valid() bool {
	_, ok := bodyRank[b]
	return ok
}

// Rank returns the hierarchy position of the body, higher = more authoritative.
func (b IssuingBody) Rank() int { return bodyRank[b] }

// Epoch is the ordinal era marker the judiciary uses to periodize
// published criteria. Later epochs weigh as more current.
type Epoch string

const (
	EpochSexta    Epoch = "6a"
	EpochSeptima  Epoch = "7a"
	EpochOctava   Epoch = "8a"
	EpochNovena   Epoch = "9a"
	EpochDecima   Epoch = "10a"
	EpochUndecima Epoch = "11a"
)

var epochOrdinal = map[Epoch]int{
	EpochSexta:    6,
	EpochSeptima:  7,
	EpochOctava:   8,
	EpochNovena:   9,
	EpochDecima:   10,
	EpochUndecima: 11,
}

func (e Epoch) Valid() bool {
	_, ok := epochOrdinal[e]
	return ok
}

// Ordinal returns the numeric era position. Unknown epochs map to the
// oldest tracked ordinal so pre-sexta material still scores.
func (e Epoch) Ordinal() int {
	if o, ok := epochOrdinal[e]; ok {
		return o
	}
	return epochOrdinal[EpochSexta]
}

// SourceLocator points at the official publication of a tesis.
type SourceLocator struct {
	Book   string `json:"book"   gorm:"column:source_book"`
	Volume string `json:"volume" gorm:"column:source_volume"`
	Page   string `json:"page"   gorm:"column:source_page"`
}

// TesisModel is a published judicial criterion. Rows are created by the
// ingestion pipeline and are read-only for the query path.
type TesisModel struct {
	ID              string        `json:"id"               gorm:"primaryKey;type:varchar(32)"` // registry number
	Title           string        `json:"title"            gorm:"not null"`
	Abstract        string        `json:"abstract"         gorm:"type:text"`
	FullText        string        `json:"full_text"        gorm:"type:longtext"`
	Type            TesisType     `json:"type"             gorm:"type:varchar(20);index"`
	IssuingBody     IssuingBody   `json:"issuing_body"     gorm:"type:varchar(32);index"`
	Epoch           Epoch         `json:"epoch"            gorm:"type:varchar(8);index"`
	Subjects        StringArray   `json:"subjects"         gorm:"type:text"`
	PublicationYear int           `json:"publication_year" gorm:"index"`
	Locator         SourceLocator `json:"locator"          gorm:"embedded"`
	OriginURL       string        `json:"origin_url"`
	ReaffirmedBy    int           `json:"reaffirmed_by"` // times the criterion was cited/repeated in corpus metadata
}

func (TesisModel) TableName() string { return "tesis" }

// Cite renders the formal citation of the tesis from its locator fields.
func (t *TesisModel) Cite() string {
	kind := "Tesis Aislada"
	if t.Type == TesisJurisprudencia {
		kind = "Jurisprudencia"
	}
	cite := fmt.Sprintf("%s %s, %s Época", kind, t.ID, epochDisplay(t.Epoch))
	if t.Locator.Book != "" {
		cite += ", " + t.Locator.Book
	}
	if t.Locator.Volume != "" {
		cite += ", Tomo " + t.Locator.Volume
	}
	if t.Locator.Page != "" {
		cite += ", p. " + t.Locator.Page
	}
	if t.PublicationYear > 0 {
		cite += fmt.Sprintf(" (%d)", t.PublicationYear)
	}
	return cite
}

var epochDisplayNames = map[Epoch]string{
	EpochSexta:    "Sexta",
	EpochSeptima:  "Séptima",
	EpochOctava:   "Octava",
	EpochNovena:   "Novena",
	EpochDecima:   "Décima",
	EpochUndecima: "Undécima",
}

func epochDisplay(e Epoch) string {
	if name, ok := epochDisplayNames[e]; ok {
		return name
	}
	return string(e)
}
