package scoring

import "github.com/astucieuxx/atenea-core/internal/models"

// RiskFlag is an enumerated weakness tag. A document may carry zero or
// more; each is an independent predicate over the document and its
// subject-match tier.
type RiskFlag string

const (
	RiskIsolatedCriterion   RiskFlag = "isolated_criterion"
	RiskOldEpoch            RiskFlag = "old_epoch"
	RiskNotReaffirmed       RiskFlag = "not_reaffirmed"
	RiskLimitedAuthority    RiskFlag = "limited_authority"
	RiskPartialSubjectMatch RiskFlag = "partial_subject_match"
)

// RiskInfo is the display metadata for a risk flag. New risk kinds need
// one constant plus one row here; consumers render from this table.
type RiskInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

var riskCatalog = map[RiskFlag]RiskInfo{
	RiskIsolatedCriterion: {
		Label:       "Criterio aislado",
		Description: "Tesis aislada, no obligatoria para otros órganos.",
	},
	RiskOldEpoch: {
		Label:       "Época anterior",
		Description: "Criterio publicado en una época anterior a la Décima; verificar vigencia.",
	},
	RiskNotReaffirmed: {
		Label:       "Sin reiteración",
		Description: "No hay constancia de que el criterio haya sido citado o reiterado.",
	},
	RiskLimitedAuthority: {
		Label:       "Autoridad limitada",
		Description: "Emitido por un órgano de jerarquía inferior a Tribunal Colegiado.",
	},
	RiskPartialSubjectMatch: {
		Label:       "Materia parcial",
		Description: "La coincidencia de materia con el caso es parcial, no exacta.",
	},
}

// Info returns the display metadata for a flag.
func (f RiskFlag) Info() RiskInfo { return riskCatalog[f] }

const (
	// oldEpochFloor: epochs below Décima carry the old_epoch flag.
	oldEpochFloor = 10
	// limitedAuthorityRank: bodies ranked below Tribunal Colegiado
	// carry the limited_authority flag.
	limitedAuthorityRank = 2
)

// riskFlags evaluates every predicate against the document.
func riskFlags(doc *models.TesisModel, tier SubjectTier) []RiskFlag {
	var flags []RiskFlag
	if doc.Type == models.TesisAislada {
		flags = append(flags, RiskIsolatedCriterion)
	}
	if doc.Epoch.Ordinal() < oldEpochFloor {
		flags = append(flags, RiskOldEpoch)
	}
	if doc.ReaffirmedBy == 0 {
		flags = append(flags, RiskNotReaffirmed)
	}
	if doc.IssuingBody.Rank() < limitedAuthorityRank {
		flags = append(flags, RiskLimitedAuthority)
	}
	if tier == SubjectPartial {
		flags = append(flags, RiskPartialSubjectMatch)
	}
	return flags
}
