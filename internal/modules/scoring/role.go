package scoring

import (
	"strings"

	"github.com/astucieuxx/atenea-core/internal/modules/classify"
)

// Terms whose presence marks a criterion as favoring one procedural side.
var (
	claimantCues   = []string{"procedencia", "procede", "suplencia de la queja", "interes legitimo"}
	respondentCues = []string{"improcedencia", "improcedente", "sobreseimiento", "excepcion", "caducidad", "prescripcion"}
)

// ApplyRoleNudge shifts pertinence by at most ±nudge depending on the
// declared procedural role: claimant-type roles favor procedencia
// criteria, respondent-type roles favor improcedencia and exception
// criteria. Applied after base scoring, case-analysis path only; the
// result stays inside [0,100].
func ApplyRoleNudge(s *Scored, role classify.Role, nudge int) {
	if role == classify.RoleNone || nudge <= 0 {
		return
	}

	docText := classify.Normalize(s.Tesis.Title + " " + s.Tesis.Abstract)

	// respondent cues go first: "improcedencia" contains "procedencia"
	// as a substring, so the more specific set must win.
	var favorsRespondent bool
	switch {
	case containsAnyCue(docText, respondentCues):
		favorsRespondent = true
	case containsAnyCue(docText, claimantCues):
		favorsRespondent = false
	default:
		return
	}

	if (role == classify.RoleRespondent) == favorsRespondent {
		s.Pertinence += nudge
	} else {
		s.Pertinence -= nudge
	}

	if s.Pertinence > 100 {
		s.Pertinence = 100
	}
	if s.Pertinence < 0 {
		s.Pertinence = 0
	}
	s.Strength = strengthLabel(s.Pertinence, s.Authority)
}

func containsAnyCue(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
