package rag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Source is one entry of the structured source list an answer cites.
// Position k-1 in the list corresponds to inline marker [k].
type Source struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Citation       string  `json:"citation"`
	RelevanceScore float64 `json:"relevanceScore"`
}

// Resolution is the outcome of citation resolution over generated text.
type Resolution struct {
	Text      string
	Anomalies []string // stripped markers, for the synthesis-anomaly log
}

// markerPattern recognizes the canonical numeric form [k] and the
// legacy identifier form [ID: <document_id>].
var markerPattern = regexp.MustCompile(`\[(?:ID:\s*([^\[\]]+?)|(\d+))\]`)

// ResolveCitations is a pure two-pass parse over the raw generated
// text: first tokenize every marker, then validate each against the
// supplied source list. Legacy ID markers are normalized to their
// assigned numeric index; markers whose target is unknown are stripped
// rather than rendered as dead links. After resolution, every [k] left
// in the text has a source at position k-1. Text away from the stripped
// markers is preserved byte for byte, markdown spacing included.
func ResolveCitations(raw string, sources []Source) Resolution {
	indexByID := make(map[string]int, len(sources))
	for i, s := range sources {
		indexByID[s.ID] = i + 1
	}

	out := make([]byte, 0, len(raw))
	var anomalies []string
	last := 0

	for _, loc := range markerPattern.FindAllStringSubmatchIndex(raw, -1) {
		start, end := loc[0], loc[1]
		out = append(out, raw[last:start]...)
		last = end

		marker := raw[start:end]
		if loc[2] >= 0 { // legacy [ID: x] form
			id := strings.TrimSpace(raw[loc[2]:loc[3]])
			if k, ok := indexByID[id]; ok {
				out = append(out, fmt.Sprintf("[%d]", k)...)
			} else {
				anomalies = append(anomalies, marker)
				out, last = closeSplice(out, raw, last)
			}
			continue
		}

		k, err := strconv.Atoi(raw[loc[4]:loc[5]])
		if err == nil && k >= 1 && k <= len(sources) {
			out = append(out, marker...)
		} else {
			anomalies = append(anomalies, marker)
			out, last = closeSplice(out, raw, last)
		}
	}
	out = append(out, raw[last:]...)

	return Resolution{
		Text:      string(out),
		Anomalies: anomalies,
	}
}

// closeSplice absorbs one space adjacent to a stripped marker so the
// seam reads naturally. next is the raw offset just past the marker.
func closeSplice(out []byte, raw string, next int) ([]byte, int) {
	if n := len(out); n > 0 && out[n-1] == ' ' {
		if next == len(raw) || spliceTrail(raw[next]) {
			return out[:n-1], next
		}
	}
	// marker at the start of the text or of a line: eat the space that
	// followed it instead
	if (len(out) == 0 || out[len(out)-1] == '\n') && next < len(raw) && raw[next] == ' ' {
		return out, next + 1
	}
	return out, next
}

func spliceTrail(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '.', ',', ';', ':', ')':
		return true
	}
	return false
}
