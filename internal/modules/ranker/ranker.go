// Package ranker orders scored documents through the fixed two-stage
// pipeline: filter by topical pertinence, then rank survivors by legal
// authority. Both stages are pure transforms; tie-breaks are total so
// re-ranking an identical input yields an identical sequence.
package ranker

import (
	"sort"

	"github.com/astucieuxx/atenea-core/internal/config"
	"github.com/astucieuxx/atenea-core/internal/modules/scoring"
)

// Ranker applies the two-stage pipeline with configured thresholds.
type Ranker struct {
	minPertinence int
	stageOneCap   int
	stageTwoCap   int
}

func New(cfg config.RankingConfig) *Ranker {
	return &Ranker{
		minPertinence: cfg.MinPertinence,
		stageOneCap:   cfg.StageOneCap,
		stageTwoCap:   cfg.StageTwoCap,
	}
}

// Rank runs both stages. An empty result means "no applicable
// precedent" and is not an error.
func (r *Ranker) Rank(docs []scoring.Scored) []scoring.Scored {
	pertinent := r.filterByPertinence(docs)
	return r.rankByAuthority(pertinent)
}

// filterByPertinence drops documents below the pertinence cutoff, sorts
// the survivors by descending pertinence and truncates. Fewer survivors
// than the cap are returned as-is, never padded.
func (r *Ranker) filterByPertinence(docs []scoring.Scored) []scoring.Scored {
	out := make([]scoring.Scored, 0, len(docs))
	for _, d := range docs {
		if d.Pertinence >= r.minPertinence {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pertinence != out[j].Pertinence {
			return out[i].Pertinence > out[j].Pertinence
		}
		return out[i].Tesis.ID < out[j].Tesis.ID
	})
	if len(out) > r.stageOneCap {
		out = out[:r.stageOneCap]
	}
	return out
}

// rankByAuthority orders stage-1 survivors by authority, breaking ties
// by pertinence, then publication recency, then registry number.
func (r *Ranker) rankByAuthority(docs []scoring.Scored) []scoring.Scored {
	out := make([]scoring.Scored, len(docs))
	copy(out, docs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Authority != out[j].Authority {
			return out[i].Authority > out[j].Authority
		}
		if out[i].Pertinence != out[j].Pertinence {
			return out[i].Pertinence > out[j].Pertinence
		}
		if out[i].Tesis.PublicationYear != out[j].Tesis.PublicationYear {
			return out[i].Tesis.PublicationYear > out[j].Tesis.PublicationYear
		}
		return out[i].Tesis.ID < out[j].Tesis.ID
	})
	if len(out) > r.stageTwoCap {
		out = out[:r.stageTwoCap]
	}
	return out
}
