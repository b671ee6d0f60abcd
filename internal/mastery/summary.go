package mastery

import (
	"context"
	"sort"

	"github.com/edusabi/sabi/internal/graph"
)

// ConceptMastery pairs a concept with its current probability, for
// summaries and display.
type ConceptMastery struct {
	Concept     graph.Concept
	Probability float64
	Attempts    int
}

// Summary aggregates mastery over a subject/grade slice of the graph.
type Summary struct {
	Average float64
	Weakest []ConceptMastery
}

// maxWeakest caps the weakest-concepts list in a summary.
const maxWeakest = 8

// Summarize computes the average mastery and the weakest concepts for the
// filtered slice of the graph. When onlyAttempted is set, concepts with
// zero attempts are excluded.
func (s *Service) Summarize(ctx context.Context, learnerID string, f graph.Filter, onlyAttempted bool) (Summary, error) {
	var entries []ConceptMastery
	for _, c := range s.graph.Filtered(f) {
		rec, ok, err := s.store.Get(ctx, learnerID, c.ID)
		if err != nil {
			return Summary{}, err
		}
		if !ok {
			if onlyAttempted {
				continue
			}
			rec = Record{LearnerID: learnerID, ConceptID: c.ID}
		}
		if onlyAttempted && rec.Attempts == 0 {
			continue
		}
		entries = append(entries, ConceptMastery{
			Concept:     c,
			Probability: rec.Probability,
			Attempts:    rec.Attempts,
		})
	}

	if len(entries) == 0 {
		return Summary{}, nil
	}

	sum := 0.0
	for _, e := range entries {
		sum += e.Probability
	}
	avg := sum / float64(len(entries))

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Probability != entries[j].Probability {
			return entries[i].Probability < entries[j].Probability
		}
		return entries[i].Concept.ID < entries[j].Concept.ID
	})
	if len(entries) > maxWeakest {
		entries = entries[:maxWeakest]
	}

	return Summary{
		Average: avg,
		Weakest: entries,
	}, nil
}
