package mastery

import (
	"strings"

	"github.com/edusabi/sabi/internal/graph"
)

// Prior bounds: new records never start above 0.85 or below 0.05.
const (
	minPrior = 0.05
	maxPrior = 0.85
)

// Prior computes the initial mastery probability for a concept from its
// topological depth and the learner's grade. Deeper concepts start lower;
// a learner ahead of the concept's grade gets a small boost, one behind
// gets a larger penalty.
func Prior(g *graph.Graph, conceptID, learnerGrade string) float64 {
	var base float64
	switch g.DepthOf(conceptID) {
	case 0:
		base = 0.60
	case 1:
		base = 0.50
	case 2:
		base = 0.40
	default:
		base = 0.30
	}

	c, err := g.Get(conceptID)
	if err == nil {
		delta := gradeNum(learnerGrade) - gradeNum(c.Grade)
		if delta > 0 {
			base += 0.05 * float64(min(delta, 3))
		} else if delta < 0 {
			base -= 0.10 * float64(min(-delta, 2))
		}
	}

	if base < minPrior {
		return minPrior
	}
	if base > maxPrior {
		return maxPrior
	}
	return base
}

// gradeNum extracts the numeric grade from tags like "4to de secundaria".
// Unknown tags default to 3, the middle of the range.
func gradeNum(grade string) int {
	g := strings.ToLower(strings.TrimSpace(grade))
	if g == "" {
		return 3
	}
	switch g[0] {
	case '1', '2', '3', '4', '5':
		return int(g[0] - '0')
	}
	for _, r := range g {
		if r >= '1' && r <= '5' {
			return int(r - '0')
		}
	}
	return 3
}
