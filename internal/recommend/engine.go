// Package recommend decides what a learner should practice next: concepts
// whose prerequisites are in place, prerequisites worth revisiting after a
// rough bout, and successors the learner is ready to advance to. The
// engine is heuristic and stateless; callers pass in the mastery profile.
package recommend

import (
	"sort"

	"github.com/edusabi/sabi/internal/graph"
)

// Thresholds tune the readiness rules.
type Thresholds struct {
	// Route is the minimum prerequisite mastery for a concept to be
	// recommendable.
	Route float64
	// Weak marks a prerequisite as needing review when mastery is below it.
	Weak float64
	// Ready is the minimum prerequisite mastery for a successor to be
	// advance-ready.
	Ready float64
	// MaxN caps the weak and advance lists.
	MaxN int
}

// DefaultThresholds returns the standard rule thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Route: 0.60, Weak: 0.45, Ready: 0.65, MaxN: 4}
}

// Engine computes practice recommendations over a knowledge graph.
type Engine struct {
	graph *graph.Graph
	thr   Thresholds
}

// NewEngine creates an Engine; zero thresholds get defaults.
func NewEngine(g *graph.Graph, thr Thresholds) *Engine {
	if thr == (Thresholds{}) {
		thr = DefaultThresholds()
	}
	if thr.MaxN == 0 {
		thr.MaxN = 4
	}
	return &Engine{graph: g, thr: thr}
}

// Graph exposes the engine's knowledge graph.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// RecommendRoute returns up to k concept IDs from candidates that the
// learner is ready to practice: every prerequisite at or above the route
// threshold. Results are ordered by the concept's own mastery ascending
// (readiest-but-weakest first), ties broken by concept ID.
func (e *Engine) RecommendRoute(profile map[string]float64, candidates []graph.Concept, k int) []string {
	type scored struct {
		id string
		p  float64
	}
	var ready []scored
	for _, c := range candidates {
		ok := true
		for _, pre := range e.graph.PrerequisitesOf(c.ID) {
			if profile[pre] < e.thr.Route {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, scored{id: c.ID, p: profile[c.ID]})
		}
	}

	sort.Slice(ready, func(i, j int) bool {
		if ready[i].p != ready[j].p {
			return ready[i].p < ready[j].p
		}
		return ready[i].id < ready[j].id
	})

	if k > 0 && len(ready) > k {
		ready = ready[:k]
	}
	out := make([]string, len(ready))
	for i, s := range ready {
		out[i] = s.id
	}
	return out
}

// WeakPrerequisites returns the direct prerequisites of conceptID with
// mastery below the weak threshold, ascending by mastery (shakiest
// first), capped at MaxN. Ties break by concept ID.
func (e *Engine) WeakPrerequisites(conceptID string, profile map[string]float64) []string {
	var weak []string
	for _, pre := range e.graph.PrerequisitesOf(conceptID) {
		if profile[pre] < e.thr.Weak {
			weak = append(weak, pre)
		}
	}

	sort.Slice(weak, func(i, j int) bool {
		if profile[weak[i]] != profile[weak[j]] {
			return profile[weak[i]] < profile[weak[j]]
		}
		return weak[i] < weak[j]
	})

	if len(weak) > e.thr.MaxN {
		weak = weak[:e.thr.MaxN]
	}
	return weak
}

// AdvanceReady returns successors of conceptID whose own prerequisites
// are all at or above the ready threshold, descending by the successor's
// mastery (strongest footing first), capped at MaxN. Successors without
// prerequisites are excluded; reaching them needs no readiness signal.
func (e *Engine) AdvanceReady(conceptID string, profile map[string]float64) []string {
	var ready []string
	for _, succ := range e.graph.SuccessorsOf(conceptID) {
		pres := e.graph.PrerequisitesOf(succ)
		if len(pres) == 0 {
			continue
		}
		ok := true
		for _, pre := range pres {
			if profile[pre] < e.thr.Ready {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, succ)
		}
	}

	sort.Slice(ready, func(i, j int) bool {
		if profile[ready[i]] != profile[ready[j]] {
			return profile[ready[i]] > profile[ready[j]]
		}
		return ready[i] < ready[j]
	})

	if len(ready) > e.thr.MaxN {
		ready = ready[:e.thr.MaxN]
	}
	return ready
}
