package graph

import (
	"fmt"
	"slices"
	"sort"
)

// Graph holds the concept DAG with precomputed indices. Build it once at
// startup with New; all query methods are read-only and safe for
// concurrent use.
type Graph struct {
	concepts      []Concept
	byID          map[string]*Concept
	prerequisites map[string][]string
	successors    map[string][]string
	depths        map[string]int
}

// New constructs a Graph from concepts and prerequisite edges.
// Edges referencing unknown concepts are ignored here; Validate reports
// them. Adjacency lists are sorted so iteration order is deterministic.
func New(concepts []Concept, edges []Edge) *Graph {
	g := &Graph{
		concepts:      slices.Clone(concepts),
		byID:          make(map[string]*Concept, len(concepts)),
		prerequisites: make(map[string][]string),
		successors:    make(map[string][]string),
	}

	for i := range g.concepts {
		g.byID[g.concepts[i].ID] = &g.concepts[i]
	}

	for _, e := range edges {
		if _, ok := g.byID[e.From]; !ok {
			continue
		}
		if _, ok := g.byID[e.To]; !ok {
			continue
		}
		g.prerequisites[e.To] = append(g.prerequisites[e.To], e.From)
		g.successors[e.From] = append(g.successors[e.From], e.To)
	}

	for id := range g.prerequisites {
		sort.Strings(g.prerequisites[id])
	}
	for id := range g.successors {
		sort.Strings(g.successors[id])
	}

	g.depths = computeDepths(g)

	return g
}

// Get returns a concept by ID, or an error if not found.
func (g *Graph) Get(id string) (Concept, error) {
	c, ok := g.byID[id]
	if !ok {
		return Concept{}, fmt.Errorf("concept not found: %q", id)
	}
	return *c, nil
}

// Contains reports whether the concept ID exists in the graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Concepts returns all concepts, sorted by ID.
func (g *Graph) Concepts() []Concept {
	out := slices.Clone(g.concepts)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Filtered returns the concepts matching the filter, sorted by ID.
func (g *Graph) Filtered(f Filter) []Concept {
	var out []Concept
	for _, c := range g.Concepts() {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// PrerequisitesOf returns the direct prerequisite concept IDs of id,
// sorted. Unknown IDs yield nil.
func (g *Graph) PrerequisitesOf(id string) []string {
	return slices.Clone(g.prerequisites[id])
}

// SuccessorsOf returns the concept IDs that directly depend on id, sorted.
func (g *Graph) SuccessorsOf(id string) []string {
	return slices.Clone(g.successors[id])
}

// Roots returns all concepts with no prerequisites, sorted by ID.
func (g *Graph) Roots() []Concept {
	var out []Concept
	for _, c := range g.Concepts() {
		if len(g.prerequisites[c.ID]) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// Subjects returns the distinct subject tags, sorted.
func (g *Graph) Subjects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range g.concepts {
		if !seen[c.Subject] {
			seen[c.Subject] = true
			out = append(out, c.Subject)
		}
	}
	sort.Strings(out)
	return out
}

// Grades returns the distinct grade tags, sorted.
func (g *Graph) Grades() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range g.concepts {
		if !seen[c.Grade] {
			seen[c.Grade] = true
			out = append(out, c.Grade)
		}
	}
	sort.Strings(out)
	return out
}
