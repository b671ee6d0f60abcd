package graph

import (
	"fmt"
	"strings"
)

// Validate performs structural checks on the graph: duplicate concept IDs,
// edges referencing unknown concepts, cycles, and the presence of at least
// one root. Returns a combined error describing all problems found, or nil.
func Validate(concepts []Concept, edges []Edge) error {
	var errs []string

	idSet := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		if idSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %q", c.ID))
		}
		idSet[c.ID] = true
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("concept %q has no name", c.ID))
		}
	}

	for _, e := range edges {
		if !idSet[e.From] {
			errs = append(errs, fmt.Sprintf("edge %s->%s references unknown prerequisite %q", e.From, e.To, e.From))
		}
		if !idSet[e.To] {
			errs = append(errs, fmt.Sprintf("edge %s->%s references unknown dependent %q", e.From, e.To, e.To))
		}
	}

	// Cycle check with Kahn's algorithm: if the peeling stops short of the
	// full node count, the leftovers form a cycle.
	inDegree := make(map[string]int, len(concepts))
	adj := make(map[string][]string)
	for _, c := range concepts {
		inDegree[c.ID] = 0
	}
	for _, e := range edges {
		if !idSet[e.From] || !idSet[e.To] {
			continue
		}
		inDegree[e.To]++
		adj[e.From] = append(adj[e.From], e.To)
	}

	var queue []string
	for _, c := range concepts {
		if inDegree[c.ID] == 0 {
			queue = append(queue, c.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range adj[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited < len(concepts) {
		var cycleNodes []string
		for _, c := range concepts {
			if inDegree[c.ID] > 0 {
				cycleNodes = append(cycleNodes, c.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving concepts: %s", strings.Join(cycleNodes, ", ")))
	}

	if len(concepts) > 0 && visited == 0 {
		errs = append(errs, "no root concepts found (at least one concept must have no prerequisites)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("knowledge graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
