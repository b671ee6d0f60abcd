package graph

// fallbackDepth is assigned to concepts whose depth never resolves.
// That only happens when the edge set has a cycle (a modeling error),
// so a safe mid-range value keeps priors reasonable.
const fallbackDepth = 2

// DepthOf returns the topological depth of a concept: 0 for roots,
// 1 + max(prerequisite depths) otherwise. Unknown IDs get the fallback.
func (g *Graph) DepthOf(id string) int {
	d, ok := g.depths[id]
	if !ok {
		return fallbackDepth
	}
	return d
}

// computeDepths resolves depths by repeated full passes: a concept is
// assigned once every prerequisite is resolved, and the loop stops when a
// pass changes nothing. Concepts still unresolved at that point sit on a
// cycle and get the fallback depth, so the computation terminates even on
// malformed input.
func computeDepths(g *Graph) map[string]int {
	depths := make(map[string]int, len(g.concepts))
	for _, c := range g.concepts {
		if len(g.prerequisites[c.ID]) == 0 {
			depths[c.ID] = 0
		}
	}

	changed := true
	for changed {
		changed = false
		for _, c := range g.concepts {
			if _, done := depths[c.ID]; done {
				continue
			}
			max := -1
			resolved := true
			for _, p := range g.prerequisites[c.ID] {
				pd, ok := depths[p]
				if !ok {
					resolved = false
					break
				}
				if pd > max {
					max = pd
				}
			}
			if resolved {
				depths[c.ID] = max + 1
				changed = true
			}
		}
	}

	for _, c := range g.concepts {
		if _, ok := depths[c.ID]; !ok {
			depths[c.ID] = fallbackDepth
		}
	}

	return depths
}
