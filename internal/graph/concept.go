package graph

// Concept is a single unit of learnable material in the knowledge graph.
// Concepts are immutable after the graph is built.
type Concept struct {
	ID      string `json:"id"`
	Name    string `json:"concepto"`
	Subject string `json:"materia"`
	Grade   string `json:"año"`
}

// Edge is a directed prerequisite dependency: the learner should master
// From before attempting To.
type Edge struct {
	From string `json:"de"`
	To   string `json:"a"`
}

// Filter restricts a concept set by subject and/or grade tag.
// Empty fields match everything.
type Filter struct {
	Subject string
	Grade   string
}

// Matches reports whether the concept passes the filter.
func (f Filter) Matches(c Concept) bool {
	if f.Subject != "" && c.Subject != f.Subject {
		return false
	}
	if f.Grade != "" && c.Grade != f.Grade {
		return false
	}
	return true
}
