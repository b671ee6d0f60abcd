package recommend

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/edusabi/sabi/internal/graph"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)

// stripMarks removes combining marks after NFD decomposition, folding
// "Álgebra" to "Algebra" and "años" to "anos".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText lowercases, strips diacritics and non-alphanumerics, and
// collapses whitespace. Topic matching happens in this normalized space.
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// MatchTopic resolves free-text topic input to the best-matching concept
// within the subject/grade filter. A candidate scores 2.0 when the
// normalized query is a substring of its normalized name, otherwise
// 1.0 + 0.1 per query word found in the name (at least one word must
// match). Ties break by concept ID so the result is deterministic.
// Returns empty string when nothing matches.
func (e *Engine) MatchTopic(query string, f graph.Filter) string {
	q := NormalizeText(query)
	if q == "" {
		return ""
	}
	words := strings.Fields(q)

	bestID := ""
	bestScore := 0.0
	for _, c := range e.graph.Filtered(f) {
		name := NormalizeText(c.Name)
		var score float64
		if strings.Contains(name, q) {
			score = 2.0
		} else {
			hits := 0
			for _, w := range words {
				if strings.Contains(name, w) {
					hits++
				}
			}
			if hits == 0 {
				continue
			}
			score = 1.0 + 0.1*float64(hits)
		}
		// Filtered is ID-sorted, so strict > keeps the lowest ID on ties.
		if score > bestScore {
			bestScore = score
			bestID = c.ID
		}
	}
	return bestID
}
