package items

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/edusabi/sabi/internal/graph"
)

// Fallback synthesizes a placeholder item for the concept. The content is
// deterministic; the ID is fresh each call so the session's used-item set
// never starves a bout of questions. Used whenever the bank is exhausted
// and generation is unavailable or rejected.
func Fallback(c graph.Concept, difficulty string) Item {
	if difficulty == "" {
		difficulty = "media"
	}
	return Item{
		ID:        uuid.NewString(),
		ConceptID: c.ID,
		Question: fmt.Sprintf("(%s · %s) Sobre «%s»: ¿cuál afirmación es correcta?",
			c.Subject, c.Grade, c.Name),
		Options:     []string{"Afirmación 1", "Afirmación 2", "Afirmación 3", "Afirmación 4"},
		Answer:      "Afirmación 1",
		Explanation: "Revisa la definición clave y el ejemplo básico.",
		Difficulty:  difficulty,
	}
}
