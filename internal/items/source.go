package items

import (
	"context"
	"fmt"
	"os"

	"github.com/edusabi/sabi/internal/graph"
)

// Source serves items for quiz bouts: bank first, then generation, then
// the deterministic fallback. It never fails to produce an item.
type Source struct {
	bank *Bank
	gen  Generator
}

// NewSource creates a Source. gen may be nil when no LLM is configured;
// the bank and the fallback still serve.
func NewSource(bank *Bank, gen Generator) *Source {
	return &Source{bank: bank, gen: gen}
}

// Next returns an item for the concept that is not in the used set.
// Generated items are added to the bank so they get reused; a bank write
// failure does not block the item, it is served anyway with a warning.
func (s *Source) Next(ctx context.Context, c graph.Concept, used map[string]bool, difficulty string) Item {
	if it, ok := s.bank.Pick(c.ID, used); ok {
		return it
	}

	if s.gen != nil {
		it, err := s.gen.Generate(ctx, c, difficulty)
		if err == nil {
			if aerr := s.bank.Add(it); aerr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save generated item: %v\n", aerr)
			}
			return it
		}
		fmt.Fprintf(os.Stderr, "warning: item generation for %s failed: %v\n", c.ID, err)
	}

	return Fallback(c, difficulty)
}
