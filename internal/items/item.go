// Package items provides multiple choice exercise items: a JSON file
// bank, LLM generation, and a deterministic fallback for when both fail.
package items

import "fmt"

// OptionCount is the fixed number of options every item carries.
const OptionCount = 4

// Item is a single multiple choice exercise for one concept.
type Item struct {
	// ID uniquely identifies the item within the bank.
	ID string `json:"item_id"`

	// ConceptID is the concept this item exercises.
	ConceptID string `json:"concepto_id"`

	// Question is the prompt shown to the learner.
	Question string `json:"pregunta"`

	// Options holds exactly 4 answer choices, one of which is correct.
	Options []string `json:"opciones"`

	// Answer is the text of the correct option. Must appear in Options.
	Answer string `json:"respuesta_correcta"`

	// Explanation is an optional short worked solution.
	Explanation string `json:"explicacion,omitempty"`

	// Difficulty is "baja", "media" or "alta". Analytics only.
	Difficulty string `json:"dificultad,omitempty"`
}

// ValidationError describes why an item payload was rejected.
// Validation failures are recoverable; callers fall back rather than fail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item field %q: %s", e.Field, e.Message)
}

// Validate checks the structural rules every servable item must satisfy.
func (it *Item) Validate() error {
	if it.ConceptID == "" {
		return &ValidationError{Field: "concepto_id", Message: "must not be empty"}
	}
	if it.Question == "" {
		return &ValidationError{Field: "pregunta", Message: "must not be empty"}
	}
	if len(it.Options) != OptionCount {
		return &ValidationError{
			Field:   "opciones",
			Message: fmt.Sprintf("need exactly %d options, got %d", OptionCount, len(it.Options)),
		}
	}
	for i, op := range it.Options {
		if op == "" {
			return &ValidationError{
				Field:   "opciones",
				Message: fmt.Sprintf("option %d is empty", i),
			}
		}
	}
	if !it.HasOption(it.Answer) {
		return &ValidationError{
			Field:   "respuesta_correcta",
			Message: "answer is not one of the options",
		}
	}
	return nil
}

// HasOption reports whether text is one of the item's options.
func (it *Item) HasOption(text string) bool {
	for _, op := range it.Options {
		if op == text {
			return true
		}
	}
	return false
}

// Grade reports whether the chosen option is the correct answer.
// Matching is exact; options are served verbatim so no normalization applies.
func (it *Item) Grade(chosen string) bool {
	return chosen == it.Answer
}
