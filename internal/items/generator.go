package items

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/edusabi/sabi/internal/llm"
)

// Generator produces quiz items for a concept.
type Generator interface {
	// Generate returns a validated item for the concept at the given
	// difficulty ("baja", "media", "alta").
	Generate(ctx context.Context, c graph.Concept, difficulty string) (Item, error)
}

// GeneratorConfig controls the LLMGenerator.
type GeneratorConfig struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultGeneratorConfig returns the recommended generation settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxTokens:   512,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Generator using an LLM provider with a JSON
// schema. Every response is validated before it is returned; a rejected
// payload is an error, never a served item.
type LLMGenerator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// NewGenerator creates an LLMGenerator with the given provider and config.
func NewGenerator(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

const itemSystemPrompt = `Eres un tutor que redacta ítems de evaluación para estudiantes de secundaria.

Reglas:
- Genera UN solo ítem de opción múltiple con exactamente 4 opciones y una sola correcta.
- El enunciado debe ser claro, autocontenido y apropiado para el nivel indicado.
- Los distractores deben reflejar errores comunes, no valores al azar.
- La explicación debe resolver el ítem en 2 a 4 pasos claros.
- Responde únicamente con el JSON pedido.`

// itemOutput is the raw LLM response before validation.
type itemOutput struct {
	Question    string   `json:"pregunta"`
	Options     []string `json:"opciones"`
	Answer      string   `json:"respuesta_correcta"`
	Explanation string   `json:"explicacion"`
	Difficulty  string   `json:"dificultad"`
}

// Generate produces a single item for the concept.
func (g *LLMGenerator) Generate(ctx context.Context, c graph.Concept, difficulty string) (Item, error) {
	if difficulty == "" {
		difficulty = "media"
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeItemGen)

	var b strings.Builder
	fmt.Fprintf(&b, "Concepto: %q\n", c.Name)
	fmt.Fprintf(&b, "Materia: %q\n", c.Subject)
	fmt.Fprintf(&b, "Nivel: %q\n", c.Grade)
	fmt.Fprintf(&b, "Dificultad pedida: %s\n", difficulty)

	req := llm.Request{
		System: itemSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		Schema:      ItemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Item{}, fmt.Errorf("item generation failed: %w", err)
	}

	var raw itemOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return Item{}, fmt.Errorf("parse generated item: %w", err)
	}

	it := Item{
		ID:          uuid.NewString(),
		ConceptID:   c.ID,
		Question:    raw.Question,
		Options:     raw.Options,
		Answer:      raw.Answer,
		Explanation: raw.Explanation,
		Difficulty:  raw.Difficulty,
	}
	if it.Difficulty == "" {
		it.Difficulty = difficulty
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}
