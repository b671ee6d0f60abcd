package suggest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/edusabi/sabi/internal/llm"
	"github.com/edusabi/sabi/internal/recommend"
)

// Decision values the LLM may return.
const (
	DecisionRetry         = "reintentar"
	DecisionReviewPrereqs = "repasar_prerrequisitos"
	DecisionAdvance       = "avanzar"
	DecisionExplore       = "explorar_conectados"
)

func validDecision(d string) bool {
	switch d {
	case DecisionRetry, DecisionReviewPrereqs, DecisionAdvance, DecisionExplore:
		return true
	}
	return false
}

// Alternative is a secondary path the LLM proposed.
type Alternative struct {
	ConceptID string
	Name      string
	// Type is "prerrequisito", "avance" or "exploracion".
	Type      string
	Rationale string
}

// Payload is a validated suggestion. NextConceptID is empty when the
// model named a concept that does not exist in the graph.
type Payload struct {
	Decision            string
	NextConceptID       string
	NextConceptName     string
	SuggestedDifficulty string
	Rationale           string
	Alternatives        []Alternative
	Confidence          float64
}

// rawSuggestion mirrors the JSON the model produces.
type rawSuggestion struct {
	Decision string `json:"decision"`
	Next     struct {
		ID         string `json:"id"`
		Name       string `json:"nombre"`
		Difficulty string `json:"dificultad_sugerida"`
		Reason     string `json:"razon"`
	} `json:"siguiente_concepto"`
	Alternatives []struct {
		ID     string `json:"id"`
		Name   string `json:"nombre"`
		Type   string `json:"tipo"`
		Reason string `json:"razon"`
	} `json:"alternativas"`
	Confidence float64 `json:"confianza"`
}

const suggestSystemPrompt = `Eres Sabi, un tutor de aprendizaje adaptativo.
Principios: repasa prerrequisitos si hay atasco; avanza si hay dominio; explora si hay interés; explica la conexión; tono motivador.
Decide el siguiente paso del estudiante a partir de su estado y responde únicamente con el JSON pedido. Usa solo IDs de conceptos que aparezcan en el estado.`

// Service asks the LLM for a next-step suggestion.
type Service struct {
	provider llm.Provider
	graph    *graph.Graph
}

// NewService creates a suggestion service.
func NewService(provider llm.Provider, g *graph.Graph) *Service {
	return &Service{provider: provider, graph: g}
}

// Suggest returns a validated payload, or nil when the model produced
// nothing usable. Provider failures are returned as errors; callers
// treat them as "no suggestion".
func (s *Service) Suggest(ctx context.Context, snap Snapshot) (*Payload, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeSuggest)

	state, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode learner state: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: suggestSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: string(state)},
		},
		Schema:      SuggestionSchema,
		MaxTokens:   1024,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("suggestion failed: %w", err)
	}

	var raw rawSuggestion
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse suggestion: %w", err)
	}

	// No usable decision means no suggestion at all.
	if !validDecision(raw.Decision) {
		return nil, nil
	}

	p := &Payload{
		Decision:            raw.Decision,
		NextConceptID:       raw.Next.ID,
		NextConceptName:     raw.Next.Name,
		SuggestedDifficulty: raw.Next.Difficulty,
		Rationale:           raw.Next.Reason,
		Confidence:          raw.Confidence,
	}
	// An unknown concept clears the target but keeps the rest of the
	// payload; the decision and rationale are still worth showing.
	if p.NextConceptID != "" && !s.graph.Contains(p.NextConceptID) {
		p.NextConceptID = ""
	}
	for _, alt := range raw.Alternatives {
		if !s.graph.Contains(alt.ID) {
			continue
		}
		p.Alternatives = append(p.Alternatives, Alternative{
			ConceptID: alt.ID,
			Name:      alt.Name,
			Type:      alt.Type,
			Rationale: alt.Reason,
		})
	}
	return p, nil
}

// Advisor adapts the service to the quiz machine's bout-end hook: it
// builds the snapshot, asks, and reduces the payload to a target concept.
type Advisor struct {
	builder *Builder
	service *Service
	grade   string
}

// NewAdvisor creates an advisor for a learner grade.
func NewAdvisor(b *Builder, s *Service, learnerGrade string) *Advisor {
	return &Advisor{builder: b, service: s, grade: learnerGrade}
}

// Suggest implements the quiz machine's Suggester contract.
func (a *Advisor) Suggest(ctx context.Context, learnerID, conceptID string) (*recommend.Suggestion, error) {
	snap, err := a.builder.Snapshot(ctx, learnerID, conceptID, a.grade)
	if err != nil {
		return nil, err
	}
	p, err := a.service.Suggest(ctx, snap)
	if err != nil || p == nil {
		return nil, err
	}
	if p.NextConceptID == "" {
		return nil, nil
	}
	return &recommend.Suggestion{ConceptID: p.NextConceptID, Rationale: p.Rationale}, nil
}
