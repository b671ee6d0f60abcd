// Package suggest asks an LLM for the learner's next step. Its output is
// never trusted: payloads are field-validated against the knowledge graph
// and any failure yields no suggestion, leaving the rule-based candidates
// in charge.
package suggest

import (
	"context"
	"fmt"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/edusabi/sabi/internal/mastery"
)

// recentWindow is how many latest answers feed the performance fields.
const recentWindow = 3

// defaultResponseMs stands in for the mean response time when the
// learner has no history yet.
const defaultResponseMs = 60000

// ConceptRef names a concept in a snapshot.
type ConceptRef struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// Snapshot is the learner state sent to the LLM.
type Snapshot struct {
	LearnerID string `json:"usuario_id"`
	Subject   string `json:"mundo"`
	Grade     string `json:"grado"`

	Current       ConceptRef   `json:"concepto_actual"`
	Prerequisites []ConceptRef `json:"prerrequisitos"`
	Successors    []ConceptRef `json:"sucesores"`

	// RecentCorrect, AvgResponseMs and RecentHints summarize the last
	// few answers on the current concept.
	RecentCorrect int `json:"aciertos_ultimos_3"`
	AvgResponseMs int `json:"tiempo_prom_ms"`
	RecentHints   int `json:"pistas_usadas_ultimas"`

	Mastery         float64            `json:"mastery_concepto_actual"`
	SubjectAverages map[string]float64 `json:"promedio_por_materia"`
}

// Builder assembles snapshots from the graph and the mastery state.
type Builder struct {
	graph   *graph.Graph
	mastery *mastery.Service
	log     mastery.EventLog
}

// NewBuilder creates a snapshot builder.
func NewBuilder(g *graph.Graph, m *mastery.Service, log mastery.EventLog) *Builder {
	return &Builder{graph: g, mastery: m, log: log}
}

// Snapshot builds the learner state for the concept.
func (b *Builder) Snapshot(ctx context.Context, learnerID, conceptID, learnerGrade string) (Snapshot, error) {
	current, err := b.graph.Get(conceptID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot concept: %w", err)
	}

	snap := Snapshot{
		LearnerID:     learnerID,
		Subject:       current.Subject,
		Grade:         learnerGrade,
		Current:       ConceptRef{ID: current.ID, Name: current.Name},
		AvgResponseMs: defaultResponseMs,
	}

	for _, id := range b.graph.PrerequisitesOf(conceptID) {
		if c, err := b.graph.Get(id); err == nil {
			snap.Prerequisites = append(snap.Prerequisites, ConceptRef{ID: c.ID, Name: c.Name})
		}
	}
	for _, id := range b.graph.SuccessorsOf(conceptID) {
		if c, err := b.graph.Get(id); err == nil {
			snap.Successors = append(snap.Successors, ConceptRef{ID: c.ID, Name: c.Name})
		}
	}

	recent, err := b.log.Recent(ctx, learnerID, conceptID, recentWindow)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot history: %w", err)
	}
	if len(recent) > 0 {
		totalMs := 0
		for _, ev := range recent {
			if ev.Correct {
				snap.RecentCorrect++
			}
			snap.RecentHints += ev.HintsUsed
			totalMs += ev.ResponseTimeMs
		}
		snap.AvgResponseMs = totalMs / len(recent)
	}

	rec, err := b.mastery.Get(ctx, learnerID, conceptID, learnerGrade)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Mastery = rec.Probability

	snap.SubjectAverages = make(map[string]float64)
	for _, subject := range b.graph.Subjects() {
		profile, err := b.mastery.Profile(ctx, learnerID, learnerGrade, graph.Filter{Subject: subject})
		if err != nil {
			return Snapshot{}, err
		}
		if len(profile) == 0 {
			continue
		}
		sum := 0.0
		for _, p := range profile {
			sum += p
		}
		snap.SubjectAverages[subject] = sum / float64(len(profile))
	}

	return snap, nil
}
