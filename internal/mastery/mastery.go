// Package mastery tracks per-concept mastery probabilities for a learner.
// Estimates are recomputed from the logged answer history on every update,
// so the store holds the only durable state and results are reproducible
// from events.
package mastery

import (
	"context"
	"time"
)

// Record is the mastery state for one (learner, concept) pair.
// Probability is always within [0.01, 0.99] once attempts exist; new
// records start at the computed prior (or zero, see Config.StartAtZero).
type Record struct {
	LearnerID   string
	ConceptID   string
	Probability float64
	Attempts    int
}

// Store is the persistence contract for mastery records. Implementations
// must make Upsert atomic per (learner, concept) key; callers do not
// assume read-modify-write is safe.
type Store interface {
	// Get returns the record and whether it exists.
	Get(ctx context.Context, learnerID, conceptID string) (Record, bool, error)

	// Upsert creates or replaces the probability for the pair.
	Upsert(ctx context.Context, learnerID, conceptID string, probability float64) error

	// IncrementAttempts adds one to the attempt counter for the pair.
	IncrementAttempts(ctx context.Context, learnerID, conceptID string) error
}

// AnswerEvent is one answered question. Events are append-only and never
// mutated; mastery is a pure function of them.
type AnswerEvent struct {
	SessionID      string
	LearnerID      string
	ConceptID      string
	ItemID         string
	Correct        bool
	ChosenOption   string
	Difficulty     string
	HintsUsed      int
	ResponseTimeMs int
	Timestamp      time.Time
}

// EventLog is the append-only answer history.
type EventLog interface {
	Append(ctx context.Context, ev AnswerEvent) error

	// Recent returns up to n most recent events for the pair,
	// oldest first.
	Recent(ctx context.Context, learnerID, conceptID string, n int) ([]AnswerEvent, error)
}

// UpdateSource names which path produced an updated probability, so
// fallback behavior stays observable and testable.
type UpdateSource string

const (
	// SourceBKT means the full Bayesian Knowledge Tracing recompute ran.
	SourceBKT UpdateSource = "bkt"
	// SourceHeuristic means the fixed-step fallback was applied because
	// the BKT update was undefined.
	SourceHeuristic UpdateSource = "heuristic"
)

// UpdateResult is the outcome of a mastery recompute.
type UpdateResult struct {
	Probability float64
	Source      UpdateSource
}
