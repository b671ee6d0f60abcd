// Package quiz runs quiz bouts as a small state machine. A session
// practices one concept for a fixed number of answers, then gates on a
// learner decision (retry, review, advance) before continuing.
package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/edusabi/sabi/internal/recommend"
)

// State is the session lifecycle state.
type State string

const (
	// StateActive accepts answers for the current concept.
	StateActive State = "ACTIVE"
	// StateWaitDecision gates the session until the learner decides how
	// to continue. Answers are rejected in this state.
	StateWaitDecision State = "WAIT_DECISION"
)

// Bout length bounds. Requests outside the range are clamped, not rejected.
const (
	MinLength     = 3
	MaxLength     = 30
	DefaultLength = 4
)

// ClampLength forces a requested bout length into [MinLength, MaxLength].
// Zero or negative means "use the default".
func ClampLength(n int) int {
	if n <= 0 {
		return DefaultLength
	}
	if n < MinLength {
		return MinLength
	}
	if n > MaxLength {
		return MaxLength
	}
	return n
}

// DecisionContext is the snapshot offered to the learner when a bout
// ends: how it went and where they could go next. Present exactly while
// the session is in StateWaitDecision.
type DecisionContext struct {
	// ConceptID is the concept the finished bout practiced.
	ConceptID string

	// Answered and Correct are the finished bout's totals.
	Answered int
	Correct  int

	// Weak are prerequisite concepts worth reviewing, weakest first.
	Weak []string

	// Advance are successor concepts the learner is ready for,
	// strongest first.
	Advance []string

	// Suggestion is the optional externally produced hint, already
	// checked against the graph. Nil when unavailable.
	Suggestion *recommend.Suggestion
}

// Session is one learner's quiz run. It is a plain value the Machine
// drives; callers persist it however they like.
type Session struct {
	ID        string
	LearnerID string

	// Subject and Grade scope topic matching and mastery priors.
	Subject string
	Grade   string

	// ConceptID is the current practice target.
	ConceptID string

	// Length is the bout length, always within [MinLength, MaxLength].
	Length int

	// Difficulty is the preferred item difficulty ("baja", "media", "alta").
	Difficulty string

	// Answered and Correct count the current bout.
	Answered int
	Correct  int

	// UsedItems holds item IDs already served, so bouts do not repeat
	// questions. Cleared on every target change and bout end.
	UsedItems map[string]bool

	// HintsUsed counts hints taken on the current item.
	HintsUsed int

	// ItemShownAt is when the current item was served; response time is
	// measured from it.
	ItemShownAt time.Time

	State State

	// Decision is non-nil exactly while State is StateWaitDecision.
	Decision *DecisionContext
}

// NewSession starts an active session on the concept. length is clamped.
func NewSession(learnerID, conceptID string, f graph.Filter, length int) *Session {
	return &Session{
		ID:         uuid.NewString(),
		LearnerID:  learnerID,
		Subject:    f.Subject,
		Grade:      f.Grade,
		ConceptID:  conceptID,
		Length:     ClampLength(length),
		Difficulty: "media",
		UsedItems:  make(map[string]bool),
		State:      StateActive,
	}
}

// Filter returns the session's subject/grade scope.
func (s *Session) Filter() graph.Filter {
	return graph.Filter{Subject: s.Subject, Grade: s.Grade}
}

// SetLength changes the bout length for future bouts, clamped.
func (s *Session) SetLength(n int) {
	s.Length = ClampLength(n)
}

// UseHint counts a hint against the current item.
func (s *Session) UseHint() {
	s.HintsUsed++
}

// resetBout clears the per-bout counters and the used-item set.
func (s *Session) resetBout() {
	s.Answered = 0
	s.Correct = 0
	s.UsedItems = make(map[string]bool)
	s.HintsUsed = 0
}
