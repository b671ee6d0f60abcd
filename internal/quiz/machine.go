package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/edusabi/sabi/internal/items"
	"github.com/edusabi/sabi/internal/mastery"
	"github.com/edusabi/sabi/internal/recommend"
)

// ErrSessionGated rejects answers and new items while the session waits
// for a decision.
var ErrSessionGated = errors.New("session is gated waiting for a decision")

// ErrNoPendingDecision rejects decisions when the session is not gated.
var ErrNoPendingDecision = errors.New("no decision is pending")

// ItemSource serves the next question for a concept, skipping used items.
type ItemSource interface {
	Next(ctx context.Context, c graph.Concept, used map[string]bool, difficulty string) items.Item
}

// Suggester produces an optional next-step hint when a bout ends.
// Implementations may call an LLM; failures are soft and the rule-based
// candidates cover for them.
type Suggester interface {
	Suggest(ctx context.Context, learnerID, conceptID string) (*recommend.Suggestion, error)
}

// Machine drives quiz sessions: grading, mastery updates, bout gating
// and decision resolution.
type Machine struct {
	mastery *mastery.Service
	engine  *recommend.Engine
	items   ItemSource
	suggest Suggester
}

// NewMachine creates a Machine. suggest may be nil when no external
// suggestion source is configured.
func NewMachine(m *mastery.Service, e *recommend.Engine, src ItemSource, suggest Suggester) *Machine {
	return &Machine{mastery: m, engine: e, items: src, suggest: suggest}
}

// AnswerResult reports one graded answer.
type AnswerResult struct {
	Correct bool

	// Mastery is the updated probability for the session's concept.
	Mastery float64
	Source  mastery.UpdateSource

	// State is the session state after the answer; StateWaitDecision
	// means the bout just ended.
	State State
}

// DecisionResult reports a resolved decision.
type DecisionResult struct {
	// ConceptID is the session's new practice target.
	ConceptID string
}

// SubmitAnswer grades one answer and applies its consequences: the
// answer event is logged, mastery for the concept is recomputed, and a
// wrong answer decays the concept's direct prerequisites. When the
// answer completes the bout the session gates on a decision.
//
// The event append happens before any other write, so the store never
// holds consequences of an answer the log does not have, and
// persistence runs before the session mutates, so a storage failure
// leaves the session exactly as it was.
func (m *Machine) SubmitAnswer(ctx context.Context, s *Session, it items.Item, chosen string) (AnswerResult, error) {
	if s.State == StateWaitDecision {
		return AnswerResult{}, ErrSessionGated
	}
	if s.UsedItems == nil {
		s.UsedItems = make(map[string]bool)
	}

	correct := it.Grade(chosen)

	ev := mastery.AnswerEvent{
		SessionID:    s.ID,
		LearnerID:    s.LearnerID,
		ConceptID:    s.ConceptID,
		ItemID:       it.ID,
		Correct:      correct,
		ChosenOption: chosen,
		Difficulty:   it.Difficulty,
		HintsUsed:    s.HintsUsed,
		Timestamp:    time.Now(),
	}
	if !s.ItemShownAt.IsZero() {
		ev.ResponseTimeMs = int(time.Since(s.ItemShownAt).Milliseconds())
	}
	if err := m.mastery.RecordAnswer(ctx, ev); err != nil {
		return AnswerResult{}, err
	}

	if !correct {
		if err := m.mastery.Propagate(ctx, s.LearnerID, s.ConceptID, s.Grade); err != nil {
			return AnswerResult{}, err
		}
	}

	res, err := m.mastery.Recompute(ctx, s.LearnerID, s.ConceptID, correct)
	if err != nil {
		return AnswerResult{}, err
	}

	// The decision context also reads the store, so build it before any
	// counters move.
	var dc *DecisionContext
	if s.Answered+1 >= s.Length {
		dc, err = m.buildDecision(ctx, s)
		if err != nil {
			return AnswerResult{}, err
		}
	}

	s.UsedItems[it.ID] = true
	s.Answered++
	if correct {
		s.Correct++
	}
	s.HintsUsed = 0

	if dc != nil {
		dc.Answered = s.Answered
		dc.Correct = s.Correct
		s.resetBout()
		s.Decision = dc
		s.State = StateWaitDecision
	}

	return AnswerResult{
		Correct: correct,
		Mastery: res.Probability,
		Source:  res.Source,
		State:   s.State,
	}, nil
}

// buildDecision assembles the bout-end context: rule-based review and
// advance candidates plus the optional external suggestion.
func (m *Machine) buildDecision(ctx context.Context, s *Session) (*DecisionContext, error) {
	profile, err := m.neighborhoodProfile(ctx, s)
	if err != nil {
		return nil, err
	}

	dc := &DecisionContext{
		ConceptID: s.ConceptID,
		Weak:      m.engine.WeakPrerequisites(s.ConceptID, profile),
		Advance:   m.engine.AdvanceReady(s.ConceptID, profile),
	}

	if m.suggest != nil {
		sug, err := m.suggest.Suggest(ctx, s.LearnerID, s.ConceptID)
		if err == nil && sug != nil && m.engine.Graph().Contains(sug.ConceptID) {
			dc.Suggestion = sug
		}
	}
	return dc, nil
}

// neighborhoodProfile fetches mastery for the concepts a decision can
// involve: the target, its prerequisites, and its successors with theirs.
func (m *Machine) neighborhoodProfile(ctx context.Context, s *Session) (map[string]float64, error) {
	g := m.engine.Graph()

	need := map[string]bool{s.ConceptID: true}
	for _, p := range g.PrerequisitesOf(s.ConceptID) {
		need[p] = true
	}
	for _, succ := range g.SuccessorsOf(s.ConceptID) {
		need[succ] = true
		for _, p := range g.PrerequisitesOf(succ) {
			need[p] = true
		}
	}

	profile := make(map[string]float64, len(need))
	for id := range need {
		rec, err := m.mastery.Get(ctx, s.LearnerID, id, s.Grade)
		if err != nil {
			return nil, err
		}
		profile[id] = rec.Probability
	}
	return profile, nil
}

// SubmitDecision resolves the learner's choice and reactivates the
// session on the resolved concept. On resolution failure (ErrNoTarget)
// the session stays gated so the learner can choose again.
func (m *Machine) SubmitDecision(ctx context.Context, s *Session, action recommend.Action, topic string) (DecisionResult, error) {
	if s.State != StateWaitDecision || s.Decision == nil {
		return DecisionResult{}, ErrNoPendingDecision
	}

	target, err := m.engine.ResolveDecision(recommend.DecisionInput{
		Action:        action,
		Topic:         topic,
		Filter:        s.Filter(),
		BoutConceptID: s.Decision.ConceptID,
		Weak:          s.Decision.Weak,
		Advance:       s.Decision.Advance,
		Suggestion:    s.Decision.Suggestion,
	})
	if err != nil {
		return DecisionResult{}, err
	}

	s.ConceptID = target
	s.resetBout()
	s.Decision = nil
	s.State = StateActive
	return DecisionResult{ConceptID: target}, nil
}

// NextItem serves a fresh question for the session's current target.
// It stamps the serving time so response time can be measured.
func (m *Machine) NextItem(ctx context.Context, s *Session) (items.Item, error) {
	if s.State == StateWaitDecision {
		return items.Item{}, ErrSessionGated
	}
	c, err := m.engine.Graph().Get(s.ConceptID)
	if err != nil {
		return items.Item{}, fmt.Errorf("session target: %w", err)
	}

	it := m.items.Next(ctx, c, s.UsedItems, s.Difficulty)
	s.ItemShownAt = time.Now()
	s.HintsUsed = 0
	return it, nil
}
