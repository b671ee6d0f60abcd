package recommend

import (
	"errors"
	"fmt"

	"github.com/edusabi/sabi/internal/graph"
)

// Action is the learner's choice at the end of a quiz bout.
type Action string

const (
	// ActionRetry repeats the bout's concept with fresh items.
	ActionRetry Action = "retry"
	// ActionReview practices a weak prerequisite.
	ActionReview Action = "review"
	// ActionAdvance moves to a ready successor.
	ActionAdvance Action = "advance"
)

// ErrNoTarget indicates the decision could not be resolved to a concept:
// no topic matched and no rule-based candidate exists. Soft failure; the
// caller should prompt for another decision.
var ErrNoTarget = errors.New("no target concept found for decision")

// Suggestion is an externally supplied (and already validated) next-step
// hint. ConceptID is empty when the supplier had none or it failed
// validation.
type Suggestion struct {
	ConceptID string
	Rationale string
}

// DecisionInput carries everything needed to resolve a decision.
type DecisionInput struct {
	Action Action
	// Topic is optional free text naming the concept the learner wants.
	Topic string
	// Filter restricts topic matching to the active subject/grade.
	Filter graph.Filter
	// BoutConceptID is the concept the finished bout practiced.
	BoutConceptID string
	// Weak and Advance are the rule-based candidate lists computed when
	// the bout ended.
	Weak    []string
	Advance []string
	// Suggestion is the external hint, if any.
	Suggestion *Suggestion
}

// ResolveDecision maps a decision to a target concept ID.
//
// Precedence is a fixed contract:
//
//	retry   → the bout's concept, always.
//	review  → matched topic, else first weak prerequisite, else ErrNoTarget.
//	advance → matched topic, else the external suggestion when its concept
//	          exists in the graph, else first advance-ready successor,
//	          else ErrNoTarget.
func (e *Engine) ResolveDecision(in DecisionInput) (string, error) {
	switch in.Action {
	case ActionRetry:
		return in.BoutConceptID, nil

	case ActionReview:
		if id := e.MatchTopic(in.Topic, in.Filter); id != "" {
			return id, nil
		}
		if len(in.Weak) > 0 {
			return in.Weak[0], nil
		}
		return "", ErrNoTarget

	case ActionAdvance:
		if id := e.MatchTopic(in.Topic, in.Filter); id != "" {
			return id, nil
		}
		if in.Suggestion != nil && e.graph.Contains(in.Suggestion.ConceptID) {
			return in.Suggestion.ConceptID, nil
		}
		if len(in.Advance) > 0 {
			return in.Advance[0], nil
		}
		return "", ErrNoTarget

	default:
		return "", fmt.Errorf("unknown decision action %q", in.Action)
	}
}
