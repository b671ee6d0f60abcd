// Package bkt implements the Bayesian Knowledge Tracing forward update:
// a two-state HMM (mastered / not mastered) whose belief is refreshed from
// each correctness observation via guess and slip probabilities, followed
// by a learning-transition step. Forgetting is disabled.
package bkt

import (
	"errors"
	"math"
)

// Params holds the fixed BKT model parameters.
type Params struct {
	// Prior is P(L0), the initial probability of mastery.
	Prior float64
	// Slip is P(S), the probability of a wrong answer despite mastery.
	Slip float64
	// Guess is P(G), the probability of a correct answer without mastery.
	Guess float64
	// Transit is P(T), the probability of learning after an observation.
	Transit float64
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		Prior:   0.25,
		Slip:    0.15,
		Guess:   0.25,
		Transit: 0.10,
	}
}

// Probability bounds. Mastery never reaches exactly 0 or 1 so the
// posterior update stays well-defined.
const (
	MinProbability = 0.01
	MaxProbability = 0.99
)

// ErrEmptyHistory is returned by Trace when there are no observations.
var ErrEmptyHistory = errors.New("bkt: empty observation history")

// ErrNotFinite is returned when an intermediate value degenerates
// (denominator underflow with extreme parameters).
var ErrNotFinite = errors.New("bkt: update produced a non-finite value")

// Clamp bounds a probability to [MinProbability, MaxProbability].
func Clamp(p float64) float64 {
	return math.Min(MaxProbability, math.Max(MinProbability, p))
}

// Trace folds an ordered correctness history (oldest first) through the
// BKT update, starting from p.Prior, and returns the resulting mastery
// probability. Each observation applies the posterior step and then the
// learning step. The result is clamped to [MinProbability, MaxProbability].
func Trace(p Params, history []bool) (float64, error) {
	if len(history) == 0 {
		return 0, ErrEmptyHistory
	}

	belief := p.Prior
	for _, correct := range history {
		var posterior float64
		if correct {
			num := belief * (1 - p.Slip)
			den := num + (1-belief)*p.Guess
			if den == 0 {
				return 0, ErrNotFinite
			}
			posterior = num / den
		} else {
			num := belief * p.Slip
			den := num + (1-belief)*(1-p.Guess)
			if den == 0 {
				return 0, ErrNotFinite
			}
			posterior = num / den
		}
		belief = posterior + (1-posterior)*p.Transit
		if math.IsNaN(belief) || math.IsInf(belief, 0) {
			return 0, ErrNotFinite
		}
	}

	return Clamp(belief), nil
}
