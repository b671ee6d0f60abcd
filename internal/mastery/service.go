package mastery

import (
	"context"
	"fmt"

	"github.com/edusabi/sabi/internal/bkt"
	"github.com/edusabi/sabi/internal/graph"
)

// Config tunes the mastery service.
type Config struct {
	// Params are the BKT model parameters.
	Params bkt.Params

	// StartAtZero forces new records to probability 0 instead of the
	// computed prior.
	StartAtZero bool

	// FallbackStep is the fixed magnitude applied when the BKT update is
	// undefined: previous + step on a correct answer, previous - step on
	// an incorrect one. Default 0.05; raise to 0.10 for faster
	// convergence in low-stakes contexts.
	FallbackStep float64

	// HistoryWindow caps how many recent events feed the recompute.
	// The estimate is a pure function of the last HistoryWindow events
	// for the pair, oldest first.
	HistoryWindow int
}

// DefaultConfig returns the standard service configuration.
func DefaultConfig() Config {
	return Config{
		Params:        bkt.DefaultParams(),
		StartAtZero:   false,
		FallbackStep:  0.05,
		HistoryWindow: 10,
	}
}

// Service computes and persists mastery estimates.
type Service struct {
	graph *graph.Graph
	store Store
	log   EventLog
	cfg   Config
}

// NewService creates a mastery service. The store and log are required;
// zero-value config fields get defaults.
func NewService(g *graph.Graph, store Store, log EventLog, cfg Config) *Service {
	if cfg.FallbackStep == 0 {
		cfg.FallbackStep = 0.05
	}
	if cfg.HistoryWindow == 0 {
		cfg.HistoryWindow = 10
	}
	if cfg.Params == (bkt.Params{}) {
		cfg.Params = bkt.DefaultParams()
	}
	return &Service{graph: g, store: store, log: log, cfg: cfg}
}

// Get returns the mastery record for the pair, creating it with the prior
// on first access. learnerGrade feeds the prior computation.
func (s *Service) Get(ctx context.Context, learnerID, conceptID, learnerGrade string) (Record, error) {
	rec, ok, err := s.store.Get(ctx, learnerID, conceptID)
	if err != nil {
		return Record{}, fmt.Errorf("get mastery %s/%s: %w", learnerID, conceptID, err)
	}
	if ok {
		return rec, nil
	}

	prior := 0.0
	if !s.cfg.StartAtZero {
		prior = Prior(s.graph, conceptID, learnerGrade)
	}
	if err := s.store.Upsert(ctx, learnerID, conceptID, prior); err != nil {
		return Record{}, fmt.Errorf("seed mastery %s/%s: %w", learnerID, conceptID, err)
	}
	return Record{
		LearnerID:   learnerID,
		ConceptID:   conceptID,
		Probability: prior,
	}, nil
}

// Profile returns the mastery probability for every concept matching the
// filter, creating missing records lazily.
func (s *Service) Profile(ctx context.Context, learnerID, learnerGrade string, f graph.Filter) (map[string]float64, error) {
	profile := make(map[string]float64)
	for _, c := range s.graph.Filtered(f) {
		rec, err := s.Get(ctx, learnerID, c.ID, learnerGrade)
		if err != nil {
			return nil, err
		}
		profile[c.ID] = rec.Probability
	}
	return profile, nil
}

// RecordAnswer appends the answer event to the history and counts the
// attempt against the pair's record.
func (s *Service) RecordAnswer(ctx context.Context, ev AnswerEvent) error {
	if err := s.log.Append(ctx, ev); err != nil {
		return fmt.Errorf("append answer event %s/%s: %w", ev.LearnerID, ev.ConceptID, err)
	}
	if err := s.store.IncrementAttempts(ctx, ev.LearnerID, ev.ConceptID); err != nil {
		return fmt.Errorf("count attempt %s/%s: %w", ev.LearnerID, ev.ConceptID, err)
	}
	return nil
}

// Recompute rebuilds the mastery probability for the pair from the
// recent answer history and persists it. correct is the outcome of the
// answer that was just logged; it only matters for the heuristic
// fallback path. The store is not touched if the history read fails.
func (s *Service) Recompute(ctx context.Context, learnerID, conceptID string, correct bool) (UpdateResult, error) {
	events, err := s.log.Recent(ctx, learnerID, conceptID, s.cfg.HistoryWindow)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("read history %s/%s: %w", learnerID, conceptID, err)
	}

	history := make([]bool, len(events))
	for i, ev := range events {
		history[i] = ev.Correct
	}

	result := UpdateResult{Source: SourceBKT}
	p, traceErr := bkt.Trace(s.cfg.Params, history)
	if traceErr != nil {
		prev, ok, err := s.store.Get(ctx, learnerID, conceptID)
		if err != nil {
			return UpdateResult{}, fmt.Errorf("read previous mastery %s/%s: %w", learnerID, conceptID, err)
		}
		base := 0.0
		if ok {
			base = prev.Probability
		}
		step := s.cfg.FallbackStep
		if !correct {
			step = -step
		}
		p = bkt.Clamp(base + step)
		result.Source = SourceHeuristic
	}

	result.Probability = p
	if err := s.store.Upsert(ctx, learnerID, conceptID, p); err != nil {
		return UpdateResult{}, fmt.Errorf("persist mastery %s/%s: %w", learnerID, conceptID, err)
	}
	return result, nil
}

// Propagate applies the prerequisite decay after a wrong answer on
// conceptID: each direct prerequisite loses 0.15 mastery, floored at the
// probability minimum. A miss is weak evidence the foundations are shaky.
func (s *Service) Propagate(ctx context.Context, learnerID, conceptID, learnerGrade string) error {
	const decay = 0.15
	for _, pre := range s.graph.PrerequisitesOf(conceptID) {
		rec, err := s.Get(ctx, learnerID, pre, learnerGrade)
		if err != nil {
			return err
		}
		next := rec.Probability - decay
		if next < bkt.MinProbability {
			next = bkt.MinProbability
		}
		if err := s.store.Upsert(ctx, learnerID, pre, next); err != nil {
			return fmt.Errorf("propagate decay to %s: %w", pre, err)
		}
	}
	return nil
}
