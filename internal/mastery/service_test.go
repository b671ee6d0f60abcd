package mastery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edusabi/sabi/internal/graph"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	records map[string]Record
	failOn  string // method name that should return an error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]Record)}
}

func key(learnerID, conceptID string) string { return learnerID + "|" + conceptID }

func (m *memStore) Get(_ context.Context, learnerID, conceptID string) (Record, bool, error) {
	if m.failOn == "Get" {
		return Record{}, false, errors.New("store down")
	}
	rec, ok := m.records[key(learnerID, conceptID)]
	return rec, ok, nil
}

func (m *memStore) Upsert(_ context.Context, learnerID, conceptID string, p float64) error {
	if m.failOn == "Upsert" {
		return errors.New("store down")
	}
	rec := m.records[key(learnerID, conceptID)]
	rec.LearnerID = learnerID
	rec.ConceptID = conceptID
	rec.Probability = p
	m.records[key(learnerID, conceptID)] = rec
	return nil
}

func (m *memStore) IncrementAttempts(_ context.Context, learnerID, conceptID string) error {
	rec := m.records[key(learnerID, conceptID)]
	rec.LearnerID = learnerID
	rec.ConceptID = conceptID
	rec.Attempts++
	m.records[key(learnerID, conceptID)] = rec
	return nil
}

// memLog is an in-memory EventLog for tests.
type memLog struct {
	events []AnswerEvent
	failOn string
}

func (m *memLog) Append(_ context.Context, ev AnswerEvent) error {
	if m.failOn == "Append" {
		return errors.New("log down")
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *memLog) Recent(_ context.Context, learnerID, conceptID string, n int) ([]AnswerEvent, error) {
	if m.failOn == "Recent" {
		return nil, errors.New("log down")
	}
	var out []AnswerEvent
	for _, ev := range m.events {
		if ev.LearnerID == learnerID && ev.ConceptID == conceptID {
			out = append(out, ev)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

func testGraph() *graph.Graph {
	concepts := []graph.Concept{
		{ID: "ari-01", Name: "Fracciones", Subject: "Aritmética", Grade: "2do de secundaria"},
		{ID: "alg-01", Name: "Expresiones algebraicas", Subject: "Álgebra", Grade: "3ro de secundaria"},
		{ID: "alg-02", Name: "Polinomios de segundo grado", Subject: "Álgebra", Grade: "4to de secundaria"},
	}
	edges := []graph.Edge{
		{From: "ari-01", To: "alg-01"},
		{From: "alg-01", To: "alg-02"},
	}
	return graph.New(concepts, edges)
}

func newTestService(store Store, log EventLog, cfg Config) *Service {
	return NewService(testGraph(), store, log, cfg)
}

func answer(learner, concept string, correct bool) AnswerEvent {
	return AnswerEvent{
		LearnerID: learner,
		ConceptID: concept,
		ItemID:    "item-1",
		Correct:   correct,
		Timestamp: time.Now(),
	}
}

func TestGet_SeedsPrior(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &memLog{}, DefaultConfig())
	ctx := context.Background()

	// ari-01 is a root (depth 0, base 0.60); learner one grade ahead of
	// "2do" gets +0.05... learner "3ro" vs concept "2do" -> delta 1.
	rec, err := svc.Get(ctx, "u1", "ari-01", "3ro de secundaria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 0.65
	if diff := rec.Probability - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("prior = %.4f, want %.4f", rec.Probability, want)
	}

	// Record was persisted.
	got, ok, _ := store.Get(ctx, "u1", "ari-01")
	if !ok || got.Probability != rec.Probability {
		t.Errorf("prior not persisted: %+v ok=%v", got, ok)
	}
}

func TestGet_StartAtZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartAtZero = true
	svc := newTestService(newMemStore(), &memLog{}, cfg)

	rec, err := svc.Get(context.Background(), "u1", "alg-02", "4to de secundaria")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Probability != 0 {
		t.Errorf("StartAtZero prior = %v, want 0", rec.Probability)
	}
}

func TestRecompute_BKTPath(t *testing.T) {
	store := newMemStore()
	log := &memLog{}
	svc := newTestService(store, log, DefaultConfig())
	ctx := context.Background()

	log.Append(ctx, answer("u1", "alg-01", true))
	log.Append(ctx, answer("u1", "alg-01", true))

	res, err := svc.Recompute(ctx, "u1", "alg-01", true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != SourceBKT {
		t.Fatalf("source = %q, want %q", res.Source, SourceBKT)
	}
	if res.Probability <= 0.25 {
		t.Errorf("two correct answers should beat the prior, got %.4f", res.Probability)
	}

	rec, ok, _ := store.Get(ctx, "u1", "alg-01")
	if !ok || rec.Probability != res.Probability {
		t.Errorf("result not persisted: %+v", rec)
	}
}

func TestRecompute_HeuristicFallbackOnEmptyHistory(t *testing.T) {
	store := newMemStore()
	store.Upsert(context.Background(), "u1", "alg-01", 0.40)
	svc := newTestService(store, &memLog{}, DefaultConfig())

	res, err := svc.Recompute(context.Background(), "u1", "alg-01", true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != SourceHeuristic {
		t.Fatalf("source = %q, want %q", res.Source, SourceHeuristic)
	}
	want := 0.45
	if diff := res.Probability - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("fallback probability = %.4f, want %.4f", res.Probability, want)
	}
}

func TestRecompute_HeuristicFallbackIncorrect(t *testing.T) {
	store := newMemStore()
	store.Upsert(context.Background(), "u1", "alg-01", 0.02)
	svc := newTestService(store, &memLog{}, DefaultConfig())

	res, err := svc.Recompute(context.Background(), "u1", "alg-01", false)
	if err != nil {
		t.Fatal(err)
	}
	// 0.02 - 0.05 clamps to the floor.
	if res.Probability != 0.01 {
		t.Errorf("fallback probability = %.4f, want 0.01", res.Probability)
	}
}

func TestRecompute_WindowCapsHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryWindow = 3
	store := newMemStore()
	log := &memLog{}
	svc := newTestService(store, log, cfg)
	ctx := context.Background()

	// Old misses followed by three hits: with a window of 3 only the hits
	// count, so the estimate must match a pure 3-correct trace.
	for i := 0; i < 5; i++ {
		log.Append(ctx, answer("u1", "alg-01", false))
	}
	for i := 0; i < 3; i++ {
		log.Append(ctx, answer("u1", "alg-01", true))
	}

	res, err := svc.Recompute(ctx, "u1", "alg-01", true)
	if err != nil {
		t.Fatal(err)
	}

	onlyHits := &memLog{}
	for i := 0; i < 3; i++ {
		onlyHits.Append(ctx, answer("u1", "alg-01", true))
	}
	svc2 := newTestService(newMemStore(), onlyHits, cfg)
	res2, err := svc2.Recompute(ctx, "u1", "alg-01", true)
	if err != nil {
		t.Fatal(err)
	}

	if res.Probability != res2.Probability {
		t.Errorf("windowed recompute saw old events: %.6f != %.6f", res.Probability, res2.Probability)
	}
}

func TestRecompute_PersistenceErrorPropagates(t *testing.T) {
	store := newMemStore()
	store.failOn = "Upsert"
	log := &memLog{}
	log.Append(context.Background(), answer("u1", "alg-01", true))
	svc := newTestService(store, log, DefaultConfig())

	if _, err := svc.Recompute(context.Background(), "u1", "alg-01", true); err == nil {
		t.Fatal("expected persistence error to propagate")
	}
}

func TestPropagate(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	store.Upsert(ctx, "u1", "alg-01", 0.50)
	svc := newTestService(store, &memLog{}, DefaultConfig())

	// alg-02's only prerequisite is alg-01.
	if err := svc.Propagate(ctx, "u1", "alg-02", "4to de secundaria"); err != nil {
		t.Fatal(err)
	}

	rec, _, _ := store.Get(ctx, "u1", "alg-01")
	want := 0.35
	if diff := rec.Probability - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("decayed prerequisite = %.4f, want %.4f", rec.Probability, want)
	}
}

func TestPropagate_FloorsAtMinimum(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	store.Upsert(ctx, "u1", "alg-01", 0.05)
	svc := newTestService(store, &memLog{}, DefaultConfig())

	if err := svc.Propagate(ctx, "u1", "alg-02", ""); err != nil {
		t.Fatal(err)
	}
	rec, _, _ := store.Get(ctx, "u1", "alg-01")
	if rec.Probability != 0.01 {
		t.Errorf("decayed prerequisite = %.4f, want floor 0.01", rec.Probability)
	}
}

func TestPropagate_RootConceptNoop(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &memLog{}, DefaultConfig())
	if err := svc.Propagate(context.Background(), "u1", "ari-01", ""); err != nil {
		t.Fatal(err)
	}
	if len(store.records) != 0 {
		t.Errorf("propagation on a root touched %d records", len(store.records))
	}
}

func TestProfile(t *testing.T) {
	svc := newTestService(newMemStore(), &memLog{}, DefaultConfig())
	profile, err := svc.Profile(context.Background(), "u1", "4to de secundaria", graph.Filter{Subject: "Álgebra"})
	if err != nil {
		t.Fatal(err)
	}
	if len(profile) != 2 {
		t.Fatalf("profile size = %d, want 2", len(profile))
	}
	for id, p := range profile {
		if p < 0.05 || p > 0.85 {
			t.Errorf("profile[%s] = %.4f outside prior bounds", id, p)
		}
	}
}
