package recommend

import (
	"testing"

	"github.com/edusabi/sabi/internal/graph"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Polinomios de segundo grado", "polinomios de segundo grado"},
		{"Álgebra", "algebra"},
		{"  ECUACIONES   cuadráticas  ", "ecuaciones cuadraticas"},
		{"¿año? ¡sí!", "ano si"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchTopic_SubstringBeatsPartial(t *testing.T) {
	concepts := []graph.Concept{
		{ID: "alg-02", Name: "Polinomios de segundo grado", Subject: "Álgebra", Grade: "4to de secundaria"},
		{ID: "ari-01", Name: "Fracciones", Subject: "Álgebra", Grade: "4to de secundaria"},
	}
	e := NewEngine(graph.New(concepts, nil), DefaultThresholds())

	got := e.MatchTopic("polinomios", graph.Filter{Subject: "Álgebra", Grade: "4to de secundaria"})
	if got != "alg-02" {
		t.Errorf("MatchTopic(polinomios) = %q, want alg-02", got)
	}
}

func TestMatchTopic_WordHits(t *testing.T) {
	concepts := []graph.Concept{
		{ID: "a", Name: "Suma de fracciones y decimales", Subject: "M", Grade: "1"},
		{ID: "b", Name: "Suma de enteros", Subject: "M", Grade: "1"},
	}
	e := NewEngine(graph.New(concepts, nil), DefaultThresholds())

	// "suma fracciones" is not a substring of either name, but matches two
	// words of a and one of b.
	got := e.MatchTopic("suma fracciones", graph.Filter{})
	if got != "a" {
		t.Errorf("MatchTopic(suma fracciones) = %q, want a", got)
	}
}

func TestMatchTopic_RespectsFilter(t *testing.T) {
	concepts := []graph.Concept{
		{ID: "a", Name: "Polinomios", Subject: "Álgebra", Grade: "4to de secundaria"},
		{ID: "b", Name: "Polinomios", Subject: "Álgebra", Grade: "5to de secundaria"},
	}
	e := NewEngine(graph.New(concepts, nil), DefaultThresholds())

	got := e.MatchTopic("polinomios", graph.Filter{Grade: "5to de secundaria"})
	if got != "b" {
		t.Errorf("filtered match = %q, want b", got)
	}
}

func TestMatchTopic_DeterministicTieBreak(t *testing.T) {
	concepts := []graph.Concept{
		{ID: "z-01", Name: "Polinomios A", Subject: "M", Grade: "1"},
		{ID: "a-01", Name: "Polinomios B", Subject: "M", Grade: "1"},
	}
	e := NewEngine(graph.New(concepts, nil), DefaultThresholds())

	// Both score 2.0; the lower concept ID must win, every time.
	for i := 0; i < 10; i++ {
		if got := e.MatchTopic("polinomios", graph.Filter{}); got != "a-01" {
			t.Fatalf("tie-break picked %q, want a-01", got)
		}
	}
}

func TestMatchTopic_NoMatch(t *testing.T) {
	e := newTestEngine()
	if got := e.MatchTopic("tensores", matFilter()); got != "" {
		t.Errorf("MatchTopic(tensores) = %q, want empty", got)
	}
	if got := e.MatchTopic("", matFilter()); got != "" {
		t.Errorf("MatchTopic(empty) = %q, want empty", got)
	}
}

func TestMatchTopic_DiacriticInsensitive(t *testing.T) {
	e := newTestEngine()
	got := e.MatchTopic("geometría", matFilter())
	if got != "f" {
		t.Errorf("MatchTopic(geometría) = %q, want f", got)
	}
	got = e.MatchTopic("geometria", matFilter())
	if got != "f" {
		t.Errorf("MatchTopic(geometria) = %q, want f", got)
	}
}
