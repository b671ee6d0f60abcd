package bkt

import (
	"math/rand"
	"testing"
)

func TestTrace_EmptyHistory(t *testing.T) {
	if _, err := Trace(DefaultParams(), nil); err != ErrEmptyHistory {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
}

func TestTrace_SingleCorrect(t *testing.T) {
	p := DefaultParams()
	got, err := Trace(p, []bool{true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Posterior: 0.25*0.85 / (0.25*0.85 + 0.75*0.25) = 0.2125/0.4 = 0.53125
	// Learning step: 0.53125 + 0.46875*0.10 = 0.578125
	want := 0.578125
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("got %.9f, want %.9f", got, want)
	}
}

func TestTrace_SingleIncorrect(t *testing.T) {
	p := DefaultParams()
	got, err := Trace(p, []bool{false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Posterior: 0.25*0.15 / (0.25*0.15 + 0.75*0.75) = 0.0375/0.6 = 0.0625
	// Learning step: 0.0625 + 0.9375*0.10 = 0.15625
	want := 0.15625
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("got %.9f, want %.9f", got, want)
	}
}

func TestTrace_CorrectRunIsNonDecreasing(t *testing.T) {
	p := DefaultParams()
	prev := 0.0
	history := []bool{}
	for i := 0; i < 12; i++ {
		history = append(history, true)
		got, err := Trace(p, history)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got < prev {
			t.Fatalf("step %d: mastery decreased on correct run: %.6f -> %.6f", i, prev, got)
		}
		prev = got
	}
	// Long correct runs should converge near the ceiling.
	if prev < 0.95 {
		t.Errorf("after 12 correct answers, mastery %.4f, want >= 0.95", prev)
	}
}

func TestTrace_OutputAlwaysInRange(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(40)
		history := make([]bool, n)
		for i := range history {
			history[i] = rng.Intn(2) == 0
		}
		got, err := Trace(p, history)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if got < MinProbability || got > MaxProbability {
			t.Fatalf("trial %d: result %.6f outside [%.2f, %.2f]", trial, got, MinProbability, MaxProbability)
		}
	}
}

func TestTrace_WrongThenRightRecovers(t *testing.T) {
	p := DefaultParams()
	low, err := Trace(p, []bool{false})
	if err != nil {
		t.Fatal(err)
	}
	higher, err := Trace(p, []bool{false, true})
	if err != nil {
		t.Fatal(err)
	}
	if higher <= low {
		t.Errorf("correct answer after a miss should raise mastery: %.4f -> %.4f", low, higher)
	}
}

func TestTrace_DegenerateParams(t *testing.T) {
	// Guess 0 with belief forced to 0 makes the correct-answer denominator
	// vanish.
	p := Params{Prior: 0, Slip: 0, Guess: 0, Transit: 0}
	if _, err := Trace(p, []bool{true}); err != ErrNotFinite {
		t.Fatalf("expected ErrNotFinite, got %v", err)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, MinProbability},
		{0.0, MinProbability},
		{0.5, 0.5},
		{1.0, MaxProbability},
		{1.7, MaxProbability},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
