package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/edusabi/sabi/internal/store"
)

type captureEventRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (c *captureEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	c.events = append(c.events, data)
	return c.err
}

func TestLogging_RecordsSuccessfulRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	})
	repo := &captureEventRepo{}
	p := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), PurposeItemGen)
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Purpose != PurposeItemGen {
		t.Errorf("Purpose = %q", ev.Purpose)
	}
	if !ev.Success {
		t.Error("Success should be true")
	}
	if ev.InputTokens != 10 || ev.OutputTokens != 5 {
		t.Errorf("tokens = %d/%d", ev.InputTokens, ev.OutputTokens)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}})
	repo := &captureEventRepo{}
	p := WithLogging(mock, repo)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Success {
		t.Error("Success should be false")
	}
	if ev.ErrorMessage == "" {
		t.Error("ErrorMessage should be set")
	}
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	repo := &captureEventRepo{err: errors.New("disk full")}
	p := WithLogging(mock, repo)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Errorf("logging failure must not surface: %v", err)
	}
}

func TestModelCost(t *testing.T) {
	c := LookupCost("gemini-2.0-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.0-flash")
	}
	got := c.Cost(1_000_000, 1_000_000)
	if got != 0.5 {
		t.Errorf("Cost = %v, want 0.5", got)
	}

	if LookupCost("modelo-desconocido") != nil {
		t.Error("unknown model should have no pricing")
	}
}
