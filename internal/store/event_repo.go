package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMRequestEventData captures a single LLM API call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

type EventsRepo struct {
	db *sql.DB
}

func (r *EventsRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO eventos_llm
		 (proveedor, modelo, proposito, tokens_entrada, tokens_salida,
		  latencia_ms, exito, error, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, success, data.ErrorMessage,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

// ModelUsage aggregates token consumption for one model.
type ModelUsage struct {
	Model        string
	Requests     int
	InputTokens  int
	OutputTokens int
}

// UsageSummary returns per-model token totals across all recorded events,
// ordered by model name.
func (r *EventsRepo) UsageSummary(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT modelo, COUNT(*),
		        COALESCE(SUM(tokens_entrada), 0), COALESCE(SUM(tokens_salida), 0)
		 FROM eventos_llm
		 GROUP BY modelo
		 ORDER BY modelo`,
	)
	if err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Requests, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
