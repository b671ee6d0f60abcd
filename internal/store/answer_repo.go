package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/edusabi/sabi/internal/mastery"
)

// AnswerRepo is the append-only answer history over historial_respuestas.
type AnswerRepo struct {
	db *sql.DB
}

// Append records one answered question.
func (r *AnswerRepo) Append(ctx context.Context, ev mastery.AnswerEvent) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	correct := 0
	if ev.Correct {
		correct = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO historial_respuestas
		 (sesion_id, id_usuario, concepto_id, item_id, correcta,
		  opcion_elegida, dificultad_item, pistas_usadas, timestamp, tiempo_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.LearnerID, ev.ConceptID, ev.ItemID, correct,
		ev.ChosenOption, ev.Difficulty, ev.HintsUsed, ts.Unix(), ev.ResponseTimeMs,
	)
	if err != nil {
		return fmt.Errorf("append answer: %w", err)
	}
	return nil
}

// Recent returns up to n most recent events for the pair, oldest first.
func (r *AnswerRepo) Recent(ctx context.Context, learnerID, conceptID string, n int) ([]mastery.AnswerEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(sesion_id, ''), item_id, correcta,
		        COALESCE(opcion_elegida, ''), COALESCE(dificultad_item, ''),
		        COALESCE(pistas_usadas, 0), timestamp, COALESCE(tiempo_ms, 0)
		 FROM historial_respuestas
		 WHERE id_usuario = ? AND concepto_id = ?
		 ORDER BY id DESC LIMIT ?`,
		learnerID, conceptID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}
	defer rows.Close()

	var events []mastery.AnswerEvent
	for rows.Next() {
		ev := mastery.AnswerEvent{LearnerID: learnerID, ConceptID: conceptID}
		var correct int
		var ts int64
		if err := rows.Scan(&ev.SessionID, &ev.ItemID, &correct, &ev.ChosenOption,
			&ev.Difficulty, &ev.HintsUsed, &ts, &ev.ResponseTimeMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		ev.Correct = correct == 1
		ev.Timestamp = time.Unix(ts, 0)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	// The query returns newest first; callers want chronological order.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}
