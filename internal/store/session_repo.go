package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SessionStatus values stored in the estado column.
const (
	SessionActive   = "activa"
	SessionFinished = "terminada"
)

// SessionRow is one row of the sesiones table.
type SessionRow struct {
	ID        string
	LearnerID string
	// Goal is the learner's objective, e.g. "repasar" or "explorar".
	Goal       string
	Subject    string
	Grade      string
	Topic      string
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// SessionRepo persists quiz sessions.
type SessionRepo struct {
	db *sql.DB
}

// Start inserts a new active session.
func (r *SessionRepo) Start(ctx context.Context, s SessionRow) error {
	started := s.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sesiones
		 (sesion_id, id_usuario, objetivo, mundo, grado, tema, estado, fecha_inicio)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.LearnerID, s.Goal, s.Subject, s.Grade, s.Topic,
		SessionActive, started.Unix(),
	)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// Finish marks the session as finished.
func (r *SessionRepo) Finish(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sesiones SET estado = ?, fecha_fin = ? WHERE sesion_id = ?`,
		SessionFinished, time.Now().Unix(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}

// Get returns one session row.
func (r *SessionRepo) Get(ctx context.Context, sessionID string) (SessionRow, bool, error) {
	s := SessionRow{ID: sessionID}
	var started int64
	var finished sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id_usuario, objetivo, COALESCE(mundo, ''), COALESCE(grado, ''),
		        COALESCE(tema, ''), estado, fecha_inicio, fecha_fin
		 FROM sesiones WHERE sesion_id = ?`,
		sessionID,
	).Scan(&s.LearnerID, &s.Goal, &s.Subject, &s.Grade, &s.Topic,
		&s.Status, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRow{}, false, nil
	}
	if err != nil {
		return SessionRow{}, false, fmt.Errorf("select session: %w", err)
	}
	s.StartedAt = time.Unix(started, 0)
	if finished.Valid {
		s.FinishedAt = time.Unix(finished.Int64, 0)
	}
	return s, true, nil
}
