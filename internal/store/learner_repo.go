package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Prefs are per-learner preferences stored as JSON.
type Prefs struct {
	Difficulty string `json:"dificultad"`
	QuizLength int    `json:"quiz_len"`
}

// Learner is one row of the usuarios table.
type Learner struct {
	ID    string
	Name  string
	Prefs Prefs
}

// LearnerRepo persists learners and their preferences.
type LearnerRepo struct {
	db *sql.DB
}

// Save creates or updates the learner.
func (r *LearnerRepo) Save(ctx context.Context, l Learner) error {
	prefs, err := json.Marshal(l.Prefs)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO usuarios (id_usuario, nombre, preferencias_json, fecha_registro)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id_usuario)
		 DO UPDATE SET nombre = excluded.nombre,
		               preferencias_json = excluded.preferencias_json`,
		l.ID, l.Name, string(prefs), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save learner: %w", err)
	}
	return nil
}

// Get returns the learner and whether they exist.
func (r *LearnerRepo) Get(ctx context.Context, learnerID string) (Learner, bool, error) {
	l := Learner{ID: learnerID}
	var prefs sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(nombre, ''), preferencias_json
		 FROM usuarios WHERE id_usuario = ?`,
		learnerID,
	).Scan(&l.Name, &prefs)
	if errors.Is(err, sql.ErrNoRows) {
		return Learner{}, false, nil
	}
	if err != nil {
		return Learner{}, false, fmt.Errorf("select learner: %w", err)
	}
	if prefs.Valid && prefs.String != "" {
		if err := json.Unmarshal([]byte(prefs.String), &l.Prefs); err != nil {
			return Learner{}, false, fmt.Errorf("decode prefs: %w", err)
		}
	}
	return l, true, nil
}

// DeleteData wipes everything stored for the learner: the profile,
// mastery records, answer history and sessions.
func (r *LearnerRepo) DeleteData(ctx context.Context, learnerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM historial_respuestas WHERE id_usuario = ?`,
		`DELETE FROM dominio_usuario WHERE id_usuario = ?`,
		`DELETE FROM sesiones WHERE id_usuario = ?`,
		`DELETE FROM usuarios WHERE id_usuario = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, learnerID); err != nil {
			return fmt.Errorf("delete learner data: %w", err)
		}
	}
	return tx.Commit()
}
