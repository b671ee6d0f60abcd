package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edusabi/sabi/internal/mastery"
)

// MasteryRepo persists mastery records in dominio_usuario. Upserts are
// single statements, so they are atomic per (learner, concept) key as
// the mastery service requires.
type MasteryRepo struct {
	db *sql.DB
}

// Get returns the record and whether it exists.
func (r *MasteryRepo) Get(ctx context.Context, learnerID, conceptID string) (mastery.Record, bool, error) {
	rec := mastery.Record{LearnerID: learnerID, ConceptID: conceptID}
	err := r.db.QueryRowContext(ctx,
		`SELECT prob_maestria, intentos FROM dominio_usuario
		 WHERE id_usuario = ? AND concepto_id = ?`,
		learnerID, conceptID,
	).Scan(&rec.Probability, &rec.Attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return mastery.Record{}, false, nil
	}
	if err != nil {
		return mastery.Record{}, false, fmt.Errorf("select mastery: %w", err)
	}
	return rec, true, nil
}

// Upsert creates or replaces the probability for the pair.
func (r *MasteryRepo) Upsert(ctx context.Context, learnerID, conceptID string, probability float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dominio_usuario (id_usuario, concepto_id, prob_maestria)
		 VALUES (?, ?, ?)
		 ON CONFLICT(id_usuario, concepto_id)
		 DO UPDATE SET prob_maestria = excluded.prob_maestria`,
		learnerID, conceptID, probability,
	)
	if err != nil {
		return fmt.Errorf("upsert mastery: %w", err)
	}
	return nil
}

// IncrementAttempts adds one to the attempt counter, creating the row
// when it does not exist yet.
func (r *MasteryRepo) IncrementAttempts(ctx context.Context, learnerID, conceptID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dominio_usuario (id_usuario, concepto_id, intentos)
		 VALUES (?, ?, 1)
		 ON CONFLICT(id_usuario, concepto_id)
		 DO UPDATE SET intentos = COALESCE(intentos, 0) + 1`,
		learnerID, conceptID,
	)
	if err != nil {
		return fmt.Errorf("increment attempts: %w", err)
	}
	return nil
}
