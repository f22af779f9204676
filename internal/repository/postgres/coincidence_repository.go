package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/repository"
)

type coincidenceRepository struct {
	db *sqlx.DB
}

func NewCoincidenceRepository(db *sqlx.DB) repository.CoincidenceRepository {
	return &coincidenceRepository{db: db}
}

// RecordLike runs the ledger transition in a single transaction. An advisory
// transaction lock on the unordered pair serializes concurrent attempts, so
// two near-simultaneous first likes cannot both observe "no reverse row" and
// both insert. The lookup targets the reverse direction of this attempt:
// a row (first = target, second = liker) means the target liked us earlier.
func (r *coincidenceRepository) RecordLike(ctx context.Context, likerID, targetID int) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin record like: %w", err)
	}
	defer tx.Rollback()

	lo, hi := likerID, targetID
	if lo > hi {
		lo, hi = hi, lo
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lo, hi); err != nil {
		return false, fmt.Errorf("lock pair: %w", err)
	}

	var c domain.Coincidence
	err = tx.GetContext(ctx, &c, `
		SELECT id, first_user_id, second_user_id, compared
		FROM coincidences
		WHERE first_user_id = $1 AND second_user_id = $2
		ORDER BY id
		LIMIT 1`, targetID, likerID)

	switch {
	case err == nil && c.Compared:
		// Pair already reconciled, leave the row untouched.
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("commit record like: %w", err)
		}
		return false, nil

	case err == nil:
		// Reciprocating like: promote the pair to mutual.
		if _, err := tx.ExecContext(ctx, `UPDATE coincidences SET compared = true WHERE id = $1`, c.ID); err != nil {
			return false, fmt.Errorf("promote coincidence: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("commit record like: %w", err)
		}
		return true, nil

	case errors.Is(err, sql.ErrNoRows):
		// First like in this direction: open a one-directional row.
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO coincidences (first_user_id, second_user_id, compared)
			VALUES ($1, $2, false)`, likerID, targetID); err != nil {
			return false, fmt.Errorf("insert coincidence: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("commit record like: %w", err)
		}
		return false, nil

	default:
		return false, err
	}
}

func (r *coincidenceRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM coincidences`)
	return err
}
