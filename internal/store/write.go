package store

import (
	"context"
	"fmt"

	"github.com/roach88/curveforge/internal/ir"
)

// WriteBuild records a build and its pillars in one transaction.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: if a build with the same
// ID already exists, nothing is written and inserted is false.
func (s *Store) WriteBuild(ctx context.Context, b ir.Build) (inserted bool, err error) {
	if b.ID == "" {
		return false, fmt.Errorf("write build: empty id")
	}
	if b.Status != ir.BuildOK && b.Status != ir.BuildError {
		return false, fmt.Errorf("write build %s: invalid status %q", b.ID, b.Status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write build: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO builds
		(id, run_id, seq, curve_name, curve_type, interpolation, definition_hash,
		 anchor, status, error_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		b.ID,
		b.RunID,
		b.Seq,
		b.CurveName,
		b.CurveType,
		b.Interpolation,
		b.DefinitionHash,
		b.Anchor,
		string(b.Status),
		b.ErrorCode,
		b.ErrorMessage,
	)
	if err != nil {
		return false, fmt.Errorf("write build: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write build: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	for i, p := range b.Pillars {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pillars (build_id, idx, tenor, time, value)
			VALUES (?, ?, ?, ?, ?)
		`, b.ID, i, p.Tenor, p.Time, p.Value)
		if err != nil {
			return false, fmt.Errorf("write build: insert pillar %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write build: commit: %w", err)
	}

	return true, nil
}
