package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/curveforge/internal/ir"
)

const buildColumns = `id, run_id, seq, curve_name, curve_type, interpolation, definition_hash,
	anchor, status, error_code, error_message`

// ReadBuild returns the build with the given ID, including its pillars.
// Returns ErrNotFound if no such build exists.
func (s *Store) ReadBuild(ctx context.Context, id string) (ir.Build, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+buildColumns+` FROM builds WHERE id = ?`, id)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Build{}, fmt.Errorf("read build %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return ir.Build{}, fmt.Errorf("read build %s: %w", id, err)
	}
	if b.Pillars, err = s.readPillars(ctx, b.ID); err != nil {
		return ir.Build{}, err
	}
	return b, nil
}

// ReadRun returns every build of a run.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the run has no builds.
func (s *Store) ReadRun(ctx context.Context, runID string) ([]ir.Build, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+buildColumns+`
		FROM builds
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	builds := []ir.Build{}
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate run: %w", err)
	}
	// Close before issuing pillar queries: the store holds a single connection.
	rows.Close()

	for i := range builds {
		if builds[i].Pillars, err = s.readPillars(ctx, builds[i].ID); err != nil {
			return nil, err
		}
	}
	return builds, nil
}

// LatestBuild returns the most recent successful build of the named curve.
// Returns ErrNotFound if the curve has never built successfully.
func (s *Store) LatestBuild(ctx context.Context, curveName string) (ir.Build, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+buildColumns+`
		FROM builds
		WHERE curve_name = ? AND status = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, curveName, string(ir.BuildOK))
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Build{}, fmt.Errorf("latest build of %q: %w", curveName, ErrNotFound)
	}
	if err != nil {
		return ir.Build{}, fmt.Errorf("latest build of %q: %w", curveName, err)
	}
	if b.Pillars, err = s.readPillars(ctx, b.ID); err != nil {
		return ir.Build{}, err
	}
	return b, nil
}

func (s *Store) readPillars(ctx context.Context, buildID string) ([]ir.Pillar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tenor, time, value
		FROM pillars
		WHERE build_id = ?
		ORDER BY idx ASC
	`, buildID)
	if err != nil {
		return nil, fmt.Errorf("query pillars: %w", err)
	}
	defer rows.Close()

	pillars := []ir.Pillar{}
	for rows.Next() {
		var p ir.Pillar
		if err := rows.Scan(&p.Tenor, &p.Time, &p.Value); err != nil {
			return nil, fmt.Errorf("scan pillar: %w", err)
		}
		pillars = append(pillars, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pillars: %w", err)
	}
	return pillars, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (ir.Build, error) {
	var b ir.Build
	var status string
	err := row.Scan(
		&b.ID,
		&b.RunID,
		&b.Seq,
		&b.CurveName,
		&b.CurveType,
		&b.Interpolation,
		&b.DefinitionHash,
		&b.Anchor,
		&status,
		&b.ErrorCode,
		&b.ErrorMessage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.Build{}, err
		}
		return ir.Build{}, fmt.Errorf("scan build: %w", err)
	}
	b.Status = ir.BuildStatus(status)
	return b, nil
}
