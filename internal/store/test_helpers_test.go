package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/curveforge/internal/ir"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestBuild creates a successful two-pillar build.
func createTestBuild(runID, curveName string, seq int64) ir.Build {
	return ir.Build{
		ID:             ir.MustBuildID(runID, curveName, "test-hash", seq),
		RunID:          runID,
		Seq:            seq,
		CurveName:      curveName,
		CurveType:      "IRS",
		Interpolation:  "linear",
		DefinitionHash: "test-hash",
		Anchor:         1,
		Status:         ir.BuildOK,
		Pillars: []ir.Pillar{
			{Tenor: "1Y", Time: 1, Value: 0.95},
			{Tenor: "2Y", Time: 2, Value: 0.9},
		},
	}
}

// createFailedBuild creates a build that recorded a construction failure.
func createFailedBuild(runID, curveName string, seq int64) ir.Build {
	return ir.Build{
		ID:             ir.MustBuildID(runID, curveName, "test-hash", seq),
		RunID:          runID,
		Seq:            seq,
		CurveName:      curveName,
		CurveType:      "CREDIT_SWAP",
		DefinitionHash: "test-hash",
		Status:         ir.BuildError,
		ErrorCode:      "UNKNOWN_CURVE_TYPE",
		ErrorMessage:   `curve type "CREDIT_SWAP" is not supported`,
	}
}
