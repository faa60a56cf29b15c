package store

import (
	"context"
	"errors"
	"testing"

	"github.com/roach88/curveforge/internal/ir"
)

func TestReadBuild_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	want := createTestBuild("run-1", "usd", 4)
	if _, err := s.WriteBuild(ctx, want); err != nil {
		t.Fatalf("WriteBuild() failed: %v", err)
	}

	got, err := s.ReadBuild(ctx, want.ID)
	if err != nil {
		t.Fatalf("ReadBuild() failed: %v", err)
	}
	if got.ID != want.ID || got.RunID != want.RunID || got.Seq != want.Seq {
		t.Errorf("identity mismatch: got %+v", got)
	}
	if got.CurveName != "usd" || got.CurveType != "IRS" || got.Interpolation != "linear" {
		t.Errorf("curve fields mismatch: got %+v", got)
	}
	if got.Status != ir.BuildOK || got.Anchor != 1 || got.DefinitionHash != "test-hash" {
		t.Errorf("status fields mismatch: got %+v", got)
	}
	for i, p := range want.Pillars {
		if got.Pillars[i] != p {
			t.Errorf("Pillars[%d] = %+v, want %+v", i, got.Pillars[i], p)
		}
	}
}

func TestReadBuild_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadBuild(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadBuild(missing) error = %v, want ErrNotFound", err)
	}
}

func TestReadRun_Empty(t *testing.T) {
	s := createTestStore(t)

	builds, err := s.ReadRun(context.Background(), "nonexistent-run")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if builds == nil {
		t.Error("builds is nil, want empty slice")
	}
	if len(builds) != 0 {
		t.Errorf("len(builds) = %d, want 0", len(builds))
	}
}

func TestReadRun_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Written out of order, interleaved with another run.
	for _, b := range []ir.Build{
		createTestBuild("run-1", "gbp", 3),
		createTestBuild("run-2", "usd", 2),
		createFailedBuild("run-1", "eur", 2),
		createTestBuild("run-1", "usd", 1),
	} {
		if _, err := s.WriteBuild(ctx, b); err != nil {
			t.Fatalf("WriteBuild(%s) failed: %v", b.CurveName, err)
		}
	}

	builds, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if len(builds) != 3 {
		t.Fatalf("len(builds) = %d, want 3", len(builds))
	}

	wantNames := []string{"usd", "eur", "gbp"}
	for i, b := range builds {
		if b.CurveName != wantNames[i] {
			t.Errorf("builds[%d].CurveName = %q, want %q", i, b.CurveName, wantNames[i])
		}
		if b.Seq != int64(i+1) {
			t.Errorf("builds[%d].Seq = %d, want %d", i, b.Seq, i+1)
		}
	}
	if len(builds[0].Pillars) != 2 || len(builds[1].Pillars) != 0 {
		t.Errorf("pillars not attached per build: %d, %d", len(builds[0].Pillars), len(builds[1].Pillars))
	}
}

func TestLatestBuild(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	older := createTestBuild("run-1", "usd", 1)
	newer := createTestBuild("run-2", "usd", 5)
	newer.Pillars[0].Value = 0.96
	failed := createFailedBuild("run-3", "usd", 9)

	for _, b := range []ir.Build{newer, failed, older} {
		if _, err := s.WriteBuild(ctx, b); err != nil {
			t.Fatalf("WriteBuild() failed: %v", err)
		}
	}

	got, err := s.LatestBuild(ctx, "usd")
	if err != nil {
		t.Fatalf("LatestBuild() failed: %v", err)
	}
	if got.ID != newer.ID {
		t.Errorf("LatestBuild() = %s (seq %d), want seq 5", got.ID, got.Seq)
	}
	if got.Pillars[0].Value != 0.96 {
		t.Errorf("Pillars[0].Value = %v, want 0.96", got.Pillars[0].Value)
	}
}

func TestLatestBuild_NotFound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.WriteBuild(ctx, createFailedBuild("run-1", "eur_cds", 1)); err != nil {
		t.Fatalf("WriteBuild() failed: %v", err)
	}

	for _, name := range []string{"eur_cds", "never_built"} {
		if _, err := s.LatestBuild(ctx, name); !errors.Is(err, ErrNotFound) {
			t.Errorf("LatestBuild(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}
