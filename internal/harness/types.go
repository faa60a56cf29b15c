package harness

import "github.com/roach88/curveforge/internal/ir"

// BuildSnapshot is one build record as the harness saw it in the store.
type BuildSnapshot struct {
	Curve         string      `json:"curve"`
	Type          string      `json:"type"`
	Seq           int64       `json:"seq"`
	Status        string      `json:"status"`
	Interpolation string      `json:"interpolation,omitempty"`
	Code          string      `json:"code,omitempty"`
	Pillars       []ir.Pillar `json:"pillars,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation matched and nothing failed to load.
	Pass bool `json:"pass"`

	RunID string `json:"run_id"`

	// Builds are the recorded builds in seq order.
	Builds []BuildSnapshot `json:"builds"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Builds: []BuildSnapshot{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func snapshotOf(b ir.Build) BuildSnapshot {
	s := BuildSnapshot{
		Curve:  b.CurveName,
		Type:   b.CurveType,
		Seq:    b.Seq,
		Status: string(b.Status),
		Code:   b.ErrorCode,
	}
	if b.Status == ir.BuildOK {
		s.Interpolation = b.Interpolation
		s.Pillars = b.Pillars
	}
	return s
}
