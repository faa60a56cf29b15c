// Package pipeline turns compiled curve definitions into persisted builds.
//
// A run resolves each definition's builder from the registry, constructs
// the curve and records the outcome. Per-curve failures are recorded and
// reported, never retried. A store failure aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/curveforge/internal/builder"
	"github.com/roach88/curveforge/internal/ctxlog"
	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/curvespec"
	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/ir"
	"github.com/roach88/curveforge/internal/store"
)

// Pipeline builds and records curves. A Pipeline is not safe for
// concurrent Run calls.
type Pipeline struct {
	registry *builder.Registry
	store    *store.Store
	clock    Sequencer
	ids      IDGenerator
	logger   *slog.Logger
}

// Sequencer hands out strictly increasing seq numbers.
// Implemented by Clock.
type Sequencer interface {
	Next() int64
	Current() int64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the logical clock. By default the first Run resumes from
// the highest seq in the store.
func WithClock(c Sequencer) Option {
	return func(p *Pipeline) {
		p.clock = c
	}
}

// WithIDGenerator sets the run id source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(p *Pipeline) {
		p.ids = g
	}
}

// WithLogger sets the logger. By default Run logs to the logger carried by
// its context.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New creates a Pipeline over registry and st.
func New(registry *builder.Registry, st *store.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: registry,
		store:    st,
		ids:      UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Outcome is the result of building one definition.
type Outcome struct {
	Name    string
	Type    curve.Type
	BuildID string
	Seq     int64
	Status  ir.BuildStatus
	Code    string // empty on success
	Err     error  // nil on success
	Curve   curve.Curve
}

// RunResult summarizes one run. Outcomes are in definition order.
type RunResult struct {
	RunID    string
	Outcomes []Outcome
	Built    int
	Failed   int
}

// OK reports whether every definition built.
func (r *RunResult) OK() bool {
	return r.Failed == 0
}

// Run builds defs in order under a new run id.
//
// The returned error is non-nil only when the run itself could not proceed:
// a store failure or context cancellation. In both cases the partial result
// accumulated so far is returned alongside it.
func (p *Pipeline) Run(ctx context.Context, defs []*curvespec.Definition) (*RunResult, error) {
	logger := p.logger
	if logger == nil {
		logger = ctxlog.FromContext(ctx)
	}

	if p.clock == nil {
		start, err := p.store.MaxSeq(ctx)
		if err != nil {
			return nil, fmt.Errorf("resume clock: %w", err)
		}
		p.clock = NewClockAt(start)
	}

	result := &RunResult{RunID: p.ids.Generate()}
	logger = logger.With("run_id", result.RunID)
	logger.Info("run started", "definitions", len(defs))

	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			logger.Warn("run canceled", "completed", len(result.Outcomes))
			return result, fmt.Errorf("run %s: %w", result.RunID, err)
		}

		outcome, err := p.buildOne(ctx, logger, result.RunID, def)
		if err != nil {
			logger.Error("store failure", "curve", def.Name, "error", err)
			return result, err
		}

		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Status == ir.BuildOK {
			result.Built++
		} else {
			result.Failed++
		}
	}

	logger.Info("run finished", "built", result.Built, "failed", result.Failed)
	return result, nil
}

// buildOne builds and records a single definition. Only store errors are
// returned; build failures are captured in the Outcome.
func (p *Pipeline) buildOne(ctx context.Context, logger *slog.Logger, runID string, def *curvespec.Definition) (Outcome, error) {
	seq := p.clock.Next()
	id, err := ir.BuildID(runID, def.Name, def.Hash, seq)
	if err != nil {
		return Outcome{}, fmt.Errorf("build id for %s: %w", def.Name, err)
	}

	out := Outcome{Name: def.Name, Type: def.Type, BuildID: id, Seq: seq}
	rec := ir.Build{
		ID:             id,
		RunID:          runID,
		Seq:            seq,
		CurveName:      def.Name,
		CurveType:      string(def.Type),
		DefinitionHash: def.Hash,
	}
	if def.Instructions != nil {
		rec.Interpolation = string(def.Instructions.InterpolationMethod())
	}

	logger.Debug("building curve", "curve", def.Name, "type", def.Type, "seq", seq)

	c, buildErr := p.build(def)
	if buildErr != nil {
		out.Status = ir.BuildError
		out.Code = FailureCode(buildErr)
		out.Err = buildErr
		rec.Status = ir.BuildError
		rec.ErrorCode = out.Code
		rec.ErrorMessage = buildErr.Error()
		logger.Warn("curve failed", "curve", def.Name, "code", out.Code, "error", buildErr)
	} else {
		out.Status = ir.BuildOK
		out.Curve = c
		rec.Status = ir.BuildOK
		rec.Interpolation = string(c.Interpolation())
		rec.Anchor = c.ValueAt(0)
		rec.Pillars = toRecordPillars(c.Pillars())
		logger.Debug("curve built", "curve", def.Name, "pillars", len(rec.Pillars))
	}

	if _, err := p.store.WriteBuild(ctx, rec); err != nil {
		return Outcome{}, &StoreError{RunID: runID, Curve: def.Name, Err: err}
	}
	return out, nil
}

func (p *Pipeline) build(def *curvespec.Definition) (curve.Curve, error) {
	b, err := p.registry.Resolve(def.Type)
	if err != nil {
		return nil, err
	}
	return b.Build(def.Instruments, def.Instructions)
}

func toRecordPillars(pillars []curve.Pillar) []ir.Pillar {
	out := make([]ir.Pillar, len(pillars))
	for i, p := range pillars {
		out[i] = ir.Pillar{Tenor: p.Tenor, Time: p.Time, Value: p.Value}
	}
	return out
}

// Restore rebuilds the evaluable curve of a successful build record.
func Restore(b ir.Build) (curve.Curve, error) {
	if b.Status != ir.BuildOK {
		return nil, fmt.Errorf("build %s of %s did not succeed (%s)", b.ID, b.CurveName, b.ErrorCode)
	}
	pillars := make([]curve.Pillar, len(b.Pillars))
	for i, p := range b.Pillars {
		pillars[i] = curve.Pillar{Tenor: p.Tenor, Time: p.Time, Value: p.Value}
	}
	return curve.Restore(curve.Type(b.CurveType), instructions.Interpolation(b.Interpolation), b.Anchor, pillars)
}
