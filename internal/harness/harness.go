package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/curveforge/internal/builder"
	"github.com/roach88/curveforge/internal/ctxlog"
	"github.com/roach88/curveforge/internal/curvespec"
	"github.com/roach88/curveforge/internal/pipeline"
	"github.com/roach88/curveforge/internal/store"
	"github.com/roach88/curveforge/internal/testutil"
)

// Run executes a scenario with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext executes a scenario and returns the result. Logs go to the
// logger carried by ctx.
//
// Execution flow:
//  1. Open a fresh in-memory store
//  2. Load every definition under scenario.Specs (collect-all)
//  3. Build them through the default registry with a deterministic clock
//     and fixed run id
//  4. Read the run back from the store and evaluate expectations
//
// The error is non-nil only when the scenario could not be executed at
// all; expectation mismatches are reported in Result.Errors.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("scenario", scenario.Name)

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	loaded, loadErrs := curvespec.Load(scenario.Specs, curvespec.LoadModeCollectAll)
	if loaded == nil {
		return nil, fmt.Errorf("failed to load specs: %w", errors.Join(loadErrs...))
	}

	ids := testutil.NewFixedRunIDGenerator(scenario.RunID)
	p := pipeline.New(builder.Default(), st,
		pipeline.WithClock(testutil.NewDeterministicClock()),
		pipeline.WithIDGenerator(ids),
		pipeline.WithLogger(logger),
	)

	run, err := p.Run(ctx, loaded.Definitions)
	if err != nil {
		return nil, fmt.Errorf("failed to run pipeline: %w", err)
	}

	records, err := st.ReadRun(ctx, run.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to read run: %w", err)
	}

	result := NewResult(run.RunID)
	for _, err := range loadErrs {
		result.AddError(fmt.Sprintf("load: %v", err))
	}
	for _, rec := range records {
		result.Builds = append(result.Builds, snapshotOf(rec))
	}

	for _, err := range evaluateExpectations(records, scenario.Expect) {
		result.AddError(err.Error())
	}

	logger.Debug("scenario finished", "pass", result.Pass, "builds", len(result.Builds))
	return result, nil
}
