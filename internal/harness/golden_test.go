package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/curveforge/internal/ir"
)

func TestGoldenScenarios(t *testing.T) {
	for _, name := range []string{"basic", "rpi-lag"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRenderFailure(t *testing.T) {
	r := NewResult("run-1")
	r.Builds = append(r.Builds,
		BuildSnapshot{Curve: "usd", Type: "IRS", Seq: 1, Status: "ok", Interpolation: "linear",
			Pillars: []ir.Pillar{{Tenor: "1Y", Time: 1, Value: 0.95}}},
		BuildSnapshot{Curve: "cds", Type: "CREDIT_SWAP", Seq: 2, Status: "error", Code: "UNKNOWN_CURVE_TYPE"},
	)
	r.AddError("curve cds: expected status ok, got status error")

	want := "scenario: demo\n" +
		"run: run-1\n" +
		"[1] usd IRS ok linear\n" +
		"    1Y t=1.000000 value=0.950000\n" +
		"[2] cds CREDIT_SWAP error UNKNOWN_CURVE_TYPE\n" +
		"result: fail\n" +
		"  - curve cds: expected status ok, got status error\n"
	assert.Equal(t, want, string(Render("demo", r)))
}

func TestNewResultPasses(t *testing.T) {
	r := NewResult("x")
	assert.True(t, r.Pass)
	assert.NotNil(t, r.Builds)
	assert.NotNil(t, r.Errors)

	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
