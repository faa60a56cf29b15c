package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	harnessSpecs     = "../harness/testdata/specs/basic"
	harnessScenarios = "../harness/testdata/scenarios"
)

const validSpecs = `package curves

curve: usd: {
	type: "IRS"
	instructions: {
		interpolation:   "linear"
		day_count:       "ACT/365F"
		fixed_frequency: 1
	}
	instruments: [
		{tenor: "1Y", rate: 0.25},
		{tenor: "2Y", rate: 0.25},
	]
}

curve: gbp_rpi: {
	type: "RPI_SWAP_INFLATION"
	instructions: {
		interpolation:    "log_linear"
		base_index:       100
		index_lag_months: 0
	}
	instruments: [{tenor: "1Y", rate: 0.03}]
}
`

// isolateConfig keeps the user's config file and CURVEFORGE_* variables out
// of a test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"CURVEFORGE_DB", "CURVEFORGE_FORMAT", "CURVEFORGE_LOG_LEVEL", "CURVEFORGE_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

// writeSpecs writes src as the only CUE file of a fresh directory.
func writeSpecs(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "curves.cue"), []byte(src), 0o644))
	return dir
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	isolateConfig(t)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "curves.db")
}
