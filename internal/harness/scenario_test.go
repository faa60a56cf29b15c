package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes body to dir/name and returns the path.
func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// specsDir returns an absolute path to a testdata spec directory.
func specsDir(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("testdata", "specs", name))
	require.NoError(t, err)
	return abs
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/basic.yaml")
	require.NoError(t, err)

	assert.Equal(t, "basic", s.Name)
	assert.Equal(t, "run-basic", s.RunID)
	assert.Equal(t, filepath.Join("testdata", "specs", "basic"), s.Specs, "specs resolved relative to the scenario")
	require.Len(t, s.Expect, 4)

	usd := s.Expect[0]
	assert.Equal(t, "usd_annual", usd.Curve)
	require.NotNil(t, usd.Pillars)
	assert.Equal(t, 2, *usd.Pillars)
	assert.Equal(t, ValueCheck{At: "18M", Value: 0.7155417528}, usd.Values[1])

	assert.Equal(t, "UNKNOWN_CURVE_TYPE", s.Expect[2].Code)
}

func TestLoadScenarioAbsoluteSpecs(t *testing.T) {
	dir := t.TempDir()
	specs := specsDir(t, "lagged")
	path := writeScenario(t, dir, "abs.yaml", "name: abs\ndescription: d\nspecs: "+specs+"\nexpect:\n  - curve: uk_rpi\n    status: ok\n")

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, specs, s.Specs)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", "name: x\ndescription: d\nspecs: .\nexpects: []\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioValidation(t *testing.T) {
	specs := specsDir(t, "basic")
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", "description: d\nspecs: " + specs + "\nexpect: [{curve: a, status: ok}]\n", "name is required"},
		{"missing description", "name: n\nspecs: " + specs + "\nexpect: [{curve: a, status: ok}]\n", "description is required"},
		{"missing specs", "name: n\ndescription: d\nexpect: [{curve: a, status: ok}]\n", "specs is required"},
		{"specs not found", "name: n\ndescription: d\nspecs: /nonexistent/specs\nexpect: [{curve: a, status: ok}]\n", "specs directory not found"},
		{"empty expect", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: []\n", "expect list is required"},
		{"missing curve", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: [{status: ok}]\n", "expect[0]: curve is required"},
		{"bad status", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: [{curve: a, status: failed}]\n", "status must be"},
		{"code on ok", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: [{curve: a, status: ok, code: X}]\n", "code is only valid"},
		{"values on error", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: [{curve: a, status: error, values: [{at: 1Y, value: 1}]}]\n", "only valid with status"},
		{"bad tenor", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: [{curve: a, status: ok, values: [{at: 1Q, value: 1}]}]\n", "values[0]"},
		{"negative tolerance", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: [{curve: a, status: ok, values: [{at: 1Y, value: 1, tolerance: -1}]}]\n", "tolerance"},
		{"negative pillars", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: [{curve: a, status: ok, pillars: -1}]\n", "pillars must be non-negative"},
		{"duplicate curve", "name: n\ndescription: d\nspecs: " + specs + "\nexpect: [{curve: a, status: ok}, {curve: a, status: error}]\n", "listed twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "s.yaml", tt.body)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScenarioDoesNotResolve(t *testing.T) {
	s, err := ParseScenario([]byte("name: n\nspecs: ../x\n"))
	require.NoError(t, err)
	assert.Equal(t, "../x", s.Specs)
}
