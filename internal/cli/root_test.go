package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandStructure(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "curveforge", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"types", "validate", "build", "show", "test", "config"}, names)
}

func TestRootPersistentFlags(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	format := pf.Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	verbose := pf.Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	for _, name := range []string{"config", "db", "log-level", "log-format"} {
		assert.NotNil(t, pf.Lookup(name), name)
	}
}

func TestRootInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "types")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "types")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "log.level")
}

func TestRootMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", "/nonexistent/curveforge.yaml", "types")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootDebugLogging(t *testing.T) {
	_, stderr, err := execute(t, "--log-level", "debug", "types")
	require.NoError(t, err)
	assert.Contains(t, stderr, "configuration resolved")
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("yaml"))
	assert.False(t, isValidFormat(""))
}
