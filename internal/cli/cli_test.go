package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{
		"-m", "a.hcl",
		"--require", "app, lib/x ,",
		"--query", "app.greeting",
		"--global-name", "loader",
		"--log-format", "JSON",
		"--log-level", "debug",
		"--metrics-port", "9090",
		"--list",
		"b.yaml", "dir",
	}

	// --- Act ---
	cfg, exit, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, []string{"a.hcl", "b.yaml", "dir"}, cfg.ManifestPaths)
	assert.Equal(t, []string{"app", "lib/x"}, cfg.Entries)
	assert.Equal(t, "app.greeting", cfg.Query)
	assert.Equal(t, "loader", cfg.GlobalName)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.MetricsPort)
	assert.True(t, cfg.List)
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, exit, err := Parse([]string{"main.hcl"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, "modreg", cfg.GlobalName)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Entries)
	assert.False(t, cfg.List)
}

func TestParse_NoManifestPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, exit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		errText string
	}{
		{name: "unknown flag", args: []string{"--nope"}, errText: "flag provided but not defined"},
		{name: "log format", args: []string{"--log-format", "xml", "a.hcl"}, errText: "invalid log-format"},
		{name: "log level", args: []string{"--log-level", "loud", "a.hcl"}, errText: "invalid log-level"},
		{name: "metrics port", args: []string{"--metrics-port", "-1", "a.hcl"}, errText: "invalid metrics port"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.errText)
		})
	}
}
