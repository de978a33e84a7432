package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootRejectsInvalidSettings(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "--color", "sometimes", "version")
	var cmdErr *commandError
	require.ErrorAs(t, err, &cmdErr)
	require.Contains(t, err.Error(), "Failed to load settings")
	require.Contains(t, err.Error(), "auto always never")
}

func TestRootReadsConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "snygg.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("level: developer\n"), 0o644))
	path := writeTheme(t, "theme.json", themeJSON)

	out, _, err := runCLI(t, "--config", cfg, "rules", "--json", "--order", "declaration", path)
	require.NoError(t, err)
	require.Contains(t, decodeRules(t, out)[1].Properties, "width")
}

func TestRootLevelFromEnvironment(t *testing.T) {
	t.Setenv("SNYGG_LEVEL", "developer")
	path := writeTheme(t, "theme.json", themeJSON)

	out, _, err := runCLI(t, "rules", "--json", "--order", "declaration", path)
	require.NoError(t, err)
	require.Contains(t, decodeRules(t, out)[1].Properties, "width")
}

func TestRootLogsCarryCorrelationID(t *testing.T) {
	t.Parallel()

	path := writeTheme(t, "theme.json", themeJSON)

	_, stderr, err := runCLI(t, "--log-level=info", "--human-logs=false", "validate", path)
	require.NoError(t, err)
	require.Contains(t, stderr, `"correlation_id"`)
	require.Contains(t, stderr, `"command":"validate"`)
	require.Contains(t, stderr, `"component":"cli"`)
	require.Contains(t, stderr, "stylesheet validated")
}
