package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const themeJSON = `{
  "@defines": {
    "--primary": "#FF0000",
    "--loop-a": "var(--loop-b)",
    "--loop-b": "var(--loop-a)"
  },
  "key": {
    "background": "#00FF00",
    "width": "40dp"
  },
  "key:pressed": {
    "background": "var(--primary)"
  },
  "key-popup": {
    "background": "var(--ghost)"
  }
}
`

func writeTheme(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCLI executes the root command with quiet logs and no colors.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(append([]string{"--color=never", "--log-level=error"}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
