package main

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchRevalidatesOnChange(t *testing.T) {
	t.Parallel()

	path := writeTheme(t, "theme.json", themeJSON)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := newRootCmd()
	out := &syncBuffer{}
	root.SetOut(out)
	root.SetErr(&syncBuffer{})
	root.SetArgs([]string{"--color=never", "--log-level=error", "watch", path})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "4 rules OK")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`{"key": {"width": "12px"}}`), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `property "width"`)
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`{"key": {"width": "12dp"}}`), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "1 rules OK")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatchMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "watch", t.TempDir()+"/absent.json")
	require.ErrorContains(t, err, "Failed to watch")
}
