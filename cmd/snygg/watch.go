package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-validate a stylesheet whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, a, args[0])
		},
	}

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, a *app, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return loadError("watch", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return loadError("watch", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return newCommandError("watch", "creating file watcher", err, "Raise the inotify watch limit or close other watchers.")
	}
	defer watcher.Close()

	// Editors often replace the file, so the directory is watched.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return newCommandError("watch", fmt.Sprintf("watching %s", filepath.Dir(abs)), err, "Check that the directory exists and is readable.")
	}

	out := cmd.OutOrStdout()
	check := func() {
		doc, err := a.ws.Load(path)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			return
		}
		issues := lint(doc)
		for _, issue := range issues {
			fmt.Fprintf(out, "warning: %s\n", issue)
		}
		fmt.Fprintf(out, "%s: %d rules OK\n", path, doc.Len())
	}

	check()
	a.log.WithFields(map[string]any{"path": abs}).Info("watching stylesheet")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				a.log.Debug("stylesheet changed", map[string]any{"op": event.Op.String()})
				check()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			a.log.Error(err, "file watcher error")
		}
	}
}
