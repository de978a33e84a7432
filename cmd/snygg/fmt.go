package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/snygg/internal/workspace"
	"github.com/alexisbeaulieu97/snygg/pkg/diff"
)

type fmtOptions struct {
	write bool
	diff  bool
}

func newFmtCmd(a *app) *cobra.Command {
	opts := &fmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a stylesheet in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "Print a diff instead of the formatted stylesheet")

	return cmd
}

func runFmt(cmd *cobra.Command, a *app, path string, opts *fmtOptions) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return loadError("format", path, err)
	}

	doc, err := a.ws.Load(path)
	if err != nil {
		return loadError("format", path, err)
	}

	format, err := workspace.FormatOf(path)
	if err != nil {
		return loadError("format", path, err)
	}

	formatted, err := workspace.Encode(doc, format)
	if err != nil {
		return newCommandError("format", fmt.Sprintf("encoding %s", path), err, "Report this stylesheet as a bug; every loaded stylesheet should encode.")
	}

	out := cmd.OutOrStdout()
	if opts.diff {
		fmt.Fprint(out, diff.GenerateUnifiedDiff(original, formatted, path, path+" (formatted)"))
	}

	if opts.write {
		if bytes.Equal(original, formatted) {
			fmt.Fprintf(out, "%s already formatted\n", path)
			return nil
		}
		if err := workspace.WriteAtomic(path, formatted); err != nil {
			return newCommandError("format", fmt.Sprintf("writing %s", path), err, "Check that the directory is writable.")
		}
		stats := diff.Count(original, formatted)
		a.log.WithFields(map[string]any{"path": path, "added": stats.Added, "removed": stats.Removed}).Info("stylesheet formatted")
		fmt.Fprintf(out, "formatted %s (+%d -%d lines)\n", path, stats.Added, stats.Removed)
		return nil
	}

	if !opts.diff {
		_, err = out.Write(formatted)
	}
	return err
}
