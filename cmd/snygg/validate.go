package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type validateOptions struct {
	strict bool
}

func newValidateCmd(a *app) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a stylesheet parses and its variables resolve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when variables are undefined or cyclic")

	return cmd
}

func runValidate(cmd *cobra.Command, a *app, path string, opts *validateOptions) error {
	doc, err := a.ws.Load(path)
	if err != nil {
		return loadError("validate", path, err)
	}

	out := cmd.OutOrStdout()
	issues := lint(doc)
	for _, issue := range issues {
		fmt.Fprintf(out, "warning: %s\n", issue)
	}

	a.log.WithFields(map[string]any{"path": path, "rules": doc.Len(), "issues": len(issues)}).Info("stylesheet validated")

	if opts.strict && len(issues) > 0 {
		return newCommandError("validate", fmt.Sprintf("checking variables in %s", path),
			fmt.Errorf("%d unresolved reference(s)", len(issues)),
			"Declare the missing variables in the @defines rule and break any var() cycles.")
	}

	fmt.Fprintf(out, "%s: %d rules OK\n", path, doc.Len())
	return nil
}
