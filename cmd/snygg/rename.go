package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

func newRenameCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <file> <rule> <new-rule>",
		Short: "Rename a rule, keeping its properties and position",
		Example: `  snygg rename theme.json 'key:pressed' 'key[code=32]:pressed'
  snygg rename theme.yaml smartbar-key 'smartbar-key[mode=caps_lock]'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, a, args[0], args[1], args[2])
		},
	}

	return cmd
}

func runRename(cmd *cobra.Command, a *app, path, fromText, toText string) error {
	from, err := rule.Parse(fromText)
	if err != nil {
		return newCommandError("rename", fmt.Sprintf("parsing rule %q", fromText), err, "Rules look like key, key:pressed or key[code=32][mode=caps_lock].")
	}
	to, err := rule.Parse(toText)
	if err != nil {
		return newCommandError("rename", fmt.Sprintf("parsing rule %q", toText), err, "Rules look like key, key:pressed or key[code=32][mode=caps_lock].")
	}

	doc, err := a.ws.Load(path)
	if err != nil {
		return loadError("rename", path, err)
	}

	if _, ok := a.catalog.ElementFor(to); !ok {
		return newCommandError("rename", fmt.Sprintf("renaming %s", from),
			snyggerrors.NewValidationError("rule.element", fmt.Sprintf("unknown element %q", to.ElementKey()), nil),
			"Use an element name such as key, keyboard or smartbar-key.")
	}

	// Properties move with the rule, so the target element must accept them.
	if props, ok := doc.Get(from); ok && from.ElementKey() != to.ElementKey() {
		for _, p := range props.Properties() {
			if err := a.catalog.CheckProperty(to, p.Name, p.Value); err != nil {
				return newCommandError("rename", fmt.Sprintf("moving %s to %s", from, to), err,
					"Pick a target element that supports the same properties, or remove them first.")
			}
		}
	}

	if err := doc.Rename(from, to); err != nil {
		var conflictErr *snyggerrors.ConflictError
		var notFoundErr *snyggerrors.NotFoundError
		switch {
		case errors.As(err, &conflictErr):
			return newCommandError("rename", fmt.Sprintf("renaming %s", from), err,
				fmt.Sprintf("Rename or remove the existing %s rule first.", to))
		case errors.As(err, &notFoundErr):
			return newCommandError("rename", fmt.Sprintf("renaming %s", from), err,
				fmt.Sprintf("Run 'snygg rules %s --order declaration' to list the rules.", path))
		default:
			return newCommandError("rename", fmt.Sprintf("renaming %s", from), err, "Check both rule names.")
		}
	}

	if err := a.ws.Save(path, doc); err != nil {
		return newCommandError("rename", fmt.Sprintf("saving %s", path), err, "Check that the directory is writable.")
	}

	a.log.WithFields(map[string]any{"path": path, "from": from.String(), "to": to.String()}).Info("rule renamed")
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", from, to)
	return nil
}
