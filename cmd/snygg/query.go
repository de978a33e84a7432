package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/engine"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/resolve"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

type queryOptions struct {
	element  string
	pressed  bool
	focus    bool
	disabled bool
	exact    bool
	code     int
	group    int
	mode     string
	json     bool
}

type queryOutput struct {
	Element    string                `json:"element"`
	Matches    []string              `json:"matches"`
	Properties []queryPropertyOutput `json:"properties"`
}

type queryPropertyOutput struct {
	Name       string   `json:"name"`
	Declared   string   `json:"declared"`
	Value      string   `json:"value,omitempty"`
	Source     string   `json:"source"`
	Chain      []string `json:"chain,omitempty"`
	Unresolved string   `json:"unresolved,omitempty"`
}

func newQueryCmd(a *app) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <file>",
		Short: "Show the effective style of an element in a given state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuery(cmd, a, opts)
			if err != nil {
				return err
			}
			return runQuery(cmd, a, args[0], q, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.element, "element", "e", "", "Element to style (required)")
	flags.BoolVar(&opts.pressed, "pressed", false, "Element is pressed")
	flags.BoolVar(&opts.focus, "focus", false, "Element is focused")
	flags.BoolVar(&opts.disabled, "disabled", false, "Element is disabled")
	flags.BoolVar(&opts.exact, "exact", false, "Require rule selectors to equal the state exactly")
	flags.IntVar(&opts.code, "code", 0, "Key code of the element")
	flags.IntVar(&opts.group, "group", 0, "Key group of the element")
	flags.StringVar(&opts.mode, "mode", "", "Input mode: normal, shift_lock or caps_lock")
	flags.BoolVar(&opts.json, "json", false, "Output in JSON format")
	_ = cmd.MarkFlagRequired("element")

	return cmd
}

func buildQuery(cmd *cobra.Command, a *app, opts *queryOptions) (engine.Query, error) {
	if _, ok := a.catalog.Element(opts.element); !ok || strings.HasPrefix(opts.element, "@") {
		return engine.Query{}, newCommandError("query", fmt.Sprintf("looking up element %q", opts.element),
			fmt.Errorf("unknown element"), "Use an element name such as key, keyboard or smartbar-key.")
	}

	q := engine.Query{
		Element:        opts.element,
		Pressed:        opts.pressed,
		Focused:        opts.focus,
		Disabled:       opts.disabled,
		ExactSelectors: opts.exact,
	}

	flags := cmd.Flags()
	if flags.Changed("code") {
		if !rule.ValidCode(opts.code) {
			return engine.Query{}, newCommandError("query", fmt.Sprintf("checking code %d", opts.code),
				fmt.Errorf("code out of range"), "Use a key code from the keyboard layout.")
		}
		q = q.WithCode(opts.code)
	}
	if flags.Changed("group") {
		q = q.WithGroup(opts.group)
	}
	if flags.Changed("mode") {
		mode, err := rule.ParseInputMode(opts.mode)
		if err != nil {
			return engine.Query{}, newCommandError("query", fmt.Sprintf("parsing mode %q", opts.mode), err, "Use normal, shift_lock or caps_lock.")
		}
		q = q.WithMode(mode)
	}
	return q, nil
}

func runQuery(cmd *cobra.Command, a *app, path string, q engine.Query, opts *queryOptions) error {
	doc, err := a.ws.Load(path)
	if err != nil {
		return loadError("query", path, err)
	}

	style := engine.Styled(doc, q, resolve.WithLogger(a.log))
	a.log.WithFields(map[string]any{"element": q.Element, "matches": len(style.Matches)}).Debug("query evaluated")

	if opts.json {
		return printQueryJSON(cmd, style)
	}

	out := cmd.OutOrStdout()
	if len(style.Matches) == 0 {
		fmt.Fprintf(out, "No rules match %s\n", q.Element)
		return nil
	}

	fmt.Fprintln(out, "Matched rules:")
	for _, m := range style.Matches {
		fmt.Fprintf(out, "  %s\n", m.Rule)
	}

	fmt.Fprintln(out, "Properties:")
	renderer := a.renderer(out, nil)
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, p := range style.Properties {
		if p.Resolution.IsUnresolved() {
			fmt.Fprintf(writer, "  %s\t? %s\t(%s, from %s)\n", p.Name, value.Encode(p.Declared), p.Resolution.Reason, p.Source)
			continue
		}
		line := renderer.Line(p.Resolution.Value)
		if len(p.Resolution.Chain) > 0 {
			line += " via " + strings.Join(p.Resolution.Chain, " -> ")
		}
		fmt.Fprintf(writer, "  %s\t%s\t(from %s)\n", p.Name, line, p.Source)
	}
	return writer.Flush()
}

func printQueryJSON(cmd *cobra.Command, style engine.Style) error {
	payload := queryOutput{
		Element:    style.Query.Element,
		Matches:    make([]string, len(style.Matches)),
		Properties: make([]queryPropertyOutput, len(style.Properties)),
	}
	for i, m := range style.Matches {
		payload.Matches[i] = m.Rule.String()
	}
	for i, p := range style.Properties {
		entry := queryPropertyOutput{
			Name:     p.Name,
			Declared: value.Encode(p.Declared),
			Source:   p.Source.String(),
			Chain:    p.Resolution.Chain,
		}
		if p.Resolution.OK() {
			entry.Value = value.Encode(p.Resolution.Value)
		} else {
			entry.Unresolved = p.Resolution.Reason.String()
		}
		payload.Properties[i] = entry
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
