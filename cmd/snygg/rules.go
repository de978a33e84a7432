package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/engine"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/spec"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/stylesheet"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

const (
	orderSpecificity = "specificity"
	orderDeclaration = "declaration"
)

type rulesOptions struct {
	level string
	order string
	json  bool
}

type ruleOutput struct {
	Rule       string            `json:"rule"`
	Properties map[string]string `json:"properties"`
	Hidden     int               `json:"hidden,omitempty"`
}

func newRulesCmd(a *app) *cobra.Command {
	opts := &rulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules <file>",
		Short: "List the rules of a stylesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.level, "level", "", "Show properties up to this level (defaults to the configured level)")
	cmd.Flags().StringVar(&opts.order, "order", orderSpecificity, "Rule order: specificity or declaration")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output in JSON format")

	return cmd
}

func runRules(cmd *cobra.Command, a *app, path string, opts *rulesOptions) error {
	level := a.settings.EditorLevel()
	if opts.level != "" {
		parsed, err := spec.ParseLevel(opts.level)
		if err != nil {
			return newCommandError("list rules", fmt.Sprintf("parsing level %q", opts.level), err, "Use basic, advanced or developer.")
		}
		level = parsed
	}

	doc, err := a.ws.Load(path)
	if err != nil {
		return loadError("list rules", path, err)
	}

	var rules []rule.Rule
	switch opts.order {
	case orderSpecificity:
		rules = engine.Sorted(doc)
	case orderDeclaration:
		rules = doc.Rules()
	default:
		return newCommandError("list rules", fmt.Sprintf("ordering by %q", opts.order), fmt.Errorf("unknown order"), "Use --order specificity or --order declaration.")
	}

	if opts.json {
		return printRulesJSON(cmd, a, doc, rules, level)
	}
	return printRulesTable(cmd, a, doc, rules, level)
}

// visibleProperties splits a rule's properties by the editor level.
func visibleProperties(c *spec.Catalog, doc *stylesheet.Stylesheet, r rule.Rule, level spec.Level) ([]stylesheet.Property, int) {
	props, ok := doc.Get(r)
	if !ok {
		return nil, 0
	}

	var visible []stylesheet.Property
	hidden := 0
	for _, p := range props.Properties() {
		if c.Visible(r.ElementKey(), p.Name, level) {
			visible = append(visible, p)
		} else {
			hidden++
		}
	}
	return visible, hidden
}

func printRulesTable(cmd *cobra.Command, a *app, doc *stylesheet.Stylesheet, rules []rule.Rule, level spec.Level) error {
	out := cmd.OutOrStdout()
	if len(rules) == 0 {
		fmt.Fprintln(out, "No rules defined")
		return nil
	}

	renderer := a.renderer(out, doc.DefinedVariables())
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range rules {
		visible, hidden := visibleProperties(a.catalog, doc, r, level)
		fmt.Fprintln(writer, r.String())
		for _, p := range visible {
			fmt.Fprintf(writer, "  %s\t%s\n", p.Name, renderer.Line(p.Value))
		}
		if hidden > 0 {
			fmt.Fprintf(writer, "  (%d hidden above %s)\n", hidden, level)
		}
	}
	return writer.Flush()
}

func printRulesJSON(cmd *cobra.Command, a *app, doc *stylesheet.Stylesheet, rules []rule.Rule, level spec.Level) error {
	payload := make([]ruleOutput, len(rules))
	for i, r := range rules {
		visible, hidden := visibleProperties(a.catalog, doc, r, level)
		props := make(map[string]string, len(visible))
		for _, p := range visible {
			props[p.Name] = value.Encode(p.Value)
		}
		payload[i] = ruleOutput{Rule: r.String(), Properties: props, Hidden: hidden}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
