package main

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/resolve"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/stylesheet"
)

// lintIssue is a reference problem that does not prevent loading.
type lintIssue struct {
	Rule     string `json:"rule,omitempty"`
	Property string `json:"property,omitempty"`
	Message  string `json:"message"`
}

func (i lintIssue) String() string {
	if i.Rule == "" {
		return i.Message
	}
	return fmt.Sprintf("%s %s: %s", i.Rule, i.Property, i.Message)
}

// lint reports variable cycles and references to undefined variables, in
// document order.
func lint(doc *stylesheet.Stylesheet) []lintIssue {
	defines := doc.DefinedVariables()

	var issues []lintIssue
	for _, cycle := range resolve.Cycles(defines) {
		issues = append(issues, lintIssue{Message: "variable cycle " + strings.Join(cycle, " -> ")})
	}

	for _, entry := range doc.Entries() {
		for _, p := range entry.Properties.Properties() {
			for _, key := range resolve.Missing(p.Value, defines) {
				issues = append(issues, lintIssue{
					Rule:     entry.Rule.String(),
					Property: p.Name,
					Message:  fmt.Sprintf("undefined variable %s", key),
				})
			}
		}
	}
	return issues
}
