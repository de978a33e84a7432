package engine

import (
	"github.com/alexisbeaulieu97/snygg/internal/snygg/resolve"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/stylesheet"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

// StyledProperty is one effective property with its resolved value and the
// rule it came from.
type StyledProperty struct {
	Name       string
	Declared   value.Value
	Resolution resolve.Resolution
	Source     rule.Rule
}

// Style is the resolved styling of one query.
type Style struct {
	Query      Query
	Matches    []Matched
	Properties []StyledProperty
}

// Get returns the styled property called name.
func (s Style) Get(name string) (StyledProperty, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return StyledProperty{}, false
}

// Unresolved lists properties whose value could not be resolved.
func (s Style) Unresolved() []StyledProperty {
	var out []StyledProperty
	for _, p := range s.Properties {
		if p.Resolution.IsUnresolved() {
			out = append(out, p)
		}
	}
	return out
}

// Styled computes the effective properties of q and resolves each one
// through the document's defines block.
func Styled(doc *stylesheet.Stylesheet, q Query, opts ...resolve.Option) Style {
	resolver := resolve.New(doc.DefinedVariables(), opts...)
	matches := Match(doc, q)

	style := Style{Query: q, Matches: matches}
	seen := make(map[string]bool)
	for _, m := range matches {
		for _, p := range m.Properties.Properties() {
			if seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			style.Properties = append(style.Properties, StyledProperty{
				Name:       p.Name,
				Declared:   p.Value,
				Resolution: resolver.Resolve(p.Value),
				Source:     m.Rule,
			})
		}
	}
	return style
}
