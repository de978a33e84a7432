// Package engine selects the rules of a stylesheet that apply to an element
// in a given interaction state and merges them into effective properties.
package engine

import (
	"cmp"
	"slices"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/stylesheet"
)

// Query describes the element being styled. Code, Group and Mode are nil
// when the context has no such value; a rule filtering on an absent value
// never matches.
//
// By default a rule without a state selector matches any state, so plain
// rules cascade beneath pressed or focused ones. ExactSelectors requires
// every selector to equal the query state.
type Query struct {
	Element        string
	Pressed        bool
	Focused        bool
	Disabled       bool
	Code           *int
	Group          *int
	Mode           *rule.InputMode
	ExactSelectors bool
}

// WithCode returns a copy of q with Code set.
func (q Query) WithCode(code int) Query {
	q.Code = &code
	return q
}

// WithGroup returns a copy of q with Group set.
func (q Query) WithGroup(group int) Query {
	q.Group = &group
	return q
}

// WithMode returns a copy of q with Mode set.
func (q Query) WithMode(mode rule.InputMode) Query {
	q.Mode = &mode
	return q
}

// Matched is one rule selected for a query.
type Matched struct {
	Rule        rule.Rule
	Properties  *stylesheet.PropertySet
	Index       int
	Specificity rule.Specificity
}

// Matches reports whether r applies to q.
func Matches(r rule.Rule, q Query) bool {
	if r.IsAnnotation() || r.Element() != q.Element {
		return false
	}
	if !selectorMatches(r.Pressed(), q.Pressed, q.ExactSelectors) ||
		!selectorMatches(r.Focus(), q.Focused, q.ExactSelectors) ||
		!selectorMatches(r.Disabled(), q.Disabled, q.ExactSelectors) {
		return false
	}
	if codes := r.Codes(); len(codes) > 0 && (q.Code == nil || !r.HasCode(*q.Code)) {
		return false
	}
	if groups := r.Groups(); len(groups) > 0 && (q.Group == nil || !r.HasGroup(*q.Group)) {
		return false
	}
	if modes := r.Modes(); len(modes) > 0 && (q.Mode == nil || !r.HasMode(*q.Mode)) {
		return false
	}
	return true
}

func selectorMatches(selector, state, exact bool) bool {
	if selector {
		return state
	}
	return !exact || !state
}

// Compare orders rules most specific first. It returns a negative number
// when a sorts before b.
func Compare(a, b rule.Rule) int {
	return b.Specificity().Compare(a.Specificity())
}

// Match returns the rules of doc that apply to q, most specific first.
// Rules of equal specificity keep declaration order.
func Match(doc *stylesheet.Stylesheet, q Query) []Matched {
	var matches []Matched
	for _, e := range doc.Entries() {
		if !Matches(e.Rule, q) {
			continue
		}
		matches = append(matches, Matched{
			Rule:        e.Rule,
			Properties:  e.Properties,
			Index:       e.Index,
			Specificity: e.Rule.Specificity(),
		})
	}

	slices.SortStableFunc(matches, func(a, b Matched) int {
		return Compare(a.Rule, b.Rule)
	})
	return matches
}

// Sorted returns every rule in display order: annotations first, then
// rules grouped by element in order of first declaration, each group most
// specific first with declaration order breaking ties.
func Sorted(doc *stylesheet.Stylesheet) []rule.Rule {
	rules := doc.Rules()

	firstSeen := make(map[string]int, len(rules))
	for i, r := range rules {
		if _, ok := firstSeen[r.ElementKey()]; !ok {
			firstSeen[r.ElementKey()] = i
		}
	}

	slices.SortStableFunc(rules, func(a, b rule.Rule) int {
		if a.IsAnnotation() != b.IsAnnotation() {
			if a.IsAnnotation() {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(firstSeen[a.ElementKey()], firstSeen[b.ElementKey()]); c != 0 {
			return c
		}
		return Compare(a, b)
	})
	return rules
}

// Effective merges the properties of every match. For each property the
// most specific rule declaring it wins; properties only set by less
// specific rules still apply.
func Effective(doc *stylesheet.Stylesheet, q Query) *stylesheet.PropertySet {
	merged := stylesheet.NewPropertySet()
	for _, m := range Match(doc, q) {
		for _, p := range m.Properties.Properties() {
			if !merged.Has(p.Name) {
				merged.Set(p.Name, p.Value)
			}
		}
	}
	return merged
}
