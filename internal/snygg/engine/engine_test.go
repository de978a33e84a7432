package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/resolve"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/stylesheet"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

func props(pairs ...any) *stylesheet.PropertySet {
	set := stylesheet.NewPropertySet()
	for i := 0; i+1 < len(pairs); i += 2 {
		set.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return set
}

func keys(rules []rule.Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Key()
	}
	return out
}

func TestEndToEndPressedKey(t *testing.T) {
	t.Parallel()

	doc := stylesheet.New()
	doc.InsertOrReplace(rule.MustParse("key:pressed"), props("background", value.RGBA(255, 0, 0, 1)))
	doc.InsertOrReplace(rule.MustParse("key"), props(
		"background", value.RGBA(0, 255, 0, 1),
		"width", value.SpSize{Sp: 40},
	))

	got := Effective(doc, Query{Element: "key", Pressed: true})
	want := props("background", value.RGBA(255, 0, 0, 1), "width", value.SpSize{Sp: 40})
	require.True(t, got.Equal(want), "got %v", got.Map())

	idle := Effective(doc, Query{Element: "key"})
	bg, _ := idle.Get("background")
	require.Equal(t, value.RGBA(0, 255, 0, 1), bg)
}

func TestExactSelectors(t *testing.T) {
	t.Parallel()

	doc := stylesheet.New()
	doc.InsertOrReplace(rule.MustParse("key"), props("width", value.DpSize{Dp: 1}))
	doc.InsertOrReplace(rule.MustParse("key:pressed"), props("width", value.DpSize{Dp: 2}))

	matches := Match(doc, Query{Element: "key", Pressed: true, ExactSelectors: true})
	require.Len(t, matches, 1)
	require.Equal(t, "key:pressed", matches[0].Rule.Key())

	matches = Match(doc, Query{Element: "key", ExactSelectors: true})
	require.Len(t, matches, 1)
	require.Equal(t, "key", matches[0].Rule.Key())
}

func TestMatchesFilters(t *testing.T) {
	t.Parallel()

	base := Query{Element: "key"}

	tests := []struct {
		name  string
		rule  string
		query Query
		want  bool
	}{
		{name: "element mismatch", rule: "key-hint", query: base, want: false},
		{name: "annotation never matches", rule: "@defines", query: Query{Element: "defines"}, want: false},
		{name: "pressed requires state", rule: "key:pressed", query: base, want: false},
		{name: "focus selector", rule: "key:focus", query: Query{Element: "key", Focused: true}, want: true},
		{name: "disabled selector", rule: "key:disabled", query: Query{Element: "key", Disabled: true}, want: true},
		{name: "code filter with absent code", rule: "key[code=32]", query: base, want: false},
		{name: "code filter hit", rule: "key[code=32|10]", query: base.WithCode(10), want: true},
		{name: "code filter miss", rule: "key[code=32]", query: base.WithCode(10), want: false},
		{name: "group filter hit", rule: "key[group=2]", query: base.WithGroup(2), want: true},
		{name: "group filter absent", rule: "key[group=2]", query: base.WithCode(2), want: false},
		{name: "mode filter hit", rule: "key[mode=caps_lock]", query: base.WithMode(rule.ModeCapsLock), want: true},
		{name: "mode filter miss", rule: "key[mode=caps_lock]", query: base.WithMode(rule.ModeNormal), want: false},
		{name: "unfiltered matches any code", rule: "key", query: base.WithCode(99), want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Matches(rule.MustParse(tt.rule), tt.query))
		})
	}
}

func TestSpecificityOrdering(t *testing.T) {
	t.Parallel()

	doc := stylesheet.New()
	for _, text := range []string{
		"key",
		"key:pressed",
		"key[mode=normal]",
		"key[code=32]:pressed",
		"key[group=1]",
		"key[code=32]",
		"key[code=32|33]",
	} {
		doc.InsertOrReplace(rule.MustParse(text), nil)
	}

	q := Query{Element: "key", Pressed: true}.WithCode(32).WithGroup(1).WithMode(rule.ModeNormal)
	matches := Match(doc, q)

	got := make([]string, len(matches))
	for i, m := range matches {
		got[i] = m.Rule.Key()
	}
	require.Equal(t, []string{
		"key[code=32]:pressed",
		"key:pressed",
		"key[code=32]",
		"key[code=32|33]",
		"key[group=1]",
		"key[mode=normal]",
		"key",
	}, got)

	again := Match(doc, q)
	for i := range again {
		require.True(t, again[i].Rule.Equal(matches[i].Rule), "matching must be deterministic")
	}
}

func TestPressedCodeOutranksPressed(t *testing.T) {
	t.Parallel()

	require.Negative(t, Compare(rule.MustParse("key[code=32]:pressed"), rule.MustParse("key:pressed")))
	require.Positive(t, Compare(rule.MustParse("key:pressed"), rule.MustParse("key[code=32]:pressed")))
	require.Zero(t, Compare(rule.MustParse("key"), rule.MustParse("key-hint")))
}

func TestSorted(t *testing.T) {
	t.Parallel()

	doc := stylesheet.New()
	for _, text := range []string{"key", "keyboard", "key:pressed", "@defines", "keyboard:focus", "key[code=1]"} {
		doc.InsertOrReplace(rule.MustParse(text), nil)
	}

	require.Equal(t, []string{
		"@defines",
		"key:pressed",
		"key[code=1]",
		"key",
		"keyboard:focus",
		"keyboard",
	}, keys(Sorted(doc)))
}

func TestStyledResolvesVariables(t *testing.T) {
	t.Parallel()

	doc := stylesheet.New()
	doc.InsertOrReplace(rule.Defines(), props(
		"--primary", value.Var("--brand"),
		"--brand", value.RGBA(1, 2, 3, 1),
	))
	doc.InsertOrReplace(rule.MustParse("key"), props(
		"background", value.Var("--primary"),
		"foreground", value.Var("--ghost"),
		"border", value.Border{Width: 1, Color: value.Var("--brand")},
	))
	doc.InsertOrReplace(rule.MustParse("key:pressed"), props("font-size", value.SpSize{Sp: 18}))

	style := Styled(doc, Query{Element: "key", Pressed: true})
	require.Len(t, style.Matches, 2)

	bg, ok := style.Get("background")
	require.True(t, ok)
	require.Equal(t, value.RGBA(1, 2, 3, 1), bg.Resolution.Value)
	require.Equal(t, value.Var("--primary"), bg.Declared)
	require.Equal(t, "key", bg.Source.Key())

	size, ok := style.Get("font-size")
	require.True(t, ok)
	require.Equal(t, "key:pressed", size.Source.Key())

	border, _ := style.Get("border")
	require.Equal(t, value.Border{Width: 1, Color: value.RGBA(1, 2, 3, 1)}, border.Resolution.Value)

	unresolved := style.Unresolved()
	require.Len(t, unresolved, 1)
	require.Equal(t, "foreground", unresolved[0].Name)

	shallow := Styled(doc, Query{Element: "key"}, resolve.WithMaxDepth(1))
	bg, _ = shallow.Get("background")
	require.True(t, bg.Resolution.IsUnresolved())
}
