package preview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

func TestSwatchASCII(t *testing.T) {
	t.Parallel()

	defines := map[string]value.Value{
		"--primary": value.RGBA(255, 0, 0, 1),
		"--alias":   value.Var("--primary"),
	}
	r := New(defines, Options{})

	tests := []struct {
		name string
		in   value.Value
		want string
	}{
		{name: "color", in: value.RGBA(255, 0, 0, 1), want: "## #ff0000"},
		{name: "transparent", in: value.Transparent, want: ".."},
		{name: "circle", in: value.Circle(), want: "()"},
		{name: "cut corner", in: value.CutCorner(value.Dp(1), value.Dp(1), value.Dp(1), value.Dp(1)), want: "<>"},
		{name: "size", in: value.DpSize{Dp: 4}, want: "<>"},
		{name: "font", in: value.FontWeight{Weight: 700}, want: "Aa"},
		{name: "inherit", in: value.Inherit{}, want: "^"},
		{name: "variable", in: value.Var("--primary"), want: "->## #ff0000"},
		{name: "variable one hop only", in: value.Var("--alias"), want: "->?"},
		{name: "missing variable", in: value.Var("--ghost"), want: "->?"},
		{name: "border", in: value.Border{Width: 1, Color: value.Var("--primary")}, want: "(]"},
		{name: "border unresolved", in: value.Border{Width: 1, Color: value.Var("--ghost")}, want: "(]?"},
		{name: "shadow", in: value.Shadow{Color: value.RGBA(0, 0, 0, 1)}, want: "%%"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, r.Swatch(tt.in))
		})
	}
}

func TestSwatchUnicodeAndLine(t *testing.T) {
	t.Parallel()

	r := New(nil, Options{Unicode: true})
	require.Equal(t, "●", r.Swatch(value.Circle()))
	require.Equal(t, "🔗?", r.Swatch(value.Var("--x")))
	require.Equal(t, "↔ 12dp", r.Line(value.DpSize{Dp: 12}))
	require.Equal(t, "", r.Line(nil))
}

func TestSwatchWithColorKeepsGlyph(t *testing.T) {
	t.Parallel()

	r := New(nil, Options{Color: true, Unicode: true})
	require.Contains(t, r.Swatch(value.RGBA(0, 0, 255, 1)), "██")
	require.Contains(t, r.Swatch(value.FontStyle{Italic: true}), "Aa")
}

func TestSwatchForcedColorOnPlainOutput(t *testing.T) {
	t.Parallel()

	r := New(nil, Options{Color: true, Output: &bytes.Buffer{}})
	swatch := r.Swatch(value.RGBA(255, 0, 0, 1))
	require.Contains(t, swatch, "##")
	require.Contains(t, swatch, "\x1b[", "forced color emits escape codes")

	plain := New(nil, Options{Output: &bytes.Buffer{}})
	require.Equal(t, "## #ff0000", plain.Swatch(value.RGBA(255, 0, 0, 1)))
}
