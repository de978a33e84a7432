package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

func TestDefaultCatalogIsBuiltOnce(t *testing.T) {
	t.Parallel()

	a := Default()
	b := Default()
	require.Same(t, a, b)
	require.Contains(t, a.Elements(), "key")
	require.Contains(t, a.Elements(), "@defines")
	require.Equal(t, "@defines", a.Elements()[0])
}

func TestLevelOrderingAndParsing(t *testing.T) {
	t.Parallel()

	require.Less(t, LevelBasic, LevelAdvanced)
	require.Less(t, LevelAdvanced, LevelDeveloper)

	for _, l := range Levels() {
		parsed, err := ParseLevel(l.String())
		require.NoError(t, err)
		require.Equal(t, l, parsed)
	}

	parsed, err := ParseLevel(" Developer ")
	require.NoError(t, err)
	require.Equal(t, LevelDeveloper, parsed)

	_, err = ParseLevel("expert")
	require.Error(t, err)
	require.Equal(t, "level(9)", Level(9).String())
}

func TestPropertyLevelAndVisibility(t *testing.T) {
	t.Parallel()

	c := Default()

	level, ok := c.PropertyLevel("key", Background)
	require.True(t, ok)
	require.Equal(t, LevelBasic, level)

	level, ok = c.PropertyLevel("key", Width)
	require.True(t, ok)
	require.Equal(t, LevelDeveloper, level)

	_, ok = c.PropertyLevel("key", "color")
	require.False(t, ok)
	_, ok = c.PropertyLevel("nope", Background)
	require.False(t, ok)

	level, ok = c.PropertyLevel("@defines", "--primary")
	require.True(t, ok)
	require.Equal(t, LevelBasic, level)

	tests := []struct {
		property string
		level    Level
		visible  bool
	}{
		{property: Background, level: LevelBasic, visible: true},
		{property: Shadow, level: LevelBasic, visible: false},
		{property: Shadow, level: LevelAdvanced, visible: true},
		{property: BorderTop, level: LevelAdvanced, visible: false},
		{property: BorderTop, level: LevelDeveloper, visible: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.visible, c.Visible("key", tt.property, tt.level), "%s at %s", tt.property, tt.level)
	}

	assert.False(t, c.Visible("keyboard", Foreground, LevelDeveloper), "keyboard has no foreground")
}

func TestDecodeProperty(t *testing.T) {
	t.Parallel()

	c := Default()
	key := rule.MustParse("key:pressed")

	v, err := c.DecodeProperty(key, Background, "#FF0000")
	require.NoError(t, err)
	require.Equal(t, value.RGBA(255, 0, 0, 1), v)

	v, err = c.DecodeProperty(key, Background, "var(--primary)")
	require.NoError(t, err)
	require.Equal(t, value.Var("--primary"), v)

	v, err = c.DecodeProperty(key, FontWeight, "normal")
	require.NoError(t, err)
	require.Equal(t, value.FontWeight{Weight: 400}, v)

	v, err = c.DecodeProperty(key, Width, "inherit")
	require.NoError(t, err)
	require.Equal(t, value.Inherit{}, v)

	_, err = c.DecodeProperty(key, Background, "12dp")
	var decodeErr *snyggerrors.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, snyggerrors.ReasonKind, decodeErr.Reason)

	_, err = c.DecodeProperty(key, "color", "#FF0000")
	var validationErr *snyggerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = c.DecodeProperty(key, "--primary", "#FF0000")
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Message, "@defines")

	_, err = c.DecodeProperty(rule.MustNew("toolbar"), Background, "#FF0000")
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "rule.element", validationErr.Field)
}

func TestDefinesAcceptsAnyVariable(t *testing.T) {
	t.Parallel()

	c := Default()
	for _, raw := range []string{"#000000", "12dp", "rounded-corner(1dp,1dp,1dp,1dp)", "var(--other)", `"Inter"`} {
		_, err := c.DecodeProperty(rule.Defines(), "--anything", raw)
		require.NoError(t, err, raw)
	}

	_, err := c.DecodeProperty(rule.Defines(), "background", "#000000")
	require.Error(t, err)
}

func TestCheckProperty(t *testing.T) {
	t.Parallel()

	c := Default()
	key := rule.MustNew("key")

	require.NoError(t, c.CheckProperty(key, FontSize, value.SpSize{Sp: 12}))
	require.NoError(t, c.CheckProperty(key, FontSize, value.Var("--size")))
	require.Error(t, c.CheckProperty(key, FontSize, value.DpSize{Dp: 12}))
	require.Error(t, c.CheckProperty(key, FontSize, nil))
}

func TestSizePropertiesAcceptEveryLengthUnit(t *testing.T) {
	t.Parallel()

	c := Default()
	key := rule.MustNew("key")

	for _, raw := range []string{"40dp", "40sp", "50%"} {
		_, err := c.DecodeProperty(key, Width, raw)
		require.NoError(t, err, raw)
		_, err = c.DecodeProperty(key, Height, raw)
		require.NoError(t, err, raw)
	}
	require.NoError(t, c.CheckProperty(key, Width, value.SpSize{Sp: 40}))
}

func TestNewCatalogValidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		elements []ElementSpec
	}{
		{name: "bad element name", elements: []ElementSpec{{Name: "Key"}}},
		{name: "empty property name", elements: []ElementSpec{{Name: "key", Properties: []PropertySpec{{Name: "", Kinds: []value.Kind{value.KindDpSize}}}}}},
		{name: "no kinds", elements: []ElementSpec{{Name: "key", Properties: []PropertySpec{{Name: "width"}}}}},
		{name: "bad level", elements: []ElementSpec{{Name: "key", Properties: []PropertySpec{{Name: "width", Level: Level(5), Kinds: []value.Kind{value.KindDpSize}}}}}},
		{name: "duplicate element", elements: []ElementSpec{{Name: "key"}, {Name: "key"}}},
		{name: "duplicate property", elements: []ElementSpec{{Name: "key", Properties: []PropertySpec{
			{Name: "width", Kinds: []value.Kind{value.KindDpSize}},
			{Name: "width", Kinds: []value.Kind{value.KindDpSize}},
		}}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCatalog(tt.elements...)
			var validationErr *snyggerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}
