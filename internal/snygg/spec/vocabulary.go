package spec

import (
	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

// Declared property names.
const (
	Width        = "width"
	Height       = "height"
	Background   = "background"
	Foreground   = "foreground"
	BorderAll    = "border"
	BorderTop    = "border-top"
	BorderBottom = "border-bottom"
	BorderStart  = "border-start"
	BorderEnd    = "border-end"
	FontFamily   = "font-family"
	FontSize     = "font-size"
	FontStyle    = "font-style"
	FontWeight   = "font-weight"
	Shadow       = "shadow"
	Shape        = "shape"
)

var (
	sizeKinds  = []value.Kind{value.KindDpSize, value.KindSpSize, value.KindPercentageSize}
	colorKinds = []value.Kind{value.KindSolidColor}
)

func prop(name string, level Level, kinds ...value.Kind) PropertySpec {
	return PropertySpec{Name: name, Level: level, Kinds: kinds}
}

func surfaceProperties() []PropertySpec {
	return []PropertySpec{
		prop(Background, LevelBasic, colorKinds...),
		prop(BorderAll, LevelAdvanced, value.KindBorder),
		prop(BorderTop, LevelDeveloper, value.KindBorder),
		prop(BorderBottom, LevelDeveloper, value.KindBorder),
		prop(BorderStart, LevelDeveloper, value.KindBorder),
		prop(BorderEnd, LevelDeveloper, value.KindBorder),
		prop(Shadow, LevelAdvanced, value.KindShadow),
		prop(Shape, LevelAdvanced, value.KindShape),
		prop(Width, LevelDeveloper, sizeKinds...),
		prop(Height, LevelDeveloper, sizeKinds...),
	}
}

func textProperties() []PropertySpec {
	return append(surfaceProperties(),
		prop(Foreground, LevelBasic, colorKinds...),
		prop(FontFamily, LevelAdvanced, value.KindFontFamily),
		prop(FontSize, LevelBasic, value.KindSpSize),
		prop(FontStyle, LevelAdvanced, value.KindFontStyle),
		prop(FontWeight, LevelAdvanced, value.KindFontWeight),
	)
}

func defaultElements() []ElementSpec {
	surface := func(name string) ElementSpec { return ElementSpec{Name: name, Properties: surfaceProperties()} }
	text := func(name string) ElementSpec { return ElementSpec{Name: name, Properties: textProperties()} }

	return []ElementSpec{
		{Name: "@" + rule.DefinesName, Variables: true},
		surface("keyboard"),
		text("key"),
		text("key-hint"),
		text("key-popup"),
		text("clipboard-header"),
		text("clipboard-item"),
		surface("clipboard-item-popup"),
		surface("one-handed-panel"),
		surface("smartbar-primary-row"),
		text("smartbar-primary-action-row-toggle"),
		text("smartbar-primary-secondary-row-toggle"),
		surface("smartbar-secondary-row"),
		surface("smartbar-action-row"),
		text("smartbar-action-button"),
		surface("smartbar-candidate-row"),
		text("smartbar-candidate-word"),
		text("smartbar-candidate-clip"),
		{Name: "smartbar-candidate-spacer", Properties: []PropertySpec{
			prop(Foreground, LevelBasic, colorKinds...),
			prop(Width, LevelDeveloper, sizeKinds...),
			prop(Height, LevelDeveloper, sizeKinds...),
		}},
		text("smartbar-key"),
		surface("system-nav-bar"),
	}
}
