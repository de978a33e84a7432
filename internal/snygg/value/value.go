// Package value defines the closed set of typed Snygg values together with
// their canonical text codec.
//
// Every value is self-describing: the textual form carries enough structure
// (function-call syntax, hex prefix, number+unit token, keyword) to be decoded
// without an external type hint. Encode and Decode are inverse operations on
// canonical text.
package value

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies a value variant.
type Kind int

const (
	KindSolidColor Kind = iota
	KindShape
	KindDpSize
	KindSpSize
	KindPercentageSize
	KindDefinedVar
	KindFontFamily
	KindFontWeight
	KindFontStyle
	KindBorder
	KindShadow
	KindInherit
)

var kindNames = [...]string{
	KindSolidColor:     "solid-color",
	KindShape:          "shape",
	KindDpSize:         "dp-size",
	KindSpSize:         "sp-size",
	KindPercentageSize: "percentage-size",
	KindDefinedVar:     "defined-var",
	KindFontFamily:     "font-family",
	KindFontWeight:     "font-weight",
	KindFontStyle:      "font-style",
	KindBorder:         "border",
	KindShadow:         "shadow",
	KindInherit:        "inherit",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every declared kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Value is a typed Snygg value. The set of implementations is closed; see Visitor.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// SolidColor is an RGBA color with 8-bit channels and a real alpha in [0, 1].
type SolidColor struct {
	R, G, B uint8
	A       float64
}

// RGBA constructs a SolidColor.
func RGBA(r, g, b uint8, a float64) SolidColor {
	return SolidColor{R: r, G: g, B: b, A: a}
}

// Transparent is the fully transparent color.
var Transparent = SolidColor{}

// Hex renders the opaque part of the color as #rrggbb.
func (c SolidColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ShapeForm enumerates the supported shape geometries.
type ShapeForm int

const (
	ShapeRectangle ShapeForm = iota
	ShapeCircle
	ShapeRoundedCorner
	ShapeCutCorner
)

func (f ShapeForm) String() string {
	switch f {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapeRoundedCorner:
		return "rounded-corner"
	case ShapeCutCorner:
		return "cut-corner"
	}
	return fmt.Sprintf("shape(%d)", int(f))
}

// Corner is one corner size of a rounded or cut shape, in dp or percent.
type Corner struct {
	Size    float64
	Percent bool
}

// Dp returns a corner measured in density-independent pixels.
func Dp(size float64) Corner { return Corner{Size: size} }

// Pct returns a corner measured in percent of the shorter edge.
func Pct(size float64) Corner { return Corner{Size: size, Percent: true} }

// Shape describes the outline of an element. Corners are ordered
// top-start, top-end, bottom-end, bottom-start and are only meaningful for
// rounded and cut forms.
type Shape struct {
	Form    ShapeForm
	Corners [4]Corner
}

// Rectangle returns the rectangle shape.
func Rectangle() Shape { return Shape{Form: ShapeRectangle} }

// Circle returns the circle shape.
func Circle() Shape { return Shape{Form: ShapeCircle} }

// RoundedCorner returns a rounded-corner shape.
func RoundedCorner(topStart, topEnd, bottomEnd, bottomStart Corner) Shape {
	return Shape{Form: ShapeRoundedCorner, Corners: [4]Corner{topStart, topEnd, bottomEnd, bottomStart}}
}

// CutCorner returns a cut-corner shape.
func CutCorner(topStart, topEnd, bottomEnd, bottomStart Corner) Shape {
	return Shape{Form: ShapeCutCorner, Corners: [4]Corner{topStart, topEnd, bottomEnd, bottomStart}}
}

// DpSize is a generic dimension in density-independent pixels.
type DpSize struct {
	Dp float64
}

// SpSize is a text dimension in scale-independent pixels.
type SpSize struct {
	Sp float64
}

// PercentageSize is a dimension relative to the parent, in percent.
type PercentageSize struct {
	Percent float64
}

// DefinedVar references a variable of the stylesheet's defines block.
type DefinedVar struct {
	Key string
}

// Var constructs a DefinedVar reference.
func Var(key string) DefinedVar { return DefinedVar{Key: key} }

// Generic font family names.
const (
	FamilyDefault   = "default"
	FamilySansSerif = "sans-serif"
	FamilySerif     = "serif"
	FamilyMonospace = "monospace"
	FamilyCursive   = "cursive"
)

var genericFamilies = map[string]struct{}{
	FamilyDefault:   {},
	FamilySansSerif: {},
	FamilySerif:     {},
	FamilyMonospace: {},
	FamilyCursive:   {},
}

// FontFamily is either a generic family keyword or a named font.
type FontFamily struct {
	Name    string
	Generic bool
}

// FontWeight is a numeric font weight between 100 and 900.
type FontWeight struct {
	Weight int
}

// Well-known font weights.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// FontStyle selects upright or italic glyphs.
type FontStyle struct {
	Italic bool
}

// Border is a stroke drawn around an element. Color holds a SolidColor or a
// DefinedVar.
type Border struct {
	Width float64
	Color Value
}

// Shadow is a drop shadow. Color holds a SolidColor or a DefinedVar.
type Shadow struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Color   Value
}

// Inherit explicitly takes the value from the enclosing element.
type Inherit struct{}

func (SolidColor) Kind() Kind     { return KindSolidColor }
func (Shape) Kind() Kind          { return KindShape }
func (DpSize) Kind() Kind         { return KindDpSize }
func (SpSize) Kind() Kind         { return KindSpSize }
func (PercentageSize) Kind() Kind { return KindPercentageSize }
func (DefinedVar) Kind() Kind     { return KindDefinedVar }
func (FontFamily) Kind() Kind     { return KindFontFamily }
func (FontWeight) Kind() Kind     { return KindFontWeight }
func (FontStyle) Kind() Kind      { return KindFontStyle }
func (Border) Kind() Kind         { return KindBorder }
func (Shadow) Kind() Kind         { return KindShadow }
func (Inherit) Kind() Kind        { return KindInherit }

func (v SolidColor) String() string     { return Encode(v) }
func (v Shape) String() string          { return Encode(v) }
func (v DpSize) String() string         { return Encode(v) }
func (v SpSize) String() string         { return Encode(v) }
func (v PercentageSize) String() string { return Encode(v) }
func (v DefinedVar) String() string     { return Encode(v) }
func (v FontFamily) String() string     { return Encode(v) }
func (v FontWeight) String() string     { return Encode(v) }
func (v FontStyle) String() string      { return Encode(v) }
func (v Border) String() string         { return Encode(v) }
func (v Shadow) String() string         { return Encode(v) }
func (v Inherit) String() string        { return Encode(v) }

func (SolidColor) isValue()     {}
func (Shape) isValue()          {}
func (DpSize) isValue()         {}
func (SpSize) isValue()         {}
func (PercentageSize) isValue() {}
func (DefinedVar) isValue()     {}
func (FontFamily) isValue()     {}
func (FontWeight) isValue()     {}
func (FontStyle) isValue()      {}
func (Border) isValue()         {}
func (Shadow) isValue()         {}
func (Inherit) isValue()        {}

// VariablePrefix starts every custom variable name.
const VariablePrefix = "--"

var variableNamePattern = regexp.MustCompile(`^--[a-z0-9][a-z0-9-]*$`)

// IsVariableName reports whether name is a syntactically valid variable name.
func IsVariableName(name string) bool {
	return variableNamePattern.MatchString(name)
}

// IsCustomProperty reports whether a property name lives in the reserved
// custom variable space.
func IsCustomProperty(name string) bool {
	return strings.HasPrefix(name, VariablePrefix)
}

// Equal reports structural equality of two values. Nil values are equal only
// to each other.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}
