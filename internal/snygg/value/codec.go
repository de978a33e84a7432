package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

const (
	unitDp      = "dp"
	unitSp      = "sp"
	unitPercent = "%"

	keywordTransparent = "transparent"
	keywordRectangle   = "rectangle"
	keywordCircle      = "circle"
	keywordNormal      = "normal"
	keywordItalic      = "italic"
	keywordBold        = "bold"
	keywordInherit     = "inherit"

	funcRGBA          = "rgba"
	funcRGB           = "rgb"
	funcRoundedCorner = "rounded-corner"
	funcCutCorner     = "cut-corner"
	funcVar           = "var"
	funcBorder        = "border"
	funcShadow        = "shadow"
)

// exprAST is one value expression: a hex color, a number with optional unit,
// a quoted string, or a keyword with an optional call.
type exprAST struct {
	Pos       lexer.Position
	Hex       *string  `parser:"  @Hex"`
	Dimension *string  `parser:"| @Dimension"`
	String    *string  `parser:"| @String"`
	Term      *termAST `parser:"| @@"`
}

type termAST struct {
	Name string   `parser:"@Ident"`
	Call *callAST `parser:"@@?"`
}

type callAST struct {
	Open bool       `parser:"@'('"`
	Args []*exprAST `parser:"( @@ ( ',' @@ )* )? ')'"`
}

var valueDefinition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "Hex", Pattern: `#[0-9a-zA-Z]*`},
	{Name: "Dimension", Pattern: `[-+]?(?:\d+(?:\.\d+)?|\.\d+)[a-zA-Z%]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `-{0,2}[a-zA-Z_][a-zA-Z0-9_-]*|--[0-9][a-zA-Z0-9_-]*`},
	{Name: "Punct", Pattern: `[(),]`},
})

var valueParser = participle.MustBuild[exprAST](
	participle.Lexer(valueDefinition),
	participle.Elide("whitespace"),
	participle.Unquote("String"),
)

// Decode parses the textual form of a value. Errors are *errors.DecodeError.
func Decode(raw string) (Value, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, snyggerrors.NewDecodeError(raw, snyggerrors.ReasonSyntax, "empty value", nil)
	}

	ast, err := valueParser.ParseString("", raw)
	if err != nil {
		return nil, snyggerrors.NewDecodeError(raw, snyggerrors.ReasonSyntax, "malformed value", err)
	}

	d := decoder{raw: raw}
	return d.expr(ast)
}

// DecodeAs decodes raw and requires the result to be one of kinds. A bare
// "normal" keyword is read as a font weight when only weights are accepted.
func DecodeAs(raw string, kinds ...Kind) (Value, error) {
	v, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 || containsKind(kinds, v.Kind()) {
		return v, nil
	}
	if style, ok := v.(FontStyle); ok && !style.Italic && containsKind(kinds, KindFontWeight) {
		return FontWeight{Weight: WeightNormal}, nil
	}
	return nil, snyggerrors.NewDecodeError(raw, snyggerrors.ReasonKind,
		fmt.Sprintf("%s is not accepted here, expected %s", v.Kind(), joinKinds(kinds)), nil)
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}

func joinKinds(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}

type decoder struct {
	raw string
}

func (d decoder) fail(reason snyggerrors.DecodeReason, format string, args ...any) error {
	return snyggerrors.NewDecodeError(d.raw, reason, fmt.Sprintf(format, args...), nil)
}

func (d decoder) expr(e *exprAST) (Value, error) {
	switch {
	case e.Hex != nil:
		return d.hex(*e.Hex)
	case e.Dimension != nil:
		return d.dimension(*e.Dimension)
	case e.String != nil:
		if *e.String == "" {
			return nil, d.fail(snyggerrors.ReasonSyntax, "font family name must not be empty")
		}
		return FontFamily{Name: *e.String}, nil
	case e.Term != nil:
		if e.Term.Call != nil {
			return d.call(e.Term.Name, e.Term.Call.Args)
		}
		return d.keyword(e.Term.Name)
	}
	return nil, d.fail(snyggerrors.ReasonSyntax, "empty expression")
}

func (d decoder) keyword(name string) (Value, error) {
	switch name {
	case keywordTransparent:
		return Transparent, nil
	case keywordRectangle:
		return Rectangle(), nil
	case keywordCircle:
		return Circle(), nil
	case keywordNormal:
		return FontStyle{}, nil
	case keywordItalic:
		return FontStyle{Italic: true}, nil
	case keywordBold:
		return FontWeight{Weight: WeightBold}, nil
	case keywordInherit:
		return Inherit{}, nil
	}
	if _, ok := genericFamilies[name]; ok {
		return FontFamily{Name: name, Generic: true}, nil
	}
	if strings.HasPrefix(name, VariablePrefix) {
		return nil, d.fail(snyggerrors.ReasonVariable, "bare variable %s must be written as var(%s)", name, name)
	}
	return nil, d.fail(snyggerrors.ReasonUnknown, "unknown keyword %q", name)
}

func (d decoder) call(name string, args []*exprAST) (Value, error) {
	switch name {
	case funcRGBA:
		if err := d.arity(name, args, 4); err != nil {
			return nil, err
		}
		return d.color(args[0], args[1], args[2], args[3])
	case funcRGB:
		if err := d.arity(name, args, 3); err != nil {
			return nil, err
		}
		return d.color(args[0], args[1], args[2], nil)
	case funcRoundedCorner, funcCutCorner:
		if err := d.arity(name, args, 4); err != nil {
			return nil, err
		}
		shape := Shape{Form: ShapeRoundedCorner}
		if name == funcCutCorner {
			shape.Form = ShapeCutCorner
		}
		for i, arg := range args {
			corner, err := d.corner(arg)
			if err != nil {
				return nil, err
			}
			shape.Corners[i] = corner
		}
		return shape, nil
	case funcVar:
		if err := d.arity(name, args, 1); err != nil {
			return nil, err
		}
		arg := args[0]
		if arg.Term == nil || arg.Term.Call != nil || !IsVariableName(arg.Term.Name) {
			return nil, d.fail(snyggerrors.ReasonVariable, "var() expects a name matching --[a-z0-9][a-z0-9-]*")
		}
		return DefinedVar{Key: arg.Term.Name}, nil
	case funcBorder:
		if err := d.arity(name, args, 2); err != nil {
			return nil, err
		}
		width, err := d.dp(args[0], "border width", false)
		if err != nil {
			return nil, err
		}
		color, err := d.colorSlot(args[1])
		if err != nil {
			return nil, err
		}
		return Border{Width: width, Color: color}, nil
	case funcShadow:
		if err := d.arity(name, args, 4); err != nil {
			return nil, err
		}
		x, err := d.dp(args[0], "shadow x offset", true)
		if err != nil {
			return nil, err
		}
		y, err := d.dp(args[1], "shadow y offset", true)
		if err != nil {
			return nil, err
		}
		blur, err := d.dp(args[2], "shadow blur", false)
		if err != nil {
			return nil, err
		}
		color, err := d.colorSlot(args[3])
		if err != nil {
			return nil, err
		}
		return Shadow{OffsetX: x, OffsetY: y, Blur: blur, Color: color}, nil
	}
	return nil, d.fail(snyggerrors.ReasonUnknown, "unknown function %s()", name)
}

func (d decoder) arity(name string, args []*exprAST, want int) error {
	if len(args) != want {
		return d.fail(snyggerrors.ReasonArity, "%s() takes %d arguments, got %d", name, want, len(args))
	}
	return nil
}

func (d decoder) color(r, g, b, a *exprAST) (Value, error) {
	var channels [3]uint8
	for i, arg := range []*exprAST{r, g, b} {
		n, err := d.channel(arg, channelNames[i])
		if err != nil {
			return nil, err
		}
		channels[i] = n
	}

	alpha := 1.0
	if a != nil {
		num, unit, err := d.number(a, "alpha")
		if err != nil {
			return nil, err
		}
		if unit != "" {
			return nil, d.fail(snyggerrors.ReasonUnit, "alpha must be unitless, got %q", unit)
		}
		if num < 0 || num > 1 {
			return nil, d.fail(snyggerrors.ReasonRange, "alpha %s outside 0..1", formatNumber(num))
		}
		alpha = num
	}

	return SolidColor{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

var channelNames = [3]string{"red", "green", "blue"}

func (d decoder) channel(arg *exprAST, name string) (uint8, error) {
	if arg.Dimension == nil {
		return 0, d.fail(snyggerrors.ReasonSyntax, "%s channel must be an integer", name)
	}
	text := *arg.Dimension
	n, err := strconv.Atoi(text)
	if err != nil {
		if _, unit, splitErr := splitDimension(text); splitErr == nil && unit != "" {
			return 0, d.fail(snyggerrors.ReasonUnit, "%s channel must be unitless, got %q", name, unit)
		}
		return 0, d.fail(snyggerrors.ReasonSyntax, "%s channel %q must be an integer", name, text)
	}
	if n < 0 || n > 255 {
		return 0, d.fail(snyggerrors.ReasonRange, "%s channel %d outside 0..255", name, n)
	}
	return uint8(n), nil
}

// colorSlot decodes the color argument of a composite value.
func (d decoder) colorSlot(arg *exprAST) (Value, error) {
	v, err := d.expr(arg)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case SolidColor, DefinedVar:
		return v, nil
	}
	return nil, d.fail(snyggerrors.ReasonKind, "expected a color or var(), got %s", v.Kind())
}

func (d decoder) corner(arg *exprAST) (Corner, error) {
	num, unit, err := d.number(arg, "corner")
	if err != nil {
		return Corner{}, err
	}
	switch unit {
	case unitDp:
		if num < 0 {
			return Corner{}, d.fail(snyggerrors.ReasonRange, "corner %sdp must not be negative", formatNumber(num))
		}
		return Dp(num), nil
	case unitPercent:
		if num < 0 || num > 100 {
			return Corner{}, d.fail(snyggerrors.ReasonRange, "corner %s%% outside 0..100", formatNumber(num))
		}
		return Pct(num), nil
	}
	return Corner{}, d.fail(snyggerrors.ReasonUnit, "corner must be in dp or %%, got %q", unit)
}

func (d decoder) dp(arg *exprAST, what string, signed bool) (float64, error) {
	num, unit, err := d.number(arg, what)
	if err != nil {
		return 0, err
	}
	if unit != unitDp {
		return 0, d.fail(snyggerrors.ReasonUnit, "%s must be in dp, got %q", what, unit)
	}
	if !signed && num < 0 {
		return 0, d.fail(snyggerrors.ReasonRange, "%s %sdp must not be negative", what, formatNumber(num))
	}
	return num, nil
}

func (d decoder) number(arg *exprAST, what string) (float64, string, error) {
	if arg.Dimension == nil {
		return 0, "", d.fail(snyggerrors.ReasonSyntax, "%s must be a number", what)
	}
	num, unit, err := splitDimension(*arg.Dimension)
	if err != nil {
		return 0, "", snyggerrors.NewDecodeError(d.raw, snyggerrors.ReasonSyntax, err.Error(), err)
	}
	return num, unit, nil
}

func (d decoder) dimension(text string) (Value, error) {
	num, unit, err := splitDimension(text)
	if err != nil {
		return nil, snyggerrors.NewDecodeError(d.raw, snyggerrors.ReasonSyntax, err.Error(), err)
	}

	switch unit {
	case unitDp:
		if num < 0 {
			return nil, d.fail(snyggerrors.ReasonRange, "size %sdp must not be negative", formatNumber(num))
		}
		return DpSize{Dp: num}, nil
	case unitSp:
		if num < 0 {
			return nil, d.fail(snyggerrors.ReasonRange, "size %ssp must not be negative", formatNumber(num))
		}
		return SpSize{Sp: num}, nil
	case unitPercent:
		if num < 0 || num > 100 {
			return nil, d.fail(snyggerrors.ReasonRange, "percentage %s%% outside 0..100", formatNumber(num))
		}
		return PercentageSize{Percent: num}, nil
	case "":
		return d.weight(text, num)
	}
	return nil, d.fail(snyggerrors.ReasonUnit, "unknown unit %q", unit)
}

func (d decoder) weight(text string, num float64) (Value, error) {
	weight, err := strconv.Atoi(text)
	if err != nil {
		return nil, d.fail(snyggerrors.ReasonUnit, "number %s needs a unit", text)
	}
	if weight < 100 || weight > 900 || weight%100 != 0 {
		return nil, d.fail(snyggerrors.ReasonRange, "font weight %s must be a multiple of 100 in 100..900", formatNumber(num))
	}
	return FontWeight{Weight: weight}, nil
}

func (d decoder) hex(text string) (Value, error) {
	digits := strings.TrimPrefix(text, "#")
	if len(digits) != 6 && len(digits) != 8 {
		return nil, d.fail(snyggerrors.ReasonSyntax, "hex color %s must have 6 or 8 digits", text)
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, d.fail(snyggerrors.ReasonSyntax, "hex color %s contains non-hex digits", text)
	}

	color := SolidColor{A: 1}
	if len(digits) == 8 {
		color.A = float64(n&0xff) / 255
		n >>= 8
	}
	color.R = uint8(n >> 16)
	color.G = uint8(n >> 8)
	color.B = uint8(n)
	return color, nil
}

// splitDimension separates the numeric prefix of a Dimension token from its unit.
func splitDimension(text string) (float64, string, error) {
	end := strings.IndexFunc(text, func(r rune) bool {
		return r == '%' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	if end < 0 {
		end = len(text)
	}
	num, err := strconv.ParseFloat(text[:end], 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid number %q: %w", text[:end], err)
	}
	if math.IsInf(num, 0) || math.IsNaN(num) {
		return 0, "", fmt.Errorf("number %q is not finite", text[:end])
	}
	return num, text[end:], nil
}
