package value

import (
	"strconv"
	"strings"
)

// Encode renders v in its canonical text form. A nil value encodes as the
// empty string.
func Encode(v Value) string {
	if v == nil {
		return ""
	}
	return Visit[string](v, encoder{})
}

type encoder struct{}

func (encoder) SolidColor(c SolidColor) string {
	var b strings.Builder
	b.WriteString("rgba(")
	b.WriteString(strconv.Itoa(int(c.R)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(c.G)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(c.B)))
	b.WriteByte(',')
	b.WriteString(formatNumber(c.A))
	b.WriteByte(')')
	return b.String()
}

func (encoder) Shape(s Shape) string {
	switch s.Form {
	case ShapeRoundedCorner, ShapeCutCorner:
		parts := make([]string, len(s.Corners))
		for i, c := range s.Corners {
			parts[i] = formatCorner(c)
		}
		return s.Form.String() + "(" + strings.Join(parts, ",") + ")"
	default:
		return s.Form.String()
	}
}

func (encoder) DpSize(s DpSize) string { return formatNumber(s.Dp) + unitDp }

func (encoder) SpSize(s SpSize) string { return formatNumber(s.Sp) + unitSp }

func (encoder) PercentageSize(s PercentageSize) string {
	return formatNumber(s.Percent) + unitPercent
}

func (encoder) DefinedVar(v DefinedVar) string { return "var(" + v.Key + ")" }

func (encoder) FontFamily(f FontFamily) string {
	if f.Generic {
		return f.Name
	}
	return strconv.Quote(f.Name)
}

func (encoder) FontWeight(w FontWeight) string { return strconv.Itoa(w.Weight) }

func (encoder) FontStyle(s FontStyle) string {
	if s.Italic {
		return keywordItalic
	}
	return keywordNormal
}

func (encoder) Border(b Border) string {
	return "border(" + formatNumber(b.Width) + unitDp + "," + Encode(b.Color) + ")"
}

func (encoder) Shadow(s Shadow) string {
	return "shadow(" +
		formatNumber(s.OffsetX) + unitDp + "," +
		formatNumber(s.OffsetY) + unitDp + "," +
		formatNumber(s.Blur) + unitDp + "," +
		Encode(s.Color) + ")"
}

func (encoder) Inherit(Inherit) string { return keywordInherit }

func formatCorner(c Corner) string {
	if c.Percent {
		return formatNumber(c.Size) + unitPercent
	}
	return formatNumber(c.Size) + unitDp
}

// formatNumber uses the shortest representation that parses back to the same
// float64.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
