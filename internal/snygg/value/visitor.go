package value

import "fmt"

// Visitor handles every value variant. Adding a variant adds a method here,
// which breaks every implementation until it handles the new case.
type Visitor[T any] interface {
	SolidColor(SolidColor) T
	Shape(Shape) T
	DpSize(DpSize) T
	SpSize(SpSize) T
	PercentageSize(PercentageSize) T
	DefinedVar(DefinedVar) T
	FontFamily(FontFamily) T
	FontWeight(FontWeight) T
	FontStyle(FontStyle) T
	Border(Border) T
	Shadow(Shadow) T
	Inherit(Inherit) T
}

// Visit dispatches v to the matching visitor method.
func Visit[T any](v Value, visitor Visitor[T]) T {
	switch v := v.(type) {
	case SolidColor:
		return visitor.SolidColor(v)
	case Shape:
		return visitor.Shape(v)
	case DpSize:
		return visitor.DpSize(v)
	case SpSize:
		return visitor.SpSize(v)
	case PercentageSize:
		return visitor.PercentageSize(v)
	case DefinedVar:
		return visitor.DefinedVar(v)
	case FontFamily:
		return visitor.FontFamily(v)
	case FontWeight:
		return visitor.FontWeight(v)
	case FontStyle:
		return visitor.FontStyle(v)
	case Border:
		return visitor.Border(v)
	case Shadow:
		return visitor.Shadow(v)
	case Inherit:
		return visitor.Inherit(v)
	}
	panic(fmt.Sprintf("value: unhandled variant %T", v))
}

// References returns the variable keys a value refers to, including those
// nested in composite colors.
func References(v Value) []string {
	switch v := v.(type) {
	case DefinedVar:
		return []string{v.Key}
	case Border:
		return References(v.Color)
	case Shadow:
		return References(v.Color)
	}
	return nil
}
