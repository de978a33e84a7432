// Package rule models the selector half of a stylesheet entry: the element it
// targets, the key-code, group and input-mode filters, and the interaction
// state selectors.
package rule

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

// InputMode is the shift state a rule can be filtered on.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeShiftLock
	ModeCapsLock
)

var modeNames = [...]string{
	ModeNormal:    "normal",
	ModeShiftLock: "shift_lock",
	ModeCapsLock:  "caps_lock",
}

func (m InputMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return strconv.Itoa(int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is a declared mode.
func (m InputMode) Valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

// ParseInputMode accepts a mode name or its integer value.
func ParseInputMode(text string) (InputMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(text, name) {
			return InputMode(i), nil
		}
	}
	if n, err := strconv.Atoi(text); err == nil && InputMode(n).Valid() {
		return InputMode(n), nil
	}
	return 0, fmt.Errorf("unknown input mode %q", text)
}

// Key code ranges accepted in code filters.
const (
	MinCharacterCode = 1
	MaxCharacterCode = 65535
	MinInternalCode  = -9999
	MaxInternalCode  = -1
)

// ValidCode reports whether code lies in the character or internal range.
func ValidCode(code int) bool {
	return (code >= MinCharacterCode && code <= MaxCharacterCode) ||
		(code >= MinInternalCode && code <= MaxInternalCode)
}

// DefinesName is the reserved annotation holding stylesheet variables.
const DefinesName = "defines"

const (
	annotationMarker = "@"

	attrCode  = "code"
	attrGroup = "group"
	attrMode  = "mode"

	selectorPressed  = "pressed"
	selectorFocus    = "focus"
	selectorDisabled = "disabled"
)

var elementPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// Rule identifies one entry of a stylesheet. Rules are immutable values;
// sets are stored sorted and free of duplicates so that structurally equal
// rules have identical fields.
type Rule struct {
	element    string
	annotation bool
	codes      []int
	groups     []int
	modes      []InputMode
	pressed    bool
	focus      bool
	disabled   bool
}

// Option configures a rule under construction.
type Option func(*Rule)

// Codes restricts the rule to the given key codes.
func Codes(codes ...int) Option {
	return func(r *Rule) { r.codes = append(r.codes, codes...) }
}

// Groups restricts the rule to the given key groups.
func Groups(groups ...int) Option {
	return func(r *Rule) { r.groups = append(r.groups, groups...) }
}

// Modes restricts the rule to the given input modes.
func Modes(modes ...InputMode) Option {
	return func(r *Rule) { r.modes = append(r.modes, modes...) }
}

// Pressed sets the pressed selector.
func Pressed() Option { return func(r *Rule) { r.pressed = true } }

// Focus sets the focus selector.
func Focus() Option { return func(r *Rule) { r.focus = true } }

// Disabled sets the disabled selector.
func Disabled() Option { return func(r *Rule) { r.disabled = true } }

// Selectors sets all three state selectors at once.
func Selectors(pressed, focus, disabled bool) Option {
	return func(r *Rule) {
		r.pressed = pressed
		r.focus = focus
		r.disabled = disabled
	}
}

// New builds an element rule.
func New(element string, opts ...Option) (Rule, error) {
	r := Rule{element: element}
	for _, opt := range opts {
		opt(&r)
	}
	if err := r.normalize(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// MustNew is New for statically known rules; it panics on error.
func MustNew(element string, opts ...Option) Rule {
	r, err := New(element, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// NewAnnotation builds an annotation rule. Annotations carry no filters or
// selectors; passing any is an error.
func NewAnnotation(name string, opts ...Option) (Rule, error) {
	r := Rule{element: name, annotation: true}
	for _, opt := range opts {
		opt(&r)
	}
	if len(r.codes) > 0 || len(r.groups) > 0 || len(r.modes) > 0 {
		return Rule{}, snyggerrors.NewValidationError("rule", fmt.Sprintf("annotation @%s cannot have attribute filters", name), nil)
	}
	if r.pressed || r.focus || r.disabled {
		return Rule{}, snyggerrors.NewValidationError("rule", fmt.Sprintf("annotation @%s cannot have state selectors", name), nil)
	}
	if err := r.normalize(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Defines returns the reserved @defines annotation rule.
func Defines() Rule {
	return Rule{element: DefinesName, annotation: true}
}

func (r *Rule) normalize() error {
	if !elementPattern.MatchString(r.element) {
		return snyggerrors.NewValidationError("rule.element", fmt.Sprintf("invalid element name %q", r.element), nil)
	}
	for _, code := range r.codes {
		if !ValidCode(code) {
			return snyggerrors.NewValidationError("rule.codes",
				fmt.Sprintf("code %d outside %d..%d and %d..%d", code, MinCharacterCode, MaxCharacterCode, MinInternalCode, MaxInternalCode), nil)
		}
	}
	for _, group := range r.groups {
		if group < 0 {
			return snyggerrors.NewValidationError("rule.groups", fmt.Sprintf("group %d must not be negative", group), nil)
		}
	}
	for _, mode := range r.modes {
		if !mode.Valid() {
			return snyggerrors.NewValidationError("rule.modes", fmt.Sprintf("unknown input mode %d", int(mode)), nil)
		}
	}

	r.codes = sortedSet(r.codes)
	r.groups = sortedSet(r.groups)
	r.modes = sortedSet(r.modes)
	return nil
}

func sortedSet[T ~int](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	out := slices.Clone(items)
	slices.Sort(out)
	return slices.Compact(out)
}

// Element returns the target element or annotation name.
func (r Rule) Element() string { return r.element }

// IsAnnotation reports whether the rule is an annotation such as @defines.
func (r Rule) IsAnnotation() bool { return r.annotation }

// IsDefines reports whether r is the @defines annotation.
func (r Rule) IsDefines() bool { return r.annotation && r.element == DefinesName }

// Codes returns a copy of the code filter.
func (r Rule) Codes() []int { return slices.Clone(r.codes) }

// Groups returns a copy of the group filter.
func (r Rule) Groups() []int { return slices.Clone(r.groups) }

// Modes returns a copy of the mode filter.
func (r Rule) Modes() []InputMode { return slices.Clone(r.modes) }

func (r Rule) Pressed() bool  { return r.pressed }
func (r Rule) Focus() bool    { return r.focus }
func (r Rule) Disabled() bool { return r.disabled }

// HasCode reports whether code is in the code filter.
func (r Rule) HasCode(code int) bool {
	_, found := slices.BinarySearch(r.codes, code)
	return found
}

// HasGroup reports whether group is in the group filter.
func (r Rule) HasGroup(group int) bool {
	_, found := slices.BinarySearch(r.groups, group)
	return found
}

// HasMode reports whether mode is in the mode filter.
func (r Rule) HasMode(mode InputMode) bool {
	_, found := slices.BinarySearch(r.modes, mode)
	return found
}

// ElementKey names the catalog entry the rule belongs to: the element name,
// or the annotation name prefixed with @.
func (r Rule) ElementKey() string {
	if r.annotation {
		return annotationMarker + r.element
	}
	return r.element
}

// Equal reports full structural equality.
func (r Rule) Equal(other Rule) bool {
	return r.element == other.element &&
		r.annotation == other.annotation &&
		slices.Equal(r.codes, other.codes) &&
		slices.Equal(r.groups, other.groups) &&
		slices.Equal(r.modes, other.modes) &&
		r.pressed == other.pressed &&
		r.focus == other.focus &&
		r.disabled == other.disabled
}

// Key returns the canonical text of the rule, suitable as a map key.
func (r Rule) Key() string { return r.String() }

// IsZero reports whether r is the zero Rule.
func (r Rule) IsZero() bool { return r.element == "" }

func (r Rule) String() string {
	var b strings.Builder
	if r.annotation {
		b.WriteString(annotationMarker)
	}
	b.WriteString(r.element)
	writeAttr(&b, attrCode, r.codes)
	writeAttr(&b, attrGroup, r.groups)
	if len(r.modes) > 0 {
		names := make([]string, len(r.modes))
		for i, m := range r.modes {
			names[i] = m.String()
		}
		b.WriteString("[" + attrMode + "=" + strings.Join(names, "|") + "]")
	}
	if r.pressed {
		b.WriteString(":" + selectorPressed)
	}
	if r.focus {
		b.WriteString(":" + selectorFocus)
	}
	if r.disabled {
		b.WriteString(":" + selectorDisabled)
	}
	return b.String()
}

func writeAttr(b *strings.Builder, name string, values []int) {
	if len(values) == 0 {
		return
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	b.WriteString("[" + name + "=" + strings.Join(parts, "|") + "]")
}

// Specificity ranks how narrowly a rule targets its element.
type Specificity struct {
	Selectors int
	Codes     bool
	Groups    bool
	Modes     bool
}

// Specificity returns the ranking tuple of r.
func (r Rule) Specificity() Specificity {
	s := Specificity{
		Codes:  len(r.codes) > 0,
		Groups: len(r.groups) > 0,
		Modes:  len(r.modes) > 0,
	}
	for _, set := range []bool{r.pressed, r.focus, r.disabled} {
		if set {
			s.Selectors++
		}
	}
	return s
}

// Compare orders specificities lexicographically: selector count first, then
// the presence of code, group and mode filters. It returns a positive number
// when s is more specific than other.
func (s Specificity) Compare(other Specificity) int {
	if s.Selectors != other.Selectors {
		return s.Selectors - other.Selectors
	}
	for _, pair := range [][2]bool{{s.Codes, other.Codes}, {s.Groups, other.Groups}, {s.Modes, other.Modes}} {
		if pair[0] != pair[1] {
			if pair[0] {
				return 1
			}
			return -1
		}
	}
	return 0
}
