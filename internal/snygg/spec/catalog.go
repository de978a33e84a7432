// Package spec holds the declared styling vocabulary: which elements exist,
// which properties each accepts, the value kinds allowed for every property
// and the level at which the property becomes visible.
package spec

import (
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

// PropertySpec declares one property of an element.
type PropertySpec struct {
	Name  string       `validate:"required,snygg_name"`
	Level Level        `validate:"min=0,max=2"`
	Kinds []value.Kind `validate:"required,min=1,dive,min=0,max=11"`
}

// Accepts reports whether a value of kind k may be assigned to the property.
// Variable references and inherit are accepted everywhere.
func (p PropertySpec) Accepts(k value.Kind) bool {
	if k == value.KindDefinedVar || k == value.KindInherit {
		return true
	}
	return slices.Contains(p.Kinds, k)
}

// AcceptedKinds returns the declared kinds plus the universally accepted ones.
func (p PropertySpec) AcceptedKinds() []value.Kind {
	kinds := slices.Clone(p.Kinds)
	for _, k := range []value.Kind{value.KindDefinedVar, value.KindInherit} {
		if !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// ElementSpec declares an element or annotation. Annotations are keyed with a
// leading @ in the catalog. Variables marks an element whose properties are
// free-form custom variables.
type ElementSpec struct {
	Name       string         `validate:"required,snygg_element"`
	Variables  bool           `validate:"-"`
	Properties []PropertySpec `validate:"dive"`
}

// Property looks up a declared property. Elements with Variables accept any
// syntactically valid variable name at basic level with any kind.
func (e ElementSpec) Property(name string) (PropertySpec, bool) {
	for _, p := range e.Properties {
		if p.Name == name {
			return p, true
		}
	}
	if e.Variables && value.IsVariableName(name) {
		return PropertySpec{Name: name, Level: LevelBasic, Kinds: value.Kinds()}, true
	}
	return PropertySpec{}, false
}

// Catalog is an immutable element vocabulary, safe for concurrent reads.
type Catalog struct {
	order    []string
	elements map[string]ElementSpec
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	namePattern    = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	elementPattern = regexp.MustCompile(`^@?[a-z][a-z0-9-]*$`)

	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("snygg_name", func(fl validator.FieldLevel) bool {
			return namePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("snygg_element", func(fl validator.FieldLevel) bool {
			return elementPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// NewCatalog validates the given elements and builds a catalog from them.
func NewCatalog(elements ...ElementSpec) (*Catalog, error) {
	v := validatorInstance()
	c := &Catalog{elements: make(map[string]ElementSpec, len(elements))}

	for _, element := range elements {
		if err := v.Struct(element); err != nil {
			return nil, convertValidationError(element.Name, err)
		}
		if _, exists := c.elements[element.Name]; exists {
			return nil, snyggerrors.NewValidationError("catalog", fmt.Sprintf("element %q declared twice", element.Name), nil)
		}
		seen := make(map[string]bool, len(element.Properties))
		for _, p := range element.Properties {
			if seen[p.Name] {
				return nil, snyggerrors.NewValidationError("catalog", fmt.Sprintf("property %q declared twice on %q", p.Name, element.Name), nil)
			}
			seen[p.Name] = true
		}

		element.Properties = slices.Clone(element.Properties)
		c.elements[element.Name] = element
		c.order = append(c.order, element.Name)
	}

	return c, nil
}

func convertValidationError(element string, err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fmt.Sprintf("catalog[%s].%s", element, ve.StructField())
		return snyggerrors.NewValidationError(field, fmt.Sprintf("%s failed validation for tag '%s'", ve.Namespace(), ve.Tag()), err)
	}
	return snyggerrors.NewValidationError("catalog", err.Error(), err)
}

// Default returns the built-in vocabulary. It is constructed once.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog(defaultElements()...)
		if err != nil {
			panic(fmt.Sprintf("spec: invalid built-in catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Elements returns element keys in declaration order.
func (c *Catalog) Elements() []string {
	return slices.Clone(c.order)
}

// Element looks up an element by key (annotations use a leading @).
func (c *Catalog) Element(key string) (ElementSpec, bool) {
	e, ok := c.elements[key]
	return e, ok
}

// ElementFor looks up the element a rule targets.
func (c *Catalog) ElementFor(r rule.Rule) (ElementSpec, bool) {
	return c.Element(r.ElementKey())
}

// PropertyLevel returns the minimum level at which property is shown for
// element. The second result is false when the pair is not declared.
func (c *Catalog) PropertyLevel(element, property string) (Level, bool) {
	e, ok := c.elements[element]
	if !ok {
		return 0, false
	}
	p, ok := e.Property(property)
	if !ok {
		return 0, false
	}
	return p.Level, true
}

// Visible reports whether property of element should be shown at level.
// Undeclared pairs are never visible.
func (c *Catalog) Visible(element, property string, level Level) bool {
	threshold, ok := c.PropertyLevel(element, property)
	return ok && threshold <= level
}

// DecodeProperty decodes raw as the value of property on the rule r,
// rejecting unknown elements, undeclared properties and unaccepted kinds.
func (c *Catalog) DecodeProperty(r rule.Rule, property, raw string) (value.Value, error) {
	p, err := c.lookup(r, property)
	if err != nil {
		return nil, err
	}
	return value.DecodeAs(raw, p.AcceptedKinds()...)
}

// CheckProperty validates an already decoded value against the vocabulary.
func (c *Catalog) CheckProperty(r rule.Rule, property string, v value.Value) error {
	p, err := c.lookup(r, property)
	if err != nil {
		return err
	}
	if v == nil {
		return snyggerrors.NewValidationError(property, "value must not be nil", nil)
	}
	if !p.Accepts(v.Kind()) {
		return snyggerrors.NewValidationError(property, fmt.Sprintf("%s does not accept %s", property, v.Kind()), nil)
	}
	return nil
}

func (c *Catalog) lookup(r rule.Rule, property string) (PropertySpec, error) {
	e, ok := c.ElementFor(r)
	if !ok {
		return PropertySpec{}, snyggerrors.NewValidationError("rule.element", fmt.Sprintf("unknown element %q", r.ElementKey()), nil)
	}
	if value.IsCustomProperty(property) && !e.Variables {
		return PropertySpec{}, snyggerrors.NewValidationError(property, fmt.Sprintf("variable %s may only be declared in @%s", property, rule.DefinesName), nil)
	}
	p, ok := e.Property(property)
	if !ok {
		return PropertySpec{}, snyggerrors.NewValidationError(property, fmt.Sprintf("unknown property %q for %s", property, r.ElementKey()), nil)
	}
	return p, nil
}
