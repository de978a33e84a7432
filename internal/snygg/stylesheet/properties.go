package stylesheet

import (
	"slices"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

// Property is one name/value pair of a PropertySet.
type Property struct {
	Name  string
	Value value.Value
}

// PropertySet maps property names to values and remembers insertion order
// for serialization. A nil *PropertySet is a valid empty set for reads.
type PropertySet struct {
	names  []string
	values map[string]value.Value
}

// NewPropertySet returns a set holding props in the given order. Later
// duplicates replace earlier values in place.
func NewPropertySet(props ...Property) *PropertySet {
	p := &PropertySet{values: make(map[string]value.Value, len(props))}
	for _, prop := range props {
		p.Set(prop.Name, prop.Value)
	}
	return p
}

// Set assigns name. Replacing keeps the original position.
func (p *PropertySet) Set(name string, v value.Value) {
	if p.values == nil {
		p.values = make(map[string]value.Value)
	}
	if _, exists := p.values[name]; !exists {
		p.names = append(p.names, name)
	}
	p.values[name] = v
}

// Unset removes name and reports whether it was present.
func (p *PropertySet) Unset(name string) bool {
	if p == nil {
		return false
	}
	if _, exists := p.values[name]; !exists {
		return false
	}
	delete(p.values, name)
	if i := slices.Index(p.names, name); i >= 0 {
		p.names = slices.Delete(p.names, i, i+1)
	}
	return true
}

// Get returns the value stored under name.
func (p *PropertySet) Get(name string) (value.Value, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// Has reports whether name is set.
func (p *PropertySet) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Len returns the number of properties.
func (p *PropertySet) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Names returns property names in insertion order.
func (p *PropertySet) Names() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.names)
}

// Properties returns the pairs in insertion order.
func (p *PropertySet) Properties() []Property {
	if p == nil {
		return nil
	}
	out := make([]Property, len(p.names))
	for i, name := range p.names {
		out[i] = Property{Name: name, Value: p.values[name]}
	}
	return out
}

// Map returns an unordered copy of the set.
func (p *PropertySet) Map() map[string]value.Value {
	out := make(map[string]value.Value, p.Len())
	if p == nil {
		return out
	}
	for name, v := range p.values {
		out[name] = v
	}
	return out
}

// Clone returns an independent copy. Cloning nil yields an empty set.
func (p *PropertySet) Clone() *PropertySet {
	if p == nil {
		return NewPropertySet()
	}
	return &PropertySet{names: slices.Clone(p.names), values: p.Map()}
}

// Equal compares contents; insertion order is not significant.
func (p *PropertySet) Equal(other *PropertySet) bool {
	if p.Len() != other.Len() {
		return false
	}
	for _, name := range p.Names() {
		ov, ok := other.Get(name)
		if !ok {
			return false
		}
		v, _ := p.Get(name)
		if !value.Equal(v, ov) {
			return false
		}
	}
	return true
}
