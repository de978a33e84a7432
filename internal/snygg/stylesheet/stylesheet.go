// Package stylesheet holds the Snygg document: an ordered mapping from rules
// to property sets, with the mutations an editor performs on it and its
// persisted JSON and YAML forms.
package stylesheet

import (
	"fmt"
	"slices"
	"sync"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/spec"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

// ChangeKind names the mutation reported to change listeners.
type ChangeKind string

const (
	ChangeInsert        ChangeKind = "insert"
	ChangeReplace       ChangeKind = "replace"
	ChangeRemove        ChangeKind = "remove"
	ChangeRename        ChangeKind = "rename"
	ChangeSetProperty   ChangeKind = "set-property"
	ChangeUnsetProperty ChangeKind = "unset-property"
)

// Change describes one successful mutation. Previous is set for renames;
// Property for property-level changes.
type Change struct {
	Kind     ChangeKind
	Rule     rule.Rule
	Previous rule.Rule
	Property string
	Version  uint64
}

// Entry is a rule with a copy of its properties and its declaration index.
type Entry struct {
	Rule       rule.Rule
	Properties *PropertySet
	Index      int
}

type entry struct {
	rule  rule.Rule
	props *PropertySet
}

// Stylesheet exclusively owns its property sets: values are copied on the
// way in and out. All methods are safe for concurrent use.
type Stylesheet struct {
	mu       sync.RWMutex
	catalog  *spec.Catalog
	order    []string
	entries  map[string]*entry
	version  uint64
	onChange func(Change)
}

// Option customizes a document and the decoders that build one.
type Option func(*options)

type options struct {
	catalog *spec.Catalog
}

// WithCatalog validates properties against c instead of spec.Default().
func WithCatalog(c *spec.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = spec.Default()
	}
	return o
}

// New returns an empty stylesheet.
func New(opts ...Option) *Stylesheet {
	o := newOptions(opts)
	return &Stylesheet{catalog: o.catalog, entries: make(map[string]*entry)}
}

// Catalog returns the vocabulary the document is checked against.
func (s *Stylesheet) Catalog() *spec.Catalog {
	return s.catalog
}

// OnChange registers fn to be called after every successful mutation. The
// callback runs outside the document lock.
func (s *Stylesheet) OnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *Stylesheet) notify(c Change, fn func(Change)) {
	if fn != nil {
		fn(c)
	}
}

// commit bumps the version and returns the change to publish. Callers hold
// the write lock.
func (s *Stylesheet) commit(c Change) (Change, func(Change)) {
	s.version++
	c.Version = s.version
	return c, s.onChange
}

// InsertOrReplace stores a copy of props under r. A new rule is appended;
// an existing one keeps its position.
func (s *Stylesheet) InsertOrReplace(r rule.Rule, props *PropertySet) {
	s.mu.Lock()
	key := r.Key()
	kind := ChangeReplace
	if e, ok := s.entries[key]; ok {
		e.props = props.Clone()
	} else {
		kind = ChangeInsert
		s.entries[key] = &entry{rule: r, props: props.Clone()}
		s.order = append(s.order, key)
	}
	c, fn := s.commit(Change{Kind: kind, Rule: r})
	s.mu.Unlock()

	s.notify(c, fn)
}

// Remove deletes r and returns the properties it held.
func (s *Stylesheet) Remove(r rule.Rule) (*PropertySet, bool) {
	s.mu.Lock()
	key := r.Key()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	delete(s.entries, key)
	if i := slices.Index(s.order, key); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	c, fn := s.commit(Change{Kind: ChangeRemove, Rule: r})
	s.mu.Unlock()

	s.notify(c, fn)
	return e.props, true
}

// Rename moves the properties of from to to, keeping the declaration
// position. Renaming a rule to itself succeeds without change. The document
// is untouched on error.
func (s *Stylesheet) Rename(from, to rule.Rule) error {
	s.mu.Lock()
	fromKey, toKey := from.Key(), to.Key()
	e, ok := s.entries[fromKey]
	if !ok {
		s.mu.Unlock()
		return snyggerrors.NewNotFoundError(fromKey)
	}
	if fromKey == toKey {
		s.mu.Unlock()
		return nil
	}
	if _, exists := s.entries[toKey]; exists {
		s.mu.Unlock()
		return snyggerrors.NewConflictError(toKey)
	}

	delete(s.entries, fromKey)
	s.entries[toKey] = &entry{rule: to, props: e.props}
	s.order[slices.Index(s.order, fromKey)] = toKey
	c, fn := s.commit(Change{Kind: ChangeRename, Rule: to, Previous: from})
	s.mu.Unlock()

	s.notify(c, fn)
	return nil
}

// SetProperty assigns one property of an existing rule. The property must
// be declared for the rule's element and accept the kind of v.
func (s *Stylesheet) SetProperty(r rule.Rule, name string, v value.Value) error {
	if v == nil {
		return snyggerrors.NewValidationError(name, "value must not be nil", nil)
	}
	if err := s.catalog.CheckProperty(r, name, v); err != nil {
		return err
	}

	s.mu.Lock()
	e, ok := s.entries[r.Key()]
	if !ok {
		s.mu.Unlock()
		return snyggerrors.NewNotFoundError(r.Key())
	}
	e.props.Set(name, v)
	c, fn := s.commit(Change{Kind: ChangeSetProperty, Rule: r, Property: name})
	s.mu.Unlock()

	s.notify(c, fn)
	return nil
}

// UnsetProperty removes one property and reports whether it was present.
func (s *Stylesheet) UnsetProperty(r rule.Rule, name string) bool {
	s.mu.Lock()
	e, ok := s.entries[r.Key()]
	if !ok || !e.props.Unset(name) {
		s.mu.Unlock()
		return false
	}
	c, fn := s.commit(Change{Kind: ChangeUnsetProperty, Rule: r, Property: name})
	s.mu.Unlock()

	s.notify(c, fn)
	return true
}

// Get returns a copy of the properties stored under r.
func (s *Stylesheet) Get(r rule.Rule) (*PropertySet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[r.Key()]
	if !ok {
		return nil, false
	}
	return e.props.Clone(), true
}

// Contains reports whether r is present.
func (s *Stylesheet) Contains(r rule.Rule) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[r.Key()]
	return ok
}

// Rules returns the rules in declaration order.
func (s *Stylesheet) Rules() []rule.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]rule.Rule, len(s.order))
	for i, key := range s.order {
		out[i] = s.entries[key].rule
	}
	return out
}

// Entries returns a consistent snapshot of every rule and its properties.
func (s *Stylesheet) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.order))
	for i, key := range s.order {
		e := s.entries[key]
		out[i] = Entry{Rule: e.rule, Properties: e.props.Clone(), Index: i}
	}
	return out
}

// Len returns the number of rules.
func (s *Stylesheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Version counts successful mutations since the document was created.
func (s *Stylesheet) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// DefinedVariables returns the properties of the @defines annotation. When
// several defines rules exist the first declared one is used.
func (s *Stylesheet) DefinedVariables() map[string]value.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, key := range s.order {
		if e := s.entries[key]; e.rule.IsDefines() {
			return e.props.Map()
		}
	}
	return map[string]value.Value{}
}

// Clone returns an independent copy without the change listener. The
// version counter is carried over.
func (s *Stylesheet) Clone() *Stylesheet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clone := &Stylesheet{
		catalog: s.catalog,
		order:   slices.Clone(s.order),
		entries: make(map[string]*entry, len(s.entries)),
		version: s.version,
	}
	for key, e := range s.entries {
		clone.entries[key] = &entry{rule: e.rule, props: e.props.Clone()}
	}
	return clone
}

// Validate checks every rule and property against the catalog. The error
// names the first offending rule and property.
func (s *Stylesheet) Validate() error {
	for _, e := range s.Entries() {
		if _, ok := s.catalog.ElementFor(e.Rule); !ok {
			return snyggerrors.NewValidationError(e.Rule.Key(), fmt.Sprintf("unknown element %q", e.Rule.ElementKey()), nil)
		}
		for _, p := range e.Properties.Properties() {
			if err := s.catalog.CheckProperty(e.Rule, p.Name, p.Value); err != nil {
				return snyggerrors.NewValidationError(e.Rule.Key(), fmt.Sprintf("property %s: %v", p.Name, err), err)
			}
		}
	}
	return nil
}

// Equal reports whether both documents hold the same rules in the same order
// with equal property sets.
func (s *Stylesheet) Equal(other *Stylesheet) bool {
	a, b := s.Entries(), other.Entries()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Rule.Equal(b[i].Rule) || !a[i].Properties.Equal(b[i].Properties) {
			return false
		}
	}
	return true
}

// add is used by decoders; it neither bumps the version nor notifies.
func (s *Stylesheet) add(r rule.Rule, props *PropertySet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.Key()
	if _, exists := s.entries[key]; exists {
		return false
	}
	s.entries[key] = &entry{rule: r, props: props}
	s.order = append(s.order, key)
	return true
}
