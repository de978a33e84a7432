// Package resolve follows var() references through a stylesheet's defines
// block until a concrete value is reached.
package resolve

import (
	"slices"

	"github.com/alexisbeaulieu97/snygg/internal/logger"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

// Reason explains why a resolution failed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissing
	ReasonCycle
	ReasonDepth
)

func (r Reason) String() string {
	switch r {
	case ReasonMissing:
		return "missing"
	case ReasonCycle:
		return "cycle"
	case ReasonDepth:
		return "depth"
	}
	return "none"
}

// Resolution is the outcome of resolving one value. Chain lists the variable
// keys that were followed, in order.
type Resolution struct {
	Value  value.Value
	Chain  []string
	Reason Reason
}

// Unresolved is the sentinel returned when a reference cannot be followed.
var Unresolved = Resolution{Reason: ReasonMissing}

// OK reports whether a concrete value was reached.
func (r Resolution) OK() bool { return r.Reason == ReasonNone && r.Value != nil }

// IsUnresolved is the negation of OK.
func (r Resolution) IsUnresolved() bool { return !r.OK() }

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth limits how many variable hops are followed. Zero means no
// limit.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithLogger reports unresolved references at debug level.
func WithLogger(log *logger.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// Resolver resolves values against a fixed set of variables. It does not
// mutate the variables and is safe for concurrent use.
type Resolver struct {
	defines  map[string]value.Value
	maxDepth int
	log      *logger.Logger
}

// New builds a Resolver over defines. The map is read, never modified.
func New(defines map[string]value.Value, opts ...Option) *Resolver {
	r := &Resolver{defines: defines}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve follows the full reference chain of v against defines.
func Resolve(v value.Value, defines map[string]value.Value) Resolution {
	return New(defines).Resolve(v)
}

// Resolve returns v itself for concrete values, the target value for
// variable references, and v with its color slot resolved for composites.
func (r *Resolver) Resolve(v value.Value) Resolution {
	if v == nil {
		return Unresolved
	}
	w := &walk{resolver: r, visited: make(map[string]bool)}
	res := value.Visit[Resolution](v, w)
	if res.IsUnresolved() {
		r.log.Debug("unresolved value", map[string]interface{}{
			"value":  value.Encode(v),
			"chain":  res.Chain,
			"reason": res.Reason.String(),
		})
	}
	return res
}

// walk carries the per-call visited set.
type walk struct {
	resolver *Resolver
	visited  map[string]bool
	chain    []string
}

func (w *walk) concrete(v value.Value) Resolution {
	return Resolution{Value: v, Chain: slices.Clone(w.chain)}
}

func (w *walk) fail(reason Reason) Resolution {
	return Resolution{Chain: slices.Clone(w.chain), Reason: reason}
}

func (w *walk) SolidColor(v value.SolidColor) Resolution         { return w.concrete(v) }
func (w *walk) Shape(v value.Shape) Resolution                   { return w.concrete(v) }
func (w *walk) DpSize(v value.DpSize) Resolution                 { return w.concrete(v) }
func (w *walk) SpSize(v value.SpSize) Resolution                 { return w.concrete(v) }
func (w *walk) PercentageSize(v value.PercentageSize) Resolution { return w.concrete(v) }
func (w *walk) FontFamily(v value.FontFamily) Resolution         { return w.concrete(v) }
func (w *walk) FontWeight(v value.FontWeight) Resolution         { return w.concrete(v) }
func (w *walk) FontStyle(v value.FontStyle) Resolution           { return w.concrete(v) }
func (w *walk) Inherit(v value.Inherit) Resolution               { return w.concrete(v) }

func (w *walk) DefinedVar(v value.DefinedVar) Resolution {
	if w.visited[v.Key] {
		w.chain = append(w.chain, v.Key)
		return w.fail(ReasonCycle)
	}
	if w.resolver.maxDepth > 0 && len(w.chain) >= w.resolver.maxDepth {
		return w.fail(ReasonDepth)
	}

	w.visited[v.Key] = true
	w.chain = append(w.chain, v.Key)

	target, ok := w.resolver.defines[v.Key]
	if !ok || target == nil {
		return w.fail(ReasonMissing)
	}
	return value.Visit[Resolution](target, w)
}

func (w *walk) Border(v value.Border) Resolution {
	color := w.color(v.Color)
	if color.IsUnresolved() {
		return color
	}
	v.Color = color.Value
	return Resolution{Value: v, Chain: color.Chain}
}

func (w *walk) Shadow(v value.Shadow) Resolution {
	color := w.color(v.Color)
	if color.IsUnresolved() {
		return color
	}
	v.Color = color.Value
	return Resolution{Value: v, Chain: color.Chain}
}

// color resolves a composite's color slot, which must end at a SolidColor.
func (w *walk) color(v value.Value) Resolution {
	if v == nil {
		return w.fail(ReasonMissing)
	}
	res := value.Visit[Resolution](v, w)
	if res.IsUnresolved() {
		return res
	}
	if _, ok := res.Value.(value.SolidColor); !ok {
		return Resolution{Chain: res.Chain, Reason: ReasonMissing}
	}
	return res
}
