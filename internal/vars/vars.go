// Package vars provides an insertion-ordered set of named cty values.
package vars

import "github.com/zclconf/go-cty/cty"

// Ordered maps names to values and remembers the order in which names were
// first set. Updating an existing name keeps its position.
type Ordered struct {
	names []string
	vals  map[string]cty.Value
}

// New returns an empty set.
func New() *Ordered {
	return &Ordered{vals: make(map[string]cty.Value)}
}

// Set upserts name. New names are appended; existing names keep their
// position.
func (o *Ordered) Set(name string, v cty.Value) {
	if _, ok := o.vals[name]; !ok {
		o.names = append(o.names, name)
	}
	o.vals[name] = v
}

// Get returns the value for name.
func (o *Ordered) Get(name string) (cty.Value, bool) {
	v, ok := o.vals[name]
	return v, ok
}

// Has reports whether name is set.
func (o *Ordered) Has(name string) bool {
	_, ok := o.vals[name]
	return ok
}

// Names returns the names in order.
func (o *Ordered) Names() []string {
	return append([]string(nil), o.names...)
}

// Len is the number of names.
func (o *Ordered) Len() int { return len(o.names) }

// Each calls fn for every name in order.
func (o *Ordered) Each(fn func(name string, v cty.Value)) {
	for _, n := range o.names {
		fn(n, o.vals[n])
	}
}

// Map returns a copy of the values keyed by name, suitable for an
// hcl.EvalContext.
func (o *Ordered) Map() map[string]cty.Value {
	m := make(map[string]cty.Value, len(o.vals))
	for k, v := range o.vals {
		m[k] = v
	}
	return m
}

// Clone returns an independent copy.
func (o *Ordered) Clone() *Ordered {
	return &Ordered{names: o.Names(), vals: o.Map()}
}
