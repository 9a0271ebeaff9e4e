// Package binding discovers a model's bindable attributes, loads series data
// into them and converts attribute values to and from script values.
package binding

import (
	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/model"
)

// Registry is the ordered attribute table of one model instance. It is built
// once per instance and never reshaped afterwards.
type Registry struct {
	attrs  []model.Attribute
	byName map[string]int
}

// Discover reads the declared attributes of m.
func Discover(m model.Model) (*Registry, error) {
	if m == nil {
		return nil, fault.Errorf(fault.Config, "discover", "model is nil")
	}

	declared := m.Attributes()
	r := &Registry{
		attrs:  make([]model.Attribute, 0, len(declared)),
		byName: make(map[string]int, len(declared)),
	}
	for _, a := range declared {
		if a.Name == "" {
			return nil, fault.Errorf(fault.Config, "discover", "attribute with empty name")
		}
		if _, dup := r.byName[a.Name]; dup {
			return nil, fault.Errorf(fault.Config, "discover", "attribute %q declared twice", a.Name)
		}
		if !a.Valid() {
			return nil, fault.Errorf(fault.Config, "discover", "attribute %q has no %s accessor", a.Name, a.Kind)
		}
		if (a.Kind == model.ScalarCount) != (a.Name == model.CountName) {
			return nil, fault.Errorf(fault.Config, "discover", "attribute %q: only %q may be %s", a.Name, model.CountName, model.ScalarCount)
		}
		r.byName[a.Name] = len(r.attrs)
		r.attrs = append(r.attrs, a)
	}
	return r, nil
}

// All returns the attributes in declaration order.
func (r *Registry) All() []model.Attribute {
	return append([]model.Attribute(nil), r.attrs...)
}

// Lookup returns the attribute called name.
func (r *Registry) Lookup(name string) (model.Attribute, bool) {
	i, ok := r.byName[name]
	if !ok {
		return model.Attribute{}, false
	}
	return r.attrs[i], true
}

// Len is the number of attributes.
func (r *Registry) Len() int { return len(r.attrs) }
