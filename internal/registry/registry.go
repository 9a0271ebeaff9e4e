package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/model"
)

// Module is the interface that all model packages implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Factory constructs a fresh model instance.
type Factory func() model.Model

// Registry maps model names to their constructors.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// RegisterModel adds a model constructor under name.
func (r *Registry) RegisterModel(name string, f Factory) {
	if name == "" || f == nil {
		panic("model registration requires a name and a factory")
	}
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("model with name '%s' already registered", name))
	}
	slog.Debug("Registering model.", "name", name)
	r.factories[name] = f
}

// Names returns the registered model names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// NewModel instantiates the model registered under name. An unknown name, a
// nil model, or a panicking constructor is a ConfigError.
func (r *Registry) NewModel(name string) (m model.Model, err error) {
	f, ok := r.factories[name]
	if !ok {
		msg := fmt.Sprintf("unknown model %q", name)
		if s := r.suggest(name); len(s) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
		}
		return nil, fault.Errorf(fault.Config, "new model", "%s", msg)
	}

	defer func() {
		if p := recover(); p != nil {
			m, err = nil, fault.Errorf(fault.Config, "new model", "constructor for %q panicked: %v", name, p)
		}
	}()

	m = f()
	if m == nil {
		return nil, fault.Errorf(fault.Config, "new model", "constructor for %q returned nil", name)
	}
	return m, nil
}

// suggest returns registered names close to name, best match first.
func (r *Registry) suggest(name string) []string {
	ranks := fuzzy.RankFindFold(name, r.Names())
	if len(ranks) == 0 {
		// Retry the other way round so that a longer mistyped name still finds
		// its shorter registered form.
		for _, candidate := range r.Names() {
			if fuzzy.MatchFold(candidate, name) {
				ranks = append(ranks, fuzzy.Rank{Target: candidate})
			}
		}
	}
	sort.Sort(ranks)

	out := make([]string, 0, len(ranks))
	for _, rk := range ranks {
		out = append(out, rk.Target)
	}
	return out
}
