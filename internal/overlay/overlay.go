// Package overlay runs a script over a model's bound attributes and
// reconciles the resulting scope.
//
// One evaluation seeds a fresh engine with every bound attribute and every
// derived variable, evaluates the script, and then classifies each name in
// the post-evaluation scope:
//
//   - a single lowercase letter is a temporary and is dropped;
//   - a bound attribute name whose value changed is written back into the
//     model;
//   - anything else becomes (or updates) a derived variable.
//
// Reconciliation is atomic: if the script fails or any write-back value does
// not fit its attribute, neither the model nor the derived variables change.
package overlay

import (
	"context"
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/specialistvlad/modelbind/internal/binding"
	"github.com/specialistvlad/modelbind/internal/ctxlog"
	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/script"
	"github.com/specialistvlad/modelbind/internal/vars"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// State is the overlay state.
type State int

const (
	Idle State = iota
	Evaluating
)

func (s State) String() string {
	if s == Evaluating {
		return "evaluating"
	}
	return "idle"
}

// ErrBusy is returned when Evaluate is called while another evaluation runs.
var ErrBusy = errors.New("overlay: evaluation already in progress")

// Overlay owns the derived variables of one session.
type Overlay struct {
	attrs     *binding.Registry
	derived   *vars.Ordered
	newEngine script.Factory
	state     State
}

// New returns an idle overlay over attrs with no derived variables.
func New(attrs *binding.Registry, newEngine script.Factory) *Overlay {
	return &Overlay{
		attrs:     attrs,
		derived:   vars.New(),
		newEngine: newEngine,
	}
}

// State reports whether an evaluation is running.
func (o *Overlay) State() State { return o.state }

// Derived returns a copy of the derived variables in insertion order.
func (o *Overlay) Derived() *vars.Ordered { return o.derived.Clone() }

// Result summarizes one reconciliation.
type Result struct {
	Updated   []string // bound attributes whose value changed
	Derived   []string // derived variables created or updated
	Discarded []string // single-letter temporaries dropped
}

// Evaluate runs src and reconciles the scope. A script failure is returned as
// a ScriptError and a write-back failure as a BindingError; in both cases no
// state changes.
func (o *Overlay) Evaluate(ctx context.Context, src string) (*Result, error) {
	if o.state == Evaluating {
		return nil, ErrBusy
	}
	o.state = Evaluating
	defer func() { o.state = Idle }()

	logger := ctxlog.FromContext(ctx)

	eng := o.newEngine()
	seeded := seed(eng, o.attrs, o.derived)

	if err := eng.Evaluate(ctx, src); err != nil {
		return nil, fault.New(fault.Script, "evaluate", err)
	}

	scope := eng.ReadAll()
	res := &Result{}
	var commits []func() error
	next := o.derived.Clone()

	for _, name := range scope.Names() {
		v, _ := scope.Get(name)
		switch {
		case IsTemporary(name):
			res.Discarded = append(res.Discarded, name)
		case o.isBound(name):
			if unchanged(seeded[name], v) {
				continue
			}
			a, _ := o.attrs.Lookup(name)
			commit, err := binding.Decode(a, v)
			if err != nil {
				return nil, err
			}
			commits = append(commits, commit)
			res.Updated = append(res.Updated, name)
		default:
			next.Set(name, v)
			res.Derived = append(res.Derived, name)
		}
	}

	for _, commit := range commits {
		if err := commit(); err != nil {
			return nil, fault.New(fault.Binding, "write back", err)
		}
	}
	o.derived = next

	logger.Debug("Script reconciled.",
		"updated", len(res.Updated),
		"derived", len(res.Derived),
		"discarded", res.Discarded,
	)
	return res, nil
}

func (o *Overlay) isBound(name string) bool {
	_, ok := o.attrs.Lookup(name)
	return ok
}

// IsTemporary reports whether name is exactly one lowercase letter.
func IsTemporary(name string) bool {
	r, size := utf8.DecodeRuneInString(name)
	return size > 0 && size == len(name) && unicode.IsLetter(r) && unicode.IsLower(r)
}

// seed writes bound attributes in registry order, then derived variables in
// insertion order. It returns the seeded attribute values by name.
func seed(eng script.Engine, attrs *binding.Registry, derived *vars.Ordered) map[string]cty.Value {
	seeded := make(map[string]cty.Value, attrs.Len())
	for _, a := range attrs.All() {
		v := binding.Value(a)
		seeded[a.Name] = v
		eng.Seed(a.Name, v)
	}
	derived.Each(eng.Seed)
	return seeded
}

// unchanged reports whether v equals the seeded value once converted to its
// type. A tuple holding the same numbers as a seeded list is unchanged.
func unchanged(seeded, v cty.Value) bool {
	if conv, err := convert.Convert(v, seeded.Type()); err == nil {
		v = conv
	}
	eq := seeded.Equals(v)
	return eq.IsKnown() && eq.True()
}
