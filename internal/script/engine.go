// Package script is the embedded evaluator behind the overlay protocol:
// seed a scope, evaluate a script once, read every name back.
//
// Scripts are sequences of HCL assignments evaluated in order:
//
//	growth = [for i, v in revenue: i == 0 ? 0 : v - revenue[i-1]]
//	total  = sum(revenue); avg = mean(revenue)
//
// Each statement sees the assignments before it, and a name may be
// reassigned.
package script

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/modelbind/internal/ctxlog"
	"github.com/specialistvlad/modelbind/internal/vars"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Engine is a single-use evaluation scope.
type Engine interface {
	// Seed writes name into the scope before evaluation.
	Seed(name string, v cty.Value)
	// Evaluate runs src against the scope. On error the scope is unchanged.
	Evaluate(ctx context.Context, src string) error
	// ReadAll returns every name in the scope: seeded names first, then new
	// names in first-assignment order.
	ReadAll() *vars.Ordered
}

// Factory creates a fresh engine.
type Factory func() Engine

// HCL evaluates scripts written as HCL assignments.
type HCL struct {
	filename string
	funcs    map[string]function.Function
	scope    *vars.Ordered
}

// NewHCL returns an engine with the standard function table. filename only
// labels diagnostics.
func NewHCL(filename string) *HCL {
	if filename == "" {
		filename = "script"
	}
	return &HCL{
		filename: filename,
		funcs:    Functions(),
		scope:    vars.New(),
	}
}

// NewFactory returns a Factory producing HCL engines.
func NewFactory(filename string) Factory {
	return func() Engine { return NewHCL(filename) }
}

func (e *HCL) Seed(name string, v cty.Value) {
	e.scope.Set(name, v)
}

// Evaluate parses the whole script, rejects unknown functions, then runs each
// statement in order on a working copy of the scope. The copy replaces the
// scope only when every statement succeeded. The returned error is the
// hcl.Diagnostics describing the first failure.
func (e *HCL) Evaluate(ctx context.Context, src string) error {
	logger := ctxlog.FromContext(ctx)

	prog, diags := Parse(e.filename, []byte(src))
	if diags.HasErrors() {
		return diags
	}
	if diags := prog.checkCalls(e.funcs); diags.HasErrors() {
		return diags
	}
	logger.Debug("Script parsed.",
		"statements", len(prog.Statements),
		"assigns", prog.Assigned(),
		"reads", prog.Reads(),
		"calls", prog.Calls(),
	)

	work := e.scope.Clone()
	for _, st := range prog.Statements {
		evalCtx := &hcl.EvalContext{
			Variables: work.Map(),
			Functions: e.funcs,
		}
		val, diags := st.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return diags
		}
		work.Set(st.Name, val)
		logger.Debug("Statement evaluated.", "name", st.Name, "type", val.Type().FriendlyName())
	}

	e.scope = work
	return nil
}

func (e *HCL) ReadAll() *vars.Ordered {
	return e.scope.Clone()
}
