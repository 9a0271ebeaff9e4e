package binding

import (
	"context"

	"github.com/specialistvlad/modelbind/internal/ctxlog"
	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/model"
	"github.com/specialistvlad/modelbind/internal/series"
)

// Bind writes the period count and the loaded series into every attribute of
// r. Attributes without a matching series are left untouched.
func Bind(ctx context.Context, r *Registry, data *series.Data) error {
	logger := ctxlog.FromContext(ctx)

	if data == nil || len(data.Periods) == 0 {
		return fault.Errorf(fault.Config, "bind", "period sequence (%s line) is missing or empty", series.PeriodPrefix)
	}
	n := len(data.Periods)

	for _, a := range r.attrs {
		switch a.Kind {
		case model.ScalarCount:
			if err := a.SetCount(n); err != nil {
				return fault.New(fault.Binding, a.Name, err)
			}
		case model.NumericArray:
			src, ok := data.Lookup(a.Name)
			if !ok {
				logger.Debug("No series for attribute, leaving default.", "attribute", a.Name)
				continue
			}
			if err := a.SetFloats(Fill(src, n)); err != nil {
				return fault.New(fault.Binding, a.Name, err)
			}
		}
	}

	logger.Debug("Attributes bound.", "attributes", r.Len(), "periods", n)
	return nil
}

// Fill returns a new slice of length n holding the first min(len(src), n)
// values of src. When src is shorter, the remaining slots repeat its last
// value. An empty src yields n zeros.
func Fill(src []float64, n int) []float64 {
	out := make([]float64, n)
	copied := copy(out, src)
	if copied == 0 || copied == n {
		return out
	}
	last := src[copied-1]
	for i := copied; i < n; i++ {
		out[i] = last
	}
	return out
}
