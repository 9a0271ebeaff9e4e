package binding

import (
	"fmt"
	"math"

	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Value returns the current value of a as a cty value. A nil array becomes a
// null list; NaN elements become null numbers.
func Value(a model.Attribute) cty.Value {
	switch a.Kind {
	case model.ScalarCount:
		return cty.NumberIntVal(int64(a.Count()))
	case model.NumericArray:
		return FloatsValue(a.Floats())
	default:
		return cty.DynamicVal
	}
}

// FloatsValue converts a float slice into a list of numbers.
func FloatsValue(fs []float64) cty.Value {
	if fs == nil {
		return cty.NullVal(cty.List(cty.Number))
	}
	if len(fs) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	vals := make([]cty.Value, len(fs))
	for i, f := range fs {
		vals[i] = floatValue(f)
	}
	return cty.ListVal(vals)
}

func floatValue(f float64) cty.Value {
	switch {
	case math.IsNaN(f):
		return cty.NullVal(cty.Number)
	case math.IsInf(f, 1):
		return cty.PositiveInfinity
	case math.IsInf(f, -1):
		return cty.NegativeInfinity
	default:
		return cty.NumberFloatVal(f)
	}
}

// Decode checks that v can be stored in a and returns a function that
// performs the write. Nothing is written until the returned function runs, so
// callers can validate a batch of writes before committing any of them.
func Decode(a model.Attribute, v cty.Value) (func() error, error) {
	if !v.IsWhollyKnown() {
		return nil, fault.Errorf(fault.Binding, a.Name, "value is not known")
	}

	switch a.Kind {
	case model.ScalarCount:
		var n int
		if err := decode(v, cty.Number, &n); err != nil {
			return nil, fault.New(fault.Binding, a.Name, err)
		}
		return func() error { return a.SetCount(n) }, nil

	case model.NumericArray:
		if v.IsNull() {
			return func() error { return a.SetFloats(nil) }, nil
		}
		ty := v.Type()
		if !ty.IsListType() && !ty.IsTupleType() {
			return nil, fault.Errorf(fault.Binding, a.Name, "cannot assign %s to a numeric array", ty.FriendlyName())
		}
		fs, err := floats(v)
		if err != nil {
			return nil, fault.New(fault.Binding, a.Name, err)
		}
		return func() error { return a.SetFloats(fs) }, nil

	default:
		return nil, fault.Errorf(fault.Binding, a.Name, "unsupported attribute kind %s", a.Kind)
	}
}

// decode converts val to want and then into the Go value target points to.
func decode(val cty.Value, want cty.Type, target any) error {
	if val.IsNull() {
		return fmt.Errorf("null cannot be assigned to %s", want.FriendlyName())
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

// floats converts a list or tuple into a float slice. Null elements become NaN
// and infinities are kept, mirroring FloatsValue.
func floats(val cty.Value) ([]float64, error) {
	converted, err := convert.Convert(val, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), cty.List(cty.Number).FriendlyName(), err)
	}
	fs := make([]float64, 0, converted.LengthInt())
	for it := converted.ElementIterator(); it.Next(); {
		_, el := it.Element()
		if el.IsNull() {
			fs = append(fs, math.NaN())
			continue
		}
		f, _ := el.AsBigFloat().Float64()
		fs = append(fs, f)
	}
	return fs, nil
}
