package script

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Functions returns the function table available to scripts.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"sum":    SumFunc,
		"mean":   MeanFunc,
		"cumsum": CumSumFunc,
		"fill":   FillFunc,

		"abs":     stdlib.AbsoluteFunc,
		"ceil":    stdlib.CeilFunc,
		"floor":   stdlib.FloorFunc,
		"log":     stdlib.LogFunc,
		"pow":     stdlib.PowFunc,
		"signum":  stdlib.SignumFunc,
		"max":     stdlib.MaxFunc,
		"min":     stdlib.MinFunc,
		"length":  stdlib.LengthFunc,
		"concat":  stdlib.ConcatFunc,
		"range":   stdlib.RangeFunc,
		"element": stdlib.ElementFunc,
		"slice":   stdlib.SliceFunc,
		"reverse": stdlib.ReverseListFunc,
		"format":  stdlib.FormatFunc,
		"upper":   stdlib.UpperFunc,
		"lower":   stdlib.LowerFunc,
	}
}

var numberList = []function.Parameter{
	{Name: "list", Type: cty.List(cty.Number)},
}

// numbers returns the elements of a known list of numbers, rejecting nulls.
func numbers(list cty.Value) ([]cty.Value, error) {
	out := make([]cty.Value, 0, list.LengthInt())
	for it := list.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() {
			return nil, fmt.Errorf("element %d is null", len(out))
		}
		out = append(out, v)
	}
	return out, nil
}

// add returns a+b, failing where big.Float would panic on opposing infinities.
func add(a, b cty.Value) (cty.Value, error) {
	af, bf := a.AsBigFloat(), b.AsBigFloat()
	if af.IsInf() && bf.IsInf() && af.Signbit() != bf.Signbit() {
		return cty.UnknownVal(cty.Number), function.NewArgErrorf(0, "can't compute sum of opposing infinities")
	}
	return a.Add(b), nil
}

// SumFunc adds all elements of a list of numbers. An empty list sums to 0.
var SumFunc = function.New(&function.Spec{
	Description: "Returns the total of a list of numbers.",
	Params:      numberList,
	Type:        function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		nums, err := numbers(args[0])
		if err != nil {
			return cty.UnknownVal(cty.Number), err
		}
		total := cty.Zero
		for _, n := range nums {
			if total, err = add(total, n); err != nil {
				return cty.UnknownVal(cty.Number), err
			}
		}
		return total, nil
	},
})

// MeanFunc returns the arithmetic mean of a non-empty list of numbers.
var MeanFunc = function.New(&function.Spec{
	Description: "Returns the arithmetic mean of a list of numbers.",
	Params:      numberList,
	Type:        function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		nums, err := numbers(args[0])
		if err != nil {
			return cty.UnknownVal(cty.Number), err
		}
		if len(nums) == 0 {
			return cty.UnknownVal(cty.Number), fmt.Errorf("mean of an empty list")
		}
		total := cty.Zero
		for _, n := range nums {
			if total, err = add(total, n); err != nil {
				return cty.UnknownVal(cty.Number), err
			}
		}
		return total.Divide(cty.NumberIntVal(int64(len(nums)))), nil
	},
})

// CumSumFunc returns the running totals of a list of numbers.
var CumSumFunc = function.New(&function.Spec{
	Description: "Returns the running totals of a list of numbers.",
	Params:      numberList,
	Type:        function.StaticReturnType(cty.List(cty.Number)),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		nums, err := numbers(args[0])
		if err != nil {
			return cty.UnknownVal(retType), err
		}
		if len(nums) == 0 {
			return cty.ListValEmpty(cty.Number), nil
		}
		out := make([]cty.Value, len(nums))
		total := cty.Zero
		for i, n := range nums {
			if total, err = add(total, n); err != nil {
				return cty.UnknownVal(retType), err
			}
			out[i] = total
		}
		return cty.ListVal(out), nil
	},
})

// FillFunc returns a list holding count copies of value.
var FillFunc = function.New(&function.Spec{
	Description: "Returns a list of count copies of a number.",
	Params: []function.Parameter{
		{Name: "value", Type: cty.Number},
		{Name: "count", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.List(cty.Number)),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		bf := args[1].AsBigFloat()
		if !bf.IsInt() {
			return cty.UnknownVal(retType), function.NewArgErrorf(1, "count must be a whole number")
		}
		n, _ := bf.Int64()
		if n < 0 {
			return cty.UnknownVal(retType), function.NewArgErrorf(1, "count must not be negative")
		}
		if n == 0 {
			return cty.ListValEmpty(cty.Number), nil
		}
		out := make([]cty.Value, n)
		for i := range out {
			out[i] = args[0]
		}
		return cty.ListVal(out), nil
	},
})
