package render

import (
	"math"
	"strconv"
	"strings"
)

// NumberFormat renders floats for display.
//
// Precision depends on magnitude:
//
//	|x| < 1        up to 3 decimals
//	|x| < 1000     up to 2 decimals
//	otherwise      up to 1 decimal
//
// Trailing fractional zeros are removed, together with the decimal separator
// when nothing is left after it.
type NumberFormat struct {
	Decimal  string
	Grouping string
}

// DefaultFormat uses a comma for decimals and a space between thousands.
var DefaultFormat = NumberFormat{Decimal: ",", Grouping: " "}

// Precision returns the number of decimals used for a value of magnitude abs.
func Precision(abs float64) int {
	switch {
	case abs < 1:
		return 3
	case abs < 1000:
		return 2
	default:
		return 1
	}
}

// Format renders x.
func (f NumberFormat) Format(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}

	s := strconv.FormatFloat(x, 'f', Precision(math.Abs(x)), 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if neg && (strings.Trim(whole, "0") != "" || frac != "") {
		b.WriteByte('-')
	}
	b.WriteString(group(whole, f.Grouping))
	if frac != "" {
		b.WriteString(f.Decimal)
		b.WriteString(frac)
	}
	return b.String()
}

// group inserts sep between every three digits counted from the right.
func group(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
