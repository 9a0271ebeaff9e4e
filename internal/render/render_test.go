package render

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/modelbind/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNumberFormat_Format(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{12.5, "12,5"},
		{12.0, "12"},
		{0.1234, "0,123"},
		{0.1236, "0,124"},
		{0.9999, "1"},
		{0.0004, "0"},
		{-0.0004, "0"},
		{math.Copysign(0, -1), "0"},
		{-12.345678, "-12,35"},
		{999.99, "999,99"},
		{999.996, "1 000"},
		{1000, "1 000"},
		{1000.04, "1 000"},
		{1234.56, "1 234,6"},
		{-1234567.89, "-1 234 567,9"},
		{1e9, "1 000 000 000"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DefaultFormat.Format(tc.in), "Format(%v)", tc.in)
	}
}

func TestNumberFormat_NeverEndsInSeparatorZero(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{0.5, 0.999, 0.9999, 1.0, 1.10, 999.995, 999.999, 1000.0, 1000.05, 2500.96, 10.001} {
		got := DefaultFormat.Format(x)
		assert.NotRegexp(t, `,0*$`, got, "Format(%v)", x)
	}
}

func TestPrecision_Monotonic(t *testing.T) {
	t.Parallel()

	prev := Precision(0)
	for _, abs := range []float64{0.5, 0.999, 1, 10, 999.999, 1000, 1e6} {
		p := Precision(abs)
		assert.LessOrEqual(t, p, prev, "precision must not grow with magnitude")
		prev = p
	}
}

func TestNumberFormat_CustomSeparators(t *testing.T) {
	t.Parallel()

	f := NumberFormat{Decimal: ".", Grouping: ","}
	assert.Equal(t, "1,234.6", f.Format(1234.56))
	assert.Equal(t, "1234.6", NumberFormat{Decimal: "."}.Format(1234.56))
}

func floats(fs ...float64) cty.Value {
	vals := make([]cty.Value, len(fs))
	for i, f := range fs {
		vals[i] = cty.NumberFloatVal(f)
	}
	return cty.ListVal(vals)
}

func sampleSources() []Source {
	return []Source{
		{Name: "revenue", Value: floats(10, 12, 12)},
		{Name: "cost", Value: cty.NullVal(cty.List(cty.Number))},
		{Name: "total", Value: cty.NumberIntVal(34)},
		{Name: "label", Value: cty.StringVal("ok")},
		{Name: "flags", Value: cty.TupleVal([]cty.Value{cty.True, cty.StringVal("a"), cty.NullVal(cty.Number)})},
	}
}

func TestBuild_TSV(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	periods := series.Periods{"2020", "2021", "2022"}

	// --- Act ---
	tbl := Build(periods, sampleSources(), DefaultFormat)

	// --- Assert ---
	want := "LATA\t2020\t2021\t2022\n" +
		"revenue\t10\t12\t12\n" +
		"cost\tNULL\n" +
		"total\t34\n" +
		"label\tok\n" +
		"flags\ttrue\ta\tNULL\n"
	assert.Equal(t, want, tbl.TSV())
	assert.Equal(t, []string{"", "2020", "2021", "2022"}, tbl.Columns())
	assert.True(t, tbl.Rows[1].Null)
	assert.Empty(t, tbl.Rows[1].Cells, "null rows have no cells in table mode")
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	periods := series.Periods{"2020", "2021"}
	first := Build(periods, sampleSources(), DefaultFormat)
	second := Build(periods, sampleSources(), DefaultFormat)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("renders differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.TSV(), second.TSV())
}

func TestCell_ObjectLiteral(t *testing.T) {
	t.Parallel()

	v := cty.ObjectVal(map[string]cty.Value{"a": cty.NumberIntVal(1)})
	assert.Contains(t, Cell(v, DefaultFormat), "a = 1")
}

type recordingSink struct {
	columns []string
	rows    [][]string
	clears  int
	failAdd bool
}

func (s *recordingSink) SetColumns(labels []string) error {
	s.columns = labels
	return nil
}

func (s *recordingSink) ClearRows() error {
	s.rows = nil
	s.clears++
	return nil
}

func (s *recordingSink) AddRow(values []string) error {
	if s.failAdd {
		return errors.New("widget closed")
	}
	s.rows = append(s.rows, values)
	return nil
}

func TestTable_Publish(t *testing.T) {
	t.Parallel()

	s := &recordingSink{rows: [][]string{{"stale"}}}
	tbl := Build(series.Periods{"2020", "2021"}, []Source{
		{Name: "revenue", Value: floats(1.5, 2)},
		{Name: "cost", Value: cty.NullVal(cty.List(cty.Number))},
	}, DefaultFormat)

	require.NoError(t, tbl.Publish(s))

	assert.Equal(t, []string{"", "2020", "2021"}, s.columns)
	assert.Equal(t, 1, s.clears)
	assert.Equal(t, [][]string{{"revenue", "1,5", "2"}, {"cost"}}, s.rows)

	s.failAdd = true
	assert.ErrorContains(t, tbl.Publish(s), "widget closed")
}
