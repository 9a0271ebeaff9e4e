// Package render turns bound attributes and derived variables into a table
// and its tab-separated text form.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/modelbind/internal/series"
	"github.com/zclconf/go-cty/cty"
)

// NullText is the text-mode rendering of a null value.
const NullText = "NULL"

// Sink is a table widget that displays a rendered table.
type Sink interface {
	SetColumns(labels []string) error
	ClearRows() error
	AddRow(values []string) error
}

// Source is one named value to render.
type Source struct {
	Name  string
	Value cty.Value
}

// Row is one rendered line of the table.
type Row struct {
	Label string
	Cells []string
	// Null marks a null value: no cells in the table, NULL in text.
	Null bool
}

// Table is a complete rendering. It is rebuilt from scratch on every render.
type Table struct {
	Periods series.Periods
	Rows    []Row
}

// Build renders sources in the given order.
func Build(periods series.Periods, sources []Source, f NumberFormat) *Table {
	t := &Table{
		Periods: append(series.Periods(nil), periods...),
		Rows:    make([]Row, 0, len(sources)),
	}
	for _, src := range sources {
		row := Row{Label: src.Name}
		if src.Value.IsNull() {
			row.Null = true
		} else {
			row.Cells = Cells(src.Value, f)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Cells renders v as one cell per element for collections and a single cell
// otherwise.
func Cells(v cty.Value, f NumberFormat) []string {
	ty := v.Type()
	if v.IsKnown() && !v.IsNull() && (ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
		cells := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			cells = append(cells, Cell(el, f))
		}
		return cells
	}
	return []string{Cell(v, f)}
}

// Cell renders a single value.
func Cell(v cty.Value, f NumberFormat) string {
	if !v.IsWhollyKnown() {
		return "(known after evaluation)"
	}
	if v.IsNull() {
		return NullText
	}
	switch v.Type() {
	case cty.Number:
		x, _ := v.AsBigFloat().Float64()
		return f.Format(x)
	case cty.String:
		return v.AsString()
	case cty.Bool:
		return strconv.FormatBool(v.True())
	}
	return strings.TrimSpace(string(hclwrite.Format(hclwrite.TokensForValue(v).Bytes())))
}

// Columns returns the widget column labels: an empty label column followed by
// the periods.
func (t *Table) Columns() []string {
	return append([]string{""}, t.Periods...)
}

// TSV renders the table as tab-separated text. The header line starts with
// the period prefix; every line ends with a newline.
func (t *Table) TSV() string {
	var b strings.Builder
	b.WriteString(series.PeriodPrefix)
	for _, p := range t.Periods {
		b.WriteByte('\t')
		b.WriteString(p)
	}
	b.WriteByte('\n')

	for _, row := range t.Rows {
		b.WriteString(row.Label)
		if row.Null {
			b.WriteByte('\t')
			b.WriteString(NullText)
		}
		for _, c := range row.Cells {
			b.WriteByte('\t')
			b.WriteString(c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Publish replaces the contents of s with the table.
func (t *Table) Publish(s Sink) error {
	if err := s.SetColumns(t.Columns()); err != nil {
		return fmt.Errorf("set columns: %w", err)
	}
	if err := s.ClearRows(); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	for _, row := range t.Rows {
		values := make([]string, 0, len(row.Cells)+1)
		values = append(values, row.Label)
		values = append(values, row.Cells...)
		if err := s.AddRow(values); err != nil {
			return fmt.Errorf("add row %q: %w", row.Label, err)
		}
	}
	return nil
}
