package sink

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/modelbind/internal/render"
	"github.com/specialistvlad/modelbind/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/zclconf/go-cty/cty"
)

var (
	_ render.Sink = (*Memory)(nil)
	_ render.Sink = (*XLSX)(nil)
	_ render.Sink = (*SocketIO)(nil)
)

func sampleTable(values ...float64) *render.Table {
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.NumberFloatVal(v)
	}
	sources := []render.Source{{Name: "revenue", Value: cty.ListVal(vals)}}
	return render.Build(series.Periods{"2020", "2021"}, sources, render.DefaultFormat)
}

func TestMemory_Publish(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	require.NoError(t, sampleTable(1, 2).Publish(m))
	require.NoError(t, sampleTable(3, 4.5).Publish(m))

	assert.Equal(t, []string{"", "2020", "2021"}, m.Columns())
	assert.Equal(t, [][]string{{"revenue", "3", "4,5"}}, m.Rows())
	assert.Equal(t, 2, m.Clears())
}

func TestXLSX_PublishReplacesRows(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	x, err := NewXLSX("")
	require.NoError(t, err)
	defer x.Close()

	tbl := render.Build(series.Periods{"2020"}, []render.Source{
		{Name: "a", Value: cty.NumberIntVal(1)},
		{Name: "b", Value: cty.NumberIntVal(2)},
	}, render.DefaultFormat)

	// --- Act ---
	require.NoError(t, tbl.Publish(x))
	require.NoError(t, sampleTable(1234.5, 2).Publish(x))

	// --- Assert ---
	rows, err := x.Rows()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"", "2020", "2021"},
		{"revenue", "1 234,5", "2"},
	}, rows)
}

func TestXLSX_SaveAndWrite(t *testing.T) {
	t.Parallel()

	x, err := NewXLSX("Model")
	require.NoError(t, err)
	defer x.Close()
	require.NoError(t, sampleTable(1, 2).Publish(x))

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, x.SaveAs(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Model", "A2")
	require.NoError(t, err)
	assert.Equal(t, "revenue", v)

	var buf bytes.Buffer
	require.NoError(t, x.Write(&buf))
	assert.NotZero(t, buf.Len())
}

func TestSocketIO_EmitsEvents(t *testing.T) {
	t.Parallel()

	type call struct {
		event string
		args  []any
	}
	var calls []call
	s := NewSocketIO(func(event string, args ...any) error {
		calls = append(calls, call{event, args})
		return nil
	})

	require.NoError(t, sampleTable(1, 2).Publish(s))

	require.Len(t, calls, 3)
	assert.Equal(t, EventSetColumns, calls[0].event)
	assert.Equal(t, []any{[]string{"", "2020", "2021"}}, calls[0].args)
	assert.Equal(t, EventClearRows, calls[1].event)
	assert.Empty(t, calls[1].args)
	assert.Equal(t, EventAddRow, calls[2].event)
	assert.Equal(t, []any{[]string{"revenue", "1", "2"}}, calls[2].args)
	s.Close()
}

func TestSocketIO_EmitError(t *testing.T) {
	t.Parallel()

	s := NewSocketIO(func(string, ...any) error { return errors.New("gone") })
	err := sampleTable(1).Publish(s)
	assert.ErrorContains(t, err, "gone")
}
