package series

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PeriodsAndSeries(t *testing.T) {
	t.Parallel()

	src := `LATA 2020 2021 2022
revenue 10 12
cost	4   5 6

# comment line
growth 1.5e0 -2
`
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, Periods{"2020", "2021", "2022"}, d.Periods)
	assert.Equal(t, []string{"revenue", "cost", "growth"}, d.Names())

	rev, ok := d.Lookup("revenue")
	require.True(t, ok)
	assert.Equal(t, []float64{10, 12}, rev)

	growth, ok := d.Lookup("growth")
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, -2}, growth)

	_, ok = d.Lookup("missing")
	assert.False(t, ok)
}

func TestParse_OrderOfLinesIsIrrelevant(t *testing.T) {
	t.Parallel()

	d, err := Parse(strings.NewReader("a 1\nLATA y1 y2\nb 2 3\n"))
	require.NoError(t, err)
	assert.Equal(t, Periods{"y1", "y2"}, d.Periods)
	assert.Equal(t, 2, d.Len())
}

func TestParse_MissingPrefixLeavesPeriodsNil(t *testing.T) {
	t.Parallel()

	d, err := Parse(strings.NewReader("revenue 1 2\n"))
	require.NoError(t, err)
	assert.Nil(t, d.Periods)
}

func TestParse_NonNumericTokenIsParseError(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("LATA 1 2\nrevenue 10 ten\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrParse))
	assert.Contains(t, err.Error(), `"ten"`)
	assert.Contains(t, err.Error(), ":2")
}

func TestParse_SeriesWithoutValuesIsParseError(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("LATA 1 2\nrevenue\n"))
	require.ErrorIs(t, err, fault.ErrParse)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("LATA 2020 2021\nrevenue 10\n"), 0o600))

	// --- Act ---
	d, err := LoadFile(path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, Periods{"2020", "2021"}, d.Periods)

	_, err = LoadFile(filepath.Join(dir, "absent.txt"))
	require.ErrorIs(t, err, fault.ErrIO)
}

func TestLoadFile_ParseErrorNamesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("LATA 1\nx 1 y\n"), 0o600))

	_, err := LoadFile(path)
	require.ErrorIs(t, err, fault.ErrParse)
	assert.Contains(t, err.Error(), "bad.txt:2")
}
