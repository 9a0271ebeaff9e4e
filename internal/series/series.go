// Package series parses the line-oriented period/series data format.
//
// A data source declares its periods on a line starting with the reserved
// prefix token and one series per remaining line:
//
//	LATA 2020 2021 2022
//	revenue 10 12
//	cost 4 5 6
package series

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/specialistvlad/modelbind/internal/fault"
)

// PeriodPrefix is the reserved first token of the period declaration line.
// It also labels the header row of the text rendering.
const PeriodPrefix = "LATA"

// Periods is the ordered sequence of period labels.
type Periods []string

// Data is the result of one load.
type Data struct {
	// Periods is nil when the source has no prefix line.
	Periods Periods
	series  map[string][]float64
	order   []string
}

// Lookup returns the series for name.
func (d *Data) Lookup(name string) ([]float64, bool) {
	s, ok := d.series[name]
	return s, ok
}

// Names returns series names in first-seen order.
func (d *Data) Names() []string {
	return append([]string(nil), d.order...)
}

// Len is the number of series.
func (d *Data) Len() int { return len(d.series) }

// LoadFile opens path and parses it. The file is closed on every path.
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.New(fault.IO, path, err)
	}
	defer f.Close()

	return parse(f, path)
}

// Parse reads a data source from r.
func Parse(r io.Reader) (*Data, error) {
	return parse(r, "<input>")
}

func parse(r io.Reader, source string) (*Data, error) {
	d := &Data{series: make(map[string][]float64)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == PeriodPrefix {
			d.Periods = Periods(fields[1:])
			continue
		}

		name := fields[0]
		if len(fields) == 1 {
			return nil, fault.Errorf(fault.Parse, fmt.Sprintf("%s:%d", source, lineNo), "series %q has no values", name)
		}
		values := make([]float64, 0, len(fields)-1)
		for _, tok := range fields[1:] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fault.Errorf(fault.Parse, fmt.Sprintf("%s:%d", source, lineNo), "series %q: invalid number %q", name, tok)
			}
			values = append(values, v)
		}

		if _, seen := d.series[name]; !seen {
			d.order = append(d.order, name)
		}
		d.series[name] = values
	}
	if err := sc.Err(); err != nil {
		return nil, fault.New(fault.IO, source, err)
	}

	return d, nil
}
