package sink

import "sync"

// Memory keeps the published table in memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	columns []string
	rows    [][]string
	clears  int
}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SetColumns(labels []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.columns = append([]string(nil), labels...)
	return nil
}

func (m *Memory) ClearRows() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = nil
	m.clears++
	return nil
}

func (m *Memory) AddRow(values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, append([]string(nil), values...))
	return nil
}

// Columns returns a copy of the column labels.
func (m *Memory) Columns() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.columns...)
}

// Rows returns a copy of the rows.
func (m *Memory) Rows() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Clears reports how many times ClearRows was called.
func (m *Memory) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}
