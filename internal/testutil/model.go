package testutil

import (
	"sync"

	"github.com/specialistvlad/modelbind/internal/model"
	"github.com/specialistvlad/modelbind/internal/registry"
)

// CountingName is the catalog name of CountingModel.
const CountingName = "Counting"

// CountingModel doubles every input value into out and counts its runs.
type CountingModel struct {
	LL  int
	In  []float64
	Out []float64

	runs *Runs
}

func (m *CountingModel) Attributes() []model.Attribute {
	return []model.Attribute{
		model.Count(&m.LL),
		model.Array("in", &m.In),
		model.Array("out", &m.Out),
	}
}

func (m *CountingModel) Run() error {
	m.runs.inc()
	m.Out = make([]float64, len(m.In))
	for i, v := range m.In {
		m.Out[i] = 2 * v
	}
	return nil
}

// Runs counts model runs across every instance created by a CountingModule.
type Runs struct {
	mu sync.Mutex
	n  int
}

func (r *Runs) inc() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
}

// Count returns the number of runs so far.
func (r *Runs) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// CountingModule registers CountingModel and shares one run counter between
// all instances.
type CountingModule struct {
	Runs Runs
}

// Register registers CountingModel under CountingName.
func (m *CountingModule) Register(r *registry.Registry) {
	r.RegisterModel(CountingName, func() model.Model { return &CountingModel{runs: &m.Runs} })
}
