// Package revenue provides a minimal revenue and cost model.
package revenue

import (
	"fmt"

	"github.com/specialistvlad/modelbind/internal/model"
	"github.com/specialistvlad/modelbind/internal/registry"
)

// Name is the catalog name of the model.
const Name = "Revenue"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the model with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModel(Name, func() model.Model { return new(Revenue) })
}

// Revenue computes the per-period margin.
type Revenue struct {
	LL      int
	Revenue []float64
	Cost    []float64
	Margin  []float64
}

func (m *Revenue) Attributes() []model.Attribute {
	return []model.Attribute{
		model.Count(&m.LL),
		model.Array("revenue", &m.Revenue),
		model.Array("cost", &m.Cost),
		model.Array("margin", &m.Margin),
	}
}

// Run sets margin = revenue - cost. A missing cost series counts as zero.
func (m *Revenue) Run() error {
	if len(m.Revenue) < m.LL {
		return fmt.Errorf("revenue: have %d values, need %d", len(m.Revenue), m.LL)
	}
	m.Margin = make([]float64, m.LL)
	for t := range m.Margin {
		m.Margin[t] = m.Revenue[t]
		if t < len(m.Cost) {
			m.Margin[t] -= m.Cost[t]
		}
	}
	return nil
}
