// Package gdp provides Model1, a gross domestic product projection.
//
// Each demand component starts from its first-period level and grows by its
// own per-period factor:
//
//	KI[t] = twKI[t] * KI[t-1]
//
// PKB is private consumption plus public consumption plus investment plus
// exports minus imports.
package gdp

import (
	"fmt"

	"github.com/specialistvlad/modelbind/internal/model"
	"github.com/specialistvlad/modelbind/internal/registry"
)

// Name is the catalog name of Model1.
const Name = "Model1"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers Model1 with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModel(Name, func() model.Model { return new(Model1) })
}

// Model1 projects GDP from five growing demand components.
type Model1 struct {
	LL int

	TwKI  []float64 // private consumption growth
	TwKS  []float64 // public consumption growth
	TwINW []float64 // investment growth
	TwEKS []float64 // export growth
	TwIMP []float64 // import growth

	KI  []float64
	KS  []float64
	INW []float64
	EKS []float64
	IMP []float64

	PKB []float64
}

func (m *Model1) Attributes() []model.Attribute {
	return []model.Attribute{
		model.Count(&m.LL),
		model.Array("twKI", &m.TwKI),
		model.Array("twKS", &m.TwKS),
		model.Array("twINW", &m.TwINW),
		model.Array("twEKS", &m.TwEKS),
		model.Array("twIMP", &m.TwIMP),
		model.Array("KI", &m.KI),
		model.Array("KS", &m.KS),
		model.Array("INW", &m.INW),
		model.Array("EKS", &m.EKS),
		model.Array("IMP", &m.IMP),
		model.Array("PKB", &m.PKB),
	}
}

// Run fills PKB and extends every component over LL periods. Only the first
// value of each level series is used as input.
func (m *Model1) Run() error {
	if m.LL <= 0 {
		return fmt.Errorf("model1: no periods")
	}

	components := []struct {
		name   string
		level  *[]float64
		growth []float64
	}{
		{"KI", &m.KI, m.TwKI},
		{"KS", &m.KS, m.TwKS},
		{"INW", &m.INW, m.TwINW},
		{"EKS", &m.EKS, m.TwEKS},
		{"IMP", &m.IMP, m.TwIMP},
	}
	for _, c := range components {
		if len(*c.level) == 0 {
			return fmt.Errorf("model1: %s has no initial value", c.name)
		}
		if len(c.growth) < m.LL {
			return fmt.Errorf("model1: tw%s has %d values, need %d", c.name, len(c.growth), m.LL)
		}
		*c.level = grow((*c.level)[0], c.growth[:m.LL])
	}

	m.PKB = make([]float64, m.LL)
	for t := range m.PKB {
		m.PKB[t] = m.KI[t] + m.KS[t] + m.INW[t] + m.EKS[t] - m.IMP[t]
	}
	return nil
}

// grow returns start compounded by growth[1:], one value per period.
func grow(start float64, growth []float64) []float64 {
	out := make([]float64, len(growth))
	out[0] = start
	for t := 1; t < len(out); t++ {
		out[t] = growth[t] * out[t-1]
	}
	return out
}
