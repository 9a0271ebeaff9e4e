package gdp

import (
	"testing"

	"github.com/specialistvlad/modelbind/internal/binding"
	"github.com/specialistvlad/modelbind/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel1_Attributes(t *testing.T) {
	t.Parallel()

	r, err := binding.Discover(new(Model1))
	require.NoError(t, err)
	assert.Equal(t, 12, r.Len())

	var names []string
	for _, a := range r.All() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"LL", "twKI", "twKS", "twINW", "twEKS", "twIMP", "KI", "KS", "INW", "EKS", "IMP", "PKB"}, names)
}

func TestModel1_Run(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := &Model1{
		LL:    3,
		TwKI:  []float64{1, 1.1, 1.1},
		TwKS:  []float64{1, 1, 1},
		TwINW: []float64{1, 2, 0.5},
		TwEKS: []float64{1, 1, 1},
		TwIMP: []float64{1, 1, 1},
		KI:    []float64{100, 100, 100},
		KS:    []float64{50},
		INW:   []float64{20},
		EKS:   []float64{30},
		IMP:   []float64{40},
	}

	// --- Act ---
	err := m.Run()

	// --- Assert ---
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100, 110, 121}, m.KI, 1e-9)
	assert.InDeltaSlice(t, []float64{20, 40, 20}, m.INW, 1e-9)
	assert.Len(t, m.KS, 3)
	assert.InDeltaSlice(t, []float64{160, 190, 181}, m.PKB, 1e-9)
}

func TestModel1_RunMissingInput(t *testing.T) {
	t.Parallel()

	m := &Model1{LL: 2, TwKI: []float64{1, 1}}
	err := m.Run()
	assert.ErrorContains(t, err, "KI has no initial value")

	assert.Error(t, new(Model1).Run())
}

func TestModule_Register(t *testing.T) {
	t.Parallel()

	r := registry.New()
	(&Module{}).Register(r)
	m, err := r.NewModel(Name)
	require.NoError(t, err)
	assert.IsType(t, &Model1{}, m)
}
