package revenue

import (
	"testing"

	"github.com/specialistvlad/modelbind/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenue_Run(t *testing.T) {
	t.Parallel()

	m := &Revenue{LL: 3, Revenue: []float64{10, 12, 12}, Cost: []float64{4, 5}}
	require.NoError(t, m.Run())
	assert.Equal(t, []float64{6, 7, 12}, m.Margin)

	short := &Revenue{LL: 3, Revenue: []float64{1}}
	assert.Error(t, short.Run())
}

func TestModule_Register(t *testing.T) {
	t.Parallel()

	r := registry.New()
	(&Module{}).Register(r)
	assert.Equal(t, []string{Name}, r.Names())
}
