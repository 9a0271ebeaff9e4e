package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	LL      int
	Revenue []float64
}

func TestAttribute_Accessors(t *testing.T) {
	t.Parallel()

	s := &sample{}
	ll := Count(&s.LL)
	rev := Array("revenue", &s.Revenue)

	require.True(t, ll.Valid())
	require.True(t, rev.Valid())
	assert.Equal(t, CountName, ll.Name)

	require.NoError(t, ll.SetCount(3))
	assert.Equal(t, 3, s.LL)
	assert.Equal(t, 3, ll.Count())

	require.NoError(t, rev.SetFloats([]float64{1, 2, 3}))
	assert.Equal(t, []float64{1, 2, 3}, s.Revenue)
	assert.Equal(t, s.Revenue, rev.Floats())
}

func TestAttribute_KindMismatch(t *testing.T) {
	t.Parallel()

	s := &sample{}
	assert.Error(t, Count(&s.LL).SetFloats([]float64{1}))
	assert.Error(t, Array("revenue", &s.Revenue).SetCount(1))
	assert.False(t, Attribute{Name: "x", Kind: NumericArray}.Valid())
}
