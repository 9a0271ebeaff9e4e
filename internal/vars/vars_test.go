package vars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestOrdered_UpsertKeepsPosition(t *testing.T) {
	t.Parallel()

	o := New()
	o.Set("total", cty.NumberIntVal(1))
	o.Set("avg", cty.NumberIntVal(2))
	o.Set("total", cty.NumberIntVal(3))

	assert.Equal(t, []string{"total", "avg"}, o.Names())
	v, ok := o.Get("total")
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.NumberIntVal(3)))
}

func TestOrdered_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	o := New()
	o.Set("a1", cty.True)
	o.Set("b2", cty.False)
	c := o.Clone()

	o.Set("c3", cty.True)
	o.Set("a1", cty.False)

	assert.Equal(t, []string{"a1", "b2", "c3"}, o.Names())
	assert.Equal(t, []string{"a1", "b2"}, c.Names())
	a1, _ := c.Get("a1")
	assert.True(t, a1.True())
	assert.True(t, c.Has("a1"))
	assert.Equal(t, 2, len(c.Map()))
}

func TestOrdered_Each(t *testing.T) {
	t.Parallel()

	o := New()
	o.Set("x1", cty.StringVal("a"))
	o.Set("x2", cty.StringVal("b"))

	var seen []string
	o.Each(func(name string, v cty.Value) {
		seen = append(seen, name+"="+v.AsString())
	})
	assert.Equal(t, []string{"x1=a", "x2=b"}, seen)
	assert.Equal(t, 2, o.Len())
}
