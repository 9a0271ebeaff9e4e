package registry

import (
	"testing"

	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct{ LL int }

func (m *stubModel) Attributes() []model.Attribute { return []model.Attribute{model.Count(&m.LL)} }
func (m *stubModel) Run() error                    { return nil }

type stubModule struct{}

func (stubModule) Register(r *Registry) {
	r.RegisterModel("Revenue", func() model.Model { return &stubModel{} })
	r.RegisterModel("Model1", func() model.Model { return &stubModel{} })
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	stubModule{}.Register(r)

	// --- Act ---
	m1, err1 := r.NewModel("Model1")
	m2, err2 := r.NewModel("Model1")

	// --- Assert ---
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, m1, m2, "every call creates a fresh instance")
	assert.Equal(t, []string{"Model1", "Revenue"}, r.Names())
	assert.True(t, r.Has("Revenue"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterModel("Model1", func() model.Model { return &stubModel{} })
	assert.PanicsWithValue(t, "model with name 'Model1' already registered", func() {
		r.RegisterModel("Model1", func() model.Model { return &stubModel{} })
	})
}

func TestRegistry_UnknownSuggests(t *testing.T) {
	t.Parallel()

	r := New()
	stubModule{}.Register(r)

	_, err := r.NewModel("rev")
	require.ErrorIs(t, err, fault.ErrConfig)
	assert.Contains(t, err.Error(), `did you mean Revenue`)

	_, err = r.NewModel("Model12")
	require.ErrorIs(t, err, fault.ErrConfig)
	assert.Contains(t, err.Error(), "Model1")

	_, err = r.NewModel("zzz")
	require.ErrorIs(t, err, fault.ErrConfig)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestRegistry_BrokenConstructors(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterModel("nil", func() model.Model { return nil })
	r.RegisterModel("panics", func() model.Model { panic("boom") })

	_, err := r.NewModel("nil")
	assert.ErrorIs(t, err, fault.ErrConfig)

	m, err := r.NewModel("panics")
	assert.Nil(t, m)
	assert.ErrorIs(t, err, fault.ErrConfig)
	assert.Contains(t, err.Error(), "boom")
}
