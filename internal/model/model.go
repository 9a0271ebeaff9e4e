package model

import "fmt"

// CountName is the reserved name of the period-count attribute.
const CountName = "LL"

// Kind is the shape of a bindable attribute.
type Kind int

const (
	// ScalarCount holds the number of periods. Only CountName may use it.
	ScalarCount Kind = iota + 1
	// NumericArray holds one value per period.
	NumericArray
)

func (k Kind) String() string {
	switch k {
	case ScalarCount:
		return "scalar-count"
	case NumericArray:
		return "numeric-array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Model is a computation model. Implementations must be constructible with no
// arguments; see registry.Factory.
type Model interface {
	// Attributes returns the bindable attributes in declaration order. It is
	// called once per instance.
	Attributes() []Attribute
	// Run performs the model computation using the bound attributes.
	Run() error
}

// Attribute is a named read/write slot into a model instance.
type Attribute struct {
	Name  string
	Kind  Kind
	count *int
	array *[]float64
}

// Count declares the reserved period-count attribute.
func Count(p *int) Attribute {
	return Attribute{Name: CountName, Kind: ScalarCount, count: p}
}

// Array declares a numeric-array attribute.
func Array(name string, p *[]float64) Attribute {
	return Attribute{Name: name, Kind: NumericArray, array: p}
}

// Valid reports whether the attribute has an accessor matching its kind.
func (a Attribute) Valid() bool {
	switch a.Kind {
	case ScalarCount:
		return a.count != nil
	case NumericArray:
		return a.array != nil
	default:
		return false
	}
}

// Count returns the value of a ScalarCount attribute.
func (a Attribute) Count() int {
	if a.count == nil {
		return 0
	}
	return *a.count
}

// SetCount writes a ScalarCount attribute.
func (a Attribute) SetCount(n int) error {
	if a.Kind != ScalarCount || a.count == nil {
		return fmt.Errorf("attribute %q is %s, not %s", a.Name, a.Kind, ScalarCount)
	}
	*a.count = n
	return nil
}

// Floats returns the current slice of a NumericArray attribute. The slice is
// shared with the model.
func (a Attribute) Floats() []float64 {
	if a.array == nil {
		return nil
	}
	return *a.array
}

// SetFloats writes a NumericArray attribute.
func (a Attribute) SetFloats(v []float64) error {
	if a.Kind != NumericArray || a.array == nil {
		return fmt.Errorf("attribute %q is %s, not %s", a.Name, a.Kind, NumericArray)
	}
	*a.array = v
	return nil
}
