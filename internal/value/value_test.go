package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericViewsPromoteIntToFloat(t *testing.T) {
	assert.Equal(t, 3.0, Int(3).Numeric())
	assert.Equal(t, 2.5, Float(2.5).Numeric())
}

func TestStringifyFloatAlwaysCarriesADecimalPoint(t *testing.T) {
	assert.Equal(t, "3.0", Float(3).Stringify())
	assert.Equal(t, "3.5", Float(3.5).Stringify())
}

func TestIsNullOnlyTrueForNullObject(t *testing.T) {
	assert.True(t, NullObject().IsNull())
	assert.False(t, Obj(&Object{ClassName: "Foo"}).IsNull())
	assert.False(t, Int(0).IsNull())
}

func TestNewObjectAssignsDistinctIdentity(t *testing.T) {
	a := NewObject("Point", []string{"x", "y"}, map[string]string{"x": "int", "y": "int"})
	b := NewObject("Point", []string{"x", "y"}, map[string]string{"x": "int", "y": "int"})
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Fields["x"].Present)
	assert.Equal(t, "int", a.Fields["x"].DeclaredType)
}

func TestTupleStringifyRendersElements(t *testing.T) {
	tup := Tup([]Value{Int(1), Str("x"), Bool(true)})
	assert.Equal(t, "(1, x, true)", tup.Stringify())
}
