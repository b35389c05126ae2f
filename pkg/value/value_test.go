package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoercions(t *testing.T) {
	assert.Equal(t, int64(1), Boolean(true).ToInt())
	assert.Equal(t, int64(0), Boolean(false).ToInt())
	assert.Equal(t, int64(5), Integer(5).ToInt())
	assert.Equal(t, int64(0), Text("x").ToInt())
	assert.Equal(t, int64(0), Null().ToInt())

	assert.True(t, Integer(1).ToBool())
	assert.False(t, Integer(0).ToBool())
	assert.True(t, Boolean(true).ToBool())
	assert.False(t, Text("x").ToBool())
	assert.False(t, Null().ToBool())
}

func TestEquality(t *testing.T) {
	assert.True(t, Integer(1).Eq(Integer(1)))
	assert.False(t, Integer(1).Eq(Integer(2)))
	assert.False(t, Integer(1).Eq(Text("1")))
	assert.False(t, Null().Eq(Null()), "Null never equals Null under two-valued semantics")
}

func TestOrdering(t *testing.T) {
	require.Equal(t, KindBoolean, Integer(1).Lt(Integer(2)).Kind())
	assert.True(t, Integer(1).Lt(Integer(2)).Bool())
	assert.False(t, Integer(2).Lt(Integer(1)).Bool())
	// ordering undefined between non-Integer pairs: Lt/Gt false, Le/Ge true
	assert.False(t, Text("a").Lt(Text("b")).Bool())
	assert.False(t, Text("a").Gt(Text("b")).Bool())
	assert.True(t, Text("a").Le(Text("b")).Bool())
	assert.True(t, Text("a").Ge(Text("b")).Bool())
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, Integer(3), Integer(1).Add(Integer(2)))
	assert.Equal(t, Integer(-1), Integer(1).Sub(Integer(2)))
	assert.Equal(t, Integer(6), Integer(2).Mul(Integer(3)))
	assert.Equal(t, Integer(3), Integer(9).Div(Integer(3)))
	assert.Equal(t, Integer(1), Integer(7).Mod(Integer(3)))
	assert.True(t, Text("x").Add(Integer(1)).IsNull(), "arithmetic on a non-Integer operand yields Null")
}

func TestDivisionByZeroPanics(t *testing.T) {
	assert.Panics(t, func() { Integer(1).Div(Integer(0)) })
	assert.Panics(t, func() { Integer(1).Mod(Integer(0)) })
}

func TestBitwise(t *testing.T) {
	assert.Equal(t, Integer(2), Integer(6).BitAnd(Integer(3)))
	assert.Equal(t, Integer(7), Integer(6).BitOr(Integer(3)))
	assert.Equal(t, Integer(-8), Integer(7).BitNot())
	assert.Equal(t, Integer(8), Integer(1).Shl(Integer(3)))
	assert.Equal(t, Integer(1), Integer(8).Shr(Integer(3)))
}

func TestUnary(t *testing.T) {
	assert.Equal(t, Integer(-5), Integer(5).Neg())
	assert.Equal(t, Text("x"), Text("x").Neg(), "negating a non-Integer is a no-op")
	assert.Equal(t, Boolean(false), Boolean(true).Not())
}

func TestString(t *testing.T) {
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "true", Boolean(true).String())
	assert.Equal(t, "false", Boolean(false).String())
	assert.Equal(t, "26", Integer(26).String())
	assert.Equal(t, "Foo", Text("Foo").String())
}
