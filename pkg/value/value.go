// Package value implements the tagged-union runtime value type shared by the
// parser, the expression evaluator, and the table storage layer.
package value

import (
	"fmt"

	"github.com/spf13/cast"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindText
	KindReal
	KindBoolean
)

// Value is a tagged union over the literal data an engine.Row cell can hold.
// Exactly one of the typed fields is meaningful, selected by Kind.
type Value struct {
	kind Kind
	i    int64
	s    string
	r    float64
	b    bool
}

func Null() Value                { return Value{kind: KindNull} }
func Integer(i int64) Value      { return Value{kind: KindInteger, i: i} }
func Text(s string) Value        { return Value{kind: KindText, s: s} }
func Real(r float64) Value       { return Value{kind: KindReal, r: r} }
func Boolean(b bool) Value       { return Value{kind: KindBoolean, b: b} }

func (v Value) Kind() Kind    { return v.kind }
func (v Value) IsNull() bool  { return v.kind == KindNull }
func (v Value) Int() int64    { return v.i }
func (v Value) Str() string   { return v.s }
func (v Value) Float() float64 { return v.r }
func (v Value) Bool() bool    { return v.b }

// ToInt coerces per spec: Boolean -> 1/0, Integer -> itself, else 0.
func (v Value) ToInt() int64 {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindBoolean:
		return cast.ToInt64(v.b)
	default:
		return 0
	}
}

// ToBool coerces per spec: Integer -> i != 0, Boolean -> itself, else false.
func (v Value) ToBool() bool {
	switch v.kind {
	case KindInteger:
		return v.i != 0
	case KindBoolean:
		return v.b
	default:
		return false
	}
}

// Eq is structural equality. Null is never equal to anything, including
// another Null (spec: two-valued, not three-valued, comparison semantics).
func (v Value) Eq(other Value) bool {
	if v.kind == KindNull || other.kind == KindNull {
		return false
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == other.i
	case KindText:
		return v.s == other.s
	case KindReal:
		return v.r == other.r
	case KindBoolean:
		return v.b == other.b
	}
	return false
}

func (v Value) Ne(other Value) bool {
	return !v.Eq(other)
}

// cmp compares two Integers; ordering between any other pair is undefined
// and reported as equal (spec §4.1: "Ordering is defined only between two
// Integers; all other pairs compare Equal").
func cmp(a, b Value) (c int, ok bool) {
	if a.kind == KindInteger && b.kind == KindInteger {
		switch {
		case a.i < b.i:
			return -1, true
		case a.i > b.i:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func (v Value) Lt(other Value) Value {
	c, ok := cmp(v, other)
	return Boolean(ok && c < 0)
}

func (v Value) Le(other Value) Value {
	c, ok := cmp(v, other)
	return Boolean(!ok || c <= 0)
}

func (v Value) Gt(other Value) Value {
	c, ok := cmp(v, other)
	return Boolean(ok && c > 0)
}

func (v Value) Ge(other Value) Value {
	c, ok := cmp(v, other)
	return Boolean(!ok || c >= 0)
}

// DivByZeroError is the panic value raised by Div and Mod on a zero
// divisor; the executor recovers it and turns it into a runtime error
// (spec §7: fatal to the statement).
type DivByZeroError struct{}

func (DivByZeroError) Error() string { return "division by zero" }

func bothInt(a, b Value) (int64, int64, bool) {
	if a.kind == KindInteger && b.kind == KindInteger {
		return a.i, b.i, true
	}
	return 0, 0, false
}

func (v Value) Add(other Value) Value {
	if x, y, ok := bothInt(v, other); ok {
		return Integer(x + y)
	}
	return Null()
}

func (v Value) Sub(other Value) Value {
	if x, y, ok := bothInt(v, other); ok {
		return Integer(x - y)
	}
	return Null()
}

func (v Value) Mul(other Value) Value {
	if x, y, ok := bothInt(v, other); ok {
		return Integer(x * y)
	}
	return Null()
}

func (v Value) Div(other Value) Value {
	x, y, ok := bothInt(v, other)
	if !ok {
		return Null()
	}
	if y == 0 {
		panic(DivByZeroError{})
	}
	return Integer(x / y)
}

func (v Value) Mod(other Value) Value {
	x, y, ok := bothInt(v, other)
	if !ok {
		return Null()
	}
	if y == 0 {
		panic(DivByZeroError{})
	}
	return Integer(x % y)
}

// And/Or/Not are the logical operators; operands coerced via ToBool.
func (v Value) And(other Value) Value { return Boolean(v.ToBool() && other.ToBool()) }
func (v Value) Or(other Value) Value  { return Boolean(v.ToBool() || other.ToBool()) }
func (v Value) Not() Value            { return Boolean(!v.ToBool()) }

// bitwise binary operators require both operands to be Integer-kind (spec
// §4.1: "both must be Integer for a non-Null result"); any other pair
// yields Null.
func (v Value) BitAnd(other Value) Value {
	if x, y, ok := bothInt(v, other); ok {
		return Integer(x & y)
	}
	return Null()
}

func (v Value) BitOr(other Value) Value {
	if x, y, ok := bothInt(v, other); ok {
		return Integer(x | y)
	}
	return Null()
}

func (v Value) Shl(other Value) Value {
	if x, y, ok := bothInt(v, other); ok {
		return Integer(x << (uint64(y) % 64))
	}
	return Null()
}

func (v Value) Shr(other Value) Value {
	if x, y, ok := bothInt(v, other); ok {
		return Integer(x >> (uint64(y) % 64))
	}
	return Null()
}

// BitNot coerces its single operand via ToInt (spec's unary operator rule
// does not impose the binary ops' Integer-kind requirement).
func (v Value) BitNot() Value { return Integer(^v.ToInt()) }

// Neg negates an Integer; every other kind is returned unchanged.
func (v Value) Neg() Value {
	if v.kind == KindInteger {
		return Integer(-v.i)
	}
	return v
}

// Pos is the unary + identity.
func (v Value) Pos() Value { return v }

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInteger:
		return fmt.Sprintf("%d", v.i)
	case KindText:
		return v.s
	case KindReal:
		return cast.ToString(v.r)
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	}
	return ""
}
