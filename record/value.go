package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which member of the Value union is set.
type Kind uint8

const (
	// KindNull is an absent value. It is the zero Kind.
	KindNull Kind = iota
	// KindText is a string value.
	KindText
	// KindInteger is a signed 64-bit integer value.
	KindInteger
	// KindBoolean is a boolean value.
	KindBoolean
	// KindDouble is a 64-bit floating point value.
	KindDouble
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindDouble:
		return "double"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single column value. Exactly one member is meaningful, selected
// by Kind. The zero Value is Null.
type Value struct {
	kind Kind
	text string
	num  int64
	dbl  float64
	flag bool
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Integer returns an integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, num: i} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{kind: KindBoolean, flag: b} }

// Double returns a floating point value.
func Double(f float64) Value { return Value{kind: KindDouble, dbl: f} }

// ValueOf converts a Go value into a Value. Strings, booleans, integers that
// fit in an int64, floats, nil and Value itself are accepted; anything else
// fails with ErrUnsupportedType.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case string:
		return Text(x), nil
	case bool:
		return Boolean(x), nil
	case int:
		return Integer(int64(x)), nil
	case int8:
		return Integer(int64(x)), nil
	case int16:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return unsigned(uint64(x))
	case uint8:
		return Integer(int64(x)), nil
	case uint16:
		return Integer(int64(x)), nil
	case uint32:
		return Integer(int64(x)), nil
	case uint64:
		return unsigned(x)
	case float32:
		return Double(float64(x)), nil
	case float64:
		return Double(x), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func unsigned(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedType, u)
	}
	return Integer(int64(u)), nil
}

// Kind reports which member of the union is set.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the absent value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsText returns the text member. ok is false if v is not text.
func (v Value) AsText() (s string, ok bool) { return v.text, v.kind == KindText }

// AsInteger returns the integer member. ok is false if v is not an integer.
func (v Value) AsInteger() (i int64, ok bool) { return v.num, v.kind == KindInteger }

// AsBoolean returns the boolean member. ok is false if v is not a boolean.
func (v Value) AsBoolean() (b bool, ok bool) { return v.flag, v.kind == KindBoolean }

// AsDouble returns the floating point member. ok is false if v is not a double.
func (v Value) AsDouble() (f float64, ok bool) { return v.dbl, v.kind == KindDouble }

// Equal reports whether v and o are the same kind and hold the same value.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.Interface() == o.Interface()
}

// Interface returns the value as nil, string, int64, bool or float64.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return v.num
	case KindBoolean:
		return v.flag
	case KindDouble:
		return v.dbl
	default:
		return nil
	}
}

// String formats the value for display. Null is rendered as NULL.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindBoolean:
		return strconv.FormatBool(v.flag)
	case KindDouble:
		return strconv.FormatFloat(v.dbl, 'g', -1, 64)
	default:
		return "NULL"
	}
}

// MarshalJSON encodes the value as a plain JSON scalar, null for Null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}
