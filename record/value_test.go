package record

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestValueOf(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name    string
		in      any
		want    Value
		wantErr error
	}{
		{"nil", nil, Null(), nil},
		{"string", "hello", Text("hello"), nil},
		{"empty string", "", Text(""), nil},
		{"bool", true, Boolean(true), nil},
		{"int", 42, Integer(42), nil},
		{"int8", int8(-8), Integer(-8), nil},
		{"int32", int32(32), Integer(32), nil},
		{"int64", int64(math.MaxInt64), Integer(math.MaxInt64), nil},
		{"uint16", uint16(16), Integer(16), nil},
		{"uint64 in range", uint64(64), Integer(64), nil},
		{"uint64 overflow", uint64(math.MaxUint64), Value{}, ErrUnsupportedType},
		{"float32", float32(1.5), Double(1.5), nil},
		{"float64", 3.14, Double(3.14), nil},
		{"value passthrough", Text("v"), Text("v"), nil},
		{"slice", []byte("x"), Value{}, ErrUnsupportedType},
		{"struct", struct{}{}, Value{}, ErrUnsupportedType},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValueOf(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: want %v got %v", tc.wantErr, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("value mismatch: want %v (%s) got %v (%s)", tc.want, tc.want.Kind(), got, got.Kind())
			}
		})
	}
}

func TestValueAccessors(t *testing.T) {
	t.Parallel()

	if s, ok := Text("a").AsText(); !ok || s != "a" {
		t.Fatalf("AsText: want a got %q (%t)", s, ok)
	}
	if _, ok := Integer(1).AsText(); ok {
		t.Fatalf("AsText on integer should not be ok")
	}
	if i, ok := Integer(9).AsInteger(); !ok || i != 9 {
		t.Fatalf("AsInteger: want 9 got %d (%t)", i, ok)
	}
	if b, ok := Boolean(true).AsBoolean(); !ok || !b {
		t.Fatalf("AsBoolean: want true got %t (%t)", b, ok)
	}
	if f, ok := Double(2.5).AsDouble(); !ok || f != 2.5 {
		t.Fatalf("AsDouble: want 2.5 got %v (%t)", f, ok)
	}
	if _, ok := Null().AsDouble(); ok {
		t.Fatalf("AsDouble on null should not be ok")
	}
	if !(Value{}).IsNull() {
		t.Fatalf("zero Value should be null")
	}
}

func TestValueEqual(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same integer", Integer(1), Integer(1), true},
		{"different integer", Integer(1), Integer(2), false},
		{"integer vs double", Integer(1), Double(1), false},
		{"text vs null", Text(""), Null(), false},
		{"false vs null", Boolean(false), Null(), false},
		{"nulls", Null(), Value{}, true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Fatalf("Equal(%v, %v): want %t got %t", tc.a, tc.b, tc.want, got)
			}
		})
	}
}

func TestValueJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal([]Value{Null(), Text("a"), Integer(3), Boolean(false), Double(0.5)})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if got, want := string(b), `[null,"a",3,false,0.5]`; got != want {
		t.Fatalf("JSON mismatch: want %s got %s", want, got)
	}
}
