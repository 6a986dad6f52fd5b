package record

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name    string
		keys    []string
		values  []Value
		wantErr error
	}{
		{"matched", []string{"id", "name"}, []Value{Integer(1), Text("a")}, nil},
		{"empty", nil, nil, nil},
		{"more keys", []string{"id", "name"}, []Value{Integer(1)}, ErrLengthMismatch},
		{"more values", []string{"id"}, []Value{Integer(1), Text("a")}, ErrLengthMismatch},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, err := New(tc.keys, tc.values)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: want %v got %v", tc.wantErr, err)
			}
			if err == nil && r.Len() != len(tc.keys) {
				t.Fatalf("length mismatch: want %d got %d", len(tc.keys), r.Len())
			}
		})
	}
}

func TestRecordGet(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, []string{"id", "name", "email", "email"}, Integer(1), Text(""), Text(""), Text(""))

	tt := []struct {
		name    string
		field   string
		want    Value
		wantErr error
	}{
		{"unique field", "id", Integer(1), nil},
		{"empty text", "name", Text(""), nil},
		{"duplicate field", "email", Value{}, ErrDuplicateField},
		{"missing field", "phone", Value{}, ErrFieldNotFound},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := r.Get(tc.field)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: want %v got %v", tc.wantErr, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("value mismatch: want %v got %v", tc.want, got)
			}
		})
	}
}

func TestRecordIndex(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, []string{"a", "b"}, Integer(7), Null())

	if v, err := r.Index(0); err != nil || !v.Equal(Integer(7)) {
		t.Fatalf("Index(0): want 7 got %v (%v)", v, err)
	}
	if v, err := r.Index(1); err != nil || !v.IsNull() {
		t.Fatalf("Index(1): want NULL got %v (%v)", v, err)
	}
	for _, i := range []int{-1, 2, 100} {
		if _, err := r.Index(i); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Index(%d): want ErrOutOfRange got %v", i, err)
		}
	}
}

func TestRecordLookup(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, []string{"id", "dup", "dup"}, Integer(1), Integer(2), Integer(3))
	def := Text("fallback")

	if got := r.Lookup("id", def); !got.Equal(Integer(1)) {
		t.Fatalf("want 1 got %v", got)
	}
	if got := r.Lookup("dup", def); !got.Equal(def) {
		t.Fatalf("want default for duplicate got %v", got)
	}
	if got := r.Lookup("missing", def); !got.Equal(def) {
		t.Fatalf("want default for missing got %v", got)
	}
}

func TestRecordImmutable(t *testing.T) {
	t.Parallel()

	keys := []string{"id"}
	values := []Value{Integer(1)}
	r := mustRecord(t, keys, values...)

	keys[0] = "changed"
	values[0] = Integer(2)
	r.Keys()[0] = "changed"
	r.Values()[0] = Integer(2)

	if diff := cmp.Diff([]string{"id"}, r.Keys()); diff != "" {
		t.Fatalf("keys changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Value{Integer(1)}, r.Values()); diff != "" {
		t.Fatalf("values changed (-want +got):\n%s", diff)
	}
}

func TestRecordMaps(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, []string{"z", "a", "m", "a"}, Integer(1), Integer(2), Integer(3), Integer(4))

	t.Run("ordered", func(t *testing.T) {
		om := r.AsOrderedMap()
		if diff := cmp.Diff([]string{"z", "a", "m", "a"}, om.Keys()); diff != "" {
			t.Fatalf("ordered keys mismatch (-want +got):\n%s", diff)
		}
		if v, ok := om.Get("a"); !ok || !v.Equal(Integer(2)) {
			t.Fatalf("ordered Get: want first value 2 got %v", v)
		}
	})

	t.Run("unordered", func(t *testing.T) {
		want := map[string]Value{"z": Integer(1), "a": Integer(4), "m": Integer(3)}
		if diff := cmp.Diff(want, r.AsMap()); diff != "" {
			t.Fatalf("map mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil record", func(t *testing.T) {
		var nilRecord *Record
		if nilRecord.AsMap() != nil || nilRecord.AsOrderedMap() != nil {
			t.Fatalf("expected nil maps from nil record")
		}
	})
}

func TestRecordFields(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, []string{"name", "id", "email", "email"}, Null(), Null(), Null(), Null())
	if diff := cmp.Diff([]string{"email", "id", "name"}, r.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordFormatting(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, []string{"id", "name", "ok", "score"}, Integer(1), Text("x"), Boolean(true), Null())

	if got, want := r.String(), "<Record {id: 1, name: x, ok: true, score: NULL}>"; got != want {
		t.Fatalf("String mismatch: want %q got %q", want, got)
	}

	b, err := r.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON returned error: %v", err)
	}
	if got, want := string(b), `{"id":1,"name":"x","ok":true,"score":null}`; got != want {
		t.Fatalf("JSON mismatch: want %s got %s", want, got)
	}
}

func mustRecord(t testing.TB, keys []string, values ...Value) *Record {
	t.Helper()
	r, err := New(keys, values)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return r
}
