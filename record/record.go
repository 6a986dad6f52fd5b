package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Record is a single row: column names paired positionally with values.
// Names are not required to be unique. A Record is immutable once built.
type Record struct {
	keys   []string
	values []Value
}

// New builds a Record. keys and values must have the same length; both are
// copied.
func New(keys []string, values []Value) (*Record, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}
	return &Record{
		keys:   append([]string(nil), keys...),
		values: append([]Value(nil), values...),
	}, nil
}

// Keys returns the column names in stored order, duplicates included.
func (r *Record) Keys() []string { return append([]string(nil), r.keys...) }

// Values returns the values in stored order, aligned with Keys.
func (r *Record) Values() []Value { return append([]Value(nil), r.values...) }

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.values) }

// Index returns the value at position i.
func (r *Record) Index(i int) (Value, error) {
	if i < 0 || i >= len(r.values) {
		return Value{}, fmt.Errorf("%w: field %d of %d", ErrOutOfRange, i, len(r.values))
	}
	return r.values[i], nil
}

// Get returns the value of the field called name. The name must occur
// exactly once.
func (r *Record) Get(name string) (Value, error) {
	found := -1
	for i, k := range r.keys {
		if k != name {
			continue
		}
		if found >= 0 {
			return Value{}, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		found = i
	}
	if found < 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return r.values[found], nil
}

// Lookup returns the value of the field called name, or def when the field
// is missing or ambiguous.
func (r *Record) Lookup(name string, def Value) Value {
	v, err := r.Get(name)
	if err != nil {
		return def
	}
	return v
}

// Equal reports whether r and o have the same keys and values in the same
// order.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.keys) != len(o.keys) {
		return false
	}
	for i := range r.keys {
		if r.keys[i] != o.keys[i] || !r.values[i].Equal(o.values[i]) {
			return false
		}
	}
	return true
}

// Fields returns the distinct column names, sorted.
func (r *Record) Fields() []string {
	seen := make(map[string]struct{}, len(r.keys))
	out := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AsMap returns the record as a map. For duplicated names the last value
// wins. A nil Record yields a nil map.
func (r *Record) AsMap() map[string]Value {
	if r == nil {
		return nil
	}
	m := make(map[string]Value, len(r.keys))
	for i, k := range r.keys {
		m[k] = r.values[i]
	}
	return m
}

// AsOrderedMap returns the record as key/value pairs in Keys order,
// duplicates included. A nil Record yields a nil OrderedMap.
func (r *Record) AsOrderedMap() OrderedMap {
	if r == nil {
		return nil
	}
	om := make(OrderedMap, len(r.keys))
	for i, k := range r.keys {
		om[i] = KeyVal{Key: k, Val: r.values[i]}
	}
	return om
}

// String formats the record as <Record {k: v, ...}>.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("<Record {")
	for i, k := range r.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", k, r.values[i])
	}
	sb.WriteString("}>")
	return sb.String()
}

// MarshalJSON encodes the record as a JSON object in Keys order.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.AsOrderedMap().MarshalJSON()
}

// KeyVal is one field of an OrderedMap.
type KeyVal struct {
	Key string
	Val Value
}

// OrderedMap is a record rendered as key/value pairs that keeps the column
// order of the record it came from.
type OrderedMap []KeyVal

// Get returns the first value stored under key.
func (om OrderedMap) Get(key string) (Value, bool) {
	for _, kv := range om {
		if kv.Key == key {
			return kv.Val, true
		}
	}
	return Value{}, false
}

// Keys returns the keys in order.
func (om OrderedMap) Keys() []string {
	keys := make([]string, len(om))
	for i, kv := range om {
		keys[i] = kv.Key
	}
	return keys
}

// MarshalJSON implements the json.Marshaler interface.
func (om OrderedMap) MarshalJSON() ([]byte, error) {
	if om == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range om {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(kv.Val)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
