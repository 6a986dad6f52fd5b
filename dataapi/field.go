package dataapi

import (
	"fmt"
	"sort"

	"github.com/risparfinance/camus/record"
)

// Field is a scalar in its wire form. Exactly one member is set; a null is
// sent as {"isNull": true}.
type Field struct {
	StringValue  *string  `json:"stringValue,omitempty"`
	LongValue    *int64   `json:"longValue,omitempty"`
	BooleanValue *bool    `json:"booleanValue,omitempty"`
	DoubleValue  *float64 `json:"doubleValue,omitempty"`
	IsNull       *bool    `json:"isNull,omitempty"`
}

// StringField returns a stringValue field.
func StringField(s string) Field { return Field{StringValue: &s} }

// LongField returns a longValue field.
func LongField(i int64) Field { return Field{LongValue: &i} }

// BooleanField returns a booleanValue field.
func BooleanField(b bool) Field { return Field{BooleanValue: &b} }

// DoubleField returns a doubleValue field.
func DoubleField(f float64) Field { return Field{DoubleValue: &f} }

// NullField returns the explicit null marker.
func NullField() Field {
	t := true
	return Field{IsNull: &t}
}

// FieldFromValue returns the wire form of v.
func FieldFromValue(v record.Value) Field {
	switch v.Kind() {
	case record.KindText:
		s, _ := v.AsText()
		return StringField(s)
	case record.KindInteger:
		i, _ := v.AsInteger()
		return LongField(i)
	case record.KindBoolean:
		b, _ := v.AsBoolean()
		return BooleanField(b)
	case record.KindDouble:
		f, _ := v.AsDouble()
		return DoubleField(f)
	default:
		return NullField()
	}
}

// Value decodes the field. The null marker becomes record.Null. A field
// with no member, or more than one, fails with ErrUnsupportedField.
func (f Field) Value() (record.Value, error) {
	var (
		v   record.Value
		set int
	)
	if f.StringValue != nil {
		v, set = record.Text(*f.StringValue), set+1
	}
	if f.LongValue != nil {
		v, set = record.Integer(*f.LongValue), set+1
	}
	if f.BooleanValue != nil {
		v, set = record.Boolean(*f.BooleanValue), set+1
	}
	if f.DoubleValue != nil {
		v, set = record.Double(*f.DoubleValue), set+1
	}
	if f.IsNull != nil && *f.IsNull {
		v, set = record.Null(), set+1
	}
	if set != 1 {
		return record.Value{}, fmt.Errorf("%w: %d members set", ErrUnsupportedField, set)
	}
	return v, nil
}

// RowValues decodes one wire row.
func RowValues(row []Field) ([]record.Value, error) {
	values := make([]record.Value, len(row))
	for i, f := range row {
		v, err := f.Value()
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// SQLParameter is a named statement parameter.
type SQLParameter struct {
	Name  string `json:"name"`
	Value Field  `json:"value"`
}

// Parameters type-tags params for the wire: strings become stringValue,
// integers longValue, booleans booleanValue, floats doubleValue and nil the
// isNull marker. record.Value is accepted as is. The result is sorted by
// name. Any other type fails with ErrUnsupportedParameterType.
func Parameters(params map[string]any) ([]SQLParameter, error) {
	if len(params) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]SQLParameter, 0, len(params))
	for _, name := range names {
		v, err := record.ValueOf(params[name])
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q: %w", ErrUnsupportedParameterType, name, err)
		}
		out = append(out, SQLParameter{Name: name, Value: FieldFromValue(v)})
	}
	return out, nil
}
