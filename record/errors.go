package record

import "errors"

var (
	// ErrOutOfRange is returned when an index or slice bound is beyond the
	// rows (or columns) that are, or will eventually be, available.
	ErrOutOfRange = errors.New("index out of range")

	// ErrExhausted is returned by a Source, and by Collection.Advance, once
	// the underlying sequence has no more rows.
	ErrExhausted = errors.New("collection contains no more rows")

	// ErrFieldNotFound is returned when a record has no field with the
	// requested name.
	ErrFieldNotFound = errors.New("record contains no such field")

	// ErrDuplicateField is returned when a record has more than one field
	// with the requested name.
	ErrDuplicateField = errors.New("record contains multiple fields with this name")

	// ErrTooManyRows is returned by One and Scalar when the collection holds
	// more than one row.
	ErrTooManyRows = errors.New("collection contained more than one row")

	// ErrLengthMismatch is returned when a record is built from keys and
	// values of different lengths.
	ErrLengthMismatch = errors.New("keys and values differ in length")

	// ErrUnsupportedType is returned when a Go value has no Value mapping.
	ErrUnsupportedType = errors.New("unsupported value type")
)
