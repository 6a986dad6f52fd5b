package record

// Source is a one-shot, forward-only producer of records. Next returns the
// next record in order, or ErrExhausted once there are none left. Any other
// error is passed through to the caller and does not end the sequence.
type Source interface {
	Next() (*Record, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (*Record, error)

// Next calls f.
func (f SourceFunc) Next() (*Record, error) { return f() }

// sliceSource yields the records of a slice in order.
type sliceSource struct {
	records []*Record
	ptr     int
}

// SliceSource returns a Source that yields records in order.
func SliceSource(records ...*Record) Source {
	return &sliceSource{records: records}
}

func (s *sliceSource) Next() (*Record, error) {
	if s.ptr >= len(s.records) {
		return nil, ErrExhausted
	}
	r := s.records[s.ptr]
	s.ptr++
	return r, nil
}
