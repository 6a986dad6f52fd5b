package record

import (
	"errors"
	"fmt"
	"iter"
)

// End may be passed as the stop bound of Slice to mean "through the last
// row".
const End = -1

// Collection wraps a Source with a cache of every record pulled from it, so
// the rows can be iterated repeatedly, indexed and sliced while the source is
// only read as far as each request needs and never twice.
//
// The cache is always a prefix of the source sequence in source order. Len
// reports the size of that prefix, which is less than the final row count
// while the collection is still pending.
//
// A Collection is not safe for concurrent use. Cursors from Iter may be
// interleaved freely on one goroutine.
type Collection struct {
	src     Source
	rows    []*Record
	pending bool
}

// NewCollection returns a Collection that reads lazily from src.
func NewCollection(src Source) *Collection {
	return &Collection{src: src, pending: true}
}

// FromRecords returns a lazy Collection over records.
func FromRecords(records ...*Record) *Collection {
	return NewCollection(SliceSource(records...))
}

// Snapshot returns a Collection that is already fully materialized with
// records and will never pull.
func Snapshot(records ...*Record) *Collection {
	return &Collection{rows: append([]*Record(nil), records...)}
}

// Pending reports whether the source may still have rows.
func (c *Collection) Pending() bool { return c.pending }

// Len returns the number of records pulled so far.
func (c *Collection) Len() int { return len(c.rows) }

// Advance pulls the next record from the source and caches it. Once the
// source is exhausted Advance returns ErrExhausted and the collection stops
// being pending.
func (c *Collection) Advance() (*Record, error) {
	if !c.pending {
		return nil, ErrExhausted
	}
	r, err := c.src.Next()
	if errors.Is(err, ErrExhausted) {
		c.pending = false
		c.src = nil
		return nil, ErrExhausted
	}
	if err != nil {
		return nil, err
	}
	c.rows = append(c.rows, r)
	return r, nil
}

// fill pulls until n records are cached or the source ends. A negative n
// drains the source.
func (c *Collection) fill(n int) error {
	for c.pending && (n < 0 || len(c.rows) < n) {
		if _, err := c.Advance(); err != nil {
			if errors.Is(err, ErrExhausted) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Index returns the record at position i, pulling as many rows as needed to
// reach it.
func (c *Collection) Index(i int) (*Record, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: row %d", ErrOutOfRange, i)
	}
	if err := c.fill(i + 1); err != nil {
		return nil, err
	}
	if i >= len(c.rows) {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, i, len(c.rows))
	}
	return c.rows[i], nil
}

// Slice pulls until stop rows are cached (or the source ends when stop is
// End) and returns a new, fully materialized Collection holding rows
// [start, stop). Bounds past the end are clamped as with Go slices; the
// result is empty when start >= stop.
func (c *Collection) Slice(start, stop int) (*Collection, error) {
	if start < 0 || (stop < 0 && stop != End) {
		return nil, fmt.Errorf("%w: slice [%d:%d]", ErrOutOfRange, start, stop)
	}
	if err := c.fill(stop); err != nil {
		return nil, err
	}
	hi := len(c.rows)
	if stop != End && stop < hi {
		hi = stop
	}
	if start >= hi {
		return Snapshot(), nil
	}
	return Snapshot(c.rows[start:hi]...), nil
}

// Iter returns a new Cursor positioned before the first record.
func (c *Collection) Iter() *Cursor {
	return &Cursor{c: c}
}

// Range returns an iterator over every record. A source failure is yielded
// once as the final pair.
func (c *Collection) Range() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		cur := c.Iter()
		for cur.Next() {
			if !yield(cur.Record(), nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// All drains the source and returns every record in order.
func (c *Collection) All() ([]*Record, error) {
	var out []*Record
	cur := c.Iter()
	for cur.Next() {
		out = append(out, cur.Record())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AllMaps is All with each record converted by Record.AsMap.
func (c *Collection) AllMaps() ([]map[string]Value, error) {
	rows, err := c.All()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]Value, len(rows))
	for i, r := range rows {
		out[i] = r.AsMap()
	}
	return out, nil
}

// AllOrderedMaps is All with each record converted by Record.AsOrderedMap.
func (c *Collection) AllOrderedMaps() ([]OrderedMap, error) {
	rows, err := c.All()
	if err != nil {
		return nil, err
	}
	out := make([]OrderedMap, len(rows))
	for i, r := range rows {
		out[i] = r.AsOrderedMap()
	}
	return out, nil
}

// First returns the first record, or nil if the collection is empty.
func (c *Collection) First() (*Record, error) {
	return c.FirstOr(nil)
}

// FirstOr returns the first record. If the collection is empty it returns
// fallback as the error; a nil fallback makes it behave like First.
func (c *Collection) FirstOr(fallback error) (*Record, error) {
	r, err := c.Index(0)
	if errors.Is(err, ErrOutOfRange) {
		return nil, fallback
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FirstOrDefault returns the first record, or def if the collection is
// empty.
func (c *Collection) FirstOrDefault(def *Record) (*Record, error) {
	r, err := c.First()
	if err != nil {
		return nil, err
	}
	if r == nil {
		return def, nil
	}
	return r, nil
}

// One returns the only record, or nil if the collection is empty. It fails
// with ErrTooManyRows if a second row exists.
func (c *Collection) One() (*Record, error) {
	return c.OneOr(nil)
}

// OneOr is One with the empty case handled as in FirstOr. ErrTooManyRows
// takes precedence over fallback.
func (c *Collection) OneOr(fallback error) (*Record, error) {
	_, err := c.Index(1)
	if err == nil {
		return nil, ErrTooManyRows
	}
	if !errors.Is(err, ErrOutOfRange) {
		return nil, err
	}
	return c.FirstOr(fallback)
}

// OneOrDefault is One returning def instead of nil for an empty collection.
func (c *Collection) OneOrDefault(def *Record) (*Record, error) {
	r, err := c.One()
	if err != nil {
		return nil, err
	}
	if r == nil {
		return def, nil
	}
	return r, nil
}

// Scalar returns the first column of the only record, or def if the
// collection is empty.
func (c *Collection) Scalar(def Value) (Value, error) {
	r, err := c.One()
	if err != nil {
		return Value{}, err
	}
	if r == nil {
		return def, nil
	}
	return r.Index(0)
}

// String implements fmt.Stringer.
func (c *Collection) String() string {
	return fmt.Sprintf("<Collection size=%d pending=%t>", len(c.rows), c.pending)
}

// Cursor is an independent position over a Collection. All cursors of a
// collection share its cache: a cursor replays cached records and only pulls
// from the source once it passes the end of the cache.
type Cursor struct {
	c   *Collection
	pos int
	cur *Record
	err error
}

// Next advances the cursor. It returns false when the rows are exhausted or
// the source failed; check Err to tell the two apart.
func (cur *Cursor) Next() bool {
	if cur.err != nil {
		return false
	}
	if cur.pos < len(cur.c.rows) {
		cur.cur = cur.c.rows[cur.pos]
		cur.pos++
		return true
	}
	r, err := cur.c.Advance()
	if err != nil {
		cur.cur = nil
		if !errors.Is(err, ErrExhausted) {
			cur.err = err
		}
		return false
	}
	cur.cur = r
	cur.pos++
	return true
}

// Record returns the record the cursor is on.
func (cur *Cursor) Record() *Record { return cur.cur }

// Index returns the position of the current record, or -1 before the first
// call to Next.
func (cur *Cursor) Index() int { return cur.pos - 1 }

// Err returns the source failure that stopped the cursor, if any.
func (cur *Cursor) Err() error { return cur.err }
