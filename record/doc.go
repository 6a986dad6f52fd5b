/*
Package record provides the row and result-set types returned by a
database.Database.

A Record is an immutable row of named, positionally ordered values. Values are
a small tagged union (Null, Text, Integer, Boolean, Double) rather than bare
interfaces, so callers switch on Kind instead of type-asserting.

A Collection wraps a one-shot Source of records with a memoizing cache. It
pulls from the source only as far as a request needs (Index, Slice, a Cursor
reaching the end of the cache) and keeps every pulled record, so the rows can
be iterated any number of times by any number of cursors without fetching
anything twice:

	rows := record.FromRecords(a, b, c)
	first, _ := rows.First() // pulls one row
	all, _ := rows.All()     // pulls the rest
	for r, err := range rows.Range() {
		// replays the cache
	}

Len reports the rows pulled so far, not the eventual total, while Pending is
true.

Lookups fail with sentinel errors (ErrOutOfRange, ErrFieldNotFound,
ErrDuplicateField, ErrTooManyRows) that can be checked with errors.Is.
*/
package record
