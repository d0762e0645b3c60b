// Package reorder moves the tables of a TOML document, and the entries of a
// single table, into a canonical order without disturbing any other bytes.
//
// A document is first partitioned into segments with NewTables. Each segment
// starts at a table header and absorbs all trailing trivia up to the next
// header. Segments are then rewritten into the target order with a single
// splice of the document's children.
package reorder

import "errors"

// Sentinel errors for classification via errors.Is.
var (
	// ErrNameNotFound is returned when a segment name is not present.
	ErrNameNotFound = errors.New("segment name not found")

	// ErrMalformedSegment is returned in strict mode for an entry without a key.
	ErrMalformedSegment = errors.New("malformed segment")
)
