// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for solr-cursorstream.
package types

// Document is one result record returned by the search engine. Field
// names map to whatever values the engine stored; the streaming layer
// treats them as opaque.
type Document map[string]any

// String returns the document's value for field as a string, or "" when
// the field is absent or not a string. Numeric identifiers decoded from
// JSON arrive as float64 and are not converted.
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// Page is one batch of documents produced by a single cursor fetch.
// It is immutable once decoded; the stream discards it after yielding
// its documents.
type Page struct {
	// Docs holds the page's documents in server-returned order.
	Docs []Document `json:"docs" yaml:"docs"`

	// NumFound is the total number of matches for the query across all
	// pages. Informational only; it does not drive termination.
	NumFound int64 `json:"num_found" yaml:"num_found"`

	// NextCursor is the opaque cursor token for the subsequent request.
	// A value equal to the cursor that produced this page means the
	// result set is exhausted.
	NextCursor string `json:"next_cursor" yaml:"next_cursor"`
}
