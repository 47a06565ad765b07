// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cursorstream streams result documents from a Solr-style
// search endpoint that supports cursorMark pagination, presenting the
// paginated protocol as one lazy sequence of documents.
//
// A Stream owns the cursor state machine: it tracks the opaque cursor
// token across successive requests, detects exhaustion, and flattens
// finite pages into a memory-bounded iteration over individual
// documents. Pages are fetched on demand, one at a time, strictly
// sequentially; each cursor token is derived from the previous
// response, so pagination must not be parallelized.
//
//	s := cursorstream.New("http://localhost:8983/solr/catalog",
//		cursorstream.WithQuery("title:ahab"),
//		cursorstream.WithRows(500),
//	)
//	for doc, err := range s.Documents(ctx) {
//		if err != nil {
//			return err
//		}
//		process(doc)
//	}
//
// The sort must include the collection's uniqueKey field so the server
// can produce stable cursors; this is the caller's responsibility and
// is not validated beyond presence.
//
// Termination convention: the server signals exhaustion by echoing back
// the cursor it was given. The final partial page already carries the
// echoed cursor; when the result-set size is an exact multiple of the
// page size, one extra zero-document fetch is needed to observe the
// echo. The stream handles both cases with the same comparison.
package cursorstream
