// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cursorstream

import (
	"net/url"
	"strconv"
	"strings"
)

// Query holds the per-request search parameters. The zero value carries
// no parameters; New fills in the defaults.
type Query struct {
	// Handler is the request path segment appended to the base URL
	// (default "select").
	Handler string

	// Text is the primary query expression, sent as q (default "*:*").
	Text string

	// Filters are filter-query expressions, each sent as its own fq
	// parameter (default ["*:*"]).
	Filters []string

	// Sort is sent as sort (default "id asc"). It must reference a
	// field that uniquely orders results or the server cannot produce
	// stable cursors.
	Sort string

	// Rows is the number of documents requested per page (default 100).
	Rows int

	// Fields lists the fields to return, comma-joined into fl. Empty
	// means all fields.
	Fields []string
}

// buildParams assembles the request parameters for one cursor fetch.
// Parameters whose values are empty are omitted entirely rather than
// sent blank.
func buildParams(cursor string, q Query) url.Values {
	params := url.Values{}
	if cursor != "" {
		params.Set("cursorMark", cursor)
	}
	if q.Text != "" {
		params.Set("q", q.Text)
	}
	if q.Rows > 0 {
		params.Set("rows", strconv.Itoa(q.Rows))
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	for _, fq := range q.Filters {
		if fq != "" {
			params.Add("fq", fq)
		}
	}
	if len(q.Fields) > 0 {
		params.Set("fl", strings.Join(q.Fields, ","))
	}
	params.Set("wt", "json")
	return params
}
