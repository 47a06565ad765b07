// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cursorstream

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"

	"github.com/mlibrary/solr-cursorstream/pkg/types"
)

// startCursor is the sentinel token that requests the first page.
const startCursor = "*"

// Defaults applied by New when the corresponding option is not given.
const (
	DefaultHandler = "select"
	DefaultQuery   = "*:*"
	DefaultSort    = "id asc"
	DefaultRows    = 100
)

// Stream lazily yields every document matching a query, fetching pages
// on demand. Cursor state is consumed as the stream is read: a Stream
// is not rewindable, and re-reading from the start requires a fresh
// instance with the same configuration. A Stream must not be shared
// between goroutines.
type Stream struct {
	// BaseURL is the endpoint root, trailing slash trimmed.
	BaseURL string

	// Query holds the search parameters. Mutating it after iteration
	// begins is unsupported.
	Query Query

	// Fetcher fetches pages. Left nil, a default Client with the
	// retrying transport is created on first use and reused for every
	// page.
	Fetcher Fetcher

	// Log receives one progress line per fetched page. Nil discards.
	Log io.Writer

	// cursor is the token for the next fetch; prevCursor the token used
	// by the previous fetch. The stream is exhausted exactly when they
	// are equal after a fetch.
	cursor     string
	prevCursor string

	numFound int64
	fetches  int
}

// Option configures a Stream before first use.
type Option func(*Stream)

// WithHandler sets the request path segment appended to the base URL.
func WithHandler(handler string) Option {
	return func(s *Stream) { s.Query.Handler = handler }
}

// WithQuery sets the primary query expression.
func WithQuery(text string) Option {
	return func(s *Stream) { s.Query.Text = text }
}

// WithFilters replaces the filter-query expressions.
func WithFilters(filters ...string) Option {
	return func(s *Stream) { s.Query.Filters = filters }
}

// WithSort sets the sort specification. It must reference a field that
// uniquely orders results.
func WithSort(sort string) Option {
	return func(s *Stream) { s.Query.Sort = sort }
}

// WithRows sets the number of documents requested per page.
func WithRows(rows int) Option {
	return func(s *Stream) { s.Query.Rows = rows }
}

// WithFields restricts the fields returned per document.
func WithFields(fields ...string) Option {
	return func(s *Stream) { s.Query.Fields = fields }
}

// WithFetcher injects a page fetcher, replacing the default HTTP
// client.
func WithFetcher(f Fetcher) Option {
	return func(s *Stream) { s.Fetcher = f }
}

// WithHTTPClient uses hc for page fetches, wrapped in the retrying
// transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Stream) {
		s.Fetcher = NewClient(s.BaseURL, &RetryingDoer{Client: hc})
	}
}

// WithLog sets the progress sink.
func WithLog(w io.Writer) Option {
	return func(s *Stream) { s.Log = w }
}

// New returns a stream over the documents matching the configured
// query. Options apply before the stream is returned; the defaults
// are handler "select", query "*:*", a single match-all filter, sort
// "id asc", and 100 rows per page.
func New(baseURL string, opts ...Option) *Stream {
	s := &Stream{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Query: Query{
			Handler: DefaultHandler,
			Text:    DefaultQuery,
			Filters: []string{"*:*"},
			Sort:    DefaultSort,
			Rows:    DefaultRows,
		},
		cursor: startCursor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validate checks the configuration the fetch loop depends on. Runs
// before any network call.
func (s *Stream) validate() error {
	var missing []string
	if s.Query.Handler == "" {
		missing = append(missing, "handler")
	}
	if len(s.Query.Filters) == 0 {
		missing = append(missing, "filters")
	}
	if s.Query.Rows <= 0 {
		missing = append(missing, "rows")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// Documents returns a pull-based sequence over the matching documents.
// Advancing past the in-memory page triggers exactly one fetch;
// otherwise no network activity occurs. A configuration or fetch error
// is yielded once with a nil document and ends the sequence. Breaking
// out early leaves no dangling resources; the underlying HTTP client is
// reusable and owned by the stream.
func (s *Stream) Documents(ctx context.Context) iter.Seq2[types.Document, error] {
	return func(yield func(types.Document, error) bool) {
		if err := s.validate(); err != nil {
			yield(nil, err)
			return
		}
		if s.Fetcher == nil {
			s.Fetcher = NewClient(s.BaseURL, nil)
		}
		// A zero-value Stream (constructed without New) starts at the
		// beginning.
		if s.cursor == "" && s.prevCursor == "" {
			s.cursor = startCursor
		}

		for s.prevCursor != s.cursor {
			page, err := s.Fetcher.FetchPage(ctx, s.cursor, s.Query)
			if err != nil {
				yield(nil, err)
				return
			}
			s.fetches++
			s.numFound = page.NumFound
			s.logf("page %d: cursor=%s docs=%d numFound=%d\n",
				s.fetches, s.cursor, len(page.Docs), page.NumFound)

			s.prevCursor = s.cursor
			s.cursor = page.NextCursor

			for _, doc := range page.Docs {
				if !yield(doc, nil) {
					return
				}
			}
		}
	}
}

// Collect drains the stream into a slice. On error the documents
// yielded before the failure are returned alongside it.
func (s *Stream) Collect(ctx context.Context) ([]types.Document, error) {
	var docs []types.Document
	for doc, err := range s.Documents(ctx) {
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// NumFound reports the total match count from the most recent page.
// Informational only: it is zero before the first fetch and may drift
// if the underlying index changes mid-stream.
func (s *Stream) NumFound() int64 { return s.numFound }

// Fetches reports how many page requests the stream has issued.
func (s *Stream) Fetches() int { return s.fetches }

func (s *Stream) logf(format string, args ...any) {
	if s.Log != nil {
		fmt.Fprintf(s.Log, format, args...)
	}
}
