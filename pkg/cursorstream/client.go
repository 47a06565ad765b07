// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cursorstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mlibrary/solr-cursorstream/internal/httputil"
	"github.com/mlibrary/solr-cursorstream/pkg/types"
)

// Fetcher produces one decoded page per cursor. Implementations must
// not retry across pages; a cursor is consumed by exactly one fetch.
type Fetcher interface {
	FetchPage(ctx context.Context, cursor string, q Query) (*types.Page, error)
}

// Doer executes a single HTTP request. *http.Client satisfies it, as
// does RetryingDoer.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryingDoer adapts httputil.DoWithRetry to the Doer interface. It is
// the default transport: connection pooling comes from the embedded
// http.Client, retry-on-failure from the backoff loop.
type RetryingDoer struct {
	Client *http.Client

	// MaxRetries bounds retry attempts; zero selects the default.
	MaxRetries int
}

// Do executes req, retrying rate-limit and transient upstream failures.
func (d *RetryingDoer) Do(req *http.Request) (*http.Response, error) {
	return httputil.DoWithRetry(req.Context(), d.Client, req, d.MaxRetries)
}

// Client fetches single pages from a search endpoint. It holds no
// cursor state; Stream owns that.
type Client struct {
	// BaseURL is the endpoint root, without a trailing slash.
	BaseURL string

	// HTTP executes the requests.
	HTTP Doer

	// UserAgent is sent with every request when non-empty.
	UserAgent string
}

// NewClient returns a page fetcher for the endpoint at baseURL. A nil
// doer selects the default retrying transport.
func NewClient(baseURL string, doer Doer) *Client {
	if doer == nil {
		doer = &RetryingDoer{Client: &http.Client{Timeout: 60 * time.Second}}
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    doer,
	}
}

// FetchPage issues one GET for the given cursor and decodes the
// response into a page. It does not retry; retries, if any, happen
// inside the Doer and are opaque here.
func (c *Client) FetchPage(ctx context.Context, cursor string, q Query) (*types.Page, error) {
	reqURL := c.BaseURL + "/" + q.Handler + "?" + buildParams(cursor, q).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: reqURL, Status: resp.StatusCode}
	}

	var body selectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &DecodeError{URL: reqURL, Err: err}
	}

	// A well-formed cursored response always carries a cursor. One is
	// absent when the sort omits the uniqueKey field, and paging on an
	// empty cursor would restart from the beginning forever.
	if body.NextCursorMark == "" {
		return nil, &DecodeError{URL: reqURL, Err: errNoCursor}
	}

	return &types.Page{
		Docs:       body.Response.Docs,
		NumFound:   body.Response.NumFound,
		NextCursor: body.NextCursorMark,
	}, nil
}

var errNoCursor = errors.New("response has no nextCursorMark (does the sort include the uniqueKey field?)")

// Search engine response JSON structures.
type selectResponse struct {
	Response       selectBody `json:"response"`
	NextCursorMark string     `json:"nextCursorMark"`
}

type selectBody struct {
	NumFound int64            `json:"numFound"`
	Docs     []types.Document `json:"docs"`
}
