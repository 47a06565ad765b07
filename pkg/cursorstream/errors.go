// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cursorstream

import (
	"fmt"
	"strings"
)

// ConfigError reports required stream configuration absent at iteration
// start. It is returned before any network activity occurs.
type ConfigError struct {
	// Missing names the absent fields.
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// TransportError reports a connection failure or a non-success HTTP
// status from a page fetch. It terminates the iteration that triggered
// it; documents yielded from earlier pages remain valid.
type TransportError struct {
	// URL is the request URL that failed.
	URL string

	// Status is the HTTP status code, or zero when the request never
	// completed.
	Status int

	// Err is the underlying cause, nil for status failures.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that does not match the expected
// shape. Surfaced the same way as TransportError.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
