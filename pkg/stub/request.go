package stub

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
)

// Request is the normalized, read-only view of an outgoing HTTP request.
// Any hooked client representation is reduced to this shape before matching.
type Request struct {
	// Method is the HTTP method, e.g. "GET".
	Method string

	// URL is the absolute request URL.
	URL *url.URL

	// Header maps canonical header names to their value. Multi-valued
	// headers are joined with ", " per RFC 9110.
	Header map[string]string

	// Body is the fully materialized request body. Nil when the request
	// carries no body.
	Body []byte
}

// NewRequest snapshots r into a normalized view. A streamed body is drained
// into memory exactly once and replaced on r with a replayable reader, so an
// unmatched request can still be sent over the real network by a
// passthrough path.
func NewRequest(r *http.Request) (*Request, error) {
	if r.URL == nil {
		return nil, fmt.Errorf("request has no URL")
	}

	var body []byte
	if r.Body != nil && r.Body != http.NoBody {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	header := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) == 0 {
			continue
		}
		header[textproto.CanonicalMIMEHeaderKey(name)] = strings.Join(values, ", ")
	}

	u := *r.URL
	return &Request{
		Method: r.Method,
		URL:    &u,
		Header: header,
		Body:   body,
	}, nil
}

// HeaderGet returns the value of the named header, canonicalizing the key.
// Returns "" when the header is absent.
func (r *Request) HeaderGet(name string) string {
	return r.Header[textproto.CanonicalMIMEHeaderKey(name)]
}

// Clone returns a deep copy of the request view.
func (r *Request) Clone() *Request {
	c := &Request{Method: r.Method}
	if r.URL != nil {
		u := *r.URL
		c.URL = &u
	}
	if r.Header != nil {
		c.Header = make(map[string]string, len(r.Header))
		for k, v := range r.Header {
			c.Header[k] = v
		}
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return c
}

// String renders the request for diagnostics: request line, sorted headers,
// then the body when present.
func (r *Request) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.Method, r.URL)

	keys := make([]string, 0, len(r.Header))
	for k := range r.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n%s: %s", k, r.Header[k])
	}

	if len(r.Body) > 0 {
		fmt.Fprintf(&b, "\n\n%s", r.Body)
	}
	return b.String()
}
