package stub

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
)

// Response is what a matched stub answers with: either a concrete HTTP
// response (StatusCode, Header, Body) or a simulated transport failure
// (Err). Exactly one of the two is populated.
type Response struct {
	// StatusCode is the HTTP status, >= 100 for a concrete response.
	StatusCode int

	// Header holds response headers with canonical names.
	Header map[string]string

	// Body is the response body. May be nil.
	Body []byte

	// Err, when non-nil, marks this response as a simulated failure that
	// hooks deliver through the client's normal failure path.
	Err error

	gated   bool
	release chan struct{}
	once    sync.Once
}

// NewResponse returns a concrete response with the given status code.
func NewResponse(statusCode int) *Response {
	return &Response{StatusCode: statusCode, Header: map[string]string{}}
}

// Failure returns a response that simulates a transport-level failure.
func Failure(err error) *Response {
	return &Response{Err: err}
}

// ParseRaw builds a response from raw HTTP/1.x wire bytes, status line and
// headers included.
func ParseRaw(raw []byte) (*Response, error) {
	hr, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), nil)
	if err != nil {
		return nil, fmt.Errorf("parsing raw response: %w", err)
	}
	defer hr.Body.Close()

	body, err := io.ReadAll(hr.Body)
	if err != nil {
		return nil, fmt.Errorf("reading raw response body: %w", err)
	}

	resp := NewResponse(hr.StatusCode)
	for name, values := range hr.Header {
		resp.Header[textproto.CanonicalMIMEHeaderKey(name)] = strings.Join(values, ", ")
	}
	if len(body) > 0 {
		resp.Body = body
	}
	return resp, nil
}

// Failed reports whether this response simulates a failure.
func (r *Response) Failed() bool { return r.Err != nil }

// SetHeader sets a response header, canonicalizing the name.
func (r *Response) SetHeader(name, value string) {
	if r.Header == nil {
		r.Header = map[string]string{}
	}
	r.Header[textproto.CanonicalMIMEHeaderKey(name)] = value
}

// Gate marks the response as held back: hooks delivering it block in Wait
// until Go is called. Used to exercise in-flight states of asynchronous
// clients. Must be called before the stub is registered.
func (r *Response) Gate() *Response {
	r.gated = true
	r.release = make(chan struct{})
	return r
}

// Go releases a gated response. Idempotent; a no-op for ungated responses.
func (r *Response) Go() {
	if !r.gated {
		return
	}
	r.once.Do(func() { close(r.release) })
}

// Wait blocks until the response is released. Returns immediately for
// ungated responses.
func (r *Response) Wait() {
	if !r.gated {
		return
	}
	<-r.release
}
