package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getmockd/httpstub/pkg/interceptor"
	"github.com/getmockd/httpstub/pkg/stub"
)

// Transport answers HTTP requests from the stub registry. The zero value is
// usable: it consults the default interceptor and passes through to
// http.DefaultTransport while Idle.
type Transport struct {
	// Interceptor resolves intercepted requests. Nil means the default
	// interceptor.
	Interceptor *interceptor.Interceptor

	// Underlying handles requests while the interceptor is Idle. Nil
	// means http.DefaultTransport.
	Underlying http.RoundTripper
}

// New returns a Transport bound to i.
func New(i *interceptor.Interceptor) *Transport {
	return &Transport{Interceptor: i}
}

// Client returns an *http.Client whose traffic flows through the stubbing
// engine bound to i (nil for the default interceptor).
func Client(i *interceptor.Interceptor) *http.Client {
	return &http.Client{Transport: New(i)}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	i := t.interceptor()
	if !i.IsStarted() {
		return t.underlying().RoundTrip(req)
	}

	view, err := stub.NewRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := i.Resolve(view)
	if err != nil {
		if errors.Is(err, interceptor.ErrNotStarted) {
			// Stopped between the IsStarted check and resolution; the
			// request body was already restored, send it for real.
			return t.underlying().RoundTrip(req)
		}
		return nil, err
	}

	resp.Wait()

	if resp.Failed() {
		return nil, resp.Err
	}
	return synthesize(req, resp), nil
}

func (t *Transport) interceptor() *interceptor.Interceptor {
	if t.Interceptor != nil {
		return t.Interceptor
	}
	return interceptor.Default()
}

func (t *Transport) underlying() http.RoundTripper {
	if t.Underlying != nil {
		return t.Underlying
	}
	return http.DefaultTransport
}

// synthesize shapes a stub response into the *http.Response net/http
// callers expect.
func synthesize(req *http.Request, resp *stub.Response) *http.Response {
	header := make(http.Header, len(resp.Header))
	for name, value := range resp.Header {
		header.Set(name, value)
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		StatusCode:    resp.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(resp.Body)),
		ContentLength: int64(len(resp.Body)),
		Request:       req,
	}
}
