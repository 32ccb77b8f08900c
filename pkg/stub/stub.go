package stub

import (
	"fmt"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/getmockd/httpstub/pkg/match"
)

// Stub is an immutable-once-built expectation: field matchers on one side,
// a canned response on the other.
type Stub struct {
	// ID uniquely identifies the stub in logs and diagnostics.
	ID string

	// Method and URL are required matchers and together form the stub's
	// replacement key: registering a stub whose method and URL matchers
	// equal an existing stub's shadows the older one.
	Method match.Matcher
	URL    match.Matcher

	// Headers holds per-header matchers, keyed by canonical header name.
	// Every declared header must match; undeclared request headers are
	// ignored.
	Headers map[string]match.Matcher

	// Body is the optional body matcher. Nil means "don't care".
	Body match.Matcher

	// Response is returned when the stub matches.
	Response *Response
}

// Matches reports whether every declared matcher accepts the corresponding
// request field. Evaluation short-circuits cheapest-first: method, URL,
// headers, body.
func (s *Stub) Matches(req *Request) bool {
	if !s.Method.MatchString(req.Method) {
		return false
	}
	if !s.URL.MatchString(req.URL.String()) {
		return false
	}
	for name, m := range s.Headers {
		value, ok := req.Header[textproto.CanonicalMIMEHeaderKey(name)]
		if !ok || !m.MatchString(value) {
			return false
		}
	}
	if s.Body != nil && !s.Body.MatchBytes(req.Body) {
		return false
	}
	return true
}

// SameKey reports whether other declares the same method and URL matchers.
// Headers and body are deliberately not part of the key: re-stubbing a
// method+URL pair mid-test shadows the earlier stub even when their body or
// header expectations differ.
func (s *Stub) SameKey(other *Stub) bool {
	return s.Method.Equal(other.Method) && s.URL.Equal(other.URL)
}

// Shape returns a best-effort normalized request this stub would accept,
// used for near-miss diffing. Literal matchers contribute their value;
// non-literal matchers contribute their rendering.
func (s *Stub) Shape() *Request {
	req := &Request{
		Method: matcherText(s.Method),
		Header: make(map[string]string, len(s.Headers)),
	}

	if raw, ok := match.Literal(s.URL); ok {
		if u, err := url.Parse(raw); err == nil {
			req.URL = u
		}
	}
	if req.URL == nil {
		// Opaque carries the matcher rendering through URL.String().
		req.URL = &url.URL{Opaque: s.URL.String()}
	}

	for name, m := range s.Headers {
		req.Header[textproto.CanonicalMIMEHeaderKey(name)] = matcherText(m)
	}

	if s.Body != nil {
		req.Body = []byte(matcherText(s.Body))
	}
	return req
}

// String renders the stub's request side, e.g. `GET "http://x.test/a"`.
func (s *Stub) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", matcherText(s.Method), s.URL)
	for name, m := range s.Headers {
		fmt.Fprintf(&b, " [%s: %s]", name, m)
	}
	if s.Body != nil {
		fmt.Fprintf(&b, " body=%s", s.Body)
	}
	return b.String()
}

func matcherText(m match.Matcher) string {
	if raw, ok := match.Literal(m); ok {
		return raw
	}
	return m.String()
}
