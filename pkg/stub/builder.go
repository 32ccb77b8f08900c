package stub

import (
	"fmt"
	"net/textproto"

	"github.com/google/uuid"

	"github.com/getmockd/httpstub/pkg/match"
)

// Builder assembles a Stub through a fluent chain. Zero values are filled
// with sensible defaults: a stub built without a Reply answers 200 with no
// body.
type Builder struct {
	s   Stub
	err error
}

// For starts a builder matching the method and URL exactly.
func For(method, rawurl string) *Builder {
	return ForMatching(match.Exact(method), match.Exact(rawurl))
}

// ForMatching starts a builder with explicit method and URL matchers.
func ForMatching(method, url match.Matcher) *Builder {
	return &Builder{s: Stub{
		Method:  method,
		URL:     url,
		Headers: map[string]match.Matcher{},
	}}
}

// Header requires the named request header to equal value exactly.
func (b *Builder) Header(name, value string) *Builder {
	return b.HeaderMatch(name, match.Exact(value))
}

// Headers requires every listed header to equal its value exactly.
func (b *Builder) Headers(headers map[string]string) *Builder {
	for name, value := range headers {
		b.Header(name, value)
	}
	return b
}

// HeaderMatch requires the named request header to satisfy m.
func (b *Builder) HeaderMatch(name string, m match.Matcher) *Builder {
	b.s.Headers[textproto.CanonicalMIMEHeaderKey(name)] = m
	return b
}

// Body requires the request body to satisfy m.
func (b *Builder) Body(m match.Matcher) *Builder {
	b.s.Body = m
	return b
}

// BodyString requires the request body to equal s exactly.
func (b *Builder) BodyString(s string) *Builder {
	return b.Body(match.Exact(s))
}

// Reply sets the response status code.
func (b *Builder) Reply(statusCode int) *Builder {
	if statusCode < 100 {
		b.fail(fmt.Errorf("invalid status code %d", statusCode))
		return b
	}
	b.concrete().StatusCode = statusCode
	return b
}

// ReplyHeader adds a response header.
func (b *Builder) ReplyHeader(name, value string) *Builder {
	b.concrete().SetHeader(name, value)
	return b
}

// ReplyBody sets the response body.
func (b *Builder) ReplyBody(body []byte) *Builder {
	b.concrete().Body = body
	return b
}

// ReplyRaw replaces the response with one parsed from raw HTTP/1.x wire
// bytes.
func (b *Builder) ReplyRaw(raw []byte) *Builder {
	resp, err := ParseRaw(raw)
	if err != nil {
		b.fail(err)
		return b
	}
	b.s.Response = resp
	return b
}

// FailWith replaces the response with a simulated transport failure.
func (b *Builder) FailWith(err error) *Builder {
	b.s.Response = Failure(err)
	return b
}

// Gated holds the response back until its Go method is called.
func (b *Builder) Gated() *Builder {
	b.concrete().Gate()
	return b
}

// Build finalizes the stub, assigning it an ID. The first error recorded
// during the chain is returned here.
func (b *Builder) Build() (*Stub, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := b.s
	s.ID = uuid.NewString()
	if s.Response == nil {
		s.Response = NewResponse(200)
	}
	return &s, nil
}

// MustBuild is like Build but panics on error. Intended for test
// declarations with literal inputs.
func (b *Builder) MustBuild() *Stub {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *Builder) concrete() *Response {
	if b.s.Response == nil || b.s.Response.Failed() {
		b.s.Response = NewResponse(200)
	}
	return b.s.Response
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
