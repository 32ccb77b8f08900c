package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getmockd/httpstub/pkg/match"
	"github.com/getmockd/httpstub/pkg/stub"
)

// StubConfig is the YAML shape of a single stub declaration.
type StubConfig struct {
	// Method is matched exactly. Required.
	Method string `yaml:"method"`

	// URL is matched exactly; URLPattern as a regular expression.
	// Exactly one of the two must be set.
	URL        string `yaml:"url,omitempty"`
	URLPattern string `yaml:"urlPattern,omitempty"`

	// Headers are matched exactly; HeaderPatterns as regular expressions.
	// A name may appear in only one of the two maps.
	Headers        map[string]string `yaml:"headers,omitempty"`
	HeaderPatterns map[string]string `yaml:"headerPatterns,omitempty"`

	// Body is matched exactly, BodyPattern as a regular expression,
	// BodySchema as a JSON Schema over a JSON body. At most one.
	Body        string `yaml:"body,omitempty"`
	BodyPattern string `yaml:"bodyPattern,omitempty"`
	BodySchema  string `yaml:"bodySchema,omitempty"`

	// Response is the canned answer. Defaults to an empty 200.
	Response *ResponseConfig `yaml:"response,omitempty"`
}

// ResponseConfig is the YAML shape of a stub's response.
type ResponseConfig struct {
	Status  int               `yaml:"status,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Body    string            `yaml:"body,omitempty"`

	// Error turns the response into a simulated transport failure.
	// Mutually exclusive with the concrete fields above.
	Error string `yaml:"error,omitempty"`
}

// ValidationError describes a single invalid fixture field.
type ValidationError struct {
	Field   string // e.g. "stubs[2].urlPattern"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the declaration for structural errors. The prefix names
// the stub's position in its file for error messages.
func (c *StubConfig) Validate(prefix string) error {
	var errs []error
	fail := func(field, message string) {
		errs = append(errs, &ValidationError{Field: prefix + field, Message: message})
	}

	if c.Method == "" {
		fail("method", "required")
	}

	switch {
	case c.URL == "" && c.URLPattern == "":
		fail("url", "either url or urlPattern is required")
	case c.URL != "" && c.URLPattern != "":
		fail("url", "url and urlPattern are mutually exclusive")
	}

	for name := range c.HeaderPatterns {
		if _, dup := c.Headers[name]; dup {
			fail("headerPatterns."+name, "also declared under headers")
		}
	}

	bodyForms := 0
	for _, set := range []bool{c.Body != "", c.BodyPattern != "", c.BodySchema != ""} {
		if set {
			bodyForms++
		}
	}
	if bodyForms > 1 {
		fail("body", "body, bodyPattern and bodySchema are mutually exclusive")
	}

	if r := c.Response; r != nil {
		concrete := r.Status != 0 || len(r.Headers) > 0 || r.Body != ""
		if r.Error != "" && concrete {
			fail("response.error", "mutually exclusive with status/headers/body")
		}
		if r.Error == "" && r.Status != 0 && r.Status < 100 {
			fail("response.status", fmt.Sprintf("invalid status code %d", r.Status))
		}
	}

	return errors.Join(errs...)
}

// ToStub converts the declaration into a registrable stub. Patterns and
// schemas are compiled here, so an invalid fixture fails at load time, not
// at match time.
func (c *StubConfig) ToStub() (*stub.Stub, error) {
	urlMatcher, err := matcherFor(c.URL, c.URLPattern)
	if err != nil {
		return nil, fmt.Errorf("url: %w", err)
	}

	b := stub.ForMatching(match.Exact(strings.ToUpper(c.Method)), urlMatcher)

	for name, value := range c.Headers {
		b.Header(name, value)
	}
	for name, pattern := range c.HeaderPatterns {
		m, err := match.NewRegexp(pattern)
		if err != nil {
			return nil, fmt.Errorf("headerPatterns.%s: %w", name, err)
		}
		b.HeaderMatch(name, m)
	}

	switch {
	case c.Body != "":
		b.BodyString(c.Body)
	case c.BodyPattern != "":
		m, err := match.NewRegexp(c.BodyPattern)
		if err != nil {
			return nil, fmt.Errorf("bodyPattern: %w", err)
		}
		b.Body(m)
	case c.BodySchema != "":
		m, err := match.Schema(c.BodySchema)
		if err != nil {
			return nil, fmt.Errorf("bodySchema: %w", err)
		}
		b.Body(m)
	}

	if r := c.Response; r != nil {
		if r.Error != "" {
			b.FailWith(errors.New(r.Error))
		} else {
			if r.Status != 0 {
				b.Reply(r.Status)
			}
			for name, value := range r.Headers {
				b.ReplyHeader(name, value)
			}
			if r.Body != "" {
				b.ReplyBody([]byte(r.Body))
			}
		}
	}

	return b.Build()
}

// matcherFor returns an exact matcher for value or a regexp matcher for
// pattern, whichever is set.
func matcherFor(value, pattern string) (match.Matcher, error) {
	if pattern != "" {
		return match.NewRegexp(pattern)
	}
	return match.Exact(value), nil
}
