package match

import (
	"bytes"
	"fmt"
	"regexp"
)

// Matcher is a predicate over a single request field. Implementations must
// be pure: no side effects, total over any input including the empty string
// and nil bytes.
type Matcher interface {
	// MatchString reports whether the candidate text satisfies the matcher.
	MatchString(s string) bool

	// MatchBytes reports whether the candidate bytes satisfy the matcher.
	// String-based matchers interpret the bytes as UTF-8 text.
	MatchBytes(b []byte) bool

	// Equal reports whether other accepts exactly the same inputs as this
	// matcher. Used as the stub replacement key.
	Equal(other Matcher) bool

	// String renders the matcher for diagnostics and stub skeletons.
	String() string
}

type exactMatcher struct {
	value string
}

// Exact returns a matcher that accepts only candidates equal to value.
func Exact(value string) Matcher {
	return exactMatcher{value: value}
}

func (m exactMatcher) MatchString(s string) bool { return s == m.value }

func (m exactMatcher) MatchBytes(b []byte) bool { return string(b) == m.value }

func (m exactMatcher) Equal(other Matcher) bool {
	o, ok := other.(exactMatcher)
	return ok && o.value == m.value
}

func (m exactMatcher) String() string { return fmt.Sprintf("%q", m.value) }

type regexpMatcher struct {
	re *regexp.Regexp
}

// Regexp returns a matcher that accepts candidates containing at least one
// match of re.
func Regexp(re *regexp.Regexp) Matcher {
	return regexpMatcher{re: re}
}

// NewRegexp compiles pattern and returns the corresponding matcher.
func NewRegexp(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return regexpMatcher{re: re}, nil
}

// MustRegexp is like NewRegexp but panics on an invalid pattern. Intended
// for test declarations with literal patterns.
func MustRegexp(pattern string) Matcher {
	return regexpMatcher{re: regexp.MustCompile(pattern)}
}

func (m regexpMatcher) MatchString(s string) bool { return m.re.MatchString(s) }

func (m regexpMatcher) MatchBytes(b []byte) bool { return m.re.Match(b) }

// Equal compares by pattern source, not by automaton equivalence.
func (m regexpMatcher) Equal(other Matcher) bool {
	o, ok := other.(regexpMatcher)
	return ok && o.re.String() == m.re.String()
}

func (m regexpMatcher) String() string { return fmt.Sprintf("regexp(%s)", m.re.String()) }

type bytesMatcher struct {
	value []byte
}

// Bytes returns a matcher that accepts only candidates byte-equal to value.
// The value is copied; later mutation of the argument has no effect.
func Bytes(value []byte) Matcher {
	return bytesMatcher{value: append([]byte(nil), value...)}
}

func (m bytesMatcher) MatchString(s string) bool { return bytes.Equal([]byte(s), m.value) }

func (m bytesMatcher) MatchBytes(b []byte) bool { return bytes.Equal(b, m.value) }

func (m bytesMatcher) Equal(other Matcher) bool {
	o, ok := other.(bytesMatcher)
	return ok && bytes.Equal(o.value, m.value)
}

func (m bytesMatcher) String() string {
	return fmt.Sprintf("bytes(%d: %q)", len(m.value), truncate(string(m.value), 64))
}

// truncate shortens a string to maxLen, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
