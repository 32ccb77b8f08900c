package match

// Literal returns the literal value a matcher compares against, when it has
// one. Exact and Bytes matchers are literal; every other variant is not.
// Diagnostics use this to render a stub's "would-be request" shape.
func Literal(m Matcher) (string, bool) {
	switch v := m.(type) {
	case exactMatcher:
		return v.value, true
	case bytesMatcher:
		return string(v.value), true
	default:
		return "", false
	}
}
