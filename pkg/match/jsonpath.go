package match

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ohler55/ojg/jp"
)

type jsonPathMatcher struct {
	path     string
	expr     jp.Expr
	expected interface{}
}

// JSONPath returns a matcher that parses the candidate as JSON, evaluates
// the JSONPath expression against it, and accepts when at least one result
// equals expected. With a nil expected value it becomes an existence check:
// the path only has to yield a result.
//
// A candidate that is not valid JSON never matches.
func JSONPath(path string, expected interface{}) (Matcher, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("parsing JSONPath %q: %w", path, err)
	}
	return jsonPathMatcher{path: path, expr: x, expected: expected}, nil
}

// MustJSONPath is like JSONPath but panics on an invalid expression.
func MustJSONPath(path string, expected interface{}) Matcher {
	m, err := JSONPath(path, expected)
	if err != nil {
		panic(err)
	}
	return m
}

func (m jsonPathMatcher) MatchString(s string) bool { return m.MatchBytes([]byte(s)) }

func (m jsonPathMatcher) MatchBytes(b []byte) bool {
	var data interface{}
	if err := json.Unmarshal(b, &data); err != nil {
		return false
	}

	results := m.expr.Get(data)
	if len(results) == 0 {
		return false
	}
	if m.expected == nil {
		return true
	}

	// Wildcard paths can yield several results; any one of them matching
	// the expected value is enough.
	for _, result := range results {
		if valuesEqual(result, m.expected) {
			return true
		}
	}
	return false
}

func (m jsonPathMatcher) Equal(other Matcher) bool {
	o, ok := other.(jsonPathMatcher)
	return ok && o.path == m.path && reflect.DeepEqual(o.expected, m.expected)
}

func (m jsonPathMatcher) String() string {
	if m.expected == nil {
		return fmt.Sprintf("jsonpath(%s)", m.path)
	}
	return fmt.Sprintf("jsonpath(%s == %v)", m.path, m.expected)
}

// valuesEqual compares two decoded JSON values, coercing numeric types so
// that an expected int compares equal to the float64 encoding/json produces.
func valuesEqual(actual, expected interface{}) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	if reflect.DeepEqual(actual, expected) {
		return true
	}

	actualNum, actualIsNum := toFloat64(actual)
	expectedNum, expectedIsNum := toFloat64(expected)
	if actualIsNum && expectedIsNum {
		return actualNum == expectedNum
	}

	return false
}

// toFloat64 attempts to convert a value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
