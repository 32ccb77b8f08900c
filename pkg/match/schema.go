package match

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type schemaMatcher struct {
	source string
	schema *jsonschema.Schema
}

// Schema compiles schemaJSON as a JSON Schema and returns a matcher that
// accepts candidates which are valid JSON documents validating against it.
func Schema(schemaJSON string) (Matcher, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return schemaMatcher{source: schemaJSON, schema: schema}, nil
}

// MustSchema is like Schema but panics on an invalid schema.
func MustSchema(schemaJSON string) Matcher {
	m, err := Schema(schemaJSON)
	if err != nil {
		panic(err)
	}
	return m
}

func (m schemaMatcher) MatchString(s string) bool { return m.MatchBytes([]byte(s)) }

func (m schemaMatcher) MatchBytes(b []byte) bool {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return false
	}
	return m.schema.Validate(v) == nil
}

// Equal compares by schema source text.
func (m schemaMatcher) Equal(other Matcher) bool {
	o, ok := other.(schemaMatcher)
	return ok && o.source == m.source
}

func (m schemaMatcher) String() string {
	return fmt.Sprintf("schema(%s)", truncate(m.source, 64))
}
