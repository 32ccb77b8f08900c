package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/httpstub/pkg/stub"
)

// File is the parsed content of a stub fixture. A fixture can be a single
// stub document, a mapping with a "stubs" list, or a bare list of stubs.
type File struct {
	Version string        `yaml:"version,omitempty"`
	Stubs   []*StubConfig `yaml:"stubs"`
}

// UnmarshalYAML accepts all three fixture layouts.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&f.Stubs)
	}

	// Probe for a "stubs" key; without one the mapping is a single stub.
	type fileAlias File
	var probe struct {
		Stubs []yaml.Node `yaml:"stubs"`
	}
	if err := node.Decode(&probe); err == nil && probe.Stubs != nil {
		return node.Decode((*fileAlias)(f))
	}

	var single StubConfig
	if err := node.Decode(&single); err != nil {
		return err
	}
	f.Stubs = []*StubConfig{&single}
	return nil
}

// LoadFile reads and validates one fixture file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, c := range f.Stubs {
		if err := c.Validate(fmt.Sprintf("stubs[%d].", i)); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return &f, nil
}

// LoadGlob expands a doublestar pattern (e.g. "testdata/**/*.yaml"),
// loads every matching fixture in lexical path order, and returns the
// stubs ready to register. Order matters: later fixtures shadow earlier
// ones for equal method+URL keys.
func LoadGlob(pattern string) ([]*stub.Stub, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no fixtures match %q", pattern)
	}
	sort.Strings(paths)

	var stubs []*stub.Stub
	for _, path := range paths {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		loaded, err := f.ToStubs()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		stubs = append(stubs, loaded...)
	}
	return stubs, nil
}

// ToStubs converts every declaration in the file.
func (f *File) ToStubs() ([]*stub.Stub, error) {
	stubs := make([]*stub.Stub, 0, len(f.Stubs))
	for i, c := range f.Stubs {
		s, err := c.ToStub()
		if err != nil {
			return nil, fmt.Errorf("stubs[%d]: %w", i, err)
		}
		stubs = append(stubs, s)
	}
	return stubs, nil
}
