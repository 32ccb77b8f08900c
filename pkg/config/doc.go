// Package config loads stub declarations from YAML fixture files.
//
// A fixture holds either a single stub document or a list under "stubs";
// bare list documents are also accepted. File references can be expanded
// with doublestar glob patterns, so a test suite can keep its canned
// traffic under testdata/ and load it in one call:
//
//	stubs, err := config.LoadGlob("testdata/stubs/**/*.yaml")
package config
