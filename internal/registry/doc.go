// Package registry holds the ordered collection of registered stubs and
// resolves normalized requests against it.
//
// Registration always appends: a stub sharing its method+URL key with an
// earlier one is not removed or reordered, it simply shadows the older stub
// because resolution scans newest-first. This gives tests last-registered-
// wins replacement without disturbing unrelated stubs.
package registry
