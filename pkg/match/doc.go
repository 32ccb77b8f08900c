// Package match provides the field matchers used by stub declarations.
//
// A Matcher is a pure predicate over a single request field (method, URL,
// header value, or body) that can be evaluated against either text or raw
// bytes. The core variants are:
//
//   - Exact: exact string equality
//   - Regexp: at least one regular expression match anywhere in the candidate
//   - Bytes: exact byte-for-byte equality
//
// On top of the core variants the package offers richer body predicates:
//
//   - Expr: an expr-lang boolean expression over the candidate value
//   - JSONPath: a JSONPath lookup over a JSON body compared against an
//     expected value
//   - Schema: JSON Schema validation of a JSON body
//
// Matchers are immutable once built and safe for concurrent use. Equal
// reports whether two matchers accept exactly the same inputs; it is used
// for stub replacement (last registered wins among stubs with equal method
// and URL matchers).
package match
