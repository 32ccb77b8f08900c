// Package diff compares two normalized requests dimension by dimension and
// renders the delta as a line-oriented description, one "-"/"+" pair per
// differing value.
//
// It backs the unmatched-request diagnostic: when no stub accepts a request,
// the nearest-looking stub is selected by a weighted field score and diffed
// against the actual request so the failure message shows exactly what to
// change.
package diff
