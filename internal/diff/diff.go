package diff

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/getmockd/httpstub/pkg/stub"
)

// missing marks a header absent on one side of the comparison.
const missing = "(missing)"

// Line is one differing dimension: A is the first request's value, B the
// second's.
type Line struct {
	A string
	B string
}

// HeaderLine is a per-key header difference.
type HeaderLine struct {
	Key string
	A   string
	B   string
}

// Diff is the structural delta between two normalized requests. A nil field
// means that dimension is identical.
type Diff struct {
	Method  *Line
	URL     *Line
	Headers []HeaderLine
	Body    *Line
}

// Compare computes the delta between a and b. URL comparison is exact value
// equality of the normalized URL; query-parameter order is not normalized
// away. An empty body on one side and an absent body on the other are
// treated as identical.
func Compare(a, b *stub.Request) *Diff {
	d := &Diff{}

	if a.Method != b.Method {
		d.Method = &Line{A: a.Method, B: b.Method}
	}

	aurl, burl := a.URL.String(), b.URL.String()
	if aurl != burl {
		d.URL = &Line{A: aurl, B: burl}
	}

	d.Headers = compareHeaders(a.Header, b.Header)

	if bodyDiffers(a.Body, b.Body) {
		d.Body = &Line{A: string(a.Body), B: string(b.Body)}
	}

	return d
}

// Empty reports whether the two requests are behaviorally identical for
// stubbing purposes.
func (d *Diff) Empty() bool {
	return d.Method == nil && d.URL == nil && len(d.Headers) == 0 && d.Body == nil
}

// String renders the diff as "-"/"+" line pairs in the fixed order method,
// URL, headers (sorted by key), body. Returns "" for an empty diff.
func (d *Diff) String() string {
	var b strings.Builder

	if d.Method != nil {
		fmt.Fprintf(&b, "- method: %s\n", d.Method.A)
		fmt.Fprintf(&b, "+ method: %s\n", d.Method.B)
	}
	if d.URL != nil {
		fmt.Fprintf(&b, "- url: %s\n", d.URL.A)
		fmt.Fprintf(&b, "+ url: %s\n", d.URL.B)
	}
	for _, h := range d.Headers {
		fmt.Fprintf(&b, "- header %s: %s\n", h.Key, h.A)
		fmt.Fprintf(&b, "+ header %s: %s\n", h.Key, h.B)
	}
	if d.Body != nil {
		fmt.Fprintf(&b, "- body: %s\n", d.Body.A)
		fmt.Fprintf(&b, "+ body: %s\n", d.Body.B)
	}

	return b.String()
}

// compareHeaders returns the symmetric set of keys whose value differs or
// is missing in either direction, sorted by key, each key exactly once.
func compareHeaders(a, b map[string]string) []HeaderLine {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}

	var lines []HeaderLine
	for k := range keys {
		av, aok := a[k]
		bv, bok := b[k]
		if aok && bok && av == bv {
			continue
		}
		if !aok {
			av = missing
		}
		if !bok {
			bv = missing
		}
		lines = append(lines, HeaderLine{Key: k, A: av, B: bv})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].Key < lines[j].Key })
	return lines
}

// bodyDiffers reports whether the bodies differ. Absent and empty are the
// same thing here; only a non-empty body can differ from an absent one.
func bodyDiffers(a, b []byte) bool {
	if len(a) == 0 && len(b) == 0 {
		return false
	}
	return !bytes.Equal(a, b)
}
