package interceptor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getmockd/httpstub/internal/diff"
	"github.com/getmockd/httpstub/internal/registry"
	"github.com/getmockd/httpstub/pkg/stub"
)

// ErrUnexpectedRequest is the sentinel every unmatched-request failure
// wraps; match it with errors.Is.
var ErrUnexpectedRequest = errors.New("unexpected request")

// UnmatchedRequestError is the primary day-to-day failure mode: a request
// was intercepted and no stub accepted it. Its message carries the request,
// a diff against the nearest-looking stub (when one exists), and a
// ready-to-paste stub declaration.
type UnmatchedRequestError struct {
	// Request is the normalized request that found no stub.
	Request *stub.Request

	// Nearest is the closest-scoring registered stub, nil when no stub
	// shares anything with the request.
	Nearest *stub.Stub

	// DiffText is the rendered near-miss diff ("-" = stub expectation,
	// "+" = actual request). Empty when Nearest is nil.
	DiffText string
}

func newUnmatchedError(noMatch *registry.NoMatchError) *UnmatchedRequestError {
	e := &UnmatchedRequestError{Request: noMatch.Request}
	if nearest := diff.Nearest(noMatch.Request, noMatch.Stubs); nearest != nil {
		e.Nearest = nearest
		e.DiffText = diff.Compare(nearest.Shape(), noMatch.Request).String()
	}
	return e
}

func (e *UnmatchedRequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unexpected request: %s %s\n", e.Request.Method, e.Request.URL)

	if e.Nearest != nil {
		fmt.Fprintf(&b, "\nclosest stub: %s\n", e.Nearest)
		b.WriteString("diff (- stub, + request):\n")
		b.WriteString(e.DiffText)
	} else {
		b.WriteString("\nno stub came close; the request was:\n")
		b.WriteString(e.Request.String())
		b.WriteString("\n")
	}

	b.WriteString("\nstub it with:\n\n")
	b.WriteString(Skeleton(e.Request))
	return b.String()
}

func (e *UnmatchedRequestError) Unwrap() error { return ErrUnexpectedRequest }

// Skeleton renders a ready-to-paste stub declaration for req.
func Skeleton(req *stub.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "stub.For(%q, %q).\n", req.Method, req.URL.String())

	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\tHeader(%q, %q).\n", k, req.Header[k])
	}

	if len(req.Body) > 0 {
		fmt.Fprintf(&b, "\tBodyString(%q).\n", req.Body)
	}

	b.WriteString("\tReply(200).\n")
	b.WriteString("\tMustBuild()")
	return b.String()
}
