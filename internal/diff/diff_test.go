package diff

import (
	"net/url"
	"strings"
	"testing"

	"github.com/getmockd/httpstub/pkg/stub"
)

func newRequest(t *testing.T, method, rawurl string, headers map[string]string, body string) *stub.Request {
	t.Helper()
	u, err := url.Parse(rawurl)
	if err != nil {
		t.Fatalf("parsing %q: %v", rawurl, err)
	}
	req := &stub.Request{Method: method, URL: u, Header: map[string]string{}}
	for k, v := range headers {
		req.Header[k] = v
	}
	if body != "" {
		req.Body = []byte(body)
	}
	return req
}

func TestCompareReflexivity(t *testing.T) {
	a := newRequest(t, "POST", "http://x.test/a?q=1", map[string]string{"Accept": "text/plain"}, "body")
	d := Compare(a, a)
	if !d.Empty() {
		t.Errorf("diff(a, a) must be empty, got:\n%s", d)
	}
	if d.String() != "" {
		t.Errorf("empty diff must render as empty string, got %q", d.String())
	}
}

func TestCompareMethod(t *testing.T) {
	a := newRequest(t, "GET", "http://x.test/a", nil, "")
	b := newRequest(t, "POST", "http://x.test/a", nil, "")

	d := Compare(a, b)
	if d.Empty() {
		t.Fatal("expected a method difference")
	}
	want := "- method: GET\n+ method: POST\n"
	if d.String() != want {
		t.Errorf("got %q, want %q", d.String(), want)
	}
}

func TestCompareURLIsExact(t *testing.T) {
	// Differing query-parameter order is a difference; no normalization.
	a := newRequest(t, "GET", "http://x.test/a?x=1&y=2", nil, "")
	b := newRequest(t, "GET", "http://x.test/a?y=2&x=1", nil, "")

	if Compare(a, b).Empty() {
		t.Error("query order must not be normalized away")
	}
}

func TestCompareHeadersSymmetricAndSorted(t *testing.T) {
	a := newRequest(t, "GET", "http://x.test/a", map[string]string{
		"X-Only-A": "1",
		"Accept":   "application/json",
	}, "")
	b := newRequest(t, "GET", "http://x.test/a", map[string]string{
		"Accept":   "text/plain",
		"X-Only-B": "2",
	}, "")

	d := Compare(a, b)
	if len(d.Headers) != 3 {
		t.Fatalf("expected 3 differing keys, got %d", len(d.Headers))
	}

	// Sorted by key.
	gotKeys := []string{d.Headers[0].Key, d.Headers[1].Key, d.Headers[2].Key}
	wantKeys := []string{"Accept", "X-Only-A", "X-Only-B"}
	for i := range wantKeys {
		if gotKeys[i] != wantKeys[i] {
			t.Fatalf("keys not sorted: got %v", gotKeys)
		}
	}

	// A key present on one side only appears exactly once, in both blocks.
	out := d.String()
	if strings.Count(out, "X-Only-A") != 2 {
		t.Errorf("X-Only-A should appear in one -/+ pair:\n%s", out)
	}
	if !strings.Contains(out, "+ header X-Only-A: (missing)") {
		t.Errorf("missing marker not rendered:\n%s", out)
	}
	if !strings.Contains(out, "- header X-Only-B: (missing)") {
		t.Errorf("missing marker not rendered for the other side:\n%s", out)
	}
}

func TestCompareBody(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		differs bool
	}{
		{name: "equal bodies", a: "x", b: "x", differs: false},
		{name: "unequal bodies", a: "x", b: "y", differs: true},
		{name: "absent vs absent", a: "", b: "", differs: false},
		{name: "non-empty vs absent", a: "x", b: "", differs: true},
		{name: "absent vs non-empty", a: "", b: "x", differs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newRequest(t, "GET", "http://x.test/a", nil, tt.a)
			b := newRequest(t, "GET", "http://x.test/a", nil, tt.b)
			d := Compare(a, b)
			if (d.Body != nil) != tt.differs {
				t.Errorf("body differs = %v, want %v", d.Body != nil, tt.differs)
			}
		})
	}
}

func TestCompareEmptyVsNilBodyEquivalence(t *testing.T) {
	a := newRequest(t, "GET", "http://x.test/a", nil, "")
	b := newRequest(t, "GET", "http://x.test/a", nil, "")
	b.Body = []byte{}

	if !Compare(a, b).Empty() {
		t.Error("empty body and absent body must not be reported as different")
	}
}

func TestStringOrder(t *testing.T) {
	a := newRequest(t, "GET", "http://x.test/a", map[string]string{"Accept": "1"}, "x")
	b := newRequest(t, "POST", "http://x.test/b", map[string]string{"Accept": "2"}, "y")

	out := Compare(a, b).String()
	mi := strings.Index(out, "method:")
	ui := strings.Index(out, "url:")
	hi := strings.Index(out, "header Accept:")
	bi := strings.Index(out, "body:")
	if !(mi < ui && ui < hi && hi < bi) {
		t.Errorf("blocks out of order:\n%s", out)
	}
}

func TestNearestPrefersHigherScore(t *testing.T) {
	wrongMethod := stub.For("POST", "http://x.test/a").MustBuild()
	wrongURL := stub.For("GET", "http://x.test/b").MustBuild()
	stubs := []*stub.Stub{wrongMethod, wrongURL}

	req := newRequest(t, "GET", "http://x.test/a", nil, "")

	// wrongMethod still matches the URL (15) vs wrongURL matching only the
	// method (10).
	if got := Nearest(req, stubs); got != wrongMethod {
		t.Errorf("expected the URL-matching stub, got %v", got)
	}
}

func TestNearestTieBreaksByRecency(t *testing.T) {
	older := stub.For("POST", "http://x.test/a").MustBuild()
	newer := stub.For("PUT", "http://x.test/a").MustBuild()

	req := newRequest(t, "GET", "http://x.test/a", nil, "")
	if got := Nearest(req, []*stub.Stub{older, newer}); got != newer {
		t.Error("equal scores must prefer the most recently registered stub")
	}
}

func TestNearestNoCandidates(t *testing.T) {
	req := newRequest(t, "GET", "http://x.test/a", nil, "")
	if got := Nearest(req, nil); got != nil {
		t.Errorf("expected nil for empty stub list, got %v", got)
	}

	hopeless := stub.For("POST", "http://other.test/z").MustBuild()
	if got := Nearest(req, []*stub.Stub{hopeless}); got != nil {
		t.Errorf("a zero-score stub is not a near miss, got %v", got)
	}
}
