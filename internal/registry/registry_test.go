package registry

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/getmockd/httpstub/pkg/stub"
)

func newRequest(t *testing.T, method, rawurl string) *stub.Request {
	t.Helper()
	u, err := url.Parse(rawurl)
	if err != nil {
		t.Fatalf("parsing %q: %v", rawurl, err)
	}
	return &stub.Request{Method: method, URL: u, Header: map[string]string{}}
}

func TestResolveSingleStub(t *testing.T) {
	r := New()
	s := stub.For("GET", "http://x.test/a").Reply(200).ReplyBody([]byte("ok")).MustBuild()
	r.Add(s)

	got, err := r.Resolve(newRequest(t, "GET", "http://x.test/a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != s {
		t.Errorf("resolved wrong stub: %v", got)
	}
	if got.Response.StatusCode != 200 || string(got.Response.Body) != "ok" {
		t.Errorf("unexpected response: %+v", got.Response)
	}
}

func TestResolveNewestFirst(t *testing.T) {
	r := New()
	old := stub.For("GET", "http://x.test/a").Reply(200).ReplyBody([]byte("ok")).MustBuild()
	r.Add(old)

	// Re-register the same method+URL with a different response; the new
	// stub must win without the old one being removed.
	replacement := stub.For("GET", "http://x.test/a").Reply(404).MustBuild()
	r.Add(replacement)

	got, err := r.Resolve(newRequest(t, "GET", "http://x.test/a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != replacement {
		t.Errorf("expected replacement stub to win, got %v", got)
	}
	if got.Response.StatusCode != 404 {
		t.Errorf("expected status 404, got %d", got.Response.StatusCode)
	}
	if r.Len() != 2 {
		t.Errorf("shadowed stub should remain registered, len = %d", r.Len())
	}
}

func TestResolveRecencyBeatsSpecificity(t *testing.T) {
	r := New()
	specific := stub.For("GET", "http://x.test/a").Header("Accept", "application/json").MustBuild()
	r.Add(specific)
	generic := stub.For("GET", "http://x.test/a").Reply(418).MustBuild()
	r.Add(generic)

	req := newRequest(t, "GET", "http://x.test/a")
	req.Header["Accept"] = "application/json"

	got, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != generic {
		t.Error("ties must break by recency, never by specificity")
	}
}

func TestResolveFallsThroughNonMatching(t *testing.T) {
	r := New()
	a := stub.For("GET", "http://x.test/a").MustBuild()
	b := stub.For("GET", "http://x.test/b").MustBuild()
	r.Add(a)
	r.Add(b)

	got, err := r.Resolve(newRequest(t, "GET", "http://x.test/a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != a {
		t.Errorf("expected earlier stub to match, got %v", got)
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := New()
	r.Add(stub.For("GET", "http://x.test/a").MustBuild())

	_, err := r.Resolve(newRequest(t, "GET", "http://x.test/missing"))
	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
	if noMatch.Request.URL.String() != "http://x.test/missing" {
		t.Errorf("error should carry the request, got %v", noMatch.Request)
	}
	if len(noMatch.Stubs) != 1 {
		t.Errorf("error should carry registered stubs, got %d", len(noMatch.Stubs))
	}
}

func TestClear(t *testing.T) {
	r := New()
	r.Add(stub.For("GET", "http://x.test/a").MustBuild())
	r.Clear()

	if r.Len() != 0 {
		t.Errorf("expected empty registry, len = %d", r.Len())
	}
	if _, err := r.Resolve(newRequest(t, "GET", "http://x.test/a")); err == nil {
		t.Error("expected no match after Clear")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	r := New()
	r.Add(stub.For("GET", "http://x.test/a").MustBuild())

	snap := r.Snapshot()
	snap[0] = nil
	if r.Snapshot()[0] == nil {
		t.Error("mutating a snapshot must not affect the registry")
	}
}

func TestConcurrentRegisterAndResolve(t *testing.T) {
	r := New()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			u := fmt.Sprintf("http://x.test/%d", i)
			r.Add(stub.For("GET", u).MustBuild())
		}(i)
		go func(i int) {
			defer wg.Done()
			// May or may not match depending on interleaving; must not race.
			_, _ = r.Resolve(newRequest(t, "GET", fmt.Sprintf("http://x.test/%d", i)))
		}(i)
	}
	wg.Wait()

	if r.Len() != 16 {
		t.Errorf("expected 16 stubs, got %d", r.Len())
	}
}
