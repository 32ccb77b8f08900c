package diff

import (
	"github.com/getmockd/httpstub/pkg/stub"
)

// Field weights for near-miss scoring. More specific fields weigh more, so
// a stub that got the body right but the URL wrong outranks one that only
// shares the method.
const (
	scoreMethod = 10
	scoreURL    = 15
	scoreHeader = 10
	scoreBody   = 25
)

// Nearest returns the stub whose declared matchers accept the most of req,
// weighted by field. Ties break by recency, matching registry resolution
// order. Returns nil when stubs is empty or nothing scored above zero —
// callers then render the request itself instead of a diff.
func Nearest(req *stub.Request, stubs []*stub.Stub) *stub.Stub {
	var best *stub.Stub
	bestScore := 0

	// Newest-first so an equal score prefers the more recent stub.
	for i := len(stubs) - 1; i >= 0; i-- {
		if score := partialScore(stubs[i], req); score > bestScore {
			best = stubs[i]
			bestScore = score
		}
	}
	return best
}

// partialScore evaluates every declared matcher without short-circuiting
// and accumulates the weight of each field that matched.
func partialScore(s *stub.Stub, req *stub.Request) int {
	score := 0
	if s.Method.MatchString(req.Method) {
		score += scoreMethod
	}
	if s.URL.MatchString(req.URL.String()) {
		score += scoreURL
	}
	for name, m := range s.Headers {
		if value, ok := req.Header[name]; ok && m.MatchString(value) {
			score += scoreHeader
		}
	}
	if s.Body != nil && s.Body.MatchBytes(req.Body) {
		score += scoreBody
	}
	return score
}
