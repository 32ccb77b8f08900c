package registry

import (
	"fmt"
	"sync"

	"github.com/getmockd/httpstub/pkg/stub"
)

// NoMatchError reports that no registered stub accepted a request. It
// carries the request and a snapshot of all registered stubs so callers can
// build a near-miss diagnostic; it does not format one itself.
type NoMatchError struct {
	Request *stub.Request
	Stubs   []*stub.Stub
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no stub matched %s %s (%d registered)", e.Request.Method, e.Request.URL, len(e.Stubs))
}

// Registry is a thread-safe, ordered collection of stubs. Insertion order
// is registration order and is never changed.
type Registry struct {
	mu    sync.RWMutex
	stubs []*stub.Stub
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Add appends s to the registry. An existing stub with the same method+URL
// key stays in place but is shadowed by the newer one.
func (r *Registry) Add(s *stub.Stub) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubs = append(r.stubs, s)
}

// Resolve finds the response for req. It scans stubs newest-first and
// returns the first full match; a *NoMatchError is returned when no stub
// accepts the request.
func (r *Registry) Resolve(req *stub.Request) (*stub.Stub, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.stubs) - 1; i >= 0; i-- {
		if r.stubs[i].Matches(req) {
			return r.stubs[i], nil
		}
	}
	return nil, &NoMatchError{Request: req, Stubs: r.snapshotLocked()}
}

// Clear removes all stubs. Lifecycle state is unaffected; that belongs to
// the interceptor.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubs = nil
}

// Len returns the number of registered stubs, shadowed ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stubs)
}

// Snapshot returns the registered stubs in registration order.
func (r *Registry) Snapshot() []*stub.Stub {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() []*stub.Stub {
	out := make([]*stub.Stub, len(r.stubs))
	copy(out, r.stubs)
	return out
}
