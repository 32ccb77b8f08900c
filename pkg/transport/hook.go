package transport

import (
	"errors"
	"net/http"
	"sync"

	"github.com/getmockd/httpstub/pkg/interceptor"
)

// DefaultTransportHook instruments http.DefaultTransport: Activate swaps it
// for a stubbing Transport that falls back to the original, Deactivate
// restores the original. It implements interceptor.Hook and covers clients
// that offer no transport-injection point of their own.
type DefaultTransportHook struct {
	// Interceptor resolves intercepted requests. Nil means the default
	// interceptor.
	Interceptor *interceptor.Interceptor

	mu     sync.Mutex
	saved  http.RoundTripper
	active bool
}

// Activate replaces http.DefaultTransport. Idempotent; fails if the
// transport cannot be instrumented.
func (h *DefaultTransportHook) Activate() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active {
		return nil
	}
	if http.DefaultTransport == nil {
		return errors.New("cannot instrument http.DefaultTransport: it is nil")
	}

	h.saved = http.DefaultTransport
	http.DefaultTransport = &Transport{
		Interceptor: h.Interceptor,
		Underlying:  h.saved,
	}
	h.active = true
	return nil
}

// Deactivate restores the original http.DefaultTransport. Idempotent.
func (h *DefaultTransportHook) Deactivate() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.active {
		return nil
	}

	http.DefaultTransport = h.saved
	h.saved = nil
	h.active = false
	return nil
}
