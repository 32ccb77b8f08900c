package interceptor

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/getmockd/httpstub/internal/registry"
	"github.com/getmockd/httpstub/pkg/logging"
	"github.com/getmockd/httpstub/pkg/stub"
)

// ErrNotStarted is returned by Resolve while the interceptor is Idle.
// Hooks are expected to check IsStarted and pass calls through to the real
// network instead; hitting this error means a hook misbehaved.
var ErrNotStarted = errors.New("interceptor is not started")

// Interceptor is the engine's lifecycle and resolution entry point.
type Interceptor struct {
	reg    *registry.Registry
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	hooks   []Hook
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithLogger replaces the default stderr logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interceptor) { i.logger = logger }
}

// New returns an Idle interceptor with an empty registry and no hooks.
func New(opts ...Option) *Interceptor {
	i := &Interceptor{
		reg:    registry.New(),
		logger: logging.New(logging.FromEnv()),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Start transitions Idle -> Active and activates every registered hook.
// Calling Start while Active is a no-op. A hook activation failure is a
// fatal configuration error: it is returned immediately and the interceptor
// stays Idle with any already-activated hooks rolled back.
func (i *Interceptor) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.started {
		return nil
	}

	for n, h := range i.hooks {
		if err := h.Activate(); err != nil {
			for _, active := range i.hooks[:n] {
				_ = active.Deactivate()
			}
			return fmt.Errorf("activating hook %d: %w", n, err)
		}
	}

	i.started = true
	i.logger.Debug("interception started", "hooks", len(i.hooks))
	return nil
}

// Stop transitions Active -> Idle and deactivates every hook. Calling Stop
// while Idle is a no-op. All hooks are deactivated even if one fails; the
// first failure is returned.
func (i *Interceptor) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.started {
		return nil
	}

	var firstErr error
	for n, h := range i.hooks {
		if err := h.Deactivate(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("deactivating hook %d: %w", n, err)
		}
	}

	i.started = false
	i.logger.Debug("interception stopped")
	return firstErr
}

// IsStarted reports whether interception is Active.
func (i *Interceptor) IsStarted() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.started
}

// RegisterHook adds a hook. Registering the same hook twice is a no-op.
// While Active the hook is activated immediately; an activation failure is
// returned and the hook is not kept.
func (i *Interceptor) RegisterHook(h Hook) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, existing := range i.hooks {
		if existing == h {
			return nil
		}
	}

	if i.started {
		if err := h.Activate(); err != nil {
			return fmt.Errorf("activating hook: %w", err)
		}
	}

	i.hooks = append(i.hooks, h)
	return nil
}

// Register adds a stub expectation. Registration order is significant:
// among stubs matching the same request, the most recently registered wins.
func (i *Interceptor) Register(s *stub.Stub) {
	i.reg.Add(s)
	i.logger.Debug("stub registered", "id", s.ID, "stub", s.String())
}

// ClearStubs empties the registry without touching the Idle/Active state.
func (i *Interceptor) ClearStubs() {
	i.reg.Clear()
	i.logger.Debug("stubs cleared")
}

// Stubs returns a snapshot of the registered stubs in registration order.
func (i *Interceptor) Stubs() []*stub.Stub {
	return i.reg.Snapshot()
}

// Resolve finds the response for req. On no match it returns an
// *UnmatchedRequestError whose message embeds a near-miss diff and a
// ready-to-paste stub declaration.
func (i *Interceptor) Resolve(req *stub.Request) (*stub.Response, error) {
	if !i.IsStarted() {
		return nil, ErrNotStarted
	}

	s, err := i.reg.Resolve(req)
	if err != nil {
		var noMatch *registry.NoMatchError
		if errors.As(err, &noMatch) {
			i.logger.Warn("no stub matched", "method", req.Method, "url", req.URL.String())
			return nil, newUnmatchedError(noMatch)
		}
		return nil, err
	}

	i.logger.Debug("stub matched", "id", s.ID, "method", req.Method, "url", req.URL.String())
	return s.Response, nil
}
