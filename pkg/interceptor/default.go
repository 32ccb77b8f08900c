package interceptor

import (
	"sync"

	"github.com/getmockd/httpstub/pkg/stub"
)

var (
	defaultOnce sync.Once
	defaultInst *Interceptor
)

// Default returns the process-wide shared interceptor, constructing it
// lazily on first access. Tests that need isolation should build their own
// instances with New instead.
func Default() *Interceptor {
	defaultOnce.Do(func() {
		defaultInst = New()
	})
	return defaultInst
}

// Start starts the default interceptor.
func Start() error { return Default().Start() }

// Stop stops the default interceptor.
func Stop() error { return Default().Stop() }

// IsStarted reports whether the default interceptor is Active.
func IsStarted() bool { return Default().IsStarted() }

// Register adds a stub to the default interceptor.
func Register(s *stub.Stub) { Default().Register(s) }

// ClearStubs empties the default interceptor's registry.
func ClearStubs() { Default().ClearStubs() }

// RegisterHook adds a hook to the default interceptor.
func RegisterHook(h Hook) error { return Default().RegisterHook(h) }
