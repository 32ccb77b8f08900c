// Package interceptor owns the process-wide interception lifecycle: the
// Idle/Active state machine, the registered hooks that divert a client's
// outgoing calls into the engine, and the stub registry consulted on every
// intercepted request.
//
// An Interceptor is an explicit instance; nothing in the engine requires a
// hidden global. Default returns a lazily constructed shared instance for
// the common single-process test setup, with package-level Start, Stop,
// Register and ClearStubs delegating to it.
package interceptor
