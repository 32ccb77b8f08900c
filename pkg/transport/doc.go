// Package transport is the seam between net/http clients and the stubbing
// engine.
//
// Transport implements http.RoundTripper: while its interceptor is Active
// every request is answered from the stub registry without opening a
// socket, and while Idle requests pass through untouched to the real
// transport. Inject it into the client under test, or use
// DefaultTransportHook to instrument http.DefaultTransport for code that
// does not support transport injection.
package transport
