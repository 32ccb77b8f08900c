package interceptor

// Hook redirects one HTTP client implementation's outgoing calls into the
// engine. Adapters implement it per client library: they produce a
// normalized request view from the native request type, call Resolve, and
// deliver the response through the client's native success or failure
// channel.
//
// Activate and Deactivate must both be idempotent. A hook that cannot
// instrument its target client must fail from Activate — a setup-time
// configuration error, never a silent skip and never a per-request error.
type Hook interface {
	Activate() error
	Deactivate() error
}
