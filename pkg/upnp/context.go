package upnp

// HandlerFunc handles a dispatched request for a registered path.
type HandlerFunc func(ctx Context)

// Context is the dispatch surface the tree registers itself with. The
// concrete responder (an HTTP server, or an in-memory fake in tests)
// lives outside this package; the tree only needs route registration,
// response transmission, and the local port for absolute locations.
type Context interface {
	// On registers a handler invoked on requests matching path.
	On(path string, handler HandlerFunc)

	// Send emits an HTTP-style response.
	Send(status int, contentType, body string)

	// LocalPort returns the port the responder listens on.
	LocalPort() int
}
