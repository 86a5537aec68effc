// Package web serves a device tree over HTTP.
//
// Server adapts net/http to the upnp.Context dispatch surface: routes
// registered through the context land on an exact-match ServeMux, and
// each incoming request is answered through a per-request context whose
// Send writes the response.
//
//	srv := web.NewServer(8080)
//	root.Setup(srv.Context())
//	if err := srv.Start(); err != nil { ... }
//
// FakeContext is an in-memory dispatch surface for tests and tools that
// exercise a tree without a listener.
package web
