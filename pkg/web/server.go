package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/upnp-panel/upnp-go/pkg/upnp"
)

// Server is the HTTP responder behind a device tree. It implements the
// registration half of the dispatch surface; per-request contexts carry
// the response half.
type Server struct {
	mux      *http.ServeMux
	server   *http.Server
	listener net.Listener
	port     int
}

// NewServer creates a server that will listen on the given port. Port 0
// picks a free port at Start.
func NewServer(port int) *Server {
	s := &Server{
		mux:  http.NewServeMux(),
		port: port,
	}
	s.server = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Context returns the dispatch surface to pass to RootDevice.Setup.
// Routes may be registered before or after Start.
func (s *Server) Context() upnp.Context {
	return &serverContext{srv: s}
}

// On registers a handler for an exact path.
func (s *Server) On(path string, handler upnp.HandlerFunc) {
	s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		handler(&requestContext{srv: s, w: w})
	})
}

// LocalPort returns the port the server is listening on, or 0 before
// Start.
func (s *Server) LocalPort() int {
	if s.listener == nil {
		return 0
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Start binds the listener and begins serving in a background
// goroutine. Serve errors after a clean Shutdown are discarded.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	s.listener = ln

	go func() {
		_ = s.server.Serve(ln)
	}()
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx
// expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// serverContext is the registration-time view of the dispatch surface.
// Send outside a request is a no-op.
type serverContext struct {
	srv *Server
}

func (c *serverContext) On(path string, handler upnp.HandlerFunc) {
	c.srv.On(path, handler)
}

func (c *serverContext) Send(status int, contentType, body string) {}

func (c *serverContext) LocalPort() int {
	return c.srv.LocalPort()
}

// requestContext is the per-request view: registrations still reach the
// server, Send answers the active request.
type requestContext struct {
	srv *Server
	w   http.ResponseWriter
}

func (c *requestContext) On(path string, handler upnp.HandlerFunc) {
	c.srv.On(path, handler)
}

func (c *requestContext) Send(status int, contentType, body string) {
	c.w.Header().Set("Content-Type", contentType)
	c.w.WriteHeader(status)
	fmt.Fprint(c.w, body)
}

func (c *requestContext) LocalPort() int {
	return c.srv.LocalPort()
}
