package upnp

import (
	"net/netip"

	"github.com/upnp-panel/upnp-go/pkg/buffer"
	"github.com/upnp-panel/upnp-go/pkg/log"
)

// Service is a leaf node that answers requests at its path. Service
// implementations either set a request handler or leave the default
// no-op in place; a handlerless service responds by doing nothing
// rather than failing.
type Service struct {
	object
	handler HandlerFunc
}

// NewService creates a service with the given target. An empty target
// is assigned automatically ("service<N>") when the service attaches.
func NewService(target string) *Service {
	s := &Service{handler: func(Context) {}}
	s.object.init(s, ServiceClass, serviceBasicType)
	s.SetTarget(target)
	s.SetDisplayName("Service")
	return s
}

// SetHTTPHandler sets the request handler invoked for the service's
// path. A nil handler restores the no-op default.
func (s *Service) SetHTTPHandler(h HandlerFunc) {
	if h == nil {
		h = func(Context) {}
	}
	s.handler = h
}

// HandleRequest answers a request dispatched to the service's path.
func (s *Service) HandleRequest(ctx Context) {
	s.handler(ctx)
}

// Setup registers the service's path with the dispatch surface.
func (s *Service) Setup(ctx Context) {
	path := GetPath(s.self)
	ctx.On(path, func(c Context) { s.HandleRequest(c) })

	event := log.NewEvent(log.CategorySetup)
	event.Target = s.target
	event.Path = path
	s.logger().Log(event)
}

// Location appends the service's absolute URL to w: the parent's
// location followed by '/' and the service's target.
func (s *Service) Location(w *buffer.Writer, addr netip.Addr) {
	if s.parent != nil {
		s.parent.Location(w, addr)
	}
	w.Printf("/%s", s.target)
}
