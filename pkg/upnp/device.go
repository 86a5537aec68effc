package upnp

import (
	"fmt"
	"net/http"
	"net/netip"

	"github.com/upnp-panel/upnp-go/pkg/buffer"
	"github.com/upnp-panel/upnp-go/pkg/log"
	"github.com/upnp-panel/upnp-go/pkg/uuid"
)

// DisplayHandler replaces a device's default display composition.
type DisplayHandler func(d *Device, ctx Context)

// ContentFormatter appends a device's display fragment to w. Custom
// device classes install formatters instead of subclassing.
type ContentFormatter func(d *Device, w *buffer.Writer)

// Device is a node that owns a bounded ordered set of Services and can
// display itself as an HTML page listing its content.
type Device struct {
	object

	services    [MaxServices]*Service
	numServices int

	// deviceUUID is blank until the device attaches to a RootDevice,
	// which assigns one if the application has not.
	deviceUUID string

	displayHandler       DisplayHandler
	contentFormatter     ContentFormatter
	rootContentFormatter ContentFormatter
}

// NewDevice creates a device with the given target. An empty target is
// assigned automatically ("device<N>") when the device attaches.
func NewDevice(target string) *Device {
	d := &Device{}
	d.object.init(d, DeviceClass, deviceBasicType)
	d.SetTarget(target)
	d.SetDisplayName("Device")
	return d
}

// UUID returns the device UUID, blank before one is assigned.
func (d *Device) UUID() string {
	return d.deviceUUID
}

// SetUUID applies candidate only when it is a well-formed UUID string.
// It reports whether the candidate was applied; on failure the prior
// value is kept.
func (d *Device) SetUUID(candidate string) bool {
	if !uuid.Validate(candidate) {
		event := log.NewEvent(log.CategoryError)
		event.Target = d.target
		event.Detail = fmt.Sprintf("rejected malformed UUID %q", candidate)
		d.logger().Log(event)
		return false
	}
	d.deviceUUID = candidate
	return true
}

// HasUUID reports whether u matches the device UUID exactly.
func (d *Device) HasUUID(u string) bool {
	return d.deviceUUID == u
}

// NumServices returns the number of attached services.
func (d *Device) NumServices() int {
	return d.numServices
}

// Service returns the i'th service in attach order, or nil when i is
// out of range.
func (d *Device) Service(i int) *Service {
	if i < 0 || i >= d.numServices {
		return nil
	}
	return d.services[i]
}

// Services returns the attached services in attach order.
func (d *Device) Services() []*Service {
	result := make([]*Service, d.numServices)
	copy(result, d.services[:d.numServices])
	return result
}

// AddService attaches a service to the device. A service with no target
// is named "service<N>" where N is its position. The attach is dropped
// silently when the service is nil, already attached, or the device is
// at capacity. If the device's root is already wired, the new service
// is wired immediately.
func (d *Device) AddService(s *Service) {
	if s == nil {
		return
	}
	if d.numServices >= MaxServices || s.parent != nil {
		event := log.NewEvent(log.CategoryError)
		event.Target = s.target
		event.Detail = "service attach dropped"
		d.logger().Log(event)
		return
	}

	if s.target == "" {
		s.target = fmt.Sprintf("service%d", d.numServices)
	}
	d.services[d.numServices] = s
	d.numServices++
	s.parent = d.self

	event := log.NewEvent(log.CategoryAttach)
	event.Target = s.target
	event.Path = GetPath(s)
	d.logger().Log(event)

	// Late binding: the tree is already serving, so the new service
	// must register its route now.
	if root := RootOf(d.self); root != nil && root.Context() != nil {
		s.Setup(root.Context())
	}
}

// AddServices attaches each service in order.
func (d *Device) AddServices(services ...*Service) {
	for _, s := range services {
		d.AddService(s)
	}
}

// SetDisplayHandler replaces the default display composition. A nil
// handler restores the default.
func (d *Device) SetDisplayHandler(f DisplayHandler) {
	d.displayHandler = f
}

// SetContentFormatter sets the fragment appended between the page
// header and tail when the device displays itself. The default appends
// nothing.
func (d *Device) SetContentFormatter(f ContentFormatter) {
	d.contentFormatter = f
}

// SetRootContentFormatter sets the fragment the device contributes to
// its root's panel page. The default is a navigation control linking to
// the device's own page.
func (d *Device) SetRootContentFormatter(f ContentFormatter) {
	d.rootContentFormatter = f
}

// FormatContent appends the device's own display fragment to w. With no
// content formatter installed the position is unchanged.
func (d *Device) FormatContent(w *buffer.Writer) int {
	if d.contentFormatter != nil {
		d.contentFormatter(d, w)
	}
	return w.Pos()
}

// FormatRootContent appends the fragment shown for this device on the
// root panel page: by default one navigation control referencing the
// device's path.
func (d *Device) FormatRootContent(w *buffer.Writer) int {
	if d.rootContentFormatter != nil {
		d.rootContentFormatter(d, w)
		return w.Pos()
	}
	return FormatButton(w, GetPath(d.self), d.displayName)
}

// Display answers a request for the device's page: the display handler
// when one is set, otherwise header + FormatContent + tail composed
// into a DisplaySize buffer and sent as text/html. Content past the
// buffer capacity is truncated, not an error.
func (d *Device) Display(ctx Context) {
	if d.displayHandler != nil {
		d.displayHandler(d, ctx)
		return
	}

	w := buffer.NewWriter(make([]byte, DisplaySize))
	FormatHeader(w, d.displayName)
	d.FormatContent(w)
	FormatTail(w)
	ctx.Send(http.StatusOK, ContentTypeHTML, w.String())

	event := log.NewEvent(log.CategoryRequest)
	event.Target = d.target
	event.Path = GetPath(d.self)
	event.Status = http.StatusOK
	d.logger().Log(event)
}

// Setup registers the device's display at its path, then sets up every
// currently held service. Targets must be final by this point.
func (d *Device) Setup(ctx Context) {
	path := GetPath(d.self)
	ctx.On(path, func(c Context) { d.Display(c) })

	event := log.NewEvent(log.CategorySetup)
	event.Target = d.target
	event.Path = path
	event.UUID = d.deviceUUID
	d.logger().Log(event)

	for i := 0; i < d.numServices; i++ {
		d.services[i].Setup(ctx)
	}
}

// Location appends the device's absolute URL to w: the parent's
// location followed by '/' and the device's target.
func (d *Device) Location(w *buffer.Writer, addr netip.Addr) {
	if d.parent != nil {
		d.parent.Location(w, addr)
	}
	w.Printf("/%s", d.target)
}
