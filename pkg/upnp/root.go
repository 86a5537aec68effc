package upnp

import (
	"fmt"
	"net/http"
	"net/netip"

	"github.com/upnp-panel/upnp-go/pkg/buffer"
	"github.com/upnp-panel/upnp-go/pkg/log"
	"github.com/upnp-panel/upnp-go/pkg/rtti"
	"github.com/upnp-panel/upnp-go/pkg/uuid"
)

// RootDevice is a Device that owns a bounded ordered set of embedded
// Devices, carries a UUID from construction, and is the only node whose
// location is an absolute network URL. Wiring the tree starts here:
// Setup registers the root's routes and recursively sets up everything
// the tree currently holds.
type RootDevice struct {
	Device

	devices    [MaxDevices]*Device
	numDevices int

	// context is the dispatch surface, held once Setup runs. A non-nil
	// context marks the tree as serving: nodes attached from then on
	// are wired immediately.
	context Context

	rootDisplayHandler DisplayHandler
	eventLog           log.Logger
}

// NewRootDevice creates a root device. An empty target defaults to
// "root". The UUID is generated immediately from the package uuid
// source.
func NewRootDevice(target string) *RootDevice {
	r := &RootDevice{}
	r.object.init(r, RootDeviceClass, rootDeviceType)
	if target == "" {
		target = "root"
	}
	r.SetTarget(target)
	r.SetDisplayName("Root Device")
	r.deviceUUID = uuid.Generate()

	// The root's own page lists its embedded devices, and its root
	// panel aggregates theirs. Installed as formatters so the promoted
	// Device.Display and Device.FormatRootContent pick them up.
	r.contentFormatter = func(_ *Device, w *buffer.Writer) { r.formatDeviceList(w) }
	r.rootContentFormatter = func(_ *Device, w *buffer.Writer) { r.formatRootPanel(w) }
	return r
}

// SetLogger directs the tree's events to l. A nil logger disables
// logging. All nodes in the tree resolve their logger through the root.
func (r *RootDevice) SetLogger(l log.Logger) {
	r.eventLog = l
}

// Context returns the dispatch surface, or nil before Setup.
func (r *RootDevice) Context() Context {
	return r.context
}

// ServerPort returns the responder's local port, or 0 before Setup.
func (r *RootDevice) ServerPort() int {
	if r.context == nil {
		return 0
	}
	return r.context.LocalPort()
}

// NumDevices returns the number of embedded devices.
func (r *RootDevice) NumDevices() int {
	return r.numDevices
}

// DeviceAt returns the i'th embedded device in attach order, or nil
// when i is out of range.
func (r *RootDevice) DeviceAt(i int) *Device {
	if i < 0 || i >= r.numDevices {
		return nil
	}
	return r.devices[i]
}

// Devices returns the embedded devices in attach order.
func (r *RootDevice) Devices() []*Device {
	result := make([]*Device, r.numDevices)
	copy(result, r.devices[:r.numDevices])
	return result
}

// AddDevice attaches a device to the root. A device with no target is
// named "device<N>" where N is its position; a device with no UUID is
// assigned one. The attach is dropped silently when the device is nil,
// already attached, or the root is at capacity. If the root is already
// wired, the new device and everything it holds are wired immediately.
func (r *RootDevice) AddDevice(dvc *Device) {
	if dvc == nil {
		return
	}
	if r.numDevices >= MaxDevices || dvc.parent != nil {
		event := log.NewEvent(log.CategoryError)
		event.Target = dvc.target
		event.Detail = "device attach dropped"
		r.logger().Log(event)
		return
	}

	if dvc.target == "" {
		dvc.target = fmt.Sprintf("device%d", r.numDevices)
	}
	if dvc.deviceUUID == "" {
		dvc.deviceUUID = uuid.Generate()
	}
	r.devices[r.numDevices] = dvc
	r.numDevices++
	dvc.parent = r

	event := log.NewEvent(log.CategoryAttach)
	event.Target = dvc.target
	event.Path = GetPath(dvc)
	event.UUID = dvc.deviceUUID
	r.logger().Log(event)

	// Late binding: the root is already serving, so the new device and
	// its services must register their routes now.
	if r.context != nil {
		dvc.Setup(r.context)
	}
}

// AddDevices attaches each device in order.
func (r *RootDevice) AddDevices(devices ...*Device) {
	for _, d := range devices {
		r.AddDevice(d)
	}
}

// SetRootDisplayHandler replaces the default root panel composition. A
// nil handler restores the default.
func (r *RootDevice) SetRootDisplayHandler(f DisplayHandler) {
	r.rootDisplayHandler = f
}

// formatDeviceList appends one navigation control per embedded device;
// shown on the root's own page.
func (r *RootDevice) formatDeviceList(w *buffer.Writer) {
	for i := 0; i < r.numDevices; i++ {
		d := r.devices[i]
		FormatButton(w, GetPath(d), d.DisplayName())
	}
}

// formatRootPanel appends, in attach order, every embedded device's
// root-content fragment followed by one "This Device" control that
// references the root's own page.
func (r *RootDevice) formatRootPanel(w *buffer.Writer) {
	for i := 0; i < r.numDevices; i++ {
		r.devices[i].FormatRootContent(w)
	}
	FormatButton(w, GetPath(r), "This Device")
}

// DisplayRoot answers a request for the root panel page at "/": the
// root display handler when one is set, otherwise header +
// FormatRootContent + tail composed into a DisplaySize buffer.
func (r *RootDevice) DisplayRoot(ctx Context) {
	if r.rootDisplayHandler != nil {
		r.rootDisplayHandler(&r.Device, ctx)
		return
	}

	w := buffer.NewWriter(make([]byte, DisplaySize))
	FormatHeader(w, r.displayName)
	r.FormatRootContent(w)
	FormatTail(w)
	ctx.Send(http.StatusOK, ContentTypeHTML, w.String())

	event := log.NewEvent(log.CategoryRequest)
	event.Target = r.target
	event.Path = "/"
	event.Status = http.StatusOK
	r.logger().Log(event)
}

// Styles answers a request for the panel stylesheet.
func (r *RootDevice) Styles(ctx Context) {
	ctx.Send(http.StatusOK, ContentTypeCSS, StyleSheet)
}

// Setup wires the tree into the dispatch surface: the root's own page
// at its path, every held service, the stylesheet at StylesPath, the
// root panel at "/", and every held device with its services. All
// targets must be final by this point. Devices and services attached
// after Setup are wired immediately on attach.
func (r *RootDevice) Setup(ctx Context) {
	r.context = ctx

	path := GetPath(r)
	ctx.On(path, func(c Context) { r.Display(c) })

	event := log.NewEvent(log.CategorySetup)
	event.Target = r.target
	event.Path = path
	event.UUID = r.deviceUUID
	r.logger().Log(event)

	for i := 0; i < r.numServices; i++ {
		r.services[i].Setup(ctx)
	}

	ctx.On(StylesPath, func(c Context) { r.Styles(c) })
	ctx.On("/", func(c Context) { r.DisplayRoot(c) })

	for i := 0; i < r.numDevices; i++ {
		r.devices[i].Setup(ctx)
	}
}

// GetDeviceByClass returns the root itself when it satisfies t,
// otherwise the first embedded device that does. The scan covers direct
// children only, not grandchildren; with the tree's bounded depth there
// are none below this level. Returns nil when nothing matches.
func (r *RootDevice) GetDeviceByClass(t *rtti.Class) *Device {
	if r.As(t) != nil {
		return &r.Device
	}
	for i := 0; i < r.numDevices; i++ {
		if r.devices[i].As(t) != nil {
			return r.devices[i]
		}
	}
	return nil
}

// GetDeviceByUUID returns the root itself when u matches its UUID,
// otherwise the first embedded device with that UUID. Direct children
// only. Returns nil when nothing matches.
func (r *RootDevice) GetDeviceByUUID(u string) *Device {
	if r.HasUUID(u) {
		return &r.Device
	}
	for i := 0; i < r.numDevices; i++ {
		if r.devices[i].HasUUID(u) {
			return r.devices[i]
		}
	}
	return nil
}

// Location appends the root's absolute URL to w. The root terminates
// the upward recursion with a concrete network address:
// "http://<addr>:<port>/<target>".
func (r *RootDevice) Location(w *buffer.Writer, addr netip.Addr) {
	w.Printf("http://%s:%d/%s", addr, r.ServerPort(), r.target)
}

// RootLocation appends the base URL of the panel:
// "http://<addr>:<port>/".
func (r *RootDevice) RootLocation(w *buffer.Writer, addr netip.Addr) {
	w.Printf("http://%s:%d/", addr, r.ServerPort())
}
