package upnp

import (
	"net/netip"
	"strings"

	"github.com/upnp-panel/upnp-go/pkg/buffer"
	"github.com/upnp-panel/upnp-go/pkg/log"
	"github.com/upnp-panel/upnp-go/pkg/rtti"
)

// Tree bounds. Sibling collections are fixed arrays and identifier
// strings are clamped, mirroring the constrained-host memory model.
const (
	// MaxServices is the service capacity of a Device.
	MaxServices = 8

	// MaxDevices is the embedded-device capacity of a RootDevice.
	MaxDevices = 8

	// TargetSize is the maximum length of a node's path segment.
	TargetSize = 32

	// NameSize is the maximum length of a display name.
	NameSize = 32

	// DisplaySize is the capacity of the display composition buffer.
	DisplaySize = 1280
)

// Node classes. Custom device classes derive from these with
// rtti.Declare, e.g. rtti.Declare(upnp.DeviceClass).
var (
	// ObjectClass is the root of the node class chain.
	ObjectClass = rtti.Declare(nil)

	// ServiceClass identifies plain services.
	ServiceClass = rtti.Declare(ObjectClass)

	// DeviceClass identifies plain devices.
	DeviceClass = rtti.Declare(ObjectClass)

	// RootDeviceClass identifies root devices; it derives from DeviceClass.
	RootDeviceClass = rtti.Declare(DeviceClass)
)

// Default protocol type strings. The five colon-separated tokens are
// urn, domain, kind (device or service), type name, and version.
const (
	serviceBasicType = "urn:upnp-panel-org:service:Basic:1.0.0"
	deviceBasicType  = "urn:upnp-panel-org:device:Basic:1.0.0"
	rootDeviceType   = "urn:upnp-panel-org:device:Root:1.0.0"
)

// Object is any element of the device tree: RootDevice, Device, or
// Service. The set of implementations is closed; applications extend
// behavior through the formatter and handler hooks, not new node kinds.
type Object interface {
	// Target returns the node's path segment.
	Target() string

	// SetTarget sets the path segment. A leading '/' is stripped and
	// the result is clamped to TargetSize. Targets registered with the
	// dispatch surface must not change afterwards: routes are not
	// re-registered, so a late change produces stale routes.
	SetTarget(target string)

	// DisplayName returns the human-readable name.
	DisplayName() string

	// SetDisplayName sets the human-readable name, clamped to NameSize.
	SetDisplayName(name string)

	// Parent returns the owning node, or nil before attach. The
	// reference is non-owning and set exactly once.
	Parent() Object

	// Class returns the node's runtime class.
	Class() *rtti.Class

	// Satisfies reports whether the node's class is t or derives from it.
	Satisfies(t *rtti.Class) bool

	// As returns the node itself when it satisfies t, nil otherwise.
	As(t *rtti.Class) Object

	// AsService returns the node as a *Service, or nil.
	AsService() *Service

	// AsDevice returns the node as a *Device, or nil.
	AsDevice() *Device

	// AsRootDevice returns the node as a *RootDevice, or nil.
	AsRootDevice() *RootDevice

	// Type returns the protocol type string
	// ("urn:domain:device:name:version").
	Type() string

	// IsType reports exact protocol type equality.
	IsType(t string) bool

	// Location appends the node's absolute URL to w by upward
	// recursion; only a RootDevice terminates it with a concrete
	// network address.
	Location(w *buffer.Writer, addr netip.Addr)

	// Setup registers the node's routes with the dispatch surface.
	Setup(ctx Context)
}

// object is the embedded base of all three node kinds.
type object struct {
	target      string
	displayName string
	parent      Object
	class       *rtti.Class
	protoType   string

	// self is the outermost node, so that dispatch through the parent
	// chain resolves shadowed methods (a RootDevice's Location, not the
	// embedded Device's).
	self Object
}

func (o *object) init(self Object, class *rtti.Class, protoType string) {
	o.self = self
	o.class = class
	o.protoType = protoType
	o.displayName = " "
}

// Target returns the node's path segment.
func (o *object) Target() string {
	return o.target
}

// SetTarget sets the node's path segment. A leading '/' is stripped and
// the value is clamped to TargetSize.
func (o *object) SetTarget(target string) {
	target = strings.TrimPrefix(target, "/")
	o.target = clamp(target, TargetSize)
}

// DisplayName returns the human-readable name.
func (o *object) DisplayName() string {
	return o.displayName
}

// SetDisplayName sets the human-readable name, clamped to NameSize.
func (o *object) SetDisplayName(name string) {
	o.displayName = clamp(name, NameSize)
}

// Parent returns the owning node, or nil before attach.
func (o *object) Parent() Object {
	return o.parent
}

// Class returns the node's runtime class.
func (o *object) Class() *rtti.Class {
	return o.class
}

// Satisfies reports whether the node's class is t or derives from it
// through the single base chain.
func (o *object) Satisfies(t *rtti.Class) bool {
	return o.class.Satisfies(t)
}

// As returns the node when it satisfies t, nil otherwise. The result is
// always the node itself or nil, never a partial view.
func (o *object) As(t *rtti.Class) Object {
	if o.class.Satisfies(t) {
		return o.self
	}
	return nil
}

// AsService returns the node as a *Service, or nil. The check runs
// against the outermost node, so it holds for any view of it.
func (o *object) AsService() *Service {
	if s, ok := o.self.(*Service); ok {
		return s
	}
	return nil
}

// AsDevice returns the node as a *Device, or nil. A RootDevice yields
// its device view.
func (o *object) AsDevice() *Device {
	switch n := o.self.(type) {
	case *RootDevice:
		return &n.Device
	case *Device:
		return n
	}
	return nil
}

// AsRootDevice returns the node as a *RootDevice, or nil.
func (o *object) AsRootDevice() *RootDevice {
	if r, ok := o.self.(*RootDevice); ok {
		return r
	}
	return nil
}

// SetClass rebinds the node to a custom class and protocol type.
// Intended for application device classes:
//
//	var ThermostatClass = rtti.Declare(upnp.DeviceClass)
//	d := upnp.NewDevice("thermostat")
//	d.SetClass(ThermostatClass, "urn:acme-com:device:Thermostat:1.0.0")
func (o *object) SetClass(class *rtti.Class, protoType string) {
	o.class = class
	o.protoType = protoType
}

// Type returns the protocol type string.
func (o *object) Type() string {
	return o.protoType
}

// IsType reports exact protocol type equality.
func (o *object) IsType(t string) bool {
	return o.protoType == t
}

// Domain returns the domain token of the protocol type.
func (o *object) Domain() string {
	return typeToken(o.protoType, 1)
}

// TypeName returns the type-name token of the protocol type.
func (o *object) TypeName() string {
	return typeToken(o.protoType, 3)
}

// TypeVersion returns the version token of the protocol type.
func (o *object) TypeVersion() string {
	return typeToken(o.protoType, 4)
}

// logger resolves the tree's logger through the root device. Detached
// subtrees log nowhere.
func (o *object) logger() log.Logger {
	if root := RootOf(o.self); root != nil && root.eventLog != nil {
		return root.eventLog
	}
	return log.NoopLogger{}
}

// Root returns the topmost ancestor of o, which is o itself when
// detached.
func Root(o Object) Object {
	if o == nil {
		return nil
	}
	cur := o
	for cur.Parent() != nil {
		cur = cur.Parent()
	}
	return cur
}

// RootOf returns the RootDevice at the top of o's ancestor chain, or
// nil when the chain does not end in one.
func RootOf(o Object) *RootDevice {
	top := Root(o)
	if top == nil {
		return nil
	}
	return top.AsRootDevice()
}

func typeToken(protoType string, i int) string {
	tokens := strings.Split(protoType, ":")
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}

func clamp(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
