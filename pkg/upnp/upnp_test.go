package upnp

import (
	"fmt"
	"net/netip"
	"strings"
	"testing"

	"github.com/upnp-panel/upnp-go/pkg/buffer"
	"github.com/upnp-panel/upnp-go/pkg/rtti"
)

// fakeContext records route registrations and responses for tests.
type fakeContext struct {
	routes map[string]HandlerFunc
	order  []string
	port   int

	status      int
	contentType string
	body        string
}

func newFakeContext() *fakeContext {
	return &fakeContext{routes: make(map[string]HandlerFunc), port: 8080}
}

func (c *fakeContext) On(path string, handler HandlerFunc) {
	c.routes[path] = handler
	c.order = append(c.order, path)
}

func (c *fakeContext) Send(status int, contentType, body string) {
	c.status = status
	c.contentType = contentType
	c.body = body
}

func (c *fakeContext) LocalPort() int {
	return c.port
}

func (c *fakeContext) request(t *testing.T, path string) {
	t.Helper()
	h, ok := c.routes[path]
	if !ok {
		t.Fatalf("no route registered for %s", path)
	}
	h(c)
}

func TestNewRootDeviceDefaults(t *testing.T) {
	r := NewRootDevice("")
	if got := r.Target(); got != "root" {
		t.Errorf("default target = %q, want %q", got, "root")
	}
	if got := r.DisplayName(); got != "Root Device" {
		t.Errorf("default display name = %q", got)
	}
	if u := r.UUID(); len(u) != 36 {
		t.Errorf("root UUID = %q, want generated 36-char UUID", u)
	}
	if r.ServerPort() != 0 {
		t.Errorf("ServerPort before setup = %d, want 0", r.ServerPort())
	}
	if r.Context() != nil {
		t.Error("Context before setup should be nil")
	}
}

func TestSetTarget(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"plain", "thermostat", "thermostat"},
		{"leading slash stripped", "/thermostat", "thermostat"},
		{"clamped", strings.Repeat("x", TargetSize+10), strings.Repeat("x", TargetSize)},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDevice("")
			d.SetTarget(tt.target)
			if got := d.Target(); got != tt.want {
				t.Errorf("Target() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetDisplayNameClamped(t *testing.T) {
	d := NewDevice("d")
	d.SetDisplayName(strings.Repeat("n", NameSize+5))
	if got := len(d.DisplayName()); got != NameSize {
		t.Errorf("display name length = %d, want %d", got, NameSize)
	}
}

func TestAutoTargets(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("")
	r.AddDevice(d)
	if got := d.Target(); got != "device0" {
		t.Errorf("auto device target = %q, want %q", got, "device0")
	}

	s0 := NewService("")
	s1 := NewService("")
	d.AddServices(s0, s1)
	if got := s0.Target(); got != "service0" {
		t.Errorf("auto service target = %q, want %q", got, "service0")
	}
	if got := s1.Target(); got != "service1" {
		t.Errorf("auto service target = %q, want %q", got, "service1")
	}
}

func TestGetPath(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("thermostat")
	s := NewService("config")
	d.AddService(s)
	r.AddDevice(d)

	if got := GetPath(r); got != "/root" {
		t.Errorf("root path = %q, want %q", got, "/root")
	}
	if got := GetPath(d); got != "/root/thermostat" {
		t.Errorf("device path = %q, want %q", got, "/root/thermostat")
	}
	if got := GetPath(s); got != "/root/thermostat/config" {
		t.Errorf("service path = %q, want %q", got, "/root/thermostat/config")
	}
	if got := HandlerPath(s, "set"); got != "/root/thermostat/config/set" {
		t.Errorf("handler path = %q", got)
	}
}

func TestGetPathDetached(t *testing.T) {
	s := NewService("alone")
	if got := GetPath(s); got != "/alone" {
		t.Errorf("detached path = %q, want %q", got, "/alone")
	}
}

func TestEncodePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/a?b=c&d+e", "%2Fa%3Fb%3Dc%26d%20e"},
		{"/root/device0", "%2Froot%2Fdevice0"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EncodePath(tt.in); got != tt.want {
			t.Errorf("EncodePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddServiceCapacity(t *testing.T) {
	d := NewDevice("d")
	for i := 0; i < MaxServices; i++ {
		d.AddService(NewService(fmt.Sprintf("s%d", i)))
	}
	if d.NumServices() != MaxServices {
		t.Fatalf("NumServices = %d, want %d", d.NumServices(), MaxServices)
	}

	extra := NewService("overflow")
	d.AddService(extra)
	if d.NumServices() != MaxServices {
		t.Errorf("overflow attach changed count to %d", d.NumServices())
	}
	if extra.Parent() != nil {
		t.Error("overflow service should stay detached")
	}
}

func TestAddDeviceCapacity(t *testing.T) {
	r := NewRootDevice("root")
	for i := 0; i < MaxDevices; i++ {
		r.AddDevice(NewDevice(fmt.Sprintf("d%d", i)))
	}
	extra := NewDevice("overflow")
	r.AddDevice(extra)
	if r.NumDevices() != MaxDevices {
		t.Errorf("overflow attach changed count to %d", r.NumDevices())
	}
	if extra.Parent() != nil {
		t.Error("overflow device should stay detached")
	}
}

func TestDoubleAttachDropped(t *testing.T) {
	r := NewRootDevice("root")
	d1 := NewDevice("d1")
	d2 := NewDevice("d2")
	s := NewService("s")

	d1.AddService(s)
	d2.AddService(s)
	if d2.NumServices() != 0 {
		t.Error("already-attached service must not attach twice")
	}
	if s.Parent() != d1 {
		t.Error("service parent changed by rejected attach")
	}

	r.AddDevice(d1)
	r.AddDevice(d1)
	if r.NumDevices() != 1 {
		t.Errorf("NumDevices = %d after double attach, want 1", r.NumDevices())
	}
}

func TestNilAttachIgnored(t *testing.T) {
	r := NewRootDevice("root")
	r.AddDevice(nil)
	r.AddService(nil)
	if r.NumDevices() != 0 || r.NumServices() != 0 {
		t.Error("nil attach must be ignored")
	}
}

func TestDeviceAutoUUID(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("d")
	if d.UUID() != "" {
		t.Fatal("detached device should have no UUID")
	}
	r.AddDevice(d)
	if u := d.UUID(); len(u) != 36 {
		t.Errorf("attach should assign a UUID, got %q", u)
	}
}

func TestSetUUID(t *testing.T) {
	d := NewDevice("d")
	good := "0e32e1f9-4a12-4f6e-9d3b-2c8f1a6b7c01"
	if !d.SetUUID(good) {
		t.Fatal("well-formed UUID rejected")
	}
	if d.UUID() != good {
		t.Errorf("UUID = %q, want %q", d.UUID(), good)
	}
	if d.SetUUID("not-a-uuid") {
		t.Error("malformed UUID accepted")
	}
	if d.UUID() != good {
		t.Error("rejected SetUUID must keep prior value")
	}
}

func TestSetupRegistrationOrder(t *testing.T) {
	r := NewRootDevice("root")
	rs := NewService("rootsvc")
	r.AddService(rs)
	d := NewDevice("dev")
	d.AddService(NewService("svc"))
	r.AddDevice(d)

	ctx := newFakeContext()
	r.Setup(ctx)

	want := []string{"/root", "/root/rootsvc", StylesPath, "/", "/root/dev", "/root/dev/svc"}
	if len(ctx.order) != len(want) {
		t.Fatalf("registered %d routes %v, want %d", len(ctx.order), ctx.order, len(want))
	}
	for i := range want {
		if ctx.order[i] != want[i] {
			t.Errorf("route[%d] = %q, want %q", i, ctx.order[i], want[i])
		}
	}
	if r.ServerPort() != ctx.port {
		t.Errorf("ServerPort = %d, want %d", r.ServerPort(), ctx.port)
	}
}

func TestLateBinding(t *testing.T) {
	r := NewRootDevice("root")
	ctx := newFakeContext()
	r.Setup(ctx)

	d := NewDevice("late")
	d.AddService(NewService("svc"))
	r.AddDevice(d)

	if _, ok := ctx.routes["/root/late"]; !ok {
		t.Error("device attached after setup must be wired immediately")
	}
	if _, ok := ctx.routes["/root/late/svc"]; !ok {
		t.Error("service under late device must be wired immediately")
	}

	s := NewService("later")
	d.AddService(s)
	if _, ok := ctx.routes["/root/late/later"]; !ok {
		t.Error("service attached after setup must be wired immediately")
	}
}

func TestServiceHandler(t *testing.T) {
	r := NewRootDevice("root")
	s := NewService("echo")
	s.SetHTTPHandler(func(ctx Context) {
		ctx.Send(200, ContentTypeHTML, "echo body")
	})
	r.AddService(s)

	ctx := newFakeContext()
	r.Setup(ctx)
	ctx.request(t, "/root/echo")
	if ctx.body != "echo body" {
		t.Errorf("handler body = %q", ctx.body)
	}

	// Restoring the default leaves the route answering with a no-op.
	s.SetHTTPHandler(nil)
	ctx.body = ""
	ctx.request(t, "/root/echo")
	if ctx.body != "" {
		t.Errorf("no-op handler wrote %q", ctx.body)
	}
}

func TestDeviceDisplay(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("dev")
	d.SetDisplayName("Living Room")
	d.SetContentFormatter(func(_ *Device, w *buffer.Writer) {
		w.Printf("<p>22.5 C</p>")
	})
	r.AddDevice(d)

	ctx := newFakeContext()
	r.Setup(ctx)
	ctx.request(t, "/root/dev")

	if ctx.status != 200 || ctx.contentType != ContentTypeHTML {
		t.Fatalf("status/type = %d %q", ctx.status, ctx.contentType)
	}
	for _, want := range []string{"<title>Living Room</title>", "<p>22.5 C</p>", tailTemplate} {
		if !strings.Contains(ctx.body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestDisplayHandlerOverride(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("dev")
	d.SetDisplayHandler(func(_ *Device, ctx Context) {
		ctx.Send(200, ContentTypeHTML, "custom")
	})
	r.AddDevice(d)

	ctx := newFakeContext()
	r.Setup(ctx)
	ctx.request(t, "/root/dev")
	if ctx.body != "custom" {
		t.Errorf("body = %q, want %q", ctx.body, "custom")
	}
}

func TestRootPanelComposition(t *testing.T) {
	r := NewRootDevice("root")
	a := NewDevice("a")
	a.SetDisplayName("Device A")
	b := NewDevice("b")
	b.SetRootContentFormatter(func(_ *Device, w *buffer.Writer) {
		w.Printf("<p>custom fragment</p>")
	})
	r.AddDevices(a, b)

	ctx := newFakeContext()
	r.Setup(ctx)
	ctx.request(t, "/")

	iA := strings.Index(ctx.body, `href="/root/a"`)
	iB := strings.Index(ctx.body, "custom fragment")
	iSelf := strings.Index(ctx.body, `href="/root"`)
	if iA < 0 || iB < 0 || iSelf < 0 {
		t.Fatalf("panel body missing fragments: %q", ctx.body)
	}
	if !(iA < iB && iB < iSelf) {
		t.Error("panel fragments out of attach order")
	}
	if !strings.Contains(ctx.body, "Device A") {
		t.Error("panel missing device display name")
	}
}

func TestRootOwnPageListsDevices(t *testing.T) {
	r := NewRootDevice("root")
	a := NewDevice("a")
	a.SetDisplayName("Device A")
	r.AddDevice(a)

	ctx := newFakeContext()
	r.Setup(ctx)
	ctx.request(t, "/root")
	if !strings.Contains(ctx.body, `href="/root/a"`) {
		t.Errorf("root page missing device link: %q", ctx.body)
	}
}

func TestStylesRoute(t *testing.T) {
	r := NewRootDevice("root")
	ctx := newFakeContext()
	r.Setup(ctx)
	ctx.request(t, StylesPath)
	if ctx.contentType != ContentTypeCSS || ctx.body != StyleSheet {
		t.Errorf("stylesheet response = %q %d bytes", ctx.contentType, len(ctx.body))
	}
}

func TestDisplayTruncation(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("dev")
	d.SetContentFormatter(func(_ *Device, w *buffer.Writer) {
		w.Printf("%s", strings.Repeat("x", DisplaySize*2))
	})
	r.AddDevice(d)

	ctx := newFakeContext()
	r.Setup(ctx)
	ctx.request(t, "/root/dev")
	if len(ctx.body) != DisplaySize {
		t.Errorf("oversized page = %d bytes, want clamped to %d", len(ctx.body), DisplaySize)
	}
}

func TestClassChecks(t *testing.T) {
	thermostatClass := rtti.Declare(DeviceClass)
	r := NewRootDevice("root")
	d := NewDevice("t")
	d.SetClass(thermostatClass, "urn:acme-com:device:Thermostat:1.0.0")
	s := NewService("s")

	tests := []struct {
		name string
		obj  Object
		t    *rtti.Class
		want bool
	}{
		{"root satisfies RootDeviceClass", r, RootDeviceClass, true},
		{"root satisfies DeviceClass", r, DeviceClass, true},
		{"root satisfies ObjectClass", r, ObjectClass, true},
		{"root not ServiceClass", r, ServiceClass, false},
		{"device not RootDeviceClass", NewDevice("d"), RootDeviceClass, false},
		{"custom satisfies own class", d, thermostatClass, true},
		{"custom satisfies DeviceClass", d, DeviceClass, true},
		{"plain device not custom class", NewDevice("d"), thermostatClass, false},
		{"service satisfies ServiceClass", s, ServiceClass, true},
		{"service not DeviceClass", s, DeviceClass, false},
		{"nil class never satisfied", s, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.Satisfies(tt.t); got != tt.want {
				t.Errorf("Satisfies = %v, want %v", got, tt.want)
			}
			gotAs := tt.obj.As(tt.t) != nil
			if gotAs != tt.want {
				t.Errorf("As = %v, want %v", gotAs, tt.want)
			}
		})
	}
}

func TestDowncasts(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("d")
	s := NewService("s")

	if r.AsRootDevice() != r {
		t.Error("root AsRootDevice")
	}
	if r.AsDevice() != &r.Device {
		t.Error("root AsDevice must yield its device view")
	}
	if r.AsService() != nil {
		t.Error("root AsService must be nil")
	}
	if d.AsDevice() != d || d.AsRootDevice() != nil || d.AsService() != nil {
		t.Error("plain device downcasts")
	}
	if s.AsService() != s || s.AsDevice() != nil || s.AsRootDevice() != nil {
		t.Error("service downcasts")
	}

	// The device view of a root still resolves to the root.
	view := r.AsDevice()
	if view.AsRootDevice() != r {
		t.Error("device view of root must downcast back to root")
	}
}

func TestTypeTokens(t *testing.T) {
	d := NewDevice("d")
	d.SetClass(rtti.Declare(DeviceClass), "urn:acme-com:device:Thermostat:2.1.0")
	if got := d.Type(); got != "urn:acme-com:device:Thermostat:2.1.0" {
		t.Errorf("Type = %q", got)
	}
	if !d.IsType("urn:acme-com:device:Thermostat:2.1.0") {
		t.Error("IsType exact match failed")
	}
	if d.IsType("urn:acme-com:device:Thermostat:2.1.1") {
		t.Error("IsType must require exact equality")
	}
	if got := d.Domain(); got != "acme-com" {
		t.Errorf("Domain = %q", got)
	}
	if got := d.TypeName(); got != "Thermostat" {
		t.Errorf("TypeName = %q", got)
	}
	if got := d.TypeVersion(); got != "2.1.0" {
		t.Errorf("TypeVersion = %q", got)
	}
}

func TestGetDeviceByClass(t *testing.T) {
	thermostatClass := rtti.Declare(DeviceClass)
	r := NewRootDevice("root")
	plain := NewDevice("plain")
	therm := NewDevice("therm")
	therm.SetClass(thermostatClass, "urn:acme-com:device:Thermostat:1.0.0")
	r.AddDevices(plain, therm)

	if got := r.GetDeviceByClass(thermostatClass); got != therm {
		t.Error("GetDeviceByClass missed matching child")
	}
	if got := r.GetDeviceByClass(RootDeviceClass); got != &r.Device {
		t.Error("GetDeviceByClass must match the root itself first")
	}
	// DeviceClass matches the root before any child.
	if got := r.GetDeviceByClass(DeviceClass); got != &r.Device {
		t.Error("GetDeviceByClass order: root first")
	}
	if got := r.GetDeviceByClass(rtti.Declare(DeviceClass)); got != nil {
		t.Error("unknown class must yield nil")
	}
}

func TestGetDeviceByUUID(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("d")
	r.AddDevice(d)

	if got := r.GetDeviceByUUID(d.UUID()); got != d {
		t.Error("GetDeviceByUUID missed child")
	}
	if got := r.GetDeviceByUUID(r.UUID()); got != &r.Device {
		t.Error("GetDeviceByUUID must match the root itself")
	}
	if got := r.GetDeviceByUUID("0e32e1f9-4a12-4f6e-9d3b-2c8f1a6b7c01"); got != nil {
		t.Error("unknown UUID must yield nil")
	}
}

func TestLocation(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("dev")
	s := NewService("svc")
	d.AddService(s)
	r.AddDevice(d)

	ctx := newFakeContext()
	r.Setup(ctx)

	addr := netip.MustParseAddr("192.168.1.10")
	if got := locationString(r, addr); got != "http://192.168.1.10:8080/root" {
		t.Errorf("root location = %q", got)
	}
	if got := locationString(d, addr); got != "http://192.168.1.10:8080/root/dev" {
		t.Errorf("device location = %q", got)
	}
	if got := locationString(s, addr); got != "http://192.168.1.10:8080/root/dev/svc" {
		t.Errorf("service location = %q", got)
	}

	w := buffer.NewWriter(make([]byte, 64))
	r.RootLocation(w, addr)
	if got := w.String(); got != "http://192.168.1.10:8080/" {
		t.Errorf("root base location = %q", got)
	}
}

func TestRootHelpers(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("d")
	s := NewService("s")
	d.AddService(s)
	r.AddDevice(d)

	if Root(s) != r {
		t.Error("Root must walk to the top of the chain")
	}
	if RootOf(s) != r {
		t.Error("RootOf must yield the root device")
	}

	lone := NewService("lone")
	if Root(lone) != lone {
		t.Error("Root of detached node is the node")
	}
	if RootOf(lone) != nil {
		t.Error("RootOf without a root must be nil")
	}
}

func TestPrintInfo(t *testing.T) {
	r := NewRootDevice("root")
	d := NewDevice("dev")
	d.SetDisplayName("Thermostat")
	d.AddService(NewService("config"))
	r.AddDevice(d)

	ctx := newFakeContext()
	r.Setup(ctx)

	var b strings.Builder
	PrintInfo(&b, &r.Device, netip.MustParseAddr("10.0.0.2"))
	out := b.String()
	for _, want := range []string{
		"Device Root Device:",
		"Device Thermostat:",
		"Service Service:",
		"path:     /root/dev/config",
		"location: http://10.0.0.2:8080/root/dev",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintInfo output missing %q\n%s", want, out)
		}
	}
}
