package discovery

import (
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"

	"github.com/upnp-panel/upnp-go/pkg/upnp"
)

// mDNS service parameters for the control panel.
const (
	ServiceType = "_http._tcp"
	Domain      = "local."

	// MaxInstanceNameLen bounds the advertised instance name.
	MaxInstanceNameLen = 63
)

// AdvertiserConfig configures panel advertising.
type AdvertiserConfig struct {
	// Interface restricts advertising to one network interface by name.
	// Empty means all interfaces.
	Interface string
}

// Advertiser announces a panel's control UI over mDNS so browsers on
// the local network can find it.
type Advertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewAdvertiser creates an advertiser.
func NewAdvertiser(config AdvertiserConfig) *Advertiser {
	return &Advertiser{config: config}
}

func (a *Advertiser) interfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise announces the root device's panel on the given port. A
// previous announcement is replaced.
func (a *Advertiser) Advertise(root *upnp.RootDevice, port int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	server, err := zeroconf.Register(
		InstanceName(root),
		ServiceType,
		Domain,
		port,
		TXTRecords(root),
		a.interfaces(),
	)
	if err != nil {
		return fmt.Errorf("failed to register panel service: %w", err)
	}

	a.server = server
	return nil
}

// Update refreshes the TXT records of an active announcement, for
// example after attaching another device.
func (a *Advertiser) Update(root *upnp.RootDevice) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return fmt.Errorf("panel service is not advertised")
	}
	a.server.SetText(TXTRecords(root))
	return nil
}

// Shutdown withdraws the announcement.
func (a *Advertiser) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// InstanceName derives the advertised instance name from the root's
// display name, clamped to the mDNS label limit.
func InstanceName(root *upnp.RootDevice) string {
	name := root.DisplayName()
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}

// TXTRecords builds the announcement's TXT records: the root UUID and
// panel path, plus one record per embedded device naming its page.
func TXTRecords(root *upnp.RootDevice) []string {
	records := []string{
		"uuid=" + root.UUID(),
		"path=/",
		"type=" + root.Type(),
	}
	for i := 0; i < root.NumDevices(); i++ {
		d := root.DeviceAt(i)
		records = append(records, fmt.Sprintf("device%d=%s", i, upnp.GetPath(d)))
	}
	return records
}
