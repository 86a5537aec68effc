package upnp

import (
	"fmt"
	"io"
	"net/netip"

	"github.com/upnp-panel/upnp-go/pkg/buffer"
)

// PrintInfo writes a human-readable summary of a device and everything
// below it to out. addr is used to render locations; for a detached or
// unwired tree the port renders as 0.
func PrintInfo(out io.Writer, d *Device, addr netip.Addr) {
	printDeviceInfo(out, d, addr, "")
	if root := d.self.AsRootDevice(); root != nil {
		for i := 0; i < root.numDevices; i++ {
			printDeviceInfo(out, root.devices[i], addr, "   ")
		}
	}
}

func printDeviceInfo(out io.Writer, d *Device, addr netip.Addr, indent string) {
	fmt.Fprintf(out, "%sDevice %s:\n", indent, d.displayName)
	fmt.Fprintf(out, "%s   type:     %s\n", indent, d.protoType)
	fmt.Fprintf(out, "%s   target:   %s\n", indent, d.target)
	fmt.Fprintf(out, "%s   path:     %s\n", indent, GetPath(d.self))
	fmt.Fprintf(out, "%s   uuid:     %s\n", indent, d.deviceUUID)
	fmt.Fprintf(out, "%s   location: %s\n", indent, locationString(d.self, addr))
	for i := 0; i < d.numServices; i++ {
		printServiceInfo(out, d.services[i], addr, indent+"   ")
	}
}

func printServiceInfo(out io.Writer, s *Service, addr netip.Addr, indent string) {
	fmt.Fprintf(out, "%sService %s:\n", indent, s.displayName)
	fmt.Fprintf(out, "%s   type:     %s\n", indent, s.protoType)
	fmt.Fprintf(out, "%s   target:   %s\n", indent, s.target)
	fmt.Fprintf(out, "%s   path:     %s\n", indent, GetPath(s.self))
	fmt.Fprintf(out, "%s   location: %s\n", indent, locationString(s.self, addr))
}

func locationString(o Object, addr netip.Addr) string {
	w := buffer.NewWriter(make([]byte, 256))
	o.Location(w, addr)
	return w.String()
}
