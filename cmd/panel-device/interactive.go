package main

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/chzyer/readline"

	"github.com/upnp-panel/upnp-go/pkg/upnp"
)

// console is the interactive command loop for inspecting and extending
// a running panel.
type console struct {
	root *upnp.RootDevice
	rl   *readline.Instance
}

func newConsole(root *upnp.RootDevice) (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "panel> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{root: root, rl: rl}, nil
}

// Run reads and executes commands until quit, EOF, or ctx cancelation.
func (c *console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		args := strings.Fields(input)
		switch args[0] {
		case "help", "?":
			c.printHelp()
		case "info":
			c.cmdInfo()
		case "list":
			c.cmdList()
		case "add":
			c.cmdAdd(args[1:])
		case "find":
			c.cmdFind(args[1:])
		case "quit", "exit":
			cancel()
			return
		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (try 'help')\n", args[0])
		}
	}
}

func (c *console) printHelp() {
	out := c.rl.Stdout()
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  info                          Print the device tree")
	fmt.Fprintln(out, "  list                          List device targets and paths")
	fmt.Fprintln(out, "  add device <target>           Attach a new device")
	fmt.Fprintln(out, "  add service <device> <target> Attach a service to a device")
	fmt.Fprintln(out, "  find <uuid>                   Find a device by UUID")
	fmt.Fprintln(out, "  quit                          Exit")
}

func (c *console) cmdInfo() {
	addr, _ := netip.ParseAddr("127.0.0.1")
	upnp.PrintInfo(c.rl.Stdout(), c.root.AsDevice(), addr)
}

func (c *console) cmdList() {
	out := c.rl.Stdout()
	fmt.Fprintf(out, "%-16s %s\n", c.root.Target(), upnp.GetPath(c.root))
	for i := 0; i < c.root.NumDevices(); i++ {
		d := c.root.DeviceAt(i)
		fmt.Fprintf(out, "%-16s %s\n", d.Target(), upnp.GetPath(d))
		for j := 0; j < d.NumServices(); j++ {
			s := d.Service(j)
			fmt.Fprintf(out, "%-16s %s\n", "  "+s.Target(), upnp.GetPath(s))
		}
	}
}

// cmdAdd attaches a device or service while the panel is serving; the
// new node's route is live immediately.
func (c *console) cmdAdd(args []string) {
	out := c.rl.Stdout()
	switch {
	case len(args) == 2 && args[0] == "device":
		before := c.root.NumDevices()
		c.root.AddDevice(upnp.NewDevice(args[1]))
		if c.root.NumDevices() == before {
			fmt.Fprintln(out, "Attach dropped (capacity or duplicate)")
			return
		}
		d := c.root.DeviceAt(c.root.NumDevices() - 1)
		fmt.Fprintf(out, "Attached %s at %s\n", d.Target(), upnp.GetPath(d))

	case len(args) == 3 && args[0] == "service":
		d := c.findDevice(args[1])
		if d == nil {
			fmt.Fprintf(out, "No device with target %q\n", args[1])
			return
		}
		before := d.NumServices()
		d.AddService(upnp.NewService(args[2]))
		if d.NumServices() == before {
			fmt.Fprintln(out, "Attach dropped (capacity or duplicate)")
			return
		}
		s := d.Service(d.NumServices() - 1)
		fmt.Fprintf(out, "Attached %s at %s\n", s.Target(), upnp.GetPath(s))

	default:
		fmt.Fprintln(out, "Usage: add device <target> | add service <device> <target>")
	}
}

func (c *console) cmdFind(args []string) {
	out := c.rl.Stdout()
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: find <uuid>")
		return
	}
	d := c.root.GetDeviceByUUID(args[0])
	if d == nil {
		fmt.Fprintln(out, "No device with that UUID")
		return
	}
	fmt.Fprintf(out, "%s (%s) at %s\n", d.DisplayName(), d.Target(), upnp.GetPath(d))
}

func (c *console) findDevice(target string) *upnp.Device {
	if c.root.Target() == target {
		return c.root.AsDevice()
	}
	for i := 0; i < c.root.NumDevices(); i++ {
		if d := c.root.DeviceAt(i); d.Target() == target {
			return d
		}
	}
	return nil
}
