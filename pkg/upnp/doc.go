// Package upnp implements the device tree behind a self-describing
// HTML control panel.
//
// # Hierarchy
//
// The tree is a 3-level hierarchy with fixed fan-out:
//
//	RootDevice > Device > Service
//
// A RootDevice owns up to MaxDevices embedded Devices and, like any
// Device, up to MaxServices Services. Each node contributes one path
// segment (its target), so a service is reachable at
// /rootTarget/deviceTarget/serviceTarget.
//
//	RootDevice (target "root")
//	├── Device (target "thermostat")
//	│   ├── Service (target "reading")
//	│   └── Service (target "setpoint")
//	└── Device (target "device1")
//
// # Lifecycle
//
// A node is Detached when constructed, Attached once AddService or
// AddDevice places it under a parent (its target is finalized and its
// parent back-reference set, exactly once), and Wired once Setup has
// registered its route with the dispatch surface. Wiring a RootDevice
// recursively wires everything it currently holds; attaching onto an
// already wired tree wires the new node immediately. There is no
// detach: trees are static for the process lifetime.
//
// # Display
//
// Every node can render an HTML fragment describing itself into a
// caller-supplied fixed-capacity buffer (see package buffer). Sibling
// collections are fixed arrays; attaching past the bound is silently
// dropped. Both behaviors are graceful-degradation choices for
// long-running constrained hosts.
//
// The tree performs no locking. All operations belong to one logical
// control thread; callers must serialize access.
package upnp
