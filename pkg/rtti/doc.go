// Package rtti provides hand-rolled runtime class identity for the
// device tree.
//
// Go's type switches identify concrete Go types, but the panel model
// needs identity per application-level class: two different thermostat
// classes may both be built on the same *upnp.Device. Each class
// declares a Class value once, at init, and every node carries the
// Class it was constructed with. Satisfies walks the single base chain,
// so a node declared with Declare(DeviceClass) satisfies both its own
// class and DeviceClass.
//
// The chain is strictly single inheritance. A class has exactly one
// base; capability composition across multiple chains is out of scope.
package rtti
