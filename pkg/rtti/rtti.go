package rtti

import "sync/atomic"

// counter assigns process-wide unique class IDs. IDs start at 1 so the
// zero value never collides with a declared class.
var counter atomic.Uint64

// Class identifies a concrete node class at runtime. Each concrete
// class declares exactly one Class value at package init time and keeps
// it for the process lifetime. Two Class pointers compare equal in
// identity terms when their IDs match.
//
// Classes form a single-inheritance chain through their base pointer.
// The chain is the only relationship Satisfies understands; composing
// multiple capabilities into one class is not supported.
type Class struct {
	id   uint64
	base *Class
}

// Declare allocates a new Class derived from base. Pass nil for a root
// class. Declare is intended for package-level var initialization:
//
//	var ThermostatClass = rtti.Declare(upnp.DeviceClass)
func Declare(base *Class) *Class {
	return &Class{id: counter.Add(1), base: base}
}

// ID returns the process-wide unique identifier of the class.
func (c *Class) ID() uint64 {
	return c.id
}

// Base returns the base class, or nil for a root class.
func (c *Class) Base() *Class {
	return c.base
}

// Satisfies reports whether c is t or derives from t through the base
// chain. A nil t never matches.
func (c *Class) Satisfies(t *Class) bool {
	if t == nil {
		return false
	}
	for cur := c; cur != nil; cur = cur.base {
		if cur.id == t.id {
			return true
		}
	}
	return false
}
