package log

import "time"

// Event records something the device tree did: a node attached, a route
// registered, a display request served, or a degraded condition.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"2,keyasint"`

	// Target is the node's path segment, when the event concerns a node.
	Target string `cbor:"3,keyasint,omitempty"`

	// Path is the full route from root, when known.
	Path string `cbor:"4,keyasint,omitempty"`

	// UUID is the device UUID, when the node carries one.
	UUID string `cbor:"5,keyasint,omitempty"`

	// Status is the HTTP-style status code for request events.
	Status int `cbor:"6,keyasint,omitempty"`

	// Detail is free-form context for error and attach events.
	Detail string `cbor:"7,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryAttach indicates a node joined a parent.
	CategoryAttach Category = 0
	// CategorySetup indicates a route was registered with the dispatch surface.
	CategorySetup Category = 1
	// CategoryRequest indicates a display or handler request was served.
	CategoryRequest Category = 2
	// CategoryError indicates a degraded condition (dropped attach, rejected UUID).
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAttach:
		return "ATTACH"
	case CategorySetup:
		return "SETUP"
	case CategoryRequest:
		return "REQUEST"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// NewEvent returns an Event of the given category stamped with the
// current time.
func NewEvent(category Category) Event {
	return Event{Timestamp: time.Now(), Category: category}
}
