// Package examples contains reference device implementations built on
// the upnp object model.
//
// Thermostat demonstrates the custom-device pattern: a wrapper struct
// around *upnp.Device that rebinds the runtime class, installs content
// formatters for its panel fragments, and attaches a service with an
// application handler. Applications should copy this shape rather than
// embedding the node types.
package examples
