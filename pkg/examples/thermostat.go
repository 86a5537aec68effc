package examples

import (
	"fmt"
	"net/http"

	"github.com/upnp-panel/upnp-go/pkg/buffer"
	"github.com/upnp-panel/upnp-go/pkg/rtti"
	"github.com/upnp-panel/upnp-go/pkg/upnp"
)

// ThermostatClass derives from the plain device class, so a thermostat
// is found by GetDeviceByClass(ThermostatClass) as well as by
// GetDeviceByClass(upnp.DeviceClass).
var ThermostatClass = rtti.Declare(upnp.DeviceClass)

const thermostatType = "urn:upnp-panel-org:device:Thermostat:1.0.0"

// Thermostat is a device with a temperature reading and a setpoint,
// plus a reading service that reports both as a plain page. It shows
// the intended extension pattern: wrap a Device, rebind its class, and
// install content formatters instead of defining a new node kind.
type Thermostat struct {
	device  *upnp.Device
	reading *upnp.Service

	temperature float64
	setpoint    float64
}

// NewThermostat creates a thermostat with the given target.
func NewThermostat(target string) *Thermostat {
	t := &Thermostat{setpoint: 20.0}

	t.device = upnp.NewDevice(target)
	t.device.SetClass(ThermostatClass, thermostatType)
	t.device.SetDisplayName("Thermostat")
	t.device.SetContentFormatter(func(_ *upnp.Device, w *buffer.Writer) {
		t.formatContent(w)
	})
	t.device.SetRootContentFormatter(func(_ *upnp.Device, w *buffer.Writer) {
		t.formatRootContent(w)
	})

	t.reading = upnp.NewService("reading")
	t.reading.SetDisplayName("Reading")
	t.reading.SetHTTPHandler(t.handleReading)
	t.device.AddService(t.reading)

	return t
}

// Device returns the underlying device node, for attaching to a root.
func (t *Thermostat) Device() *upnp.Device {
	return t.device
}

// Temperature returns the current reading in degrees Celsius.
func (t *Thermostat) Temperature() float64 {
	return t.temperature
}

// SetTemperature records a new reading.
func (t *Thermostat) SetTemperature(c float64) {
	t.temperature = c
}

// Setpoint returns the target temperature.
func (t *Thermostat) Setpoint() float64 {
	return t.setpoint
}

// SetSetpoint sets the target temperature.
func (t *Thermostat) SetSetpoint(c float64) {
	t.setpoint = c
}

func (t *Thermostat) formatContent(w *buffer.Writer) {
	w.Printf(`<p class="reading">Temperature: %.1f&deg;C</p>`, t.temperature)
	w.Printf(`<p class="reading">Setpoint: %.1f&deg;C</p>`, t.setpoint)
	upnp.FormatButton(w, upnp.GetPath(t.reading), t.reading.DisplayName())
}

func (t *Thermostat) formatRootContent(w *buffer.Writer) {
	upnp.FormatButton(w, upnp.GetPath(t.device),
		fmt.Sprintf("%s (%.1f&deg;C)", t.device.DisplayName(), t.temperature))
}

// handleReading answers the reading service with a machine-friendly
// plain page.
func (t *Thermostat) handleReading(ctx upnp.Context) {
	body := fmt.Sprintf("temperature=%.1f\nsetpoint=%.1f\n", t.temperature, t.setpoint)
	ctx.Send(http.StatusOK, "text/plain", body)
}
