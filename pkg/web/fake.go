package web

import (
	"fmt"

	"github.com/upnp-panel/upnp-go/pkg/upnp"
)

// FakeContext is an in-memory dispatch surface. It records route
// registrations and the last response sent, so a device tree can be
// exercised without a network listener.
type FakeContext struct {
	// Port is reported by LocalPort.
	Port int

	// Status, ContentType and Body hold the last response sent.
	Status      int
	ContentType string
	Body        string

	routes map[string]upnp.HandlerFunc
	order  []string
}

// NewFakeContext returns a FakeContext reporting the given port.
func NewFakeContext(port int) *FakeContext {
	return &FakeContext{
		Port:   port,
		routes: make(map[string]upnp.HandlerFunc),
	}
}

// On records the registration. A re-registration replaces the handler
// but keeps the original position in the registration order.
func (c *FakeContext) On(path string, handler upnp.HandlerFunc) {
	if _, seen := c.routes[path]; !seen {
		c.order = append(c.order, path)
	}
	c.routes[path] = handler
}

// Send records the response.
func (c *FakeContext) Send(status int, contentType, body string) {
	c.Status = status
	c.ContentType = contentType
	c.Body = body
}

// LocalPort returns the configured port.
func (c *FakeContext) LocalPort() int {
	return c.Port
}

// Routes returns the registered paths in registration order.
func (c *FakeContext) Routes() []string {
	result := make([]string, len(c.order))
	copy(result, c.order)
	return result
}

// Request dispatches the handler registered for path and returns the
// recorded response body. It fails with an error when no handler is
// registered.
func (c *FakeContext) Request(path string) (string, error) {
	h, ok := c.routes[path]
	if !ok {
		return "", fmt.Errorf("no handler registered for %s", path)
	}
	c.Status, c.ContentType, c.Body = 0, "", ""
	h(c)
	return c.Body, nil
}
