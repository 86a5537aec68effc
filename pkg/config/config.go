package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/upnp-panel/upnp-go/pkg/upnp"
	"github.com/upnp-panel/upnp-go/pkg/uuid"
)

// Validation errors.
var (
	ErrTooManyDevices  = errors.New("too many devices")
	ErrTooManyServices = errors.New("too many services")
	ErrBadUUID         = errors.New("malformed uuid")
	ErrDuplicateTarget = errors.New("duplicate target")
)

// Config is a declarative description of a panel: the listen port and
// the device tree to build.
type Config struct {
	Port int        `yaml:"port"`
	Root RootConfig `yaml:"root"`
}

// RootConfig describes the root device.
type RootConfig struct {
	Target  string         `yaml:"target"`
	Name    string         `yaml:"name"`
	UUID    string         `yaml:"uuid"`
	Devices []DeviceConfig `yaml:"devices"`
}

// DeviceConfig describes one embedded device.
type DeviceConfig struct {
	Target   string          `yaml:"target"`
	Name     string          `yaml:"name"`
	UUID     string          `yaml:"uuid"`
	Services []ServiceConfig `yaml:"services"`
}

// ServiceConfig describes one service of a device.
type ServiceConfig struct {
	Target string `yaml:"target"`
	Name   string `yaml:"name"`
}

// Load reads and parses a panel configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a panel configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the tree against the capacities and identifier rules
// the runtime enforces, so misconfiguration fails at load time instead
// of being silently dropped at attach time.
func (c *Config) Validate() error {
	if len(c.Root.Devices) > upnp.MaxDevices {
		return fmt.Errorf("%w: %d devices, limit %d",
			ErrTooManyDevices, len(c.Root.Devices), upnp.MaxDevices)
	}
	if c.Root.UUID != "" && !uuid.Validate(c.Root.UUID) {
		return fmt.Errorf("%w: root uuid %q", ErrBadUUID, c.Root.UUID)
	}

	deviceTargets := make(map[string]bool)
	for _, d := range c.Root.Devices {
		if d.Target != "" {
			if deviceTargets[d.Target] {
				return fmt.Errorf("%w: device %q", ErrDuplicateTarget, d.Target)
			}
			deviceTargets[d.Target] = true
		}
		if d.UUID != "" && !uuid.Validate(d.UUID) {
			return fmt.Errorf("%w: device %q uuid %q", ErrBadUUID, d.Target, d.UUID)
		}
		if len(d.Services) > upnp.MaxServices {
			return fmt.Errorf("%w: device %q has %d services, limit %d",
				ErrTooManyServices, d.Target, len(d.Services), upnp.MaxServices)
		}
		serviceTargets := make(map[string]bool)
		for _, s := range d.Services {
			if s.Target == "" {
				continue
			}
			if serviceTargets[s.Target] {
				return fmt.Errorf("%w: service %q of device %q",
					ErrDuplicateTarget, s.Target, d.Target)
			}
			serviceTargets[s.Target] = true
		}
	}
	return nil
}

// Build constructs the device tree the configuration describes. Names
// and UUIDs left empty keep the runtime defaults; auto-targets apply to
// nodes configured without one.
func (c *Config) Build() *upnp.RootDevice {
	root := upnp.NewRootDevice(c.Root.Target)
	if c.Root.Name != "" {
		root.SetDisplayName(c.Root.Name)
	}
	if c.Root.UUID != "" {
		root.SetUUID(c.Root.UUID)
	}

	for _, dc := range c.Root.Devices {
		dvc := upnp.NewDevice(dc.Target)
		if dc.Name != "" {
			dvc.SetDisplayName(dc.Name)
		}
		if dc.UUID != "" {
			dvc.SetUUID(dc.UUID)
		}
		for _, sc := range dc.Services {
			svc := upnp.NewService(sc.Target)
			if sc.Name != "" {
				svc.SetDisplayName(sc.Name)
			}
			dvc.AddService(svc)
		}
		root.AddDevice(dvc)
	}
	return root
}
