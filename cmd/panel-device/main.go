// Command panel-device runs a control-panel device.
//
// It builds a device tree, serves its HTML control panel over HTTP, and
// optionally advertises the panel over mDNS and opens an interactive
// console.
//
// Usage:
//
//	panel-device [flags]
//
// Flags:
//
//	-config string     Panel configuration file (YAML)
//	-target string     Root device target (default "root")
//	-name string       Root device display name (default "Panel")
//	-port int          Listen port (default 8080)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-log-file string   Event log file (CBOR), empty disables
//	-state string      Identity state file (JSON), empty disables
//	-advertise         Advertise the panel over mDNS
//	-iface string      Network interface for mDNS (default all)
//	-interactive       Open an interactive console
//
// Examples:
//
//	# Serve a demo thermostat panel
//	panel-device -name "Home Panel" -port 8080
//
//	# Build the tree from a config file, with an event log
//	panel-device -config /etc/panel/home.yaml -log-file /var/log/panel.cbor
package main

import (
	"context"
	"flag"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/upnp-panel/upnp-go/pkg/config"
	"github.com/upnp-panel/upnp-go/pkg/discovery"
	"github.com/upnp-panel/upnp-go/pkg/examples"
	"github.com/upnp-panel/upnp-go/pkg/log"
	"github.com/upnp-panel/upnp-go/pkg/persistence"
	"github.com/upnp-panel/upnp-go/pkg/upnp"
	"github.com/upnp-panel/upnp-go/pkg/web"
)

// Options holds the command configuration.
type Options struct {
	ConfigFile  string
	Target      string
	Name        string
	Port        int
	LogLevel    string
	LogFile     string
	StateFile   string
	Advertise   bool
	Interface   string
	Interactive bool
}

var opts Options

func init() {
	flag.StringVar(&opts.ConfigFile, "config", "", "Panel configuration file (YAML)")
	flag.StringVar(&opts.Target, "target", "root", "Root device target")
	flag.StringVar(&opts.Name, "name", "Panel", "Root device display name")
	flag.IntVar(&opts.Port, "port", 8080, "Listen port")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&opts.LogFile, "log-file", "", "Event log file (CBOR), empty disables")
	flag.StringVar(&opts.StateFile, "state", "", "Identity state file (JSON), empty disables")
	flag.BoolVar(&opts.Advertise, "advertise", false, "Advertise the panel over mDNS")
	flag.StringVar(&opts.Interface, "iface", "", "Network interface for mDNS (default all)")
	flag.BoolVar(&opts.Interactive, "interactive", false, "Open an interactive console")
}

func main() {
	flag.Parse()

	setupSlog(opts.LogLevel)

	root, port := buildTree()
	restoreIdentity(root)

	eventLog, closeLog := buildEventLog()
	defer closeLog()
	root.SetLogger(eventLog)

	srv := web.NewServer(port)
	root.Setup(srv.Context())
	if err := srv.Start(); err != nil {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
	slog.Info("panel serving", "port", srv.LocalPort(), "target", root.Target())

	if opts.Advertise {
		adv := discovery.NewAdvertiser(discovery.AdvertiserConfig{Interface: opts.Interface})
		if err := adv.Advertise(root, srv.LocalPort()); err != nil {
			slog.Warn("mDNS advertising failed", "err", err)
		} else {
			defer adv.Shutdown()
			slog.Info("panel advertised", "instance", discovery.InstanceName(root))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.Interactive {
		console, err := newConsole(root)
		if err != nil {
			stdlog.Fatalf("Failed to open console: %v", err)
		}
		go console.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("server shutdown", "err", err)
	}
}

func setupSlog(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// buildTree constructs the device tree: from the config file when one
// is given, otherwise a demo tree with a thermostat.
func buildTree() (*upnp.RootDevice, int) {
	if opts.ConfigFile != "" {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			stdlog.Fatalf("Invalid configuration: %v", err)
		}
		port := cfg.Port
		if port == 0 {
			port = opts.Port
		}
		return cfg.Build(), port
	}

	root := upnp.NewRootDevice(opts.Target)
	root.SetDisplayName(opts.Name)

	therm := examples.NewThermostat("thermostat")
	therm.SetTemperature(21.0)
	root.AddDevice(therm.Device())

	return root, opts.Port
}

// restoreIdentity reapplies saved UUID assignments and writes the
// resulting ones back, so device identities survive restarts.
func restoreIdentity(root *upnp.RootDevice) {
	if opts.StateFile == "" {
		return
	}
	store := persistence.NewStateStore(opts.StateFile)
	state, err := store.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load state: %v", err)
	}
	persistence.Restore(root, state)
	if err := store.Save(persistence.Snapshot(root)); err != nil {
		slog.Warn("state save failed", "err", err)
	}
}

// buildEventLog assembles the event logger: slog always, plus the CBOR
// file log when -log-file is set.
func buildEventLog() (log.Logger, func()) {
	slogLogger := log.NewSlogAdapter(slog.Default())
	if opts.LogFile == "" {
		return slogLogger, func() {}
	}

	fileLogger, err := log.NewFileLogger(opts.LogFile)
	if err != nil {
		stdlog.Fatalf("Failed to open event log: %v", err)
	}
	return log.NewMultiLogger(slogLogger, fileLogger), func() { fileLogger.Close() }
}
