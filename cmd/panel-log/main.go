// Command panel-log views and analyzes panel event log files.
//
// Event logs are created by running panel-device with the -log-file
// flag; events are CBOR-encoded with integer keys.
//
// Usage:
//
//	panel-log <command> [flags] <file>
//
// Commands:
//
//	view     View a log file in human-readable format
//	export   Export a log file as JSON lines
//	stats    Show per-category statistics
//
// Examples:
//
//	# View all events
//	panel-log view panel.cbor
//
//	# View only dropped attaches and rejected UUIDs
//	panel-log view -category error panel.cbor
//
//	# Export events for one device target
//	panel-log export -target thermostat panel.cbor
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/upnp-panel/upnp-go/pkg/log"
)

const usage = `panel-log - Panel Event Log Analyzer

Usage:
  panel-log <command> [flags] <file>

Commands:
  view     View a log file in human-readable format
  export   Export a log file as JSON lines
  stats    Show per-category statistics

Use "panel-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	filter, path := parseFilter(fs, args)

	events := readEvents(path, filter)
	for _, event := range events {
		line := fmt.Sprintf("%s %-7s target=%s path=%s",
			event.Timestamp.Format("15:04:05.000"), event.Category, event.Target, event.Path)
		if event.UUID != "" {
			line += " uuid=" + event.UUID
		}
		if event.Status != 0 {
			line += fmt.Sprintf(" status=%d", event.Status)
		}
		if event.Detail != "" {
			line += " detail=" + event.Detail
		}
		fmt.Println(line)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	filter, path := parseFilter(fs, args)

	events := readEvents(path, filter)
	enc := json.NewEncoder(os.Stdout)
	for _, event := range events {
		out := map[string]any{
			"time":     event.Timestamp,
			"category": event.Category.String(),
		}
		if event.Target != "" {
			out["target"] = event.Target
		}
		if event.Path != "" {
			out["path"] = event.Path
		}
		if event.UUID != "" {
			out["uuid"] = event.UUID
		}
		if event.Status != 0 {
			out["status"] = event.Status
		}
		if event.Detail != "" {
			out["detail"] = event.Detail
		}
		if err := enc.Encode(out); err != nil {
			fatalf("encode: %v", err)
		}
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	filter, path := parseFilter(fs, args)

	events := readEvents(path, filter)
	counts := make(map[log.Category]int)
	targets := make(map[string]bool)
	for _, event := range events {
		counts[event.Category]++
		if event.Target != "" {
			targets[event.Target] = true
		}
	}

	fmt.Printf("Events:  %d\n", len(events))
	fmt.Printf("Targets: %d\n", len(targets))
	for _, c := range []log.Category{log.CategoryAttach, log.CategorySetup, log.CategoryRequest, log.CategoryError} {
		fmt.Printf("  %-7s %d\n", c, counts[c])
	}
	if len(events) > 0 {
		first := events[0].Timestamp
		last := events[len(events)-1].Timestamp
		fmt.Printf("Span:    %s\n", last.Sub(first))
	}
}

// parseFilter registers the shared filter flags on fs, parses args, and
// returns the filter plus the log file path.
func parseFilter(fs *flag.FlagSet, args []string) (*log.Filter, string) {
	category := fs.String("category", "", "Filter by category (attach, setup, request, error)")
	target := fs.String("target", "", "Filter by node target")
	filterPath := fs.String("path", "", "Filter by route path")
	uuid := fs.String("uuid", "", "Filter by device UUID")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fatalf("log file path required")
	}

	filter := &log.Filter{
		Target: *target,
		Path:   *filterPath,
		UUID:   *uuid,
	}
	if *category != "" {
		c, err := parseCategory(*category)
		if err != nil {
			fatalf("%v", err)
		}
		filter.Category = &c
	}
	return filter, fs.Arg(0)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "attach":
		return log.CategoryAttach, nil
	case "setup":
		return log.CategorySetup, nil
	case "request":
		return log.CategoryRequest, nil
	case "error":
		return log.CategoryError, nil
	}
	return 0, fmt.Errorf("unknown category: %s", s)
}

func readEvents(path string, filter *log.Filter) []log.Event {
	r, err := log.NewReader(path)
	if err != nil {
		fatalf("open log: %v", err)
	}
	defer r.Close()

	events, err := r.ReadAll(filter)
	if err != nil {
		fatalf("read log: %v", err)
	}
	return events
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
