// Package config loads declarative panel configurations.
//
// A configuration file names the listen port and the device tree:
//
//	port: 8080
//	root:
//	  target: root
//	  name: Home Panel
//	  devices:
//	    - target: thermostat
//	      name: Thermostat
//	      services:
//	        - target: config
//
// Load validates the tree against the runtime capacities up front, then
// Build constructs the corresponding RootDevice.
package config
