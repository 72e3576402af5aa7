// Package config loads the tilepath configuration from a YAML file and
// command-line flags. Flags override the file, the file overrides Default.
//
// Example file:
//
//	map:
//	  - "..T.."
//	  - ".b#.."
//	algorithm: astar
//	start: "1,1"
//	goal: "5,2"
//	log_level: debug
package config
