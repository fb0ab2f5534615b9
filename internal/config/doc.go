// Package config loads the optional ipkit.toml file and the network groups
// it declares.
//
// # Location
//
// An explicit path always wins, then $IPKIT_CONFIG. Either must name a
// readable file. Otherwise the first existing file among ./ipkit.toml,
// <user config dir>/ipkit/ipkit.toml and /etc/ipkit/ipkit.toml is used.
// Having no file at all is not an error.
//
// # Groups
//
// Each group has a name and exactly one source of networks:
//
//	[[groups]]
//	name = "internal"
//	nets = ["10.0.0.0/8", "192.168.0.0/16"]
//
//	[[groups]]
//	name = "office"
//	file = "office.txt"          # relative to the configuration file
//
//	[[groups]]
//	name = "cloud"
//	command = "curl -s https://example.com/ranges.txt"
//	shell = "bash --noprofile"   # optional
//
// File and command groups are resolved through a GroupSource the first
// time they are needed and never again during the same run.
package config
