// Package network provides the address and network value types ipkit
// parses, and the CIDR arithmetic the commands delegate to.
//
// # Value Types
//
//   - netip.Addr: a bare address ("10.0.0.1")
//   - Net: a CIDR network ("10.0.0.0/24"); the slash is required
//   - AutoNet: a network where a bare address means a host network
//     ("10.0.0.1" is 10.0.0.1/32, "::1" is ::1/128)
//   - AddrOrNet: either of the above, remembering which one was written
//
// Every type is comparable and has a Compare method, so the input
// pipeline can sort and de-duplicate it.
//
// # Arithmetic
//
//	p, _ := network.Truncate(addr, 24)       // 10.1.2.3 -> 10.1.2.0/24
//	subnets, err := network.Subnets(p, 26)   // four /26 networks
//	for host := range network.Hosts(p, false) { ... }
//
// Subnets returns a domain error when the requested prefix is shorter than
// the network's own.
package network
