package network

import (
	"fmt"
	"net/netip"
	"strings"
)

// AddrOrNet holds either a bare address or a network. Bare addresses order
// before networks; within a kind, values order by address family, then
// address, then prefix length.
type AddrOrNet struct {
	addr  netip.Addr
	net   netip.Prefix
	isNet bool
}

// FromAddr wraps a bare address.
func FromAddr(addr netip.Addr) AddrOrNet {
	return AddrOrNet{addr: addr}
}

// FromPrefix wraps a network.
func FromPrefix(p netip.Prefix) AddrOrNet {
	return AddrOrNet{net: p, isNet: true}
}

// ParseAddrOrNet parses "10.0.0.1" as an address and "10.0.0.0/8" as a network.
func ParseAddrOrNet(s string) (AddrOrNet, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return AddrOrNet{}, err
		}
		return FromPrefix(p), nil
	}
	addr, err := ParseAddr(s)
	if err != nil {
		return AddrOrNet{}, err
	}
	return FromAddr(addr), nil
}

// IsNet reports whether the value was written as a network.
func (v AddrOrNet) IsNet() bool {
	return v.isNet
}

// Addr returns the address part of the value.
func (v AddrOrNet) Addr() netip.Addr {
	if v.isNet {
		return v.net.Addr()
	}
	return v.addr
}

// Prefix returns the value as a network. A bare address becomes a host
// network with the full prefix length of its family.
func (v AddrOrNet) Prefix() netip.Prefix {
	if v.isNet {
		return v.net
	}
	return HostPrefix(v.addr)
}

func (v AddrOrNet) String() string {
	if v.isNet {
		return v.net.String()
	}
	return v.addr.String()
}

func (v AddrOrNet) Compare(o AddrOrNet) int {
	switch {
	case v.isNet == o.isNet && v.isNet:
		return ComparePrefix(v.net, o.net)
	case v.isNet == o.isNet:
		return v.addr.Compare(o.addr)
	case v.isNet:
		return 1
	default:
		return -1
	}
}

// AutoNet is a network that may be written without a prefix length, in
// which case it covers exactly one address.
type AutoNet struct {
	netip.Prefix
}

// ParseAutoNet parses a CIDR network or a bare address.
func ParseAutoNet(s string) (AutoNet, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return AutoNet{}, err
		}
		return AutoNet{p}, nil
	}
	addr, err := ParseAddr(s)
	if err != nil {
		return AutoNet{}, err
	}
	return AutoNet{HostPrefix(addr)}, nil
}

func (n AutoNet) Compare(o AutoNet) int {
	return ComparePrefix(n.Prefix, o.Prefix)
}

// Net is a network that must be written in CIDR form.
type Net struct {
	netip.Prefix
}

// ParseNet parses a CIDR network such as "10.0.0.0/24".
func ParseNet(s string) (Net, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return Net{}, err
	}
	return Net{p}, nil
}

func (n Net) Compare(o Net) int {
	return ComparePrefix(n.Prefix, o.Prefix)
}

// ParseAddr parses a bare address. Zoned IPv6 addresses such as
// "fe80::1%eth0" are rejected: a zone has no place in a network.
func ParseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if addr.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("zoned address %q is not supported", s)
	}
	return addr, nil
}

// HostPrefix returns the single-address network for addr.
func HostPrefix(addr netip.Addr) netip.Prefix {
	return netip.PrefixFrom(addr, addr.BitLen())
}

// ComparePrefix orders networks by family, address, then prefix length.
func ComparePrefix(a, b netip.Prefix) int {
	if c := a.Addr().Compare(b.Addr()); c != 0 {
		return c
	}
	switch {
	case a.Bits() < b.Bits():
		return -1
	case a.Bits() > b.Bits():
		return 1
	}
	return 0
}

// Version returns 4 or 6.
func Version(addr netip.Addr) int {
	if addr.Is4() {
		return 4
	}
	return 6
}
