package network

import (
	"iter"
	"math/big"
	"net"
	"net/netip"

	"go4.org/netipx"

	"github.com/firefly-engineering/ipkit/internal/errors"
)

// Truncate returns the network of the given prefix length that contains addr.
func Truncate(addr netip.Addr, bits int) (netip.Prefix, error) {
	if bits < 0 || bits > addr.BitLen() {
		return netip.Prefix{}, errors.DomainError("invalid prefix length")
	}
	return addr.Prefix(bits)
}

// Subnets enumerates, in ascending address order, the subnets of p with
// the given prefix length.
func Subnets(p netip.Prefix, bits int) (iter.Seq[netip.Prefix], error) {
	if bits < p.Bits() {
		return nil, errors.DomainError("prefix is shorter than original subnet")
	}
	if bits > p.Addr().BitLen() {
		return nil, errors.DomainError("invalid subnet prefix length")
	}

	parent := p.Masked()
	return func(yield func(netip.Prefix) bool) {
		cur := netip.PrefixFrom(parent.Addr(), bits)
		for {
			if !yield(cur) {
				return
			}
			next := netipx.PrefixLastIP(cur).Next()
			if !next.IsValid() || !parent.Contains(next) {
				return
			}
			cur = netip.PrefixFrom(next, bits)
		}
	}, nil
}

// Hosts enumerates the host addresses of p. Unless all is set, IPv4
// networks wider than /31 skip their network and broadcast addresses.
func Hosts(p netip.Prefix, all bool) iter.Seq[netip.Addr] {
	first, last := FirstHost(p), LastHost(p)
	if all {
		first, last = p.Masked().Addr(), netipx.PrefixLastIP(p)
	}
	return addrRange(first, last)
}

func addrRange(from, to netip.Addr) iter.Seq[netip.Addr] {
	return func(yield func(netip.Addr) bool) {
		if !from.IsValid() || to.Less(from) {
			return
		}
		for a := from; ; a = a.Next() {
			if !yield(a) || a == to {
				return
			}
		}
	}
}

func excludesEdges(p netip.Prefix) bool {
	return p.Addr().Is4() && p.Bits() < 31
}

// FirstHost returns the first usable host address of p.
func FirstHost(p netip.Prefix) netip.Addr {
	first := p.Masked().Addr()
	if excludesEdges(p) {
		return first.Next()
	}
	return first
}

// LastHost returns the last usable host address of p.
func LastHost(p netip.Prefix) netip.Addr {
	last := netipx.PrefixLastIP(p)
	if excludesEdges(p) {
		return last.Prev()
	}
	return last
}

// Broadcast returns the last address of p.
func Broadcast(p netip.Prefix) netip.Addr {
	return netipx.PrefixLastIP(p)
}

// HostBits is the number of address bits outside the prefix.
func HostBits(p netip.Prefix) int {
	return p.Addr().BitLen() - p.Bits()
}

// Size returns the number of addresses in p.
func Size(p netip.Prefix) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(HostBits(p)))
}

// UsableHosts returns how many addresses Hosts yields without all.
func UsableHosts(p netip.Prefix) *big.Int {
	n := Size(p)
	if excludesEdges(p) {
		n.Sub(n, big.NewInt(2))
	}
	return n
}

// Netmask returns the mask of p as an address.
func Netmask(p netip.Prefix) netip.Addr {
	mask := net.CIDRMask(p.Bits(), p.Addr().BitLen())
	addr, _ := netip.AddrFromSlice(mask)
	return addr
}

// Hostmask returns the inverted mask of p as an address.
func Hostmask(p netip.Prefix) netip.Addr {
	mask := net.CIDRMask(p.Bits(), p.Addr().BitLen())
	for i := range mask {
		mask[i] = ^mask[i]
	}
	addr, _ := netip.AddrFromSlice(mask)
	return addr
}

// Contains reports whether outer covers v: the address for a bare address,
// every address of the network otherwise.
func Contains(outer netip.Prefix, v AddrOrNet) bool {
	if !v.IsNet() {
		return outer.Contains(v.Addr())
	}
	inner := v.Prefix()
	return outer.Bits() <= inner.Bits() && outer.Contains(inner.Addr())
}
