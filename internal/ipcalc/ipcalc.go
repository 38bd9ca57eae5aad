package ipcalc

import (
	"errors"
	"fmt"
	"net/netip"
)

var ErrInvalidAddress = errors.New("invalid address")

// ParseIPv4 packs dotted-quad text into a big-endian uint32.
func ParseIPv4(s string) (uint32, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return Uint32(addr)
}

func Uint32(a netip.Addr) (uint32, error) {
	if !a.Is4() {
		return 0, fmt.Errorf("%w: %s is not ipv4", ErrInvalidAddress, a)
	}
	octets := a.As4()
	return uint32(octets[0])<<24 | uint32(octets[1])<<16 | uint32(octets[2])<<8 | uint32(octets[3]), nil
}

func FromUint32(n uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
}

// DottedMask renders a prefix length as a dotted-quad netmask,
// e.g. 20 -> "255.255.240.0".
func DottedMask(bits int) (string, error) {
	if bits < 0 || bits > 32 {
		return "", fmt.Errorf("%w: prefix length %d", ErrInvalidAddress, bits)
	}
	return FromUint32(^uint32(0) << uint(32-bits)).String(), nil
}

// HostCount returns the usable host capacity of a block with the given
// prefix length: 2^(32-bits) minus the network and broadcast addresses.
// /31 yields 0 and /32 yields -1; callers that care must guard.
func HostCount(bits int) int {
	if bits < 0 || bits > 32 {
		return -1
	}
	return int(uint64(1)<<uint(32-bits)) - 2
}

// BlockSize returns the full span of a block with the given prefix length,
// network and broadcast included. 2^(32-bits) needs 64 bits for /0.
func BlockSize(bits int) uint64 {
	if bits < 0 || bits > 32 {
		return 0
	}
	return uint64(1) << uint(32-bits)
}
