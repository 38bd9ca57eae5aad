package domain

import (
	"fmt"
	"net/netip"

	"go4.org/netipx"

	"github.com/mkrawiec/netplanner/internal/ipcalc"
)

const maxMask = 30

// findAvailableRange scans for a block that holds minHosts usable addresses
// and overlaps no reservation. It starts at the tightest adequate prefix
// length and steps whole blocks from base; when probeLimit candidates at one
// length are all taken it moves to the next length and restarts from base.
// The scan favors minimal address-space consumption over search locality.
func findAvailableRange(base netip.Addr, minHosts int, used []Reservation, probeLimit int) (netip.Addr, int, error) {
	baseNum, err := ipcalc.Uint32(base)
	if err != nil {
		return netip.Addr{}, 0, err
	}
	if minHosts < 1 {
		return netip.Addr{}, 0, fmt.Errorf("%w: need at least one host, got %d", ErrInvalidInput, minHosts)
	}

	start := maxMask
	for start > 0 && ipcalc.HostCount(start) < minHosts {
		start--
	}
	if ipcalc.HostCount(start) < minHosts {
		return netip.Addr{}, 0, ErrPoolExhausted
	}

	usedRanges := make([]netipx.IPRange, 0, len(used))
	for _, r := range used {
		usedRanges = append(usedRanges, reservationRange(r))
	}

	for mask := start; mask <= maxMask; mask++ {
		block := ipcalc.BlockSize(mask)
		for probe := 0; probe < probeLimit; probe++ {
			from := uint64(baseNum) + uint64(probe)*block
			to := from + block - 1
			if to > 0xFFFFFFFF {
				// Ran off the top of the address space at this length.
				break
			}
			candidate := netipx.IPRangeFrom(ipcalc.FromUint32(uint32(from)), ipcalc.FromUint32(uint32(to)))
			if overlapsAny(candidate, usedRanges) {
				continue
			}
			return ipcalc.FromUint32(uint32(from)), mask, nil
		}
	}

	return netip.Addr{}, 0, ErrPoolExhausted
}

// reservationRange is the full block claimed by a reservation, network and
// broadcast included. Reservations with unusable fields yield an invalid
// range, which overlaps nothing.
func reservationRange(r Reservation) netipx.IPRange {
	start, err := ipcalc.Uint32(r.Network)
	if err != nil {
		return netipx.IPRange{}
	}
	span := ipcalc.BlockSize(r.Mask)
	if span == 0 {
		return netipx.IPRange{}
	}
	end := uint64(start) + span - 1
	if end > 0xFFFFFFFF {
		end = 0xFFFFFFFF
	}
	return netipx.IPRangeFrom(r.Network, ipcalc.FromUint32(uint32(end)))
}

func overlapsAny(candidate netipx.IPRange, used []netipx.IPRange) bool {
	for _, r := range used {
		if candidate.Overlaps(r) {
			return true
		}
	}
	return false
}
