package gba

// sramWaits and romFirstWaits map a 2-bit WAITCNT selector to the
// documented N-cycle wait-state count for SRAM and a ROM region's first
// (non-sequential) access.
var sramWaits = [4]int{4, 3, 2, 8}
var romFirstWaits = [4]int{4, 3, 2, 8}

// romSecondWaits maps each of the three ROM wait-state regions (WS0,
// WS1, WS2) and WAITCNT's 1-bit second-access selector to the
// documented S-cycle wait-state count; each region picks a different
// bit position and a different pair of candidate values.
var romSecondWaits = [3][2]int{{2, 1}, {4, 1}, {8, 1}}

// GetWaitStates answers spec.md §9's open question: given the current
// WAITCNT value, the accessed address, width and whether the CPU is
// requesting a sequential access, how many extra wait cycles does this
// access cost. The tick scheduler does not charge these itself (§9
// "the specification does not mandate a specific accounting"); an
// external CPU core may call this and add the result to its own timing.
//
// Grounded on original_source's src/mmu/gba/wait.rs for the table shape
// (per-region N/S cycle arrays, +1 baseline) — that file's
// set_waitcnt reused the same WS0 bit extraction for all three ROM
// regions, which would make WS1/WS2's first-access selector read WS0's
// bits; real WAITCNT (and the bit positions spec.md §6 lists for it)
// gives WS1 and WS2 their own 2-bit/1-bit fields, so the region-to-bits
// mapping below follows that corrected, documented layout instead.
func GetWaitStates(waitcnt uint16, addr uint32, width Width, seq bool) int {
	region := (addr >> 24) & 0xF

	nonSeq := func() int {
		switch region {
		case 0x8, 0x9:
			return romFirstWaits[waitcnt>>2&0x3]
		case 0xA, 0xB:
			return romFirstWaits[waitcnt>>5&0x3]
		case 0xC, 0xD:
			return romFirstWaits[waitcnt>>8&0x3]
		case 0xE, 0xF:
			return sramWaits[waitcnt&0x3]
		default:
			return 0
		}
	}
	seqCost := func() int {
		switch region {
		case 0x8, 0x9:
			return romSecondWaits[0][waitcnt>>4&0x1]
		case 0xA, 0xB:
			return romSecondWaits[1][waitcnt>>7&0x1]
		case 0xC, 0xD:
			return romSecondWaits[2][waitcnt>>10&0x1]
		case 0xE, 0xF:
			return sramWaits[waitcnt&0x3]
		default:
			return 0
		}
	}

	var base int
	if seq {
		base = seqCost() + 1
	} else {
		base = nonSeq() + 1
	}
	if width == Width32 && region != 0xE && region != 0xF {
		// A 32-bit GamePak access is two 16-bit bus cycles; the second
		// half is always sequential to the first regardless of the
		// access the CPU requested.
		base += seqCost() + 1
	}
	return base
}

// GetWaitStates queries the live WAITCNT value for the system's bus.
func (s *System) GetWaitStates(addr uint32, width Width, seq bool) int {
	return GetWaitStates(s.io.GetRegHalf(AddrWAITCNT), addr, width, seq)
}
