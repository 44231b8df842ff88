package gba

// biosSize is the BIOS ROM window, 16 KiB (§3 Region: Bios).
const biosSize = 0x4000

// BIOS is ROM plus an access guard that depends on the CPU's current
// prefetch address (§4.1 "BIOS region policy"): reads only succeed while
// the CPU is fetching from within BIOS; otherwise the last successfully
// fetched BIOS word is returned (open-bus approximation, §9).
//
// Grounded on the teacher's internal/memory/bios.go, which loaded a
// nonexistent embedded asset (GoBA/embedded) and panicked on any access
// outside [0, len); replaced both with a real loader and the documented
// guard + latch.
type BIOS struct {
	data       []byte
	lastFetch  uint32
	prefetcher func() uint32 // returns the CPU's current prefetch address
}

// NewBIOS wraps a loaded BIOS image, zero-padded/truncated to 16 KiB.
func NewBIOS(data []byte) *BIOS {
	b := &BIOS{data: make([]byte, biosSize)}
	copy(b.data, data)
	return b
}

// SetPrefetcher wires the CPU's prefetch-address query (§6 CPUCore
// get_prefetch_addr). Until wired, the guard always treats access as
// in-bounds.
func (b *BIOS) SetPrefetcher(f func() uint32) { b.prefetcher = f }

func (b *BIOS) allowed() bool {
	if b.prefetcher == nil {
		return true
	}
	return b.prefetcher() < biosSize
}

func (b *BIOS) rawRead32(offset uint32) uint32 {
	o := offset & (biosSize - 1)
	return uint32(b.data[o]) | uint32(b.data[o+1])<<8 | uint32(b.data[o+2])<<16 | uint32(b.data[o+3])<<24
}

func (b *BIOS) Read8(offset uint32) uint8 {
	if !b.allowed() {
		return uint8(b.lastFetch)
	}
	o := offset & (biosSize - 1)
	word := b.rawRead32(o &^ 3)
	b.lastFetch = word
	return b.data[o]
}

func (b *BIOS) Read16(offset uint32) uint16 {
	if !b.allowed() {
		return uint16(b.lastFetch)
	}
	o := offset & (biosSize - 1) &^ 1
	word := b.rawRead32(o &^ 3)
	b.lastFetch = word
	return uint16(b.data[o]) | uint16(b.data[o+1])<<8
}

func (b *BIOS) Read32(offset uint32) uint32 {
	if !b.allowed() {
		return b.lastFetch
	}
	o := offset & (biosSize - 1) &^ 3
	word := b.rawRead32(o)
	b.lastFetch = word
	return word
}

// Write* are no-ops: BIOS is read-only silicon, writes are simply
// dropped without even a log line (real hardware ignores them outright).
func (b *BIOS) Write8(offset uint32, value uint8)   {}
func (b *BIOS) Write16(offset uint32, value uint16) {}
func (b *BIOS) Write32(offset uint32, value uint32) {}
