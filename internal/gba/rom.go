package gba

import "GoBA/util/dbg"

// ROM is read-only bounded bytes backing the GamePak ROM window
// (mirrored three times at 0x08/0x0A/0x0C, §3). Writes warn and are
// dropped (§7 "Runtime warnings").
//
// Grounded on the teacher's internal/cartridge/cartridge.go ROM field,
// generalized with bounds checks (the teacher indexed c.ROM[addr]
// directly, which panics past end-of-file on short ROM images) and a
// warn-and-drop write path (the teacher allowed WriteROM8 to mutate the
// backing array, which violates §3's "writes warn and are dropped").
type ROM struct {
	data []byte
}

// NewROM wraps a loaded ROM image. Accesses past the image length (but
// within the 32 MiB window) read as zero, the common real-hardware
// open-bus-like behavior for short dumps.
func NewROM(data []byte) *ROM {
	return &ROM{data: data}
}

const romWindowMask = 0x1FFFFFF // 32 MiB

func (r *ROM) Read8(offset uint32) uint8 {
	o := offset & romWindowMask
	if int(o) >= len(r.data) {
		return 0
	}
	return r.data[o]
}

func (r *ROM) Read16(offset uint32) uint16 {
	return uint16(r.Read8(offset)) | uint16(r.Read8(offset+1))<<8
}

func (r *ROM) Read32(offset uint32) uint32 {
	return uint32(r.Read8(offset)) |
		uint32(r.Read8(offset+1))<<8 |
		uint32(r.Read8(offset+2))<<16 |
		uint32(r.Read8(offset+3))<<24
}

func (r *ROM) Write8(offset uint32, value uint8) {
	dbg.Warnf("ROM: write of %#02x to read-only offset %#x dropped", value, offset)
}

func (r *ROM) Write16(offset uint32, value uint16) { dbg.Warnf("ROM: write16 to %#x dropped", offset) }
func (r *ROM) Write32(offset uint32, value uint32) { dbg.Warnf("ROM: write32 to %#x dropped", offset) }

// Len reports the size of the underlying ROM image.
func (r *ROM) Len() int { return len(r.data) }
