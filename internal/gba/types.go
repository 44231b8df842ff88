// Package gba implements the system tick engine and memory/peripheral
// fabric of a GBA-class handheld: address decoding, RAM/ROM/BIOS blocks,
// the IO register file, interrupt controller, timers, DMA, keypad, the
// PPU scanline renderer, the EEPROM save device, and the tick scheduler
// that glues them together. The ARM7TDMI instruction set itself is out
// of scope; see CPUCore in interfaces.go for the boundary.
package gba

// Width is a memory access width in bytes.
type Width uint8

const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
)

// MemoryResult distinguishes a concrete value from an open-bus read.
// Implementations that cannot expose Open fall back to a region-defined
// default (see Open()), but the distinction is kept here so open-bus
// behavior stays testable.
type MemoryResult struct {
	value uint32
	open  bool
}

// Value wraps a concrete bus value.
func Value(v uint32) MemoryResult { return MemoryResult{value: v} }

// Open represents an open-bus read with no backing peripheral.
func Open() MemoryResult { return MemoryResult{open: true} }

// IsOpen reports whether this result has no concrete backing value.
func (m MemoryResult) IsOpen() bool { return m.open }

// Resolve returns the concrete value, substituting def when the result
// is open-bus.
func (m MemoryResult) Resolve(def uint32) uint32 {
	if m.open {
		return def
	}
	return m.value
}

// Region names the address-decoded memory regions of §4.1.
type Region int

const (
	RegionBios Region = iota
	RegionUnused
	RegionBoardWram
	RegionChipWram
	RegionIoReg
	RegionPalette
	RegionVideoRam
	RegionObjectAttr
	RegionGamePakRom
	RegionGamePakEE
	RegionGamePakSram
)

func (r Region) String() string {
	switch r {
	case RegionBios:
		return "Bios"
	case RegionUnused:
		return "Unused"
	case RegionBoardWram:
		return "BoardWram"
	case RegionChipWram:
		return "ChipWram"
	case RegionIoReg:
		return "IoReg"
	case RegionPalette:
		return "Palette"
	case RegionVideoRam:
		return "VideoRam"
	case RegionObjectAttr:
		return "ObjectAttr"
	case RegionGamePakRom:
		return "GamePakRom"
	case RegionGamePakEE:
		return "GamePakEE"
	case RegionGamePakSram:
		return "GamePakSram"
	default:
		return "?"
	}
}

// rotateRight32 rotates v right by n bits, used for the unaligned-load law.
func rotateRight32(v uint32, n uint) uint32 {
	n &= 31
	if n == 0 {
		return v
	}
	return (v >> n) | (v << (32 - n))
}
