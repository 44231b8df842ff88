package gba

// ewramSize/iwramSize are the two on-board RAM blocks of §3 (BoardWram
// 256 KiB, ChipWram 32 KiB). sramSize backs the plain-SRAM GamePak save
// variant, distinct from EEPROM.
const (
	ewramSize = 0x40000
	iwramSize = 0x8000
	sramSize  = 0x10000
)

// System is the single owning root of every component (§9 "one owning
// root breaks every cycle"): it implements CPUMemory for the CPU
// collaborator and wires every documented OnWrite side effect that a
// component constructor does not register for itself.
//
// Grounded on the teacher's internal/bus/bus.go for the region-switch
// dispatch shape (a case per address-decoded region delegating to an
// owned component) — generalized from the teacher's ad hoc nibble
// checks to region.go's DecodeAddress table, and from the teacher's
// byte-only Read8/Write8 (everything else in bus.go shifted bytes
// together by hand at each call site) to real Read16/32 paths with the
// unaligned-rotate law applied once, here, instead of per caller.
type System struct {
	bios   *BIOS
	ewram  *RAM
	iwram  *RAM
	rom    *ROM
	sram   *RAM
	eeprom *EEPROM

	io      *IORegs
	ic      *InterruptController
	timers  *TimerBank
	dma     *DMAEngine
	keypad  *Keypad
	ppu     *PPU
	apu     *APU
	cpu     CPUCore

	audioSink AudioSink
	hasEEPROM bool
}

// NewSystem builds every component and wires the documented cross-
// component effects. biosData/romData are the loaded images; sramData
// may be nil (fresh save). withEEPROM selects GamePakEE (serial EEPROM)
// over a plain-SRAM GamePakSram backing for the cartridge's save region
// (§3 distinguishes the two regions; original_source's mmu/gba.rs backs
// the plain-SRAM variant with an undifferentiated RAM block, `gram`).
func NewSystem(biosData, romData, sramData []byte, withEEPROM bool) *System {
	s := &System{
		bios:      NewBIOS(biosData),
		ewram:     NewRAM(ewramSize),
		iwram:     NewRAM(iwramSize),
		rom:       NewROM(romData),
		sram:      NewRAM(sramSize),
		eeprom:    NewEEPROM(),
		io:        NewIORegs(),
		hasEEPROM: withEEPROM,
	}
	if sramData != nil {
		if withEEPROM {
			s.eeprom.Load(sramData)
		} else {
			s.sram.Load(sramData)
		}
	}

	s.ic = NewInterruptController(s.io)
	s.timers = NewTimerBank(s.io, s.ic)
	// s satisfies CPUMemory by method set regardless of which fields are
	// still zero; DMA only calls through it once transfers actually run,
	// by which point construction has finished (§9).
	s.dma = NewDMAEngine(s.io, s.ic, s)
	s.keypad = NewKeypad(s.io, s.ic)
	s.ppu = NewPPU(s.io, s.ic, s.dma)
	s.apu = NewAPU(s.dma)

	s.bios.SetPrefetcher(func() uint32 {
		if s.cpu == nil {
			return 0
		}
		return s.cpu.PrefetchAddr()
	})

	s.wireIO()
	return s
}

// wireIO registers the explicit cross-component OnWrite callbacks of
// §4.2's effect table that the owning component cannot self-register
// (it would need to reach into another component that may not exist
// yet at its own construction time).
func (s *System) wireIO() {
	s.io.OnWrite(AddrIF, s.ic.OnIFWritten)
	s.io.OnWrite(AddrIE, s.ic.OnIEOrIMEWritten)
	s.io.OnWrite(AddrIME, s.ic.OnIEOrIMEWritten)

	for _, addr := range []uint32{AddrBG2X, AddrBG2X + 2, AddrBG2Y, AddrBG2Y + 2} {
		s.io.OnWrite(addr, s.ppu.OnBG2RefWritten)
	}
	for _, addr := range []uint32{AddrBG3X, AddrBG3X + 2, AddrBG3Y, AddrBG3Y + 2} {
		s.io.OnWrite(addr, s.ppu.OnBG3RefWritten)
	}
}

// AttachCPU wires the CPU collaborator into the interrupt controller's
// exception sink and the BIOS prefetch guard (§6).
func (s *System) AttachCPU(cpu CPUCore) {
	s.cpu = cpu
	s.ic.AttachCPU(cpu)
}

// AttachFrameSink/AttachInputSource/AttachAudioSink wire the three host
// collaborators described in §6. Any may be left nil (headless mode).
func (s *System) AttachFrameSink(sink FrameSink)    { s.ppu.AttachSink(sink) }
func (s *System) AttachInputSource(src InputSource) { s.keypad.AttachSource(src) }
func (s *System) AttachAudioSink(sink AudioSink)    { s.audioSink = sink }

// PPU/DMA/Timers/Keypad/IO/APU expose the owned components for the tick
// scheduler, host adapters, and save-state code.
func (s *System) PPU() *PPU          { return s.ppu }
func (s *System) DMA() *DMAEngine    { return s.dma }
func (s *System) Timers() *TimerBank { return s.timers }
func (s *System) Keypad() *Keypad    { return s.keypad }
func (s *System) IO() *IORegs        { return s.io }
func (s *System) APU() *APU          { return s.apu }

// DrainAudio flushes one frame's worth of generated samples to whatever
// sink is attached, a no-op (beyond discarding the buffer) if none is.
// Called once per frame by the tick scheduler.
func (s *System) DrainAudio() { s.apu.Drain(s.audioSink) }

// region8/region16/region32 resolve a decoded region+offset to a byte/
// half/word value, dispatching to the owning component (§4.1's region
// table). GamePakEE ignores addr and width entirely, per §4.7 ("the bus
// width is inferred from DMA length, never from the CPU access width").
func (s *System) region8(r Region, off uint32) uint8 {
	switch r {
	case RegionBios:
		return s.bios.Read8(off)
	case RegionBoardWram:
		return s.ewram.Read8(off)
	case RegionChipWram:
		return s.iwram.Read8(off)
	case RegionIoReg:
		return s.io.Read8(off)
	case RegionPalette:
		return s.ppu.Palette().Read8(off)
	case RegionVideoRam:
		return s.ppu.VRAM().Read8(off)
	case RegionObjectAttr:
		return s.ppu.OAM().Read8(off)
	case RegionGamePakRom:
		return s.rom.Read8(off)
	case RegionGamePakEE:
		return s.eeprom.ReadBit()
	case RegionGamePakSram:
		if s.hasEEPROM {
			return s.eeprom.ReadBit()
		}
		return s.sram.Read8(off)
	default:
		return 0
	}
}

func (s *System) region16(r Region, off uint32) uint16 {
	switch r {
	case RegionBios:
		return s.bios.Read16(off)
	case RegionBoardWram:
		return s.ewram.Read16(off)
	case RegionChipWram:
		return s.iwram.Read16(off)
	case RegionIoReg:
		return s.io.Read16(off)
	case RegionPalette:
		return s.ppu.Palette().Read16(off)
	case RegionVideoRam:
		return s.ppu.VRAM().Read16(off)
	case RegionObjectAttr:
		return s.ppu.OAM().Read16(off)
	case RegionGamePakRom:
		return s.rom.Read16(off)
	case RegionGamePakEE:
		return uint16(s.eeprom.ReadBit())
	case RegionGamePakSram:
		if s.hasEEPROM {
			return uint16(s.eeprom.ReadBit())
		}
		return s.sram.Read16(off)
	default:
		return 0
	}
}

func (s *System) region32(r Region, off uint32) uint32 {
	switch r {
	case RegionBios:
		return s.bios.Read32(off)
	case RegionBoardWram:
		return s.ewram.Read32(off)
	case RegionChipWram:
		return s.iwram.Read32(off)
	case RegionIoReg:
		return s.io.Read32(off)
	case RegionPalette:
		return s.ppu.Palette().Read32(off)
	case RegionVideoRam:
		return s.ppu.VRAM().Read32(off)
	case RegionObjectAttr:
		return s.ppu.OAM().Read32(off)
	case RegionGamePakRom:
		return s.rom.Read32(off)
	case RegionGamePakEE:
		return uint32(s.eeprom.ReadBit())
	case RegionGamePakSram:
		if s.hasEEPROM {
			return uint32(s.eeprom.ReadBit())
		}
		return s.sram.Read32(off)
	default:
		return 0
	}
}

func (s *System) writeRegion8(r Region, off uint32, val uint8) {
	switch r {
	case RegionBios:
		s.bios.Write8(off, val)
	case RegionBoardWram:
		s.ewram.Write8(off, val)
	case RegionChipWram:
		s.iwram.Write8(off, val)
	case RegionIoReg:
		s.io.Write8(off, val)
	case RegionPalette:
		s.ppu.Palette().Write8(off, val)
	case RegionVideoRam:
		s.ppu.VRAM().Write8(off, val)
	case RegionObjectAttr:
		s.ppu.OAM().Write8(off, val)
	case RegionGamePakRom:
		s.rom.Write8(off, val)
	case RegionGamePakEE:
		s.eeprom.WriteBit(val, s.dma.ActiveLength(3))
	case RegionGamePakSram:
		if s.hasEEPROM {
			s.eeprom.WriteBit(val, s.dma.ActiveLength(3))
		} else {
			s.sram.Write8(off, val)
		}
	}
}

func (s *System) writeRegion16(r Region, off uint32, val uint16) {
	switch r {
	case RegionBios:
		s.bios.Write16(off, val)
	case RegionBoardWram:
		s.ewram.Write16(off, val)
	case RegionChipWram:
		s.iwram.Write16(off, val)
	case RegionIoReg:
		s.io.Write16(off, val)
	case RegionPalette:
		s.ppu.Palette().Write16(off, val)
	case RegionVideoRam:
		s.ppu.VRAM().Write16(off, val)
	case RegionObjectAttr:
		s.ppu.OAM().Write16(off, val)
	case RegionGamePakRom:
		s.rom.Write16(off, val)
	case RegionGamePakEE:
		s.eeprom.WriteBit(uint8(val), s.dma.ActiveLength(3))
	case RegionGamePakSram:
		if s.hasEEPROM {
			s.eeprom.WriteBit(uint8(val), s.dma.ActiveLength(3))
		} else {
			s.sram.Write16(off, val)
		}
	}
}

func (s *System) writeRegion32(r Region, off uint32, val uint32) {
	switch r {
	case RegionBios:
		s.bios.Write32(off, val)
	case RegionBoardWram:
		s.ewram.Write32(off, val)
	case RegionChipWram:
		s.iwram.Write32(off, val)
	case RegionIoReg:
		s.io.Write32(off, val)
	case RegionPalette:
		s.ppu.Palette().Write32(off, val)
	case RegionVideoRam:
		s.ppu.VRAM().Write32(off, val)
	case RegionObjectAttr:
		s.ppu.OAM().Write32(off, val)
	case RegionGamePakRom:
		s.rom.Write32(off, val)
	case RegionGamePakEE:
		s.eeprom.WriteBit(uint8(val), s.dma.ActiveLength(3))
	case RegionGamePakSram:
		if s.hasEEPROM {
			s.eeprom.WriteBit(uint8(val), s.dma.ActiveLength(3))
		} else {
			s.sram.Write32(off, val)
		}
	}
}

// Read8 implements CPUMemory (§6). Byte access never needs the
// unaligned-rotate law; it only applies to half/word loads.
func (s *System) Read8(addr uint32) uint8 {
	r, off := DecodeAddress(addr)
	return s.region8(r, off)
}

func (s *System) Write8(addr uint32, val uint8) {
	r, off := DecodeAddress(addr)
	s.writeRegion8(r, off, val)
}

// Read16 aligns the address down before decoding, reads the aligned
// halfword, then rotates the result using the original unaligned
// address (§4.1, testable property 2 — the unaligned-rotate law is the
// bus's responsibility, applied once here rather than per region).
func (s *System) Read16(addr uint32) uint16 {
	r, off := DecodeAddress(addr &^ 1)
	v := s.region16(r, off)
	return UnalignedRotate16(v, addr)
}

func (s *System) Write16(addr uint32, val uint16) {
	r, off := DecodeAddress(addr &^ 1)
	s.writeRegion16(r, off, val)
}

func (s *System) Read32(addr uint32) uint32 {
	r, off := DecodeAddress(addr &^ 3)
	v := s.region32(r, off)
	return UnalignedRotate32(v, addr)
}

func (s *System) Write32(addr uint32, val uint32) {
	r, off := DecodeAddress(addr &^ 3)
	s.writeRegion32(r, off, val)
}

// SaveBytes returns the backing store appropriate for whichever save
// device the cartridge uses, for the host's cartridge battery-save file
// (`<rom>.sav`). The `-s/--save` save-state blob goes through SaveState
// instead.
func (s *System) SaveBytes() []byte {
	if s.hasEEPROM {
		return s.eeprom.Bytes()
	}
	return s.sram.Bytes()
}
