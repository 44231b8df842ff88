package gba

import "GoBA/util/dbg"

// DMATrigger names the event sources that can start a DMA channel
// whose timing field matches (§4.5). Immediate-timing channels are
// started directly from the control-register write callback instead.
type DMATrigger int

const (
	TriggerVBlank DMATrigger = iota
	TriggerHBlank
	TriggerSoundFifo
)

func dmaSAD(ch int) uint32 {
	return [4]uint32{AddrDMA0SAD, AddrDMA1SAD, AddrDMA2SAD, AddrDMA3SAD}[ch]
}
func dmaDAD(ch int) uint32 {
	return [4]uint32{AddrDMA0DAD, AddrDMA1DAD, AddrDMA2DAD, AddrDMA3DAD}[ch]
}
func dmaCNTL(ch int) uint32 {
	return [4]uint32{AddrDMA0CNTL, AddrDMA1CNTL, AddrDMA2CNTL, AddrDMA3CNTL}[ch]
}
func dmaCNTH(ch int) uint32 {
	return [4]uint32{AddrDMA0CNTH, AddrDMA1CNTH, AddrDMA2CNTH, AddrDMA3CNTH}[ch]
}

// dmaChannel holds the per-channel internal working registers (§3
// "DMA channel"), refreshed from IO per the rules in §4.5 rather than
// re-read on every transfer unit.
type dmaChannel struct {
	srcBits, dstBits, lenBits uint
	workSrc, workDst          uint32
	workLen                   uint32
	started                   bool
}

func addrMask(bits uint) uint32 { return (uint32(1) << bits) - 1 }

// DMAEngine implements the four-channel transfer state machine of §4.5.
//
// Grounded on spec.md §4.5 directly — internal/dma was referenced by the
// teacher's bus.go but never committed (one of the abandoned pieces).
type DMAEngine struct {
	regs         *IORegs
	ic           *InterruptController
	bus          CPUMemory
	channels     [4]dmaChannel
	activeLength [4]uint32
}

// NewDMAEngine wires the four channels with their documented address
// widths (§3, §4.5) and registers the enable-rising-edge callback on
// each channel's control register (§4.2 effect table).
func NewDMAEngine(regs *IORegs, ic *InterruptController, bus CPUMemory) *DMAEngine {
	d := &DMAEngine{regs: regs, ic: ic, bus: bus}
	widths := [4][3]uint{ // srcBits, dstBits, lenBits
		{27, 27, 14},
		{28, 27, 14},
		{28, 27, 14},
		{28, 28, 16},
	}
	for ch := 0; ch < 4; ch++ {
		d.channels[ch] = dmaChannel{srcBits: widths[ch][0], dstBits: widths[ch][1], lenBits: widths[ch][2]}
		ch := ch
		regs.OnWrite(dmaCNTH(ch), func(old, new uint16) { d.onControlWritten(ch, old, new) })
	}
	return d
}

func (d *DMAEngine) onControlWritten(ch int, old, new uint16) {
	wasEnabled := old&0x8000 != 0
	nowEnabled := new&0x8000 != 0
	if !wasEnabled && nowEnabled {
		timing := (new >> 12) & 3
		if timing == 0 {
			d.start(ch)
		}
	}
}

// Trigger starts every enabled channel whose timing field matches t
// (§4.5; SoundFifo only valid for channels 1 and 2). Called by the PPU
// at HBlank/VBlank boundaries.
func (d *DMAEngine) Trigger(t DMATrigger) {
	for ch := 0; ch < 4; ch++ {
		ctrl := d.regs.GetRegHalf(dmaCNTH(ch))
		if ctrl&0x8000 == 0 {
			continue
		}
		timing := (ctrl >> 12) & 3
		match := false
		switch t {
		case TriggerVBlank:
			match = timing == 1
		case TriggerHBlank:
			match = timing == 2
		case TriggerSoundFifo:
			match = timing == 3 && (ch == 1 || ch == 2)
		}
		if match {
			d.start(ch)
		}
	}
}

// start runs channel ch's transfer to completion synchronously (§2, §5:
// DMA does not interleave with CPU cycles in this design).
func (d *DMAEngine) start(ch int) {
	c := &d.channels[ch]
	ctrl := d.regs.GetRegHalf(dmaCNTH(ch))

	destMode := (ctrl >> 5) & 3
	srcMode := (ctrl >> 7) & 3
	repeat := ctrl&0x0200 != 0
	wordSize := ctrl&0x0400 != 0
	irqEnd := ctrl&0x4000 != 0

	// 1. Refresh source/dest/length (§4.5 step 1).
	if !c.started || !repeat {
		c.workSrc = d.regs.GetRegWord(dmaSAD(ch)) & addrMask(c.srcBits)
	}
	if !c.started || destMode == 3 {
		c.workDst = d.regs.GetRegWord(dmaDAD(ch)) & addrMask(c.dstBits)
	}
	rawLen := uint32(d.regs.GetRegHalf(dmaCNTL(ch))) & addrMask(c.lenBits)
	if rawLen == 0 {
		rawLen = uint32(1) << c.lenBits
	}
	c.workLen = rawLen
	c.started = true

	// 2. Align source to word boundary for 32-bit transfers (§4.5 step 2).
	if wordSize {
		c.workSrc &^= 3
	}

	d.activeLength[ch] = c.workLen

	unit := uint32(2)
	if wordSize {
		unit = 4
	}

	// 3. Run the copy loop (§4.5 step 3).
	for i := uint32(0); i < c.workLen; i++ {
		if wordSize {
			d.bus.Write32(c.workDst, d.bus.Read32(c.workSrc))
		} else {
			d.bus.Write16(c.workDst, d.bus.Read16(c.workSrc))
		}
		c.workSrc = advanceDMAAddr(c.workSrc, srcMode, unit, true)
		c.workDst = advanceDMAAddr(c.workDst, destMode, unit, false)
	}

	// 4. Completion (§4.5 step 4).
	if !repeat {
		d.regs.SetRegHalf(dmaCNTH(ch), ctrl&^0x8000)
	}
	if irqEnd {
		d.ic.Raise(IntDMA0 + ch)
	}
}

func advanceDMAAddr(addr uint32, mode uint16, unit uint32, isSource bool) uint32 {
	switch mode {
	case 0:
		return addr + unit
	case 1:
		return addr - unit
	case 2:
		return addr
	case 3:
		if isSource {
			dbg.Warnf("DMA: source increment mode 3 is invalid, treating as +")
		}
		return addr + unit
	default:
		return addr
	}
}

// ActiveLength exposes dma_length(): the current active transfer length
// for channel ch, consumed by EEPROM's address-width detection (§4.5,
// §4.7).
func (d *DMAEngine) ActiveLength(ch int) uint32 { return d.activeLength[ch] }
