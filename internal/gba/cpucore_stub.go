package gba

// StubCPU is a minimal, scriptable CPUCore (§6): it has no ARM/Thumb
// decoder — that is the external collaborator's job per §1 — but keeps
// a real ARM7TDMI-shaped register file so tests and the headless/no-ROM
// path have something to drive the bus with and something for
// save-state to capture.
//
// Grounded on original_source's src/cpu.rs (`init_arm`/`init_direct`
// register values) for Reset/DirectBoot, and the teacher's
// internal/cpu/registers.go field shape for the register file,
// collapsed to the subset a non-decoding stub actually needs: R13/R15
// plus the two banked stack pointers init_direct preloads.
type StubCPU struct {
	mem CPUMemory

	r    [16]uint32
	cpsr uint32
	spSVC uint32
	spIRQ uint32

	irqEnabled bool
	thumb      bool
	breaks     []uint32

	script     []func(CPUMemory)
	exceptions []ExceptionKind
}

// NewStubCPU wires the stub to the bus it will issue scripted accesses
// through and resets it to the BIOS cold-boot register state.
func NewStubCPU(mem CPUMemory) *StubCPU {
	c := &StubCPU{mem: mem}
	c.Reset()
	return c
}

// Reset loads the register state the real BIOS leaves behind at its own
// entry point (original_source's `init_arm`): PC=0, CPSR=0xD3
// (Supervisor mode, IRQ and FIQ disabled, ARM state).
func (c *StubCPU) Reset() {
	c.r = [16]uint32{}
	c.cpsr = 0xD3
	c.spSVC = 0
	c.spIRQ = 0
	c.thumb = false
	c.irqEnabled = false
	c.script = nil
	c.exceptions = nil
}

// DirectBoot loads the register state the real BIOS would have left
// behind had it run and jumped straight to the cartridge entry point
// (original_source's `init_direct`; SPEC_FULL.md supplement #5, wired
// from `-d/--direct`): PC=0x08000000, System mode with IRQs enabled,
// and the three stack pointers the BIOS presets for User/IRQ/Supervisor.
func (c *StubCPU) DirectBoot() {
	c.r = [16]uint32{}
	c.r[13] = 0x03007F00
	c.r[15] = 0x08000000
	c.cpsr = 0x1F
	c.spIRQ = 0x03007FA0
	c.spSVC = 0x03007FE0
	c.thumb = false
	c.irqEnabled = true
}

// Script installs a queue of memory operations to run one per Cycle()
// call, in order. Used by tests to stand in for actual instruction
// decode (§8 end-to-end scenarios a-d).
func (c *StubCPU) Script(ops ...func(CPUMemory)) {
	c.script = ops
}

// Cycle runs the next scripted operation, if any, against the bus and
// reports an instruction boundary. With an empty script the stub is
// idle — used for the headless/no-ROM path, where nothing drives the
// bus but the PPU and timers still need to run.
func (c *StubCPU) Cycle() bool {
	if len(c.script) == 0 {
		return false
	}
	op := c.script[0]
	c.script = c.script[1:]
	op(c.mem)
	return true
}

func (c *StubCPU) IRQEnabled() bool    { return c.irqEnabled }
func (c *StubCPU) ThumbMode() bool     { return c.thumb }
func (c *StubCPU) PrefetchAddr() uint32 { return c.r[15] }

// SetIRQEnabled lets tests flip the CPU's own IRQ-enable flag (the I
// bit of CPSR) independent of any scripted op.
func (c *StubCPU) SetIRQEnabled(v bool) { c.irqEnabled = v }

// Exception records a delivered exception for test assertions (§8
// scenario d: "verify exception(Interrupt) has been signaled").
func (c *StubCPU) Exception(kind ExceptionKind) {
	c.exceptions = append(c.exceptions, kind)
}

// Exceptions exposes every exception delivered since the last Reset.
func (c *StubCPU) Exceptions() []ExceptionKind { return c.exceptions }

func (c *StubCPU) SetBreakpoints(addrs []uint32) { c.breaks = addrs }

// Breakpoints exposes the last-set breakpoint list for tests/save-state.
func (c *StubCPU) Breakpoints() []uint32 { return c.breaks }

// SaveState/LoadState implement the optional interface savestate.go
// looks for (§3 "Save states capture... CPU register file"). CPUCore
// itself stays opaque per §6; a real CPU core can implement the same
// two methods to participate in save states.
func (c *StubCPU) SaveState() []byte {
	buf := make([]byte, 0, 16*4+4+4+4+1)
	for _, r := range c.r {
		buf = appendLE32(buf, r)
	}
	buf = appendLE32(buf, c.cpsr)
	buf = appendLE32(buf, c.spSVC)
	buf = appendLE32(buf, c.spIRQ)
	if c.thumb {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func (c *StubCPU) LoadState(data []byte) {
	if len(data) < 16*4+4+4+4+1 {
		return
	}
	o := 0
	for i := range c.r {
		c.r[i] = readLE32(data[o:])
		o += 4
	}
	c.cpsr = readLE32(data[o:])
	o += 4
	c.spSVC = readLE32(data[o:])
	o += 4
	c.spIRQ = readLE32(data[o:])
	o += 4
	c.thumb = data[o] != 0
}

func appendLE32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func readLE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
