package gba

// ExceptionKind enumerates exceptions the core may raise on the CPU
// collaborator (§6). Only Interrupt is used by the documented core; the
// others are named for completeness of the CPUCore contract.
type ExceptionKind int

const (
	ExceptionReset ExceptionKind = iota
	ExceptionUndefined
	ExceptionSWI
	ExceptionPrefetchAbort
	ExceptionDataAbort
	ExceptionInterrupt
	ExceptionFIQ
)

// CPUMemory is the interface the external ARM7TDMI collaborator is
// handed for all its loads/stores: unsigned little-endian, no alignment
// guarantee at this level (§6). The System bus implements this.
type CPUMemory interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, val uint8)
	Write16(addr uint32, val uint16)
	Write32(addr uint32, val uint32)
}

// CPUCore is the external collaborator boundary described in §1/§6: the
// core only ever calls these five operations plus breakpoint wiring. The
// ARM/Thumb instruction set, pipeline, banked registers and condition
// flags live entirely on the other side of this interface.
type CPUCore interface {
	// Cycle advances the CPU by one master clock, possibly issuing
	// memory accesses through the bus. Returns true if it retired an
	// instruction boundary this cycle (used only for instrumentation).
	Cycle() bool
	IRQEnabled() bool
	ThumbMode() bool
	PrefetchAddr() uint32
	Exception(kind ExceptionKind)
	SetBreakpoints(addrs []uint32)
}

// FrameSink is the host windowing collaborator (§6): a 240x160 buffer of
// 4-byte BGRX pixels, written with a row-locking primitive with pitch.
type FrameSink interface {
	// LockRow returns a pitch-respecting slice for row y (240 BGRX
	// pixels) to write into directly.
	LockRow(y int) []byte
	// Present is called once per completed frame (row wraps 228->0).
	Present()
}

// InputSource is the host input collaborator (§6): host-key state for
// the ten GBA buttons, read by Button from the scancode map documented
// there. Meta actions (quit/step/save-slot/log-toggle) are not part of
// this interface.
type InputSource interface {
	// KeyDown reports whether the named GBA button is currently held.
	KeyDown(button Button) bool
}

// Button enumerates the ten physical GBA inputs tested by InputSource,
// named for the bit order spec.md §3 gives for KEYINPUT: (A, B, SELECT,
// START, R, L, U, D, BR, BL) — BR/BL being the d-pad right/left bits,
// distinct from the R/L shoulder buttons that precede Up/Down in that
// ordering (§6's scancode table maps D/A to shoulder R/L and P/I to
// BR/BL separately from W/S's Up/Down).
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonShoulderR
	ButtonShoulderL
	ButtonUp
	ButtonDown
	ButtonDPadRight // BR
	ButtonDPadLeft  // BL
)

// AudioSink is the host audio collaborator (§6): pulls stereo f32
// samples at 32768 Hz in blocks of at most 256 frames.
type AudioSink interface {
	// PushSamples delivers up to 256 interleaved stereo frames.
	PushSamples(frames [][2]float32)
}
