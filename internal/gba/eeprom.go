package gba

// eepromState is the serial protocol state machine of §4.7.
type eepromState int

const (
	eepromIdle eepromState = iota
	eepromReadAddress
	eepromWriteData
	eepromConfirmWrite
	eepromConfirmRead
	eepromReadData
)

// EEPROM implements the serial-bit save device of §4.7: a single-bit
// protocol over DMA backing a 512x8 (4 KiB) or 64x8 (smaller variant)
// byte store, with the bus width inferred from the first DMA's length.
//
// Grounded on spec.md §4.7's state table directly; no pack repo
// implements a serial EEPROM, so this follows the small-state-struct
// style the teacher used throughout internal/memory.
type EEPROM struct {
	memory      []byte
	state       eepromState
	write       bool
	addr        uint16
	bitsSeen    uint8
	shiftReg    uint64
	busWidth    int // 6 or 14, 0 until inferred
	readBitsOut int // counts bits produced during ReadData (0..67)
}

// NewEEPROM allocates the larger 512x8 variant; the smaller 64x8 variant
// self-selects on first use once the bus width is inferred as 6-bit.
func NewEEPROM() *EEPROM {
	return &EEPROM{memory: make([]byte, 512*8)}
}

func (e *EEPROM) resize(busWidth int) {
	e.busWidth = busWidth
	want := 512 * 8
	if busWidth == 6 {
		want = 64 * 8
	}
	if len(e.memory) != want {
		data := make([]byte, want)
		copy(data, e.memory)
		e.memory = data
	}
}

// WriteBit feeds one serial bit from the host (§4.7 table, "On write
// bit b"). dmaLength is DMAEngine.ActiveLength(3), used to infer the
// bus width while in ReadAddress.
func (e *EEPROM) WriteBit(b uint8, dmaLength uint32) {
	bit := b & 1
	switch e.state {
	case eepromIdle:
		if bit == 1 {
			e.state = eepromReadAddress
			e.bitsSeen = 1
			e.write = false
			e.addr = 0
			e.shiftReg = 0
		}
	case eepromReadAddress:
		switch e.bitsSeen {
		case 1:
			e.write = bit == 0
		default:
			e.shiftReg = (e.shiftReg << 1) | uint64(bit)
		}
		e.bitsSeen++
		if e.bitsSeen == 16 && (dmaLength == 17 || dmaLength == 81) {
			e.resize(14)
			e.addr = uint16(e.shiftReg) & 0x3FF
			e.afterAddress()
		} else if e.bitsSeen == 8 && (dmaLength == 9 || dmaLength == 73) {
			e.resize(6)
			e.addr = uint16(e.shiftReg) & 0x3F
			e.afterAddress()
		}
	case eepromWriteData:
		e.shiftReg = (e.shiftReg << 1) | uint64(bit)
		e.bitsSeen++
		if e.bitsSeen == 64 {
			e.state = eepromConfirmWrite
		}
	case eepromConfirmRead:
		// The host clocks one extra bit after a read address before
		// reading starts (§4.7 table: ConfirmRead's load/transition is
		// listed under "On write bit", distinct from ConfirmWrite's
		// which fires under "On read"). Its value is ignored. Doing the
		// load here, rather than on the first ReadBit, keeps the
		// subsequent read stream exactly 4 zero bits + 64 data bits
		// (§8 scenario e) instead of 69.
		off := int(e.addr) * 8
		var v uint64
		for i := 0; i < 8; i++ {
			v = (v << 8) | uint64(e.memory[off+i])
		}
		e.shiftReg = v
		e.bitsSeen = 0
		e.readBitsOut = 0
		e.state = eepromReadData
	case eepromConfirmWrite, eepromReadData:
		// writes are ignored in these states; host only reads.
	}
}

func (e *EEPROM) afterAddress() {
	e.bitsSeen = 0
	e.shiftReg = 0
	if e.write {
		e.state = eepromWriteData
	} else {
		e.state = eepromConfirmRead
	}
}

// ReadBit produces one serial bit for the host (§4.7 table, "On read").
func (e *EEPROM) ReadBit() uint8 {
	switch e.state {
	case eepromConfirmWrite:
		off := int(e.addr) * 8
		for i := 0; i < 8; i++ {
			e.memory[off+i] = byte(e.shiftReg >> uint(56-8*i))
		}
		e.state = eepromIdle
		return 1
	case eepromConfirmRead:
		// Busy-poll value before the host's dummy write bit lands; see
		// WriteBit's eepromConfirmRead case for the actual load.
		return 1
	case eepromReadData:
		n := e.readBitsOut
		e.readBitsOut++
		if n < 4 {
			return 0
		}
		bitIndex := n - 4 // 0..63, MSB first
		if bitIndex >= 64 {
			e.state = eepromIdle
			return 1
		}
		return uint8((e.shiftReg >> uint(63-bitIndex)) & 1)
	default:
		return 1
	}
}

// Bytes/Load expose the backing store for save-state serialization.
func (e *EEPROM) Bytes() []byte { return e.memory }
func (e *EEPROM) Load(data []byte) {
	e.memory = make([]byte, len(data))
	copy(e.memory, data)
	if len(data) == 64*8 {
		e.busWidth = 6
	} else {
		e.busWidth = 14
	}
}
