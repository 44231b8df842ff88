package gba

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEEPROMBits feeds the serial write-address-then-data protocol for
// a 14-bit (512x8 variant) write to addr, then the confirm-write poll.
func writeEEPROMBits(e *EEPROM, addr uint16, data uint64) {
	e.WriteBit(1, 17) // start bit, dmaLength signals the wide bus variant
	e.WriteBit(0, 17) // write opcode
	for i := 13; i >= 0; i-- {
		e.WriteBit(uint8(addr>>uint(i))&1, 17)
	}
	for i := 63; i >= 0; i-- {
		e.WriteBit(uint8(data>>uint(i))&1, 17)
	}
	e.ReadBit() // commits the write, returns the busy-poll bit
}

// readEEPROMStream feeds the read-address protocol for addr and
// collects the documented 68-bit response stream.
func readEEPROMStream(e *EEPROM, addr uint16) []uint8 {
	e.WriteBit(1, 17)
	e.WriteBit(1, 17) // read opcode
	for i := 13; i >= 0; i-- {
		e.WriteBit(uint8(addr>>uint(i))&1, 17)
	}
	e.WriteBit(0, 17) // dummy bit that triggers the load (ConfirmRead)
	out := make([]uint8, 68)
	for i := range out {
		out[i] = e.ReadBit()
	}
	return out
}

// TestEEPROMReadRoundTrip covers §8 end-to-end scenario e.
func TestEEPROMReadRoundTrip(t *testing.T) {
	e := NewEEPROM()
	const pattern = uint64(0xDEADBEEFCAFEBABE)

	writeEEPROMBits(e, 0, pattern)
	stream := readEEPROMStream(e, 0)

	require.Len(t, stream, 68)
	for i := 0; i < 4; i++ {
		assert.Equal(t, uint8(0), stream[i], "leading zero bit %d", i)
	}
	for i := 0; i < 64; i++ {
		want := uint8(pattern>>uint(63-i)) & 1
		assert.Equal(t, want, stream[4+i], "pattern bit %d (MSB first)", i)
	}
}
