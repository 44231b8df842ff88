package gba

// IO register addresses, wire-exact per spec.md §6.
const (
	AddrDISPCNT  = 0x000
	AddrDISPSTAT = 0x004
	AddrVCOUNT   = 0x006
	AddrBG0CNT   = 0x008
	AddrBG1CNT   = 0x00A
	AddrBG2CNT   = 0x00C
	AddrBG3CNT   = 0x00E
	AddrBG0HOFS  = 0x010
	AddrBG0VOFS  = 0x012
	AddrBG1HOFS  = 0x014
	AddrBG1VOFS  = 0x016
	AddrBG2HOFS  = 0x018
	AddrBG2VOFS  = 0x01A
	AddrBG3HOFS  = 0x01C
	AddrBG3VOFS  = 0x01E
	AddrBG2PA    = 0x020
	AddrBG2PB    = 0x022
	AddrBG2PC    = 0x024
	AddrBG2PD    = 0x026
	AddrBG2X     = 0x028 // 32-bit: 0x028/0x02A
	AddrBG2Y     = 0x02C // 32-bit: 0x02C/0x02E
	AddrBG3PA    = 0x030
	AddrBG3PB    = 0x032
	AddrBG3PC    = 0x034
	AddrBG3PD    = 0x036
	AddrBG3X     = 0x038
	AddrBG3Y     = 0x03C
	AddrWIN0H    = 0x040
	AddrWIN1H    = 0x042
	AddrWIN0V    = 0x044
	AddrWIN1V    = 0x046
	AddrWININ    = 0x048
	AddrWINOUT   = 0x04A
	AddrBLDCNT   = 0x050
	AddrBLDALPHA = 0x052
	AddrBLDY     = 0x054

	AddrSOUNDCNT_X = 0x084
	AddrFIFO_A     = 0x0A0
	AddrFIFO_B     = 0x0A4

	AddrDMA0SAD  = 0x0B0
	AddrDMA0DAD  = 0x0B4
	AddrDMA0CNTL = 0x0B8
	AddrDMA0CNTH = 0x0BA
	AddrDMA1SAD  = 0x0BC
	AddrDMA1DAD  = 0x0C0
	AddrDMA1CNTL = 0x0C4
	AddrDMA1CNTH = 0x0C6
	AddrDMA2SAD  = 0x0C8
	AddrDMA2DAD  = 0x0CC
	AddrDMA2CNTL = 0x0D0
	AddrDMA2CNTH = 0x0D2
	AddrDMA3SAD  = 0x0D4
	AddrDMA3DAD  = 0x0D8
	AddrDMA3CNTL = 0x0DC
	AddrDMA3CNTH = 0x0DE

	AddrTM0COUNT = 0x100
	AddrTM0CNT   = 0x102
	AddrTM1COUNT = 0x104
	AddrTM1CNT   = 0x106
	AddrTM2COUNT = 0x108
	AddrTM2CNT   = 0x10A
	AddrTM3COUNT = 0x10C
	AddrTM3CNT   = 0x10E

	AddrKEYINPUT = 0x130
	AddrKEYCNT   = 0x132

	AddrIE      = 0x200
	AddrIF      = 0x202
	AddrWAITCNT = 0x204
	AddrIME     = 0x208
)

// buildIOClassTable builds the static per-halfword classification of
// §3/§4.2. Only documented registers get an entry; every other halfword
// in the 0x804-byte window is absent from the map and therefore decodes
// as Open on read (§3 "Unreadable halfwords return 0 when their pair is
// readable, else Open": the FIFO halfwords below are documented-but-
// write-only so they resolve to a readable=false entry (returns 0); a
// completely undocumented address has no entry at all (returns Open)).
func buildIOClassTable() map[uint32]ioClass {
	m := make(map[uint32]ioClass)
	rw := func(addr uint32) { m[addr] = ioClass{readable: true, writable: true} }

	for _, addr := range []uint32{
		AddrDISPCNT,
		AddrBG0CNT, AddrBG1CNT, AddrBG2CNT, AddrBG3CNT,
		AddrBG0HOFS, AddrBG0VOFS, AddrBG1HOFS, AddrBG1VOFS,
		AddrBG2HOFS, AddrBG2VOFS, AddrBG3HOFS, AddrBG3VOFS,
		AddrBG2PA, AddrBG2PB, AddrBG2PC, AddrBG2PD,
		AddrBG2X, AddrBG2X + 2, AddrBG2Y, AddrBG2Y + 2,
		AddrBG3PA, AddrBG3PB, AddrBG3PC, AddrBG3PD,
		AddrBG3X, AddrBG3X + 2, AddrBG3Y, AddrBG3Y + 2,
		AddrWIN0H, AddrWIN1H, AddrWIN0V, AddrWIN1V, AddrWININ, AddrWINOUT,
		AddrBLDCNT, AddrBLDALPHA, AddrBLDY,
		AddrDMA0SAD, AddrDMA0SAD + 2, AddrDMA0DAD, AddrDMA0DAD + 2, AddrDMA0CNTL, AddrDMA0CNTH,
		AddrDMA1SAD, AddrDMA1SAD + 2, AddrDMA1DAD, AddrDMA1DAD + 2, AddrDMA1CNTL, AddrDMA1CNTH,
		AddrDMA2SAD, AddrDMA2SAD + 2, AddrDMA2DAD, AddrDMA2DAD + 2, AddrDMA2CNTL, AddrDMA2CNTH,
		AddrDMA3SAD, AddrDMA3SAD + 2, AddrDMA3DAD, AddrDMA3DAD + 2, AddrDMA3CNTL, AddrDMA3CNTH,
		AddrTM0COUNT, AddrTM0CNT, AddrTM1COUNT, AddrTM1CNT,
		AddrTM2COUNT, AddrTM2CNT, AddrTM3COUNT, AddrTM3CNT,
		AddrKEYCNT,
		AddrIE, AddrIF, AddrWAITCNT, AddrIME,
	} {
		rw(addr)
	}

	// VCOUNT, KEYINPUT: hardware-driven, CPU read-only.
	m[AddrVCOUNT] = ioClass{readable: true, writable: false}
	m[AddrKEYINPUT] = ioClass{readable: true, writable: false}

	// DISPSTAT: bits 0-2 (VBlank/HBlank/VCounter flags) are hardware
	// status, read-only from the CPU's perspective; the rest (IRQ
	// enables, VCount-match setting) is normal read/write.
	m[AddrDISPSTAT] = ioClass{readable: true, writable: true, roMask: 0x0007}

	// SOUNDCNT_X: channel-active flags (bits 0-3) are hardware status and
	// keep their old value on a CPU write; bits 4-15, including bit 7
	// (master enable), take the written value.
	m[AddrSOUNDCNT_X] = ioClass{readable: true, writable: true, roMask: 0x000F}

	// Audio FIFOs: write-only (§3 "write-only mask... enumerated by a
	// small table"); reading one of these halves always sees 0.
	m[AddrFIFO_A] = ioClass{readable: false, writable: true}
	m[AddrFIFO_A+2] = ioClass{readable: false, writable: true}
	m[AddrFIFO_B] = ioClass{readable: false, writable: true}
	m[AddrFIFO_B+2] = ioClass{readable: false, writable: true}

	return m
}
