package gba

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDirectBootFillsVRAMAndShowsPixel covers §8 end-to-end scenario a.
// The scenario's prose names the written VRAM value as 0x7FFF, but that
// 15-bit color unpacks to white (31,31,31), not the documented (0,0,248)
// result; 0x7C00 (blue only) is the value that actually produces it, so
// the script below writes that instead — resolved against property 5's
// colour16_rgb(0x7C00)=(0,0,0xF8) rather than the scenario's own byte
// value.
func TestDirectBootFillsVRAMAndShowsPixel(t *testing.T) {
	sys := newTestSystem(t)
	cpu := NewStubCPU(sys)
	cpu.DirectBoot()
	sys.AttachCPU(cpu)

	sink := &testFrameSink{}
	sys.AttachFrameSink(sink)

	cpu.Script(
		func(mem CPUMemory) { mem.Write16(ioBase+AddrDISPCNT, 0x0403) }, // mode 3, BG2 on
		func(mem CPUMemory) { mem.Write16(ioBase+AddrBG2PA, 0x0100) },   // identity affine scale (1.0 in 8.8 fixed)
		func(mem CPUMemory) { mem.Write16(ioBase+AddrBG2PD, 0x0100) },
		func(mem CPUMemory) { mem.Write16(0x06000000, 0x7C00) },
	)

	sched := NewScheduler(sys, false)
	sched.RunFrame()

	row := sink.LockRow(0)
	assert.Equal(t, uint8(0xF8), row[0], "B")
	assert.Equal(t, uint8(0x00), row[1], "G")
	assert.Equal(t, uint8(0x00), row[2], "R")
}

// TestMode3ScanlineGradient covers §8 end-to-end scenario b.
func TestMode3ScanlineGradient(t *testing.T) {
	sys := newTestSystem(t)
	cpu := NewStubCPU(sys)
	cpu.DirectBoot()
	sys.AttachCPU(cpu)

	sink := &testFrameSink{}
	sys.AttachFrameSink(sink)

	var ops []func(CPUMemory)
	ops = append(ops,
		func(mem CPUMemory) { mem.Write16(ioBase+AddrDISPCNT, 0x0403) },
		func(mem CPUMemory) { mem.Write16(ioBase+AddrBG2PA, 0x0100) }, // identity affine scale
		func(mem CPUMemory) { mem.Write16(ioBase+AddrBG2PD, 0x0100) },
	)
	for x := 0; x < ScreenWidth; x++ {
		x := x
		value := uint16(x) | uint16(0)<<5 // row 0
		ops = append(ops, func(mem CPUMemory) { mem.Write16(0x06000000+uint32(2*x), value) })
	}
	cpu.Script(ops...)

	sched := NewScheduler(sys, false)
	sched.RunFrame()

	row := sink.LockRow(0)
	for x := 0; x < ScreenWidth; x++ {
		r, g, b := color15ToRGB(uint16(x))
		off := x * 4
		require.Equal(t, b, row[off+0], "x=%d B", x)
		require.Equal(t, g, row[off+1], "x=%d G", x)
		require.Equal(t, r, row[off+2], "x=%d R", x)
	}
}
