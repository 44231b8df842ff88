package gba

import "testing"

// ioBase is the IO register window's base bus address (§6), used by
// tests that drive a component through a real CPU-facing write instead
// of the classification-bypassing raw setters.
const ioBase = 0x04000000

// newTestSystem builds a System with an empty BIOS/ROM image and no
// cartridge save backing, enough to exercise every component through
// the bus without a real game image.
func newTestSystem(t *testing.T) *System {
	t.Helper()
	return NewSystem(nil, nil, nil, false)
}

// testFrameSink is a minimal FrameSink that records every pixel written
// to every row, enough for the PPU end-to-end scenarios without pulling
// in a host package.
type testFrameSink struct {
	rows [ScreenHeight][ScreenWidth * 4]byte
}

func (f *testFrameSink) LockRow(y int) []byte { return f.rows[y][:] }
func (f *testFrameSink) Present()             {}
