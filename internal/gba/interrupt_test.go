package gba

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVBlankInterruptDelivery covers §8 end-to-end scenario d: with
// IME/IE/DISPSTAT's VBlank-IRQ bit all set, crossing into VBlank must
// deliver an Interrupt exception to the CPU and leave IF bit 0 set.
func TestVBlankInterruptDelivery(t *testing.T) {
	sys := newTestSystem(t)
	cpu := NewStubCPU(sys)
	cpu.DirectBoot()
	cpu.SetIRQEnabled(true)
	sys.AttachCPU(cpu)

	sys.Write16(ioBase+AddrIME, 0x0001)
	sys.Write16(ioBase+AddrIE, 1<<uint(IntVBlank))
	sys.Write16(ioBase+AddrDISPSTAT, 0x0008) // VBlank-IRQ enable

	sched := NewScheduler(sys, false)
	for row := 0; row < ScreenHeight; row++ {
		for dot := 0; dot < totalCols*dotClocks; dot++ {
			sched.Tick()
		}
	}

	require.NotEmpty(t, cpu.Exceptions(), "the CPU must have received at least one exception")
	assert.Contains(t, cpu.Exceptions(), ExceptionInterrupt)
	assert.NotEqual(t, uint16(0), sys.io.GetRegHalf(AddrIF)&(1<<uint(IntVBlank)))
}
