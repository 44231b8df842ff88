package gba

// timerCountAddr/timerCntAddr map a timer index to its IO register addresses.
func timerCountAddr(n int) uint32 { return [4]uint32{AddrTM0COUNT, AddrTM1COUNT, AddrTM2COUNT, AddrTM3COUNT}[n] }
func timerCntAddr(n int) uint32   { return [4]uint32{AddrTM0CNT, AddrTM1CNT, AddrTM2CNT, AddrTM3CNT}[n] }

// prescalerMasks: selector 0..3 -> prescaler 1/64/256/1024 expressed as a
// cycle-counter AND-mask that is zero exactly once per prescaler period
// (§4.4).
var prescalerMasks = [4]uint64{0, 63, 255, 1023}

// timerIRQSource maps timer index to its interrupt source number (§4.4:
// "sources 3..6").
func timerIRQSource(n int) int { return IntTimer0 + n }

// TimerBank implements the four prescaled/cascaded counters of §4.4.
// The live running counter and the reload latch are kept internally
// (not in IORegs raw storage) because GBA timer registers are
// write-sets-reload / read-returns-live-count: the counter value
// published into IORegs.TMnCOUNT is overwritten every tick, so a CPU
// write in between only affects the reload latch, never the running
// count, until the next overflow or start edge (§4.4, §8 invariant 8).
//
// Grounded on spec.md §4.4 directly; internal/timer was referenced by
// the teacher's bus.go but never committed.
type TimerBank struct {
	regs    *IORegs
	ic      *InterruptController
	cycle   uint64
	count   [4]uint16
	reload  [4]uint16
	running [4]bool
}

// NewTimerBank wires the timer bank to the register file and interrupt
// controller and registers the start-edge callback for all 4 control
// registers (§4.2 effect table).
func NewTimerBank(regs *IORegs, ic *InterruptController) *TimerBank {
	t := &TimerBank{regs: regs, ic: ic}
	for n := 0; n < 4; n++ {
		n := n
		regs.OnWrite(timerCntAddr(n), func(old, new uint16) { t.onControlWritten(n, old, new) })
		regs.OnWrite(timerCountAddr(n), func(old, new uint16) { t.reload[n] = new })
	}
	return t
}

func (t *TimerBank) onControlWritten(n int, old, new uint16) {
	wasEnabled := old&0x80 != 0
	nowEnabled := new&0x80 != 0
	if !wasEnabled && nowEnabled {
		// Start rising edge: load reload into count immediately
		// (§4.2 table; §8 invariant 8).
		t.count[n] = t.reload[n]
	}
	t.running[n] = nowEnabled
}

// Tick advances the global cycle counter once and evaluates every
// enabled timer in order 0..3 (§4.4). Must run once per master clock.
func (t *TimerBank) Tick() {
	t.cycle++
	prevOverflowed := false
	for n := 0; n < 4; n++ {
		ctrl := t.regs.GetRegHalf(timerCntAddr(n))
		enabled := ctrl&0x80 != 0
		if !enabled {
			prevOverflowed = false
			t.regs.SetRegHalf(timerCountAddr(n), t.count[n])
			continue
		}
		cascade := n > 0 && ctrl&0x04 != 0
		var increment bool
		if cascade {
			increment = prevOverflowed
		} else {
			mask := prescalerMasks[ctrl&0x3]
			increment = t.cycle&mask == 0
		}

		overflowed := false
		if increment {
			t.count[n]++
			if t.count[n] == 0 {
				overflowed = true
				t.count[n] = t.reload[n]
				if ctrl&0x40 != 0 { // IRQ-on-overflow bit
					t.ic.Raise(timerIRQSource(n))
				}
			}
		}
		t.regs.SetRegHalf(timerCountAddr(n), t.count[n])
		prevOverflowed = overflowed
	}
}
