package gba

// keyBitOrder is the KEYINPUT bit order documented in spec.md §3:
// (A, B, SELECT, START, R, L, U, D, BR, BL).
var keyBitOrder = [10]Button{
	ButtonA, ButtonB, ButtonSelect, ButtonStart,
	ButtonShoulderR, ButtonShoulderL, ButtonUp, ButtonDown,
	ButtonDPadRight, ButtonDPadLeft,
}

// Keypad implements §4.8: KEYINPUT as the bitwise inverse of the
// pressed-key bitmap, and KEYCNT's OR/AND match interrupt.
//
// Grounded on spec.md §4.8 directly — internal/joypad was referenced by
// the teacher's bus.go but never committed.
type Keypad struct {
	regs   *IORegs
	ic     *InterruptController
	source InputSource
}

// NewKeypad wires KEYINPUT/KEYCNT write-side effects (§4.2 effect
// table). source may be attached later via AttachSource.
func NewKeypad(regs *IORegs, ic *InterruptController) *Keypad {
	k := &Keypad{regs: regs, ic: ic}
	regs.OnWrite(AddrKEYINPUT, func(old, new uint16) { k.checkMatch() })
	regs.OnWrite(AddrKEYCNT, func(old, new uint16) { k.checkMatch() })
	// KEYINPUT resets to all-released (all bits 1, §3 lifecycle table).
	regs.SetRegHalf(AddrKEYINPUT, 0x03FF)
	return k
}

// AttachSource connects the host input collaborator (§6).
func (k *Keypad) AttachSource(src InputSource) { k.source = src }

// Poll reads the host input state into KEYINPUT and checks for a match
// interrupt. Called once per frame by the tick scheduler.
func (k *Keypad) Poll() {
	if k.source == nil {
		return
	}
	var bits uint16
	for i, b := range keyBitOrder {
		if !k.source.KeyDown(b) {
			bits |= 1 << uint(i)
		}
	}
	k.regs.SetRegHalf(AddrKEYINPUT, bits)
	k.checkMatch()
}

// checkMatch implements §4.8's "on change of either register" rule:
// if KEYCNT.enable, test the OR/AND condition and raise the keypad
// interrupt (source 12) when it holds.
func (k *Keypad) checkMatch() {
	cnt := k.regs.GetRegHalf(AddrKEYCNT)
	if cnt&0x4000 == 0 { // enable bit (14)
		return
	}
	mask := cnt & 0x03FF
	// KEYINPUT is active-low (§3); the match condition is defined in
	// terms of which selected buttons are pressed, so test against the
	// pressed-bit bitmap (KEYINPUT inverted), not the raw register —
	// otherwise AND mode could never fire while any selected key is
	// held (§8 scenario f: AND on A+B pressed must set IF bit 12).
	pressed := ^k.regs.GetRegHalf(AddrKEYINPUT) & 0x03FF
	andMode := cnt&0x8000 != 0 // mode bit (15): 0=OR, 1=AND
	var hit bool
	if andMode {
		hit = pressed&mask == mask
	} else {
		hit = pressed&mask != 0
	}
	if hit {
		k.ic.Raise(IntKeypad)
	}
}
