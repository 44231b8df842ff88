// Package terminal implements a host FrameSink/InputSource pair that
// renders into the controlling terminal instead of a window, useful
// over SSH or when no display server is available.
//
// Grounded on valerio-go-jeebie's jeebie/backend/terminal/terminal.go:
// the half-block-per-two-scanlines trick (one terminal cell encodes a
// top and bottom pixel via Unicode's upper-half-block glyph, foreground
// and background color) and tcell's Screen/PollEvent/SetContent idiom.
// Pared down from that package's full debug UI (register dump,
// disassembly view, log pane, test-pattern generator) to just the
// FrameSink/InputSource surface this module's §6 names, and generalized
// from the original's 4-shade grayscale palette to full 15-bit RGB
// (truecolor), since the GBA screen isn't monochrome the way a Game
// Boy's is.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"GoBA/internal/gba"
)

const halfBlock = '▀'

// runeMapping mirrors the sdl2 package's scancode table (§6: L->A,
// K->B, Z->Select, X->Start, D->R, A->L, W->Up, S->Down, P->BR, I->BL)
// in tcell's rune key space.
var runeMapping = map[rune]gba.Button{
	'l': gba.ButtonA,
	'k': gba.ButtonB,
	'z': gba.ButtonSelect,
	'x': gba.ButtonStart,
	'd': gba.ButtonShoulderR,
	'a': gba.ButtonShoulderL,
	'w': gba.ButtonUp,
	's': gba.ButtonDown,
	'p': gba.ButtonDPadRight,
	'i': gba.ButtonDPadLeft,
}

// Host bundles the tcell screen into a FrameSink+InputSource+quit
// source, the same three-role shape as the sdl2 package's Host.
type Host struct {
	screen tcell.Screen
	buf    [gba.ScreenHeight][gba.ScreenWidth * 4]byte
	keys   map[gba.Button]bool
	quit   bool
}

// New allocates and initializes the terminal screen.
func New() (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()
	return &Host{screen: screen, keys: make(map[gba.Button]bool)}, nil
}

// LockRow/Present implement FrameSink (§6): Present draws two buffered
// scanlines per terminal row using the half-block technique, then
// flushes the screen.
func (h *Host) LockRow(y int) []byte {
	return h.buf[y][:]
}

func (h *Host) Present() {
	for y := 0; y < gba.ScreenHeight; y += 2 {
		for x := 0; x < gba.ScreenWidth; x++ {
			top := pixelAt(h.buf[y][:], x)
			bottom := top
			if y+1 < gba.ScreenHeight {
				bottom = pixelAt(h.buf[y+1][:], x)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top[0]), int32(top[1]), int32(top[2]))).
				Background(tcell.NewRGBColor(int32(bottom[0]), int32(bottom[1]), int32(bottom[2])))
			h.screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}
	h.screen.Show()
	h.pollEvents()
}

// pixelAt reads one BGRX pixel's R,G,B bytes back out in RGB order.
func pixelAt(row []byte, x int) [3]byte {
	o := x * 4
	return [3]byte{row[o+2], row[o+1], row[o]}
}

// KeyDown implements InputSource (§6).
func (h *Host) KeyDown(b gba.Button) bool { return h.keys[b] }

// ShouldQuit reports whether Ctrl+C or Escape was seen — the `stop`
// predicate Scheduler.Run expects (§5 "Cancellation").
func (h *Host) ShouldQuit() bool { return h.quit }

// pollEvents drains pending key events. Called once per Present (i.e.
// once per frame) since tcell has no non-blocking peek primitive that
// fits a per-dot poll cadence. Terminals don't deliver key-up events,
// so a mapped button latches held until the next press of the same
// key; this host is meant for quick interactive checks, not sustained
// play.
func (h *Host) pollEvents() {
	for h.screen.HasPendingEvent() {
		switch ev := h.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				h.quit = true
				continue
			}
			if ev.Key() == tcell.KeyRune {
				if b, ok := runeMapping[ev.Rune()]; ok {
					h.keys[b] = true
				}
			}
		case *tcell.EventResize:
			h.screen.Sync()
		}
	}
}

// Close tears down the terminal screen, restoring the prior terminal
// mode (§6 graceful shutdown on exit).
func (h *Host) Close() {
	h.screen.Fini()
}
