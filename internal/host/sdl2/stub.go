//go:build !sdl2

// This file backs the sdl2 package when the build lacks the `sdl2` tag
// (and, typically, the SDL2 development libraries): every constructor
// fails loudly instead of leaving a half-working window.
//
// Grounded on valerio-go-jeebie's jeebie/backend/sdl2_stub.go.
package sdl2

import (
	"fmt"

	"GoBA/internal/gba"
)

// Host stands in for the real SDL2-backed Host; every method is a
// no-op or returns a fixed value (ShouldQuit reports true) since New
// always fails.
type Host struct{}

// New always fails: rebuild with `-tags sdl2` and the SDL2 development
// libraries installed to get a real window.
func New(title string) (*Host, error) {
	return nil, fmt.Errorf("sdl2: not available in this build (rebuild with -tags sdl2)")
}

func (h *Host) LockRow(y int) []byte       { return nil }
func (h *Host) Present()                   {}
func (h *Host) KeyDown(gba.Button) bool    { return false }
func (h *Host) PushSamples([][2]float32)   {}
func (h *Host) PollEvents()                {}
func (h *Host) ShouldQuit() bool           { return true }
func (h *Host) Close()                     {}
