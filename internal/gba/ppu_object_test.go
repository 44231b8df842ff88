package gba

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRenderObjects1DRowStride covers the 1D-OAM-mapping row-stride
// divisor (§4.6 "Objects (sprites)"): a 16x16, 16-color sprite spans
// two 8x8 tile rows, so the second tile row's index must advance by
// xsize/8 (not xsize/4), per original_source's render/object.rs
// xsize/(4*(2-palette_mode)).
func TestRenderObjects1DRowStride(t *testing.T) {
	sys := newTestSystem(t)
	p := sys.PPU()

	const (
		dispcnt  = 0x1040 // obj enable (bit12) + 1D obj mapping (bit6)
		tileBase = 0x10000
	)

	// OAM entry 0: 16x16 square, 16-color, normal (non-affine) sprite
	// at (0,0), tile base 0.
	p.OAM().Write16(0, 0x0000) // a0: y=0, 16-color, square shape
	p.OAM().Write16(2, 0x4000) // a1: x=0, size select 1 (16x16)
	p.OAM().Write16(4, 0x0000) // a2: tile index 0, priority 0, palette 0

	// Tile 0 (top-left, row covering y=0..7): color index 5.
	fillTile(p.VRAM(), tileBase, 0, 0x55)
	// Tile 2 is the correct second-tile-row slot under xsize/8 == 2 for a
	// 16px-wide sprite: color index 5 there too, so a full read at y=8
	// would match what the top row shows when the stride is right.
	fillTile(p.VRAM(), tileBase, 2, 0x55)
	// Tile 4 is the (wrong) slot the swapped divisor used to land on:
	// color index 9, which must never show up in this sprite's pixels.
	fillTile(p.VRAM(), tileBase, 4, 0x99)

	p.Palette().Write16(0x200+5*2, 0x1111)
	p.Palette().Write16(0x200+9*2, 0x2222)

	var dest, destWin [ScreenWidth]uint32
	p.renderObjects(8, dispcnt, &dest, &destWin)

	assert.Equal(t, uint32(0x1111), dest[0], "row 8 must read tile index 2, not tile index 4")
}

// fillTile writes byteVal to every byte of a 16-color (32-byte) tile.
func fillTile(vram *RAM, tileBase uint32, tileIdx uint32, byteVal uint8) {
	addr := tileBase + tileIdx*32
	for i := uint32(0); i < 32; i++ {
		vram.Write8(addr+i, byteVal)
	}
}
