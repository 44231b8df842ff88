package gba

import "GoBA/util/convert"

// renderLine renders scanline row into the PPU's internal line buffers,
// composites them, and writes the result into the host sink's row
// buffer (§4.6 "Rendering one line").
//
// Grounded on original_source's render/{background,object,combine}.rs,
// which spec.md §4.6 condenses into prose; the packed-pixel priority
// scheme (priority in the high bits, background/object tie-break below
// it) is taken directly from there since it is what makes "first pixel
// = smallest packed value" and "objects beat backgrounds at equal
// priority" both fall out of a plain numeric comparison.
func (p *PPU) renderLine(row int) {
	dispcnt := p.regs.GetRegHalf(AddrDISPCNT)
	mode := dispcnt & 0x7

	bg0en := mode <= 1 && dispcnt&0x0100 != 0
	bg1en := mode <= 1 && dispcnt&0x0200 != 0
	bg2en := dispcnt&0x0400 != 0
	bg3en := (mode == 0 || mode == 2) && dispcnt&0x0800 != 0
	objen := dispcnt&0x1000 != 0

	if bg0en {
		p.renderTextBG(0, row, &p.line0)
	}
	if bg1en {
		p.renderTextBG(1, row, &p.line1)
	}
	if bg2en {
		if mode == 0 {
			p.renderTextBG(2, row, &p.line2)
		} else {
			p.renderBG2(mode, &p.line2)
		}
	}
	if bg3en {
		if mode == 0 {
			p.renderTextBG(3, row, &p.line3)
		} else if mode == 2 {
			p.renderRotScaleTileBG(3, AddrBG3CNT, &p.bg3ref, p.readAffineParams(AddrBG3PA), &p.line3)
		}
	}
	if objen {
		p.renderObjects(row, dispcnt, &p.lineObj, &p.lineObjWin)
	}

	p.combineLine(row, dispcnt, bg0en, bg1en, bg2en, bg3en, objen)

	if p.sink == nil {
		return
	}
	out := p.sink.LockRow(row)
	for x := 0; x < ScreenWidth && x*4+3 < len(out); x++ {
		r, g, b := color15ToRGB(p.lineOut[x])
		off := x * 4
		out[off+0] = b
		out[off+1] = g
		out[off+2] = r
		out[off+3] = 0
	}
}

type affineParams struct{ pa, pb, pc, pd int32 }

func (p *PPU) readAffineParams(base uint32) affineParams {
	read := func(addr uint32) int32 { return int32(int16(p.regs.GetRegHalf(addr))) }
	return affineParams{pa: read(base), pb: read(base + 2), pc: read(base + 4), pd: read(base + 6)}
}

// renderBG2 dispatches BG2 in modes 1-5 to tilemap rotation/scaling or
// one of the three bitmap modes depending on DISPCNT's mode field (§4.6:
// BG2 is the only layer shared by every display mode). Mode 0's text
// path is taken by renderLine directly, not here.
func (p *PPU) renderBG2(mode uint16, dest *[ScreenWidth]uint32) {
	params := p.readAffineParams(AddrBG2PA)
	switch mode {
	case 1, 2:
		p.renderRotScaleTileBG(2, AddrBG2CNT, &p.bg2ref, params, dest)
	case 3:
		p.renderBitmap(dest, &p.bg2ref, params, 0x0000, 240, 160, true)
	case 4:
		frameBase := uint32(0)
		if p.regs.GetRegHalf(AddrDISPCNT)&0x0010 != 0 {
			frameBase = 0xA000
		}
		p.renderBitmap(dest, &p.bg2ref, params, frameBase, 240, 160, false)
	case 5:
		frameBase := uint32(0)
		if p.regs.GetRegHalf(AddrDISPCNT)&0x0010 != 0 {
			frameBase = 0xA000
		}
		p.renderBitmap(dest, &p.bg2ref, params, frameBase, 160, 128, true)
	}
}

// renderTextBG implements the tile background path of §4.6 for a
// non-affine layer (BG0, BG1, and BG2/BG3 in mode 0).
func (p *PPU) renderTextBG(bg int, row int, dest *[ScreenWidth]uint32) {
	ctrlAddr := [4]uint32{AddrBG0CNT, AddrBG1CNT, AddrBG2CNT, AddrBG3CNT}[bg]
	hofsAddr := [4]uint32{AddrBG0HOFS, AddrBG1HOFS, AddrBG2HOFS, AddrBG3HOFS}[bg]
	vofsAddr := [4]uint32{AddrBG0VOFS, AddrBG1VOFS, AddrBG2VOFS, AddrBG3VOFS}[bg]

	ctrl := p.regs.GetRegHalf(ctrlAddr)
	priority := uint32(ctrl & 0x3)
	tileBase := uint32(ctrl>>2&0x3) * 16 * 1024
	screenBase := uint32(ctrl>>8&0x1F) * 2 * 1024
	c256 := ctrl&0x0080 != 0
	sizeSel := ctrl >> 14 & 0x3

	var w, h uint32
	switch sizeSel {
	case 0:
		w, h = 256, 256
	case 1:
		w, h = 512, 256
	case 2:
		w, h = 256, 512
	case 3:
		w, h = 512, 512
	}

	xoff := uint32(p.regs.GetRegHalf(hofsAddr)) & 0x1FF
	yoff := uint32(p.regs.GetRegHalf(vofsAddr)) & 0x1FF

	packed := priority<<28 | 1<<27 | uint32(bg)<<25

	for x := 0; x < ScreenWidth; x++ {
		nx := (uint32(x) + xoff) & (w - 1)
		ny := (uint32(row) + yoff) & (h - 1)

		var quadrant uint32
		if w == 256 || h == 256 {
			quadrant = b2u(nx >= 256) + b2u(ny >= 256)
		} else {
			quadrant = b2u(nx >= 256) + b2u(ny >= 256)*2
		}

		ix, iy := nx%256, ny%256
		tileIdx := ix/8 + iy/8*32
		entryAddr := screenBase + quadrant*2*1024 + tileIdx*2
		entry := uint32(p.vram.Read16(entryAddr))

		tileNum := entry & 0x3FF
		hflip := entry&0x0400 != 0
		vflip := entry&0x0800 != 0
		palette := entry >> 12 & 0xF

		tx, ty := ix%8, iy%8
		if hflip {
			tx = 7 - tx
		}
		if vflip {
			ty = 7 - ty
		}

		var colorIndex uint8
		if c256 {
			addr := tileBase + tileNum*64 + ty*8 + tx
			colorIndex = p.vram.Read8(addr)
		} else {
			addr := tileBase + tileNum*32 + ty*4 + tx/2
			b := p.vram.Read8(addr)
			if tx&1 != 0 {
				colorIndex = b >> 4
			} else {
				colorIndex = b & 0xF
			}
		}

		if colorIndex == 0 {
			dest[x] = transparentPixel
			continue
		}

		var palOff uint32
		if !c256 {
			palOff = palette * 32
		}
		color := uint32(p.palette.Read16(palOff + uint32(colorIndex)*2))
		dest[x] = color | packed
	}
}

// renderRotScaleTileBG implements the rotation/scaling tilemap path for
// BG2 (modes 1,2) and BG3 (mode 2): affine sampling with a 256-color,
// single-quadrant tilemap (§4.6 "Rotation/Scaling backgrounds").
func (p *PPU) renderRotScaleTileBG(bg int, ctrlAddr uint32, ref *bgRefLatch, params affineParams, dest *[ScreenWidth]uint32) {
	ctrl := p.regs.GetRegHalf(ctrlAddr)
	priority := uint32(ctrl & 0x3)
	tileBase := uint32(ctrl>>2&0x3) * 16 * 1024
	screenBase := uint32(ctrl>>8&0x1F) * 2 * 1024
	wrap := ctrl&0x2000 != 0
	size := uint32(128) << uint(ctrl>>14&0x3)

	packed := priority<<28 | 1<<27 | uint32(bg)<<25

	xval, yval := ref.xref, ref.yref
	for x := 0; x < ScreenWidth; x++ {
		nx, ny := xval>>8, yval>>8
		xval += params.pa
		yval += params.pc

		var ix, iy uint32
		if wrap {
			ix = uint32(nx) % size
			iy = uint32(ny) % size
		} else {
			if nx < 0 || ny < 0 || uint32(nx) >= size || uint32(ny) >= size {
				dest[x] = transparentPixel
				continue
			}
			ix, iy = uint32(nx), uint32(ny)
		}

		tileIdx := ix/8 + iy/8*(size/8)
		tileNum := uint32(p.vram.Read8(screenBase + tileIdx))
		colorIndex := p.vram.Read8(tileBase + tileNum*64 + ix%8 + (iy%8)*8)
		if colorIndex == 0 {
			dest[x] = transparentPixel
			continue
		}
		color := uint32(p.palette.Read16(uint32(colorIndex) * 2))
		dest[x] = color | packed
	}
	ref.xref += params.pb
	ref.yref += params.pd
}

// renderBitmap implements BG2's bitmap modes 3/4/5 (§4.6): modes 3 and
// 5 read direct 15-bit color, mode 4 reads an 8-bit palette index.
func (p *PPU) renderBitmap(dest *[ScreenWidth]uint32, ref *bgRefLatch, params affineParams, base uint32, w, h int, direct bool) {
	packed := uint32(3)<<28 | 1<<27 | 2<<25 // bitmap BG2 is always priority-field 3, layer slot BG2's own tie-break

	xval, yval := ref.xref, ref.yref
	for x := 0; x < ScreenWidth; x++ {
		nx, ny := xval>>8, yval>>8
		xval += params.pa
		yval += params.pc

		if nx < 0 || ny < 0 || int(nx) >= w || int(ny) >= h {
			dest[x] = transparentPixel
			continue
		}
		idx := uint32(ny)*uint32(w) + uint32(nx)
		if direct {
			color := uint32(p.vram.Read16(base + idx*2))
			dest[x] = color | packed
			continue
		}
		colorIndex := p.vram.Read8(base + idx)
		if colorIndex == 0 {
			dest[x] = transparentPixel
			continue
		}
		color := uint32(p.palette.Read16(uint32(colorIndex) * 2))
		dest[x] = color | packed
	}
	ref.xref += params.pb
	ref.yref += params.pd
}

const objSemitransBit = 1 << 16

// objSizeTable maps (shape,sizeSelector) to (xsize,ysize), §4.6's "4x3
// table". Shape 3 is invalid and resolves to (0,0).
var objSizeTable = [4][4][2]int{
	0: {{8, 8}, {16, 16}, {32, 32}, {64, 64}},
	1: {{16, 8}, {32, 8}, {32, 16}, {64, 32}},
	2: {{8, 16}, {8, 32}, {16, 32}, {32, 64}},
	3: {{0, 0}, {0, 0}, {0, 0}, {0, 0}},
}

// renderObjects iterates the 128 OAM entries and composites sprite
// pixels (and the obj-window mask) into dest/destWin (§4.6 "Objects
// (sprites)").
func (p *PPU) renderObjects(row int, dispcnt uint16, dest, destWin *[ScreenWidth]uint32) {
	for x := 0; x < ScreenWidth; x++ {
		dest[x] = transparentPixel
		destWin[x] = 0
	}

	objWinEnabled := dispcnt&0x8000 != 0
	layout2D := dispcnt&0x0040 == 0
	mode := dispcnt & 0x7

	for o := 0; o < 128; o++ {
		base := uint32(o * 8)
		a0 := uint32(p.oam.Read16(base))
		a1 := uint32(p.oam.Read16(base + 2))
		a2 := uint32(p.oam.Read16(base + 4))

		shape := a0 >> 14 & 0x3
		affineBit := a0 & 0x0100 != 0
		doubleOrDisabled := a0 >> 8 & 0x3
		if (!affineBit && doubleOrDisabled == 2) || a0>>10&0x3 == 3 {
			continue
		}

		sizeSel := a1 >> 14 & 0x3
		xsize, ysize := objSizeTable[shape][sizeSel][0], objSizeTable[shape][sizeSel][1]

		y0 := int(a0 & 0xFF)
		xarea, yarea := xsize, ysize
		affineDouble := affineBit && doubleOrDisabled == 3
		if affineDouble {
			xarea, yarea = xsize*2, ysize*2
		}

		iy := (256 + row - y0) % 256
		if iy >= yarea {
			continue
		}

		var xval, yval, dx, dy int32
		if affineBit {
			paramIdx := (a1 >> 9) & 0x1F
			pbase := uint32(0x20) * paramIdx
			pa := int32(int16(p.oam.Read16(pbase + 0x06)))
			pb := int32(int16(p.oam.Read16(pbase + 0x0E)))
			pc := int32(int16(p.oam.Read16(pbase + 0x16)))
			pd := int32(int16(p.oam.Read16(pbase + 0x1E)))

			xval = int32(xsize<<7) - int32(xarea/2)*pa - int32(yarea/2)*pb + int32(iy)*pb
			yval = int32(ysize<<7) - int32(xarea/2)*pc - int32(yarea/2)*pd + int32(iy)*pd
			dx, dy = pa, pc
		} else {
			hflip := a1&0x1000 != 0
			vflip := a1&0x2000 != 0
			if hflip {
				xval = int32((xsize - 1) << 8)
				dx = -0x100
			} else {
				xval = 0
				dx = 0x100
			}
			if vflip {
				yval = int32((ysize - 1 - iy) << 8)
			} else {
				yval = int32(iy << 8)
			}
			dy = 0
		}

		paletteMode := a0 & 0x2000 != 0 // 0=16-color,1=256-color
		modeField := a0 >> 10 & 0x3
		isWin := modeField == 2

		tbase := a2 & 0x3FF
		var rowInc uint32 = 32
		if !layout2D {
			divisor := 8
			if paletteMode {
				divisor = 4
			}
			rowInc = uint32(xsize / divisor)
		}
		if mode > 2 && tbase < 512 {
			continue
		}

		priority := a2 >> 10 & 0x3
		packed := priority<<28 | uint32(o)<<20
		if modeField == 1 {
			packed |= objSemitransBit
		}

		var palette, colInc uint32
		if !paletteMode {
			palette = a2 >> 12 & 0xF
			colInc = 1
		} else {
			colInc = 2
		}

		x0 := int(a1 & 0x1FF)
		for x := x0; x < x0+xarea; x++ {
			sx := x % 512
			tx, ty := int(xval>>8), int(yval>>8)
			xval += dx
			yval += dy

			if sx >= ScreenWidth {
				continue
			}
			if !isWin && dest[sx] < packed {
				continue
			}
			if isWin && destWin[sx] != 0 {
				continue
			}
			if tx < 0 || ty < 0 || tx >= xsize || ty >= ysize {
				continue
			}

			tileIdx := (tbase + uint32(tx/8)*colInc + uint32(ty/8)*rowInc) & 0x3FF
			px := uint32(tx%8) + uint32(ty%8)*8
			tileAddr := 0x10000 + tileIdx*32

			var colorIndex uint8
			if !paletteMode {
				b := p.vram.Read8(tileAddr + px/2)
				colorIndex = (b >> ((px & 1) * 4)) & 0xF
			} else {
				colorIndex = p.vram.Read8(tileAddr + px)
			}
			if colorIndex == 0 {
				continue
			}

			if isWin {
				if objWinEnabled {
					destWin[sx] = 1
				}
				continue
			}
			color := uint32(p.palette.Read16(0x200 + palette*32 + uint32(colorIndex)*2))
			dest[sx] = color | packed
		}
	}
}

func b2u(b bool) uint32 { return uint32(convert.BoolToInt(b)) }
