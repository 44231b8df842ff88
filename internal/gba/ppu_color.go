package gba

// combineLine implements §4.6 "Compositing": per-pixel window
// resolution, first/second pixel selection and the BLDCNT color
// special effect, writing the 15-bit result into p.lineOut.
//
// Grounded on original_source's render/combine.rs; spec.md §4.6
// describes the same algorithm in prose.
func (p *PPU) combineLine(row int, dispcnt uint16, bg0en, bg1en, bg2en, bg3en, objen bool) {
	winEnabled := dispcnt&0xE000 != 0
	inWin0 := dispcnt&0x2000 != 0 && inWinVert(p.regs.GetRegHalf(AddrWIN0V), row)
	inWin1 := dispcnt&0x4000 != 0 && inWinVert(p.regs.GetRegHalf(AddrWIN1V), row)
	inObjWin := dispcnt&0x8000 != 0

	winin := p.regs.GetRegHalf(AddrWININ)
	winout := p.regs.GetRegHalf(AddrWINOUT)
	win0h := p.regs.GetRegHalf(AddrWIN0H)
	win1h := p.regs.GetRegHalf(AddrWIN1H)

	bldcnt := p.regs.GetRegHalf(AddrBLDCNT)
	effect := (bldcnt >> 6) & 0x3
	bldalpha := p.regs.GetRegHalf(AddrBLDALPHA)
	bldy := p.regs.GetRegHalf(AddrBLDY)

	backdrop := uint32(p.palette.Read16(0)) | 0xE<<28

	for x := 0; x < ScreenWidth; x++ {
		var enMask uint32 = 0xFF
		if winEnabled {
			switch {
			case inWin0 && inWinHori(win0h, x):
				enMask = uint32(winin) & 0xFF
			case inWin1 && inWinHori(win1h, x):
				enMask = uint32(winin) >> 8
			case inObjWin && p.lineObjWin[x] != 0:
				enMask = uint32(winout) >> 8
			default:
				enMask = uint32(winout) & 0xFF
			}
		}

		xbg0 := bg0en && enMask&0x01 != 0
		xbg1 := bg1en && enMask&0x02 != 0
		xbg2 := bg2en && enMask&0x04 != 0
		xbg3 := bg3en && enMask&0x08 != 0
		xobj := objen && enMask&0x10 != 0

		first, fc := 5, backdrop
		check := func(layer int, v uint32) {
			if v < fc {
				first, fc = layer, v
			}
		}
		if xobj {
			check(4, p.lineObj[x])
		}
		if xbg0 {
			check(0, p.line0[x])
		}
		if xbg1 {
			check(1, p.line1[x])
		}
		if xbg2 {
			check(2, p.line2[x])
		}
		if xbg3 {
			check(3, p.line3[x])
		}

		semitrans := fc&objSemitransBit != 0
		wantSecond := semitrans || (enMask&0x20 != 0 && effect == 1)

		second, sc := 5, backdrop
		if wantSecond {
			checkSecond := func(layer int, v uint32) {
				if layer == first {
					return
				}
				if v < sc {
					second, sc = layer, v
				}
			}
			if xobj {
				checkSecond(4, p.lineObj[x])
			}
			if xbg0 {
				checkSecond(0, p.line0[x])
			}
			if xbg1 {
				checkSecond(1, p.line1[x])
			}
			if xbg2 {
				checkSecond(2, p.line2[x])
			}
			if xbg3 {
				checkSecond(3, p.line3[x])
			}
		}

		var out uint16
		switch {
		case semitrans:
			if bldcnt&(1<<(8+uint(second))) != 0 {
				out = alphaBlend(bldalpha, uint16(fc), uint16(sc))
			} else {
				switch effect {
				case 2:
					out = brighten(bldy, uint16(fc))
				case 3:
					out = darken(bldy, uint16(fc))
				default:
					out = uint16(fc)
				}
			}
		case enMask&0x20 != 0 && effect != 0 && bldcnt&(1<<uint(first)) != 0:
			switch effect {
			case 1:
				if bldcnt&(1<<(8+uint(second))) != 0 {
					out = alphaBlend(bldalpha, uint16(fc), uint16(sc))
				} else {
					out = uint16(fc)
				}
			case 2:
				out = brighten(bldy, uint16(fc))
			case 3:
				out = darken(bldy, uint16(fc))
			}
		default:
			out = uint16(fc)
		}
		p.lineOut[x] = out
	}
}

func inWinVert(winv uint16, row int) bool {
	y1 := int(winv >> 8)
	y2 := int(winv & 0xFF)
	if y1 == y2 && y1 >= 0xE8 {
		return true
	}
	if y1 <= y2 {
		return row >= y1 && row < y2
	}
	return row >= y1 || row < y2
}

func inWinHori(winh uint16, col int) bool {
	x1 := int(winh >> 8)
	x2 := int(winh & 0xFF)
	if x1 <= x2 {
		return col >= x1 && col < x2
	}
	return col >= x1 || col < x2
}

func unpack15(c uint16) (r, g, b uint8) {
	return uint8(c & 0x1F), uint8(c >> 5 & 0x1F), uint8(c >> 10 & 0x1F)
}

func repack15(r, g, b uint8) uint16 {
	return uint16(r) | uint16(g)<<5 | uint16(b)<<10
}

func alphaBlendComponent(eva, evb uint32, c1, c2 uint8) uint8 {
	v := (eva*uint32(c1) + evb*uint32(c2)) / 16
	if v > 31 {
		v = 31
	}
	return uint8(v)
}

// alphaBlend implements the BLDALPHA effect (§4.6, §8 testable property
// 6): per-channel blend of two 15-bit colors with 5-bit EVA/EVB
// coefficients, saturated at 31.
func alphaBlend(bldalpha uint16, c1, c2 uint16) uint16 {
	eva := uint32(bldalpha) & 0x1F
	evb := uint32(bldalpha) >> 8 & 0x1F
	r1, g1, b1 := unpack15(c1)
	r2, g2, b2 := unpack15(c2)
	return repack15(
		alphaBlendComponent(eva, evb, r1, r2),
		alphaBlendComponent(eva, evb, g1, g2),
		alphaBlendComponent(eva, evb, b1, b2),
	)
}

func brightenComponent(evy uint32, c uint8) uint8 {
	v := uint32(c) + evy*(31-uint32(c))/16
	if v > 31 {
		v = 31
	}
	return uint8(v)
}

func brighten(bldy uint16, c uint16) uint16 {
	evy := uint32(bldy) & 0x1F
	r, g, b := unpack15(c)
	return repack15(brightenComponent(evy, r), brightenComponent(evy, g), brightenComponent(evy, b))
}

func darkenComponent(evy uint32, c uint8) uint8 {
	v := int32(c) - int32(evy)*int32(c)/16
	if v < 0 {
		v = 0
	}
	return uint8(v)
}

func darken(bldy uint16, c uint16) uint16 {
	evy := uint32(bldy) & 0x1F
	r, g, b := unpack15(c)
	return repack15(darkenComponent(evy, r), darkenComponent(evy, g), darkenComponent(evy, b))
}

// color15ToRGB converts a 5-5-5 BGR555 color to 8-bit-per-channel RGB
// (§4.6, §8 testable property 5): each channel left-shifted by 3.
func color15ToRGB(c uint16) (r, g, b uint8) {
	rc, gc, bc := unpack15(c)
	return rc << 3, gc << 3, bc << 3
}
