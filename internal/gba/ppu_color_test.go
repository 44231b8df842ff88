package gba

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestColor15ToRGB covers testable property 5.
func TestColor15ToRGB(t *testing.T) {
	tests := []struct {
		name             string
		c                uint16
		wantR, wantG, wantB uint8
	}{
		{"pure red", 0x001F, 0xF8, 0, 0},
		{"pure green", 0x03E0, 0, 0xF8, 0},
		{"pure blue", 0x7C00, 0, 0, 0xF8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := color15ToRGB(tc.c)
			assert.Equal(t, tc.wantR, r)
			assert.Equal(t, tc.wantG, g)
			assert.Equal(t, tc.wantB, b)
		})
	}
}

// TestAlphaBlendBoundary covers testable property 6. bldalpha packs EVB
// in bits 8-12 and EVA in bits 0-4 (§6's BLDALPHA layout); the second
// case is taken directly from original_source's own alpha-blend test,
// which packs the coefficients as (15<<8)|(16<<0) to reach EVA=16,
// EVB=15 for this boundary case.
func TestAlphaBlendBoundary(t *testing.T) {
	tests := []struct {
		name             string
		bldalpha         uint16
		c1, c2           uint16
		wantR, wantG, wantB uint8
	}{
		{
			name:     "eva=8 evb=8",
			bldalpha: 8<<8 | 8<<0,
			c1:       repack15(31, 31, 0),
			c2:       repack15(0, 27, 31),
			wantR:    15, wantG: 29, wantB: 15,
		},
		{
			name:     "eva=16 evb=15",
			bldalpha: 15<<8 | 16<<0,
			c1:       repack15(0, 0, 0),
			c2:       repack15(31, 31, 31),
			wantR:    29, wantG: 29, wantB: 29,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := alphaBlend(tc.bldalpha, tc.c1, tc.c2)
			r, g, b := unpack15(out)
			assert.Equal(t, tc.wantR, r)
			assert.Equal(t, tc.wantG, g)
			assert.Equal(t, tc.wantB, b)
		})
	}
}

// TestInWinVert covers testable property 7.
func TestInWinVert(t *testing.T) {
	tests := []struct {
		name     string
		y1, y2   int
		row      int
		want     bool
	}{
		{"degenerate full-screen case", 0xF0, 0xF0, 159, true},
		{"degenerate below threshold is not special-cased", 0x10, 0x10, 5, false},
		{"normal range, inside", 10, 20, 15, true},
		{"normal range, at upper bound excluded", 10, 20, 20, false},
		{"normal range, at lower bound included", 10, 20, 10, true},
		{"wraparound range, inside high part", 200, 10, 210, true},
		{"wraparound range, inside low part", 200, 10, 5, true},
		{"wraparound range, outside", 200, 10, 100, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			winv := uint16(tc.y1)<<8 | uint16(tc.y2)
			assert.Equal(t, tc.want, inWinVert(winv, tc.row))
		})
	}
}
