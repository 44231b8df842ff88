// Package headless implements the no-window host collaborators (§6):
// a FrameSink that optionally dumps periodic PNG snapshots instead of
// drawing to a window, a keyboard-less InputSource, and a discarding
// AudioSink. Used for batch runs, CI, and the default build (no
// platform SDK required).
//
// Grounded on valerio-go-jeebie's jeebie/backend/headless.go
// (HeadlessBackend): the periodic-snapshot idea and its frame-count
// gating, adapted from that package's video.FrameBuffer type to this
// module's own BGRX row-locking FrameSink contract.
package headless

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"GoBA/internal/gba"
)

// FrameSink discards every frame unless snapshotting is enabled, in
// which case it encodes every Nth frame to a PNG under Dir.
type FrameSink struct {
	buf [gba.ScreenHeight][gba.ScreenWidth * 4]byte

	Dir      string
	Interval int
	Prefix   string

	frameCount int
}

func NewFrameSink() *FrameSink { return &FrameSink{} }

func (f *FrameSink) LockRow(y int) []byte {
	return f.buf[y][:]
}

func (f *FrameSink) Present() {
	f.frameCount++
	if f.Interval <= 0 || f.frameCount%f.Interval != 0 {
		return
	}
	if err := f.saveSnapshot(); err != nil {
		slog.Error("headless: failed to save snapshot", "frame", f.frameCount, "error", err)
	}
}

func (f *FrameSink) saveSnapshot() error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, gba.ScreenWidth, gba.ScreenHeight))
	for y := 0; y < gba.ScreenHeight; y++ {
		row := f.buf[y][:]
		for x := 0; x < gba.ScreenWidth; x++ {
			o := x * 4
			// BGRX -> RGBA.
			b, g, r := row[o], row[o+1], row[o+2]
			img.Set(x, y, imageColor{r, g, b, 0xFF})
		}
	}
	path := filepath.Join(f.Dir, fmt.Sprintf("%s_frame_%d.png", f.Prefix, f.frameCount))
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

type imageColor struct{ r, g, b, a uint8 }

func (c imageColor) RGBA() (r, g, b, a uint32) {
	return uint32(c.r) * 0x101, uint32(c.g) * 0x101, uint32(c.b) * 0x101, uint32(c.a) * 0x101
}

// InputSource reports every button as released; headless runs never
// read live keyboard state.
type InputSource struct{}

func (InputSource) KeyDown(gba.Button) bool { return false }

// AudioSink discards every sample; there is no speaker in batch mode.
type AudioSink struct{}

func (AudioSink) PushSamples(frames [][2]float32) {}
