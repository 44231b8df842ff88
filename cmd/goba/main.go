// Command goba runs the GoBA core against a BIOS and ROM image.
//
// Grounded on valerio-go-jeebie's cmd/jeebie/main.go for the
// urfave/cli App shape (one Action, slog set up from the CLI, error
// returned and printed once) — generalized from that program's
// rom-only positional arg and headless/interactive bool split to
// spec.md §6's documented two-positional-arg, eight-flag surface and
// this module's three-way sdl2/terminal/headless host cascade.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"GoBA/internal/gba"
	"GoBA/internal/host/headless"
	"GoBA/internal/host/sdl2"
	"GoBA/internal/host/terminal"
	"GoBA/util/dbg"
)

func main() {
	app := cli.NewApp()
	app.Name = "goba"
	app.Usage = "goba [options] <bios-path> <rom-path>"
	app.Description = "A GBA-class system core: memory map, PPU, DMA, interrupts, timers, keypad, EEPROM save."
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "profile, p", Usage: "capture a CPU profile: file|html"},
		cli.BoolTFlag{Name: "fps-limit, f", Usage: "pace emulation to 59.7 fps (default true)"},
		cli.StringFlag{Name: "breaks, b", Usage: "comma-separated hex breakpoint addresses"},
		cli.BoolFlag{Name: "step", Usage: "single-step at each breakpoint"},
		cli.BoolFlag{Name: "quiet, q", Usage: "reduce log level (repeatable: -qq, -qqq)"},
		cli.BoolFlag{Name: "direct, d", Usage: "skip BIOS, jump straight to the ROM entry point"},
		cli.StringFlag{Name: "save, s", Usage: "save-state file prefix"},
		cli.StringFlag{Name: "type, t", Value: "bin", Usage: "save-state encoding: bin|json"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowAppHelp(c)
		return errors.New("bios-path and rom-path are required")
	}
	biosPath, romPath := c.Args().Get(0), c.Args().Get(1)

	setupLogging(countQuiet(os.Args))

	biosData, err := os.ReadFile(biosPath)
	if err != nil {
		return fmt.Errorf("goba: load bios: %w", err)
	}
	romData, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("goba: load rom: %w", err)
	}

	withEEPROM := detectEEPROM(romData)
	cartSavePath := strings.TrimSuffix(romPath, filepath.Ext(romPath)) + ".sav"
	var cartSaveData []byte
	if data, err := os.ReadFile(cartSavePath); err == nil {
		cartSaveData = data
	}

	sys := gba.NewSystem(biosData, romData, cartSaveData, withEEPROM)

	cpu := gba.NewStubCPU(sys)
	if c.Bool("direct") {
		cpu.DirectBoot()
	}
	if raw := c.String("breaks"); raw != "" {
		cpu.SetBreakpoints(parseBreakpoints(raw))
	}
	sys.AttachCPU(cpu)
	// `--step` only matters once a real decoding CPUCore is plugged in
	// (the ARM/Thumb decode is the external collaborator's job, §1);
	// StubCPU records breakpoints for inspection but has no instruction
	// stream of its own to halt.

	stopProfile, err := startProfile(c.String("profile"))
	if err != nil {
		return err
	}
	defer stopProfile()

	host, pumpAndQuit, closeHost := selectHost()
	defer closeHost()
	sys.AttachFrameSink(host.frames)
	sys.AttachInputSource(host.input)
	sys.AttachAudioSink(host.audio)

	asJSON := c.String("type") == "json"
	if savePrefix := c.String("save"); savePrefix != "" {
		if data, err := os.ReadFile(gba.SaveStatePath(savePrefix, 0, asJSON)); err == nil {
			if err := sys.LoadState(data, asJSON); err != nil {
				slog.Warn("goba: could not load save state", "error", err)
			}
		}
	}

	sched := gba.NewScheduler(sys, c.BoolT("fps-limit"))
	sched.Run(pumpAndQuit)

	if err := os.WriteFile(cartSavePath, sys.SaveBytes(), 0o644); err != nil {
		slog.Warn("goba: could not write cartridge save", "path", cartSavePath, "error", err)
	}
	if savePrefix := c.String("save"); savePrefix != "" {
		data, err := sys.SaveState(asJSON)
		if err == nil {
			os.WriteFile(gba.SaveStatePath(savePrefix, 0, asJSON), data, 0o644)
		} else {
			slog.Warn("goba: could not capture save state at exit", "error", err)
		}
	}
	return nil
}

func setupLogging(quietCount int) {
	level := slog.LevelInfo
	switch {
	case quietCount >= 2:
		level = slog.LevelError
	case quietCount == 1:
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	dbg.SetLevel(level)
}

// countQuiet counts how many times -q/--quiet appears, including
// combined short forms like -qqq, since urfave/cli v1's BoolFlag has
// no native Count type (§6 "-q|--quiet repeatable: reduces log level").
func countQuiet(args []string) int {
	n := 0
	for _, a := range args {
		switch {
		case a == "-q" || a == "--quiet":
			n++
		case strings.HasPrefix(a, "-q") && !strings.HasPrefix(a, "--") && strings.Trim(a[1:], "q") == "":
			n += len(a) - 1
		}
	}
	return n
}

// detectEEPROM scans the cartridge for the "EEPROM_V" ASCII marker real
// GBA ROMs embed to advertise their save device, the same heuristic
// real hardware's own link-cable transfer tools and most emulators use
// since the cartridge header carries no save-type field.
func detectEEPROM(rom []byte) bool {
	return bytes.Contains(rom, []byte("EEPROM_V"))
}

func parseBreakpoints(raw string) []uint32 {
	var out []uint32
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 32)
		if err != nil {
			slog.Warn("goba: skipping unparsable breakpoint", "value", tok, "error", err)
			continue
		}
		out = append(out, uint32(v))
	}
	return out
}

type hostBundle struct {
	frames gba.FrameSink
	input  gba.InputSource
	audio  gba.AudioSink
}

// selectHost cascades sdl2 -> terminal -> headless: sdl2.New fails
// immediately under the `!sdl2` stub build, terminal.New fails when
// stdout isn't a usable terminal (e.g. under CI), and headless never
// fails (§6 host collaborators are all optional; the core itself
// never requires a window).
func selectHost() (hostBundle, func() bool, func()) {
	if h, err := sdl2.New("GoBA"); err == nil {
		slog.Info("goba: using sdl2 host")
		return hostBundle{h, h, h}, func() bool { h.PollEvents(); return h.ShouldQuit() }, h.Close
	}
	if h, err := terminal.New(); err == nil {
		slog.Info("goba: using terminal host")
		return hostBundle{h, h, nil}, h.ShouldQuit, h.Close
	}
	slog.Info("goba: using headless host")
	fs := headless.NewFrameSink()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	stopped := false
	stop := func() bool {
		if stopped {
			return true
		}
		select {
		case <-quit:
			stopped = true
		default:
		}
		return stopped
	}
	return hostBundle{fs, headless.InputSource{}, headless.AudioSink{}}, stop, func() { signal.Stop(quit) }
}
