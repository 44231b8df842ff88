package main

import (
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime/pprof"
)

// startProfile wires `-p/--profile` (§6): "file" writes a pprof CPU
// profile to goba.prof on stop, "html" serves the live net/http/pprof
// endpoints on :6060 for the duration of the run. No pack repo ships a
// profiling setup to ground this on (DESIGN.md); both modes are
// stdlib-only since neither has an ecosystem alternative in the corpus.
func startProfile(mode string) (stop func(), err error) {
	switch mode {
	case "":
		return func() {}, nil
	case "file":
		f, err := os.Create("goba.prof")
		if err != nil {
			return nil, fmt.Errorf("goba: create profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("goba: start cpu profile: %w", err)
		}
		return func() {
			pprof.StopCPUProfile()
			f.Close()
		}, nil
	case "html":
		srv := &http.Server{Addr: "localhost:6060"}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("goba: pprof http server failed", "error", err)
			}
		}()
		slog.Info("goba: pprof http server listening", "addr", srv.Addr)
		return func() { srv.Close() }, nil
	default:
		return nil, fmt.Errorf("goba: unknown --profile mode %q (want file or html)", mode)
	}
}
