// Package detector handles frontend detection.
package detector

import (
	"os"
	"runtime"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector picks the frontend to use from the options and the environment.
type Detector struct {
	logger *log.Logger

	goos       string
	getenv     func(key string) string
	isTerminal func() bool
}

// New creates a new frontend detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:     logger,
		goos:       runtime.GOOS,
		getenv:     os.Getenv,
		isTerminal: stdioIsTerminal,
	}
}

// Detect returns the frontend to use. An explicitly selected frontend is
// returned unchanged, otherwise a window is preferred if a display is
// available, followed by an interactive terminal.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != "" && opts.Frontend != options.FrontendAuto {
		return opts.Frontend
	}

	frontend := d.detectFromEnvironment()
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend),
		log.String("os", d.goos))
	return frontend
}

func (d *Detector) detectFromEnvironment() string {
	if d.hasDisplay() {
		return options.FrontendEbiten
	}
	if d.isTerminal() {
		return options.FrontendTerminal
	}
	return options.FrontendHeadless
}

// hasDisplay returns whether a graphical session is available. Only unix
// like systems without a running X11 or Wayland server have no display.
func (d *Detector) hasDisplay() bool {
	switch d.goos {
	case "windows", "darwin":
		return true
	case "js", "wasip1", "android", "ios":
		return false
	}
	return d.getenv("DISPLAY") != "" || d.getenv("WAYLAND_DISPLAY") != ""
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
