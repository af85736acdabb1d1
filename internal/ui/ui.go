package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode determines how output should be formatted
type OutputMode int

const (
	// OutputModeInteractive enables colors and the spinner
	OutputModeInteractive OutputMode = iota
	// OutputModePlain disables colors and the spinner (for piped output)
	OutputModePlain
	// OutputModeStructured emits machine-readable statistics only
	OutputModeStructured
)

// UI provides a unified interface for terminal output with TTY detection.
// Styles apply to Writer and ErrStyles to ErrWriter, each detected on its
// own stream.
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
	ErrStyles *Styles
}

// New creates a new UI instance with automatic TTY detection
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
		ErrStyles: NewStyles(isTerminal(errW)),
	}
}

// detectMode determines the output mode based on TTY and format flags
func detectMode(w io.Writer, format string) OutputMode {
	if format == "json" || format == "yaml" {
		return OutputModeStructured
	}

	if isTerminal(w) {
		return OutputModeInteractive
	}

	return OutputModePlain
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsInteractive returns true if the output is interactive (TTY)
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsStructured returns true if statistics are emitted as JSON or YAML
func (ui *UI) IsStructured() bool {
	return ui.Mode == OutputModeStructured
}

// InfoWriter returns the stream for informational messages. Structured
// output keeps stdout for the document alone, so messages go to ErrWriter.
func (ui *UI) InfoWriter() io.Writer {
	if ui.IsStructured() {
		return ui.ErrWriter
	}
	return ui.Writer
}
