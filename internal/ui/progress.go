package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pthm/lineclass/internal/pipeline"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
	done    chan struct{}
}

var _ pipeline.Progress = (*ProgressController)(nil)

// StartProgress starts the progress display on ErrWriter if in interactive mode.
// Returns nil if not in interactive mode; all methods accept a nil receiver.
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter), tea.WithInput(nil))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
		done:    make(chan struct{}),
	}

	go func() {
		// A failed progress display must not fail the run.
		_, _ = p.Run()
		close(ctrl.done)
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage pipeline.Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetFileCount sets the total number of inputs to read
func (pc *ProgressController) SetFileCount(n int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(FileCountMsg(n))
	}
}

// FileDone indicates an input has been read
func (pc *ProgressController) FileDone(path string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(FileDoneMsg(path))
	}
}

// Done stops the display and waits for the terminal to be restored
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		<-pc.done
	}
}
