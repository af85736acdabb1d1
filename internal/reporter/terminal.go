package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/lineclass/internal/classify"
	"github.com/pthm/lineclass/internal/stats"
	"github.com/pthm/lineclass/internal/ui"
)

// TerminalReporter outputs statistics as labelled blocks, one per category
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTerminalReporter creates a new terminal reporter. A nil styles value
// renders plain text.
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &TerminalReporter{w: w, styles: styles}
}

// Report outputs statistics to the terminal
func (r *TerminalReporter) Report(all []stats.Statistics) error {
	if len(all) == 0 {
		fmt.Fprintln(r.w, r.styles.Warning.Render("No lines to report"))
		return nil
	}

	for _, st := range all {
		r.printStats(st)
	}

	summary := ComputeSummary(all)
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Separator.Render(strings.Repeat("─", 37)))
	fmt.Fprintf(r.w, "%d lines in %d categories\n", summary.TotalLines, summary.Categories)
	return nil
}

func (r *TerminalReporter) printStats(st stats.Statistics) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Header.Render(fmt.Sprintf("=== %s ===", strings.ToUpper(st.Category.String()))))
	r.field("Count", fmt.Sprintf("%d", st.Count))

	if !st.Full {
		return
	}

	switch {
	case st.Category == classify.Integer:
		r.field("Min", fmt.Sprintf("%d", st.IntMin()))
		r.field("Max", fmt.Sprintf("%d", st.IntMax()))
		r.field("Sum", fmt.Sprintf("%d", st.IntSum()))
		r.field("Average", formatFloat(st.Average))
	case st.Category.IsNumeric():
		r.field("Min", formatFloat(st.Min))
		r.field("Max", formatFloat(st.Max))
		r.field("Sum", formatFloat(st.Sum))
		r.field("Average", formatFloat(st.Average))
	default:
		r.field("Shortest", fmt.Sprintf("%d chars", st.MinLength))
		r.field("Longest", fmt.Sprintf("%d chars", st.MaxLength))
		r.field("Average length", formatFloat(st.AverageLength)+" chars")
	}
}

func (r *TerminalReporter) field(label, value string) {
	fmt.Fprintf(r.w, "%s %s\n", r.styles.Label.Render(label+":"), r.styles.Value.Render(value))
}
