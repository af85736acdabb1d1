package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/lineclass/internal/stats"
)

// JSONReporter outputs statistics as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// Report outputs statistics as an indented JSON document
func (r *JSONReporter) Report(all []stats.Statistics) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newOutput(all))
}
