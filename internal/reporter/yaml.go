package reporter

import (
	"io"

	"github.com/pthm/lineclass/internal/stats"
	"gopkg.in/yaml.v3"
)

// YAMLReporter outputs statistics as YAML
type YAMLReporter struct {
	w io.Writer
}

// NewYAMLReporter creates a new YAML reporter
func NewYAMLReporter(w io.Writer) *YAMLReporter {
	return &YAMLReporter{w: w}
}

// Report outputs statistics as a YAML document
func (r *YAMLReporter) Report(all []stats.Statistics) error {
	encoder := yaml.NewEncoder(r.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(newOutput(all)); err != nil {
		return err
	}
	return encoder.Close()
}
