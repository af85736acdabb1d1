package reporter

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pthm/lineclass/internal/classify"
	"github.com/pthm/lineclass/internal/stats"
	"github.com/pthm/lineclass/internal/ui"
)

// Reporter defines the interface for outputting statistics
type Reporter interface {
	// Report outputs statistics for each reported category
	Report(all []stats.Statistics) error
}

// New returns the reporter for format
func New(format string, w io.Writer, u *ui.UI) (Reporter, error) {
	switch format {
	case "", "terminal":
		return NewTerminalReporter(w, u.Styles), nil
	case "json":
		return NewJSONReporter(w), nil
	case "yaml":
		return NewYAMLReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}

// Summary holds totals across all reported categories
type Summary struct {
	TotalLines int `json:"totalLines" yaml:"total_lines"`
	Categories int `json:"categories" yaml:"categories"`
}

// ComputeSummary computes totals from per-category statistics
func ComputeSummary(all []stats.Statistics) Summary {
	s := Summary{Categories: len(all)}
	for _, st := range all {
		s.TotalLines += st.Count
	}
	return s
}

// Record is the structured form of one category's statistics.
// Integer buckets report min, max and sum as whole numbers. Values that
// overflowed to infinity are reported as strings such as "+Inf".
type Record struct {
	Category      string   `json:"category" yaml:"category"`
	Count         int      `json:"count" yaml:"count"`
	Min           any      `json:"min,omitempty" yaml:"min,omitempty"`
	Max           any      `json:"max,omitempty" yaml:"max,omitempty"`
	Sum           any      `json:"sum,omitempty" yaml:"sum,omitempty"`
	Average       any      `json:"average,omitempty" yaml:"average,omitempty"`
	MinLength     *int     `json:"minLength,omitempty" yaml:"min_length,omitempty"`
	MaxLength     *int     `json:"maxLength,omitempty" yaml:"max_length,omitempty"`
	AverageLength *float64 `json:"averageLength,omitempty" yaml:"average_length,omitempty"`
}

// Output is the document written by structured reporters
type Output struct {
	Stats   []Record `json:"stats" yaml:"stats"`
	Summary Summary  `json:"summary" yaml:"summary"`
}

func newOutput(all []stats.Statistics) Output {
	out := Output{
		Stats:   make([]Record, 0, len(all)),
		Summary: ComputeSummary(all),
	}
	for _, st := range all {
		out.Stats = append(out.Stats, toRecord(st))
	}
	return out
}

func toRecord(st stats.Statistics) Record {
	r := Record{Category: st.Category.String(), Count: st.Count}
	if !st.Full {
		return r
	}

	if !st.Category.IsNumeric() {
		minLen, maxLen, avgLen := st.MinLength, st.MaxLength, st.AverageLength
		r.MinLength, r.MaxLength, r.AverageLength = &minLen, &maxLen, &avgLen
		return r
	}

	r.Average = number(st.Average)
	if st.Category == classify.Integer {
		r.Min, r.Max, r.Sum = st.IntMin(), st.IntMax(), st.IntSum()
	} else {
		r.Min, r.Max, r.Sum = number(st.Min), number(st.Max), number(st.Sum)
	}
	return r
}

// number returns v unchanged unless encoding/json would reject it
func number(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return formatFloat(v)
	}
	return v
}

// formatFloat renders v with the fewest digits that round-trip. Very large
// and very small magnitudes use exponent notation.
func formatFloat(v float64) string {
	if abs := math.Abs(v); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
