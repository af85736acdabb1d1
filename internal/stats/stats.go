package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pthm/lineclass/internal/classify"
)

// ErrNumericParse is returned when a line bucketed as a number cannot be
// parsed as a float64, for example because it overflows.
var ErrNumericParse = errors.New("numeric parse failed")

// Statistics summarizes one bucket. Numeric fields are set for integer and
// float buckets, length fields for the string bucket, and only when Full is true.
type Statistics struct {
	Category classify.Category
	Count    int
	Full     bool

	Min     float64
	Max     float64
	Sum     float64
	Average float64

	MinLength     int
	MaxLength     int
	AverageLength float64
}

// IntMin returns Min truncated toward zero
func (s Statistics) IntMin() int64 { return truncate(s.Min) }

// IntMax returns Max truncated toward zero
func (s Statistics) IntMax() int64 { return truncate(s.Max) }

// IntSum returns Sum truncated toward zero
func (s Statistics) IntSum() int64 { return truncate(s.Sum) }

// truncate converts v to int64, saturating at the int64 range
func truncate(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(v)
	}
}

// Summarize computes statistics for bucket. When full is false or the bucket
// is empty only Count is set.
func Summarize(bucket classify.Bucket, category classify.Category, full bool) (Statistics, error) {
	s := Statistics{Category: category, Count: len(bucket)}
	if !full || len(bucket) == 0 {
		return s, nil
	}
	s.Full = true

	if category.IsNumeric() {
		if err := s.numeric(bucket); err != nil {
			return Statistics{}, err
		}
		return s, nil
	}

	s.lengths(bucket)
	return s, nil
}

func (s *Statistics) numeric(bucket classify.Bucket) error {
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	for _, line := range bucket {
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return fmt.Errorf("%w: %s line %q: %w", ErrNumericParse, s.Category, line, err)
		}
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Sum += v
	}
	s.Average = s.Sum / float64(len(bucket))
	return nil
}

func (s *Statistics) lengths(bucket classify.Bucket) {
	s.MinLength = math.MaxInt
	total := 0
	for _, line := range bucket {
		n := utf8.RuneCountInString(line)
		s.MinLength = min(s.MinLength, n)
		s.MaxLength = max(s.MaxLength, n)
		total += n
	}
	s.AverageLength = float64(total) / float64(len(bucket))
}

// SummarizeAll summarizes every non-empty bucket in category order
func SummarizeAll(set classify.BucketSet, full bool) ([]Statistics, error) {
	var out []Statistics
	for _, c := range classify.Categories {
		b := set.Get(c)
		if len(b) == 0 {
			continue
		}
		s, err := Summarize(b, c, full)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
