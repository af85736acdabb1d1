package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm/lineclass/internal/classify"
	"github.com/pthm/lineclass/internal/config"
	"github.com/pthm/lineclass/internal/input"
	"github.com/pthm/lineclass/internal/sink"
	"github.com/pthm/lineclass/internal/stats"
)

var (
	// ErrNoInput is returned when no input paths were given
	ErrNoInput = errors.New("no input files given")
	// ErrEmptyInput is returned when the inputs yielded no lines at all
	ErrEmptyInput = errors.New("input is empty")
)

// Stage identifies a step of a run
type Stage int

const (
	StageRead Stage = iota
	StageClassify
	StageWrite
	StageStats
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageRead:
		return "read"
	case StageClassify:
		return "classify"
	case StageWrite:
		return "write"
	case StageStats:
		return "stats"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Progress receives stage and per-file notifications. Implementations must
// accept calls on a nil receiver.
type Progress interface {
	SetStage(stage Stage)
	SetFileCount(n int)
	FileDone(path string)
}

// Options configures one run
type Options struct {
	Inputs    []string
	OutputDir string
	Prefix    string
	Append    bool
	Stats     config.StatsMode

	Classifier *classify.Classifier
	Reader     *input.Reader
	Writer     *sink.Writer
	Logger     *slog.Logger
	Progress   Progress
}

// Output describes a result file that was written
type Output struct {
	Category classify.Category
	Path     string
	Lines    int
}

// Result is the outcome of a run. Read and write failures are recorded
// here and do not stop the run.
type Result struct {
	Buckets     classify.BucketSet
	Lines       int
	ReadErrors  []error
	Written     []Output
	WriteErrors []error
	Stats       []stats.Statistics
}

// Partial reports whether any input or output failed
func (r *Result) Partial() bool {
	return len(r.ReadErrors) > 0 || len(r.WriteErrors) > 0
}

// Err joins all recorded read and write errors
func (r *Result) Err() error {
	errs := make([]error, 0, len(r.ReadErrors)+len(r.WriteErrors))
	errs = append(errs, r.ReadErrors...)
	errs = append(errs, r.WriteErrors...)
	return errors.Join(errs...)
}

func (o *Options) setDefaults() {
	if o.Classifier == nil {
		o.Classifier = classify.New(nil)
	}
	if o.Reader == nil {
		o.Reader = input.New(nil)
	}
	if o.Writer == nil {
		o.Writer = sink.New(sink.Options{})
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Stats == "" {
		o.Stats = config.StatsNone
	}
}

// Run reads the inputs, buckets their lines, writes one file per non-empty
// category and optionally computes statistics. The returned error is set
// only for failures that stop the run; the Result is non-nil whenever
// lines were classified.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.setDefaults()
	log := opts.Logger
	start := time.Now()

	if len(opts.Inputs) == 0 {
		return nil, ErrNoInput
	}

	// Read
	setStage(opts.Progress, StageRead)
	if opts.Progress != nil {
		opts.Progress.SetFileCount(len(opts.Inputs))
	}
	res := &Result{}
	lines, readErrs, err := opts.Reader.ReadLines(ctx, opts.Inputs, func(path string, n int, err error) {
		if err != nil {
			log.Warn("input skipped", "path", path, "error", err)
		} else {
			log.Debug("input read", "path", path, "lines", n)
		}
		if opts.Progress != nil {
			opts.Progress.FileDone(path)
		}
	})
	if err != nil {
		return nil, err
	}
	res.ReadErrors = readErrs
	if len(lines) == 0 {
		return nil, errors.Join(ErrEmptyInput, res.Err())
	}

	// Classify
	setStage(opts.Progress, StageClassify)
	res.Buckets = opts.Classifier.Aggregate(lines)
	res.Lines = res.Buckets.Len()
	log.Debug("lines classified",
		"read", len(lines),
		"kept", res.Lines,
		classify.Integer.String(), len(res.Buckets.Get(classify.Integer)),
		classify.Float.String(), len(res.Buckets.Get(classify.Float)),
		classify.String.String(), len(res.Buckets.Get(classify.String)),
	)

	// Write
	if err := ctx.Err(); err != nil {
		return res, err
	}
	setStage(opts.Progress, StageWrite)
	for _, c := range classify.Categories {
		bucket := res.Buckets.Get(c)
		if len(bucket) == 0 {
			continue
		}
		path := sink.OutputPath(opts.OutputDir, opts.Prefix, c)
		if err := opts.Writer.Write(bucket, path, opts.Append); err != nil {
			werr := &sink.WriteError{Category: c, Path: path, Err: err}
			log.Warn("output skipped", "category", c.String(), "path", path, "error", err)
			res.WriteErrors = append(res.WriteErrors, werr)
			continue
		}
		log.Debug("output written", "category", c.String(), "path", path, "lines", len(bucket), "append", opts.Append)
		res.Written = append(res.Written, Output{Category: c, Path: path, Lines: len(bucket)})
	}

	// Statistics
	if opts.Stats != config.StatsNone {
		setStage(opts.Progress, StageStats)
		all, err := stats.SummarizeAll(res.Buckets, opts.Stats == config.StatsFull)
		if err != nil {
			return res, fmt.Errorf("failed to compute statistics: %w", err)
		}
		res.Stats = all
	}

	setStage(opts.Progress, StageDone)
	log.Debug("run finished", "duration", time.Since(start), "files", len(res.Written), "partial", res.Partial())
	return res, nil
}

func setStage(p Progress, s Stage) {
	if p != nil {
		p.SetStage(s)
	}
}
