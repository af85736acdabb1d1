package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pthm/lineclass/internal/config"
	"github.com/pthm/lineclass/internal/input"
	"github.com/pthm/lineclass/internal/pipeline"
	"github.com/pthm/lineclass/internal/reporter"
	"github.com/pthm/lineclass/internal/sink"
	"github.com/pthm/lineclass/internal/ui"
	"github.com/spf13/cobra"
)

// errPartial is returned when result files were produced but some inputs or
// outputs failed
var errPartial = errors.New("completed with errors")

// RootCmd is the lineclass command run by main
var RootCmd = NewRootCmd()

type rootOptions struct {
	outputDir  string
	prefix     string
	appendMode bool
	shortStats bool
	fullStats  bool
	format     string
	configPath string
	logLevel   string
	verbose    bool
}

// NewRootCmd builds the lineclass command with its own flag set
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "lineclass [flags] <file>...",
		Short: "Split lines of text files into integers, floats and strings",
		Long: `lineclass reads lines from the given files, classifies every non-blank
line as an integer, a floating-point number or a string, and writes each
category to its own file: integers.txt, floats.txt and strings.txt.

Only categories that received lines produce a file. Use "-" to read
standard input.

Examples:
  lineclass in1.txt in2.txt
  lineclass -o out -p run_ -a in.txt
  lineclass -f --format json in.txt`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, opts, args)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.outputDir, "output", "o", ".", "Directory for result files")
	flags.StringVarP(&opts.prefix, "prefix", "p", "", "Prefix for result file names")
	flags.BoolVarP(&opts.appendMode, "append", "a", false, "Append to existing result files")
	flags.BoolVarP(&opts.shortStats, "short-stats", "s", false, "Print line counts per category")
	flags.BoolVarP(&opts.fullStats, "full-stats", "f", false, "Print full statistics per category")
	flags.StringVar(&opts.format, "format", "terminal", "Statistics format (terminal, json, yaml)")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default "+config.DefaultFile+" if present)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print created files")

	root.AddCommand(newVersionCmd())
	return root
}

// resolveConfig loads the config file and applies explicitly set flags over it
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("prefix") {
		cfg.Prefix = opts.prefix
	}
	if flags.Changed("append") {
		cfg.Append = opts.appendMode
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	// Full statistics supersede short ones.
	switch {
	case opts.fullStats:
		cfg.Stats = config.StatsFull
	case opts.shortStats:
		cfg.Stats = config.StatsShort
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runClassify(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	logger := setupLogger(cfg.LogLevel, errOut)
	u := ui.New(out, errOut, cfg.Format)

	logger.Info("run started", "inputs", len(args), "output", cfg.OutputDir, "prefix", cfg.Prefix, "append", cfg.Append, "stats", cfg.Stats)

	progress := u.StartProgress()
	res, runErr := pipeline.Run(cmd.Context(), pipeline.Options{
		Inputs:    args,
		OutputDir: cfg.OutputDir,
		Prefix:    cfg.Prefix,
		Append:    cfg.Append,
		Stats:     cfg.Stats,
		Reader:    input.New(cmd.InOrStdin()),
		Writer: sink.New(sink.Options{
			PermFile: cfg.Sink.PermFile,
			PermDir:  cfg.Sink.PermDir,
			BufSize:  cfg.Sink.BufSize,
		}),
		Logger:   logger,
		Progress: progress,
	})
	progress.Done(runErr)

	if res == nil {
		return runErr
	}

	styles := u.ErrStyles
	for _, err := range res.ReadErrors {
		printProblem(errOut, styles.Warning, styles.IconWarning, err)
	}
	for _, err := range res.WriteErrors {
		printProblem(errOut, styles.Error, styles.IconError, err)
	}
	if opts.verbose {
		printWritten(u.InfoWriter(), res)
	}

	if runErr != nil {
		return runErr
	}

	if cfg.Stats != config.StatsNone {
		rep, err := reporter.New(cfg.Format, out, u)
		if err != nil {
			return err
		}
		if err := rep.Report(res.Stats); err != nil {
			return fmt.Errorf("failed to report statistics: %w", err)
		}
	}

	if res.Partial() {
		n := len(res.ReadErrors) + len(res.WriteErrors)
		return fmt.Errorf("%w: %d error(s)", errPartial, n)
	}
	logger.Info("run finished", "lines", res.Lines, "files", len(res.Written))
	return nil
}

func printProblem(w io.Writer, style lipgloss.Style, icon string, err error) {
	fmt.Fprintln(w, style.Render(fmt.Sprintf("%s %v", icon, err)))
}

func printWritten(w io.Writer, res *pipeline.Result) {
	if len(res.Written) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No lines classified, no files written")
		return
	}
	for _, o := range res.Written {
		path := o.Path
		if abs, err := filepath.Abs(o.Path); err == nil {
			path = abs
		}
		color.New(color.FgGreen).Fprintf(w, "Created file: %s", path)
		fmt.Fprintf(w, " (%d lines)\n", o.Lines)
	}
}
