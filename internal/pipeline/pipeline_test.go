package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pthm/lineclass/internal/classify"
	"github.com/pthm/lineclass/internal/config"
	"github.com/pthm/lineclass/internal/input"
	"github.com/pthm/lineclass/internal/sink"
	"github.com/pthm/lineclass/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProgress struct {
	stages []Stage
	files  []string
	count  int
}

func (p *recordingProgress) SetStage(s Stage)     { p.stages = append(p.stages, s) }
func (p *recordingProgress) SetFileCount(n int)   { p.count = n }
func (p *recordingProgress) FileDone(path string) { p.files = append(p.files, path) }

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in1 := writeInput(t, dir, "in1.txt", "42\n-17\n3.14\nhello\n\n")
	in2 := writeInput(t, dir, "in2.txt", "2.5e10\n5.\n")
	out := filepath.Join(dir, "out")
	progress := &recordingProgress{}

	res, err := Run(context.Background(), Options{
		Inputs:    []string{in1, in2},
		OutputDir: out,
		Prefix:    "run_",
		Stats:     config.StatsFull,
		Logger:    quietLogger(),
		Progress:  progress,
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.False(t, res.Partial())
	assert.Equal(t, 6, res.Lines)
	assert.Equal(t, "42\n-17\n", readOutput(t, filepath.Join(out, "run_integers.txt")))
	assert.Equal(t, "3.14\n2.5e10\n", readOutput(t, filepath.Join(out, "run_floats.txt")))
	assert.Equal(t, "hello\n5.\n", readOutput(t, filepath.Join(out, "run_strings.txt")))

	require.Len(t, res.Written, 3)
	assert.Equal(t, classify.Integer, res.Written[0].Category)
	assert.Equal(t, 2, res.Written[0].Lines)

	require.Len(t, res.Stats, 3)
	assert.Equal(t, int64(25), res.Stats[0].IntSum())
	assert.Equal(t, 2, res.Stats[2].MinLength)

	assert.Equal(t, []Stage{StageRead, StageClassify, StageWrite, StageStats, StageDone}, progress.stages)
	assert.Equal(t, 2, progress.count)
	assert.Equal(t, []string{in1, in2}, progress.files)
}

func TestRunSkipsEmptyBuckets(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "in.txt", "1\n2\n")
	out := filepath.Join(dir, "out")

	res, err := Run(context.Background(), Options{
		Inputs:    []string{in},
		OutputDir: out,
		Prefix:    "run_",
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	require.Len(t, res.Written, 1)
	assert.Nil(t, res.Stats)
	_, err = os.Stat(filepath.Join(out, "run_strings.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "run_floats.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunAppend(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "in.txt", "word\n")
	opts := Options{Inputs: []string{in}, OutputDir: dir, Logger: quietLogger()}

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Append = true
	_, err = Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "word\nword\n", readOutput(t, filepath.Join(dir, "strings.txt")))

	opts.Append = false
	_, err = Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "word\n", readOutput(t, filepath.Join(dir, "strings.txt")))
}

func TestRunNoInput(t *testing.T) {
	_, err := Run(context.Background(), Options{Logger: quietLogger()})
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestRunEmptyInput(t *testing.T) {
	dir := t.TempDir()
	empty := writeInput(t, dir, "empty.txt", "")
	missing := filepath.Join(dir, "missing.txt")

	res, err := Run(context.Background(), Options{
		Inputs:    []string{empty, missing},
		OutputDir: dir,
		Logger:    quietLogger(),
	})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunBlankOnlyInputIsNotEmpty(t *testing.T) {
	dir := t.TempDir()
	blank := writeInput(t, dir, "blank.txt", "\n   \n")

	res, err := Run(context.Background(), Options{
		Inputs:    []string{blank},
		OutputDir: dir,
		Stats:     config.StatsShort,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	assert.Zero(t, res.Lines)
	assert.Empty(t, res.Written)
	assert.Empty(t, res.Stats)
}

func TestRunContinuesAfterReadError(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "in.txt", "1.5\n")
	missing := filepath.Join(dir, "missing.txt")

	res, err := Run(context.Background(), Options{
		Inputs:    []string{missing, in},
		OutputDir: dir,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	assert.True(t, res.Partial())
	require.Len(t, res.ReadErrors, 1)
	var ferr *input.FileError
	require.True(t, errors.As(res.ReadErrors[0], &ferr))
	assert.Equal(t, missing, ferr.Path)
	assert.Equal(t, "1.5\n", readOutput(t, filepath.Join(dir, "floats.txt")))
}

func TestRunContinuesAfterWriteError(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "in.txt", "1\nabc\n")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))
	// A directory in place of the integers file makes that write fail.
	require.NoError(t, os.Mkdir(filepath.Join(out, "integers.txt"), 0o755))

	res, err := Run(context.Background(), Options{
		Inputs:    []string{in},
		OutputDir: out,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	require.Len(t, res.WriteErrors, 1)
	var werr *sink.WriteError
	require.True(t, errors.As(res.WriteErrors[0], &werr))
	assert.Equal(t, classify.Integer, werr.Category)
	assert.Equal(t, "abc\n", readOutput(t, filepath.Join(out, "strings.txt")))
	assert.Error(t, res.Err())
}

func TestRunStatsParseFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "in.txt", "1e999\n")

	res, err := Run(context.Background(), Options{
		Inputs:    []string{in},
		OutputDir: dir,
		Stats:     config.StatsFull,
		Logger:    quietLogger(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrNumericParse)
	require.NotNil(t, res)
	assert.Len(t, res.Written, 1, "files are written before statistics")

	res, err = Run(context.Background(), Options{
		Inputs:    []string{in},
		OutputDir: dir,
		Stats:     config.StatsShort,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats[0].Count)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Inputs: []string{"whatever"}, Logger: quietLogger()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunUnwritableOutputDir(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	in := writeInput(t, dir, "in.txt", "1\n2.0\nx\n")
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o500))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	res, err := Run(context.Background(), Options{
		Inputs:    []string{in},
		OutputDir: filepath.Join(locked, "out"),
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	assert.Len(t, res.WriteErrors, 3)
	assert.Empty(t, res.Written)
}
