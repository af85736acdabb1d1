package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single line read by the scanner
const maxLineSize = 1024 * 1024

var errIsDir = errors.New("is a directory")

// Stdin is the path that selects standard input
const Stdin = "-"

// FileError records an input file that could not be read
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Reader reads raw lines from input files
type Reader struct {
	stdin     io.Reader
	stdinUsed bool
}

// New creates a Reader. A nil stdin selects os.Stdin.
func New(stdin io.Reader) *Reader {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Reader{stdin: stdin}
}

// ReadFile returns the lines of one input. Standard input is consumed by the
// first "-" only; later ones yield no lines.
func (r *Reader) ReadFile(path string) ([]string, error) {
	var (
		lines []string
		err   error
	)
	if path == Stdin {
		if r.stdinUsed {
			return nil, nil
		}
		r.stdinUsed = true
		lines, err = scan(r.stdin)
	} else {
		lines, err = readFile(path)
	}
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return lines, nil
}

// FileFunc is called once per input after it has been read, with the number
// of lines it contributed or the error that made it contribute none
type FileFunc func(path string, lines int, err error)

// ReadLines reads every path in order and concatenates their lines.
// A file that fails contributes no lines and a *FileError. fn may be nil.
// A cancelled ctx stops reading and is returned as the last value.
func (r *Reader) ReadLines(ctx context.Context, paths []string, fn FileFunc) ([]string, []error, error) {
	var (
		lines []string
		errs  []error
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		fileLines, err := r.ReadFile(path)
		if fn != nil {
			fn(path, len(fileLines), err)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, fileLines...)
	}
	return lines, errs, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errIsDir
	}
	return scan(f)
}

func scan(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
