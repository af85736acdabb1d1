package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm/lineclass/internal/classify"
)

// Options configures a Writer. Zero values select defaults.
type Options struct {
	PermFile os.FileMode
	PermDir  os.FileMode
	BufSize  int
}

// Writer persists buckets as newline-terminated text files
type Writer struct {
	permF   os.FileMode
	permD   os.FileMode
	bufSize int
}

// New creates a Writer
func New(opts Options) *Writer {
	w := &Writer{permF: opts.PermFile, permD: opts.PermDir, bufSize: opts.BufSize}
	if w.permF == 0 {
		w.permF = 0o644
	}
	if w.permD == 0 {
		w.permD = 0o755
	}
	if w.bufSize <= 0 {
		w.bufSize = 64 * 1024
	}
	return w
}

// WriteError records a failed write for one category
type WriteError struct {
	Category classify.Category
	Path     string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s to %s: %v", e.Category, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// OutputPath returns <dir>/<prefix><category>.txt
func OutputPath(dir, prefix string, c classify.Category) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, prefix+c.String()+".txt")
}

// Write stores bucket at path, one line per entry. Existing content is kept
// when appending and discarded otherwise. An empty bucket touches nothing.
func (w *Writer) Write(bucket classify.Bucket, path string, appendMode bool) (err error) {
	if len(bucket) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), w.permD); err != nil {
		return err
	}

	flag := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, w.permF)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriterSize(f, w.bufSize)
	for _, line := range bucket {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
