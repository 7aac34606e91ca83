package resultlog

import (
	"os"

	"github.com/pkg/errors"
)

// Logger appends result lines to a text file. The file is opened and closed on every write,
// so no handle is held between lines.
type Logger struct {
	path string
}

func New(path string) *Logger {
	return &Logger{path: path}
}

func (l *Logger) Path() string {
	return l.path
}

// Appends text followed by a newline to the log file, creating it if needed
func (l *Logger) WriteLine(text string) (err error) {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open result log %s", l.path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close result log %s", l.path)
		}
	}()

	if _, err = f.WriteString(text + "\n"); err != nil {
		return errors.Wrapf(err, "write result log %s", l.path)
	}
	return nil
}

// Removes the log file. A missing file is not an error.
func (l *Logger) Reset() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove result log %s", l.path)
	}
	return nil
}
