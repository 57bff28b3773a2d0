package runlog

import (
	"fmt"
	"os"
	"time"
)

// TimestampLayout is the timestamp format used by the batch job logs.
const TimestampLayout = "2006-01-02 15:04:05"

// Writer appends one line per job event to a fixed log file.
// Each batch job (purge, heartbeat, restock, remind) owns its log path.
type Writer struct {
	path string
}

// New creates a writer for the given log path. The file is created on
// first append.
func New(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the log file path.
func (w *Writer) Path() string {
	return w.path
}

// Append writes a single line to the log file.
func (w *Writer) Append(line string) error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open run log %s: %w", w.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write run log %s: %w", w.path, err)
	}
	return nil
}

// Appendf formats and writes a single line to the log file.
func (w *Writer) Appendf(format string, args ...interface{}) error {
	return w.Append(fmt.Sprintf(format, args...))
}

// Stamped prefixes a message with a "YYYY-MM-DD HH:MM:SS - " timestamp.
func Stamped(now time.Time, message string) string {
	return now.Format(TimestampLayout) + " - " + message
}
