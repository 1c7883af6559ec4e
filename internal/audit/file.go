// Package audit implements the append-only case audit log.
package audit

import (
	"fmt"
	"os"
	"sync"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

// timestampFormat is the audit entry timestamp layout.
const timestampFormat = "2006-01-02 15:04:05"

// FileAuditLog writes timestamped entries to a per-case log file. Each
// Append opens the file in append mode, writes one line and closes it again;
// no lock is held across calls. Entries are never rewritten or truncated.
//
// Line format: "[YYYY-MM-DD HH:MM:SS] message\n".
type FileAuditLog struct {
	mu    sync.Mutex
	path  string
	clock forensic.Clock
}

// NewFileAuditLog creates an audit log backed by the file at path. The file
// is created on first append; the containing directory must already exist.
// An unwritable log path is the one unrecoverable condition in the system,
// since no audit trail can exist without it, so it is probed here.
func NewFileAuditLog(path string, clock forensic.Clock) (*FileAuditLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	f.Close()
	return &FileAuditLog{path: path, clock: clock}, nil
}

// Path returns the audit log file path.
func (l *FileAuditLog) Path() string { return l.path }

// Append writes one timestamped entry. Writes are ordered by call order
// within the process.
func (l *FileAuditLog) Append(message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	ts := l.clock.Now().Format(timestampFormat)
	if _, err := fmt.Fprintf(f, "[%s] %s\n", ts, message); err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// Appendf formats and writes one timestamped entry.
func (l *FileAuditLog) Appendf(format string, args ...any) error {
	return l.Append(fmt.Sprintf(format, args...))
}

// Compile-time check that FileAuditLog implements forensic.AuditLog.
var _ forensic.AuditLog = (*FileAuditLog)(nil)
