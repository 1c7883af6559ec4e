package testutil

import (
	"fmt"
	"sync"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

// MemoryAuditLog records audit entries in memory for assertions.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []string
	failing bool
}

func NewMemoryAuditLog() *MemoryAuditLog { return &MemoryAuditLog{} }

// Fail makes all subsequent appends return an error, simulating an
// unwritable log resource.
func (l *MemoryAuditLog) Fail() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failing = true
}

func (l *MemoryAuditLog) Append(message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failing {
		return fmt.Errorf("audit log unavailable")
	}
	l.entries = append(l.entries, message)
	return nil
}

func (l *MemoryAuditLog) Appendf(format string, args ...any) error {
	return l.Append(fmt.Sprintf(format, args...))
}

// Entries returns a copy of the recorded entries in append order.
func (l *MemoryAuditLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *MemoryAuditLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

var _ forensic.AuditLog = (*MemoryAuditLog)(nil)
