package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/testutil"
)

func TestFileAuditLog_Append(t *testing.T) {
	t.Run("writes bracketed timestamp lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "case_log.txt")
		clock := testutil.FixedClock()
		log, err := NewFileAuditLog(path, clock)
		if err != nil {
			t.Fatalf("NewFileAuditLog() error = %v", err)
		}

		if err := log.Append("Case opened"); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		clock.Advance(5 * time.Second)
		if err := log.Appendf("Evidence file copied: %s", "photo.jpg"); err != nil {
			t.Fatalf("Appendf() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading log: %v", err)
		}
		want := "[2024-01-15 10:30:00] Case opened\n" +
			"[2024-01-15 10:30:05] Evidence file copied: photo.jpg\n"
		if string(data) != want {
			t.Errorf("log content = %q, want %q", data, want)
		}
	})

	t.Run("appends across instances without truncating", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "case_log.txt")
		clock := testutil.FixedClock()

		first, err := NewFileAuditLog(path, clock)
		if err != nil {
			t.Fatalf("NewFileAuditLog() error = %v", err)
		}
		if err := first.Append("session one"); err != nil {
			t.Fatalf("Append() error = %v", err)
		}

		second, err := NewFileAuditLog(path, clock)
		if err != nil {
			t.Fatalf("NewFileAuditLog() error = %v", err)
		}
		if err := second.Append("session two"); err != nil {
			t.Fatalf("Append() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading log: %v", err)
		}
		want := "[2024-01-15 10:30:00] session one\n" +
			"[2024-01-15 10:30:00] session two\n"
		if string(data) != want {
			t.Errorf("log content = %q, want %q", data, want)
		}
	})
}

func TestNewFileAuditLog_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "case_log.txt")
	if _, err := NewFileAuditLog(path, testutil.FixedClock()); err == nil {
		t.Fatal("NewFileAuditLog() expected error for missing directory")
	}
}
