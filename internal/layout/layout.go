// Package layout provisions and resolves the on-disk directory structure for
// a case. The layout is created once when a case is opened and is required
// to exist before any acquisition runs.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

// CaseLayout resolves the per-case directory structure:
//
//	<base>/case_<NNN>/
//	  evidence/    (stored copies)
//	  hashes/      (digest files)
//	  logs/        (case_log.txt, the audit trail)
//	  quarantine/  (stored copies whose hash/persist step failed)
//	  reports/     (generated HTML reports)
type CaseLayout struct {
	caseNumber forensic.CaseNumber
	baseDir    string
}

// NewCaseLayout creates a layout rooted at baseDir for the given case.
// It does not touch the filesystem; call Ensure to provision directories.
func NewCaseLayout(baseDir string, caseNumber forensic.CaseNumber) *CaseLayout {
	return &CaseLayout{caseNumber: caseNumber, baseDir: baseDir}
}

// CaseDir returns the root directory for this case.
func (l *CaseLayout) CaseDir() string {
	return filepath.Join(l.baseDir, "case_"+l.caseNumber.String())
}

// EvidenceDir returns the directory holding stored evidence copies.
func (l *CaseLayout) EvidenceDir() string { return filepath.Join(l.CaseDir(), "evidence") }

// HashesDir returns the directory holding digest files.
func (l *CaseLayout) HashesDir() string { return filepath.Join(l.CaseDir(), "hashes") }

// LogsDir returns the directory holding the case audit log.
func (l *CaseLayout) LogsDir() string { return filepath.Join(l.CaseDir(), "logs") }

// QuarantineDir returns the directory holding orphaned stored copies.
func (l *CaseLayout) QuarantineDir() string { return filepath.Join(l.CaseDir(), "quarantine") }

// ReportsDir returns the directory holding generated reports.
func (l *CaseLayout) ReportsDir() string { return filepath.Join(l.CaseDir(), "reports") }

// LogFile returns the path of the case audit log.
func (l *CaseLayout) LogFile() string { return filepath.Join(l.LogsDir(), "case_log.txt") }

// Ensure creates the case directory structure. It is idempotent; existing
// directories are left untouched.
func (l *CaseLayout) Ensure() error {
	dirs := []string{
		l.EvidenceDir(),
		l.HashesDir(),
		l.LogsDir(),
		l.QuarantineDir(),
		l.ReportsDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating case directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists reports whether the case root directory has been provisioned.
func (l *CaseLayout) Exists() bool {
	info, err := os.Stat(l.CaseDir())
	return err == nil && info.IsDir()
}
