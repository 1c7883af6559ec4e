// Package app is the application layer between the CLI and the case service.
// It constructs all dependencies from config, exposes high-level operations
// on raw string arguments, and manages resource lifecycles on Close.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/audit"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/catalog"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/config"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/export"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/fs"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/layout"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/report"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/store"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/upload"
)

// App holds the per-invocation resources shared by all commands: the config,
// the case catalog and the operational logger.
type App struct {
	cfg     *config.Config
	catalog *catalog.SQLiteCatalog
	logger  forensic.Logger
	logFile *os.File
}

// NewApp creates an App from the given config. operation identifies the CLI
// command being run (e.g. "OpenCase", "AddEvidence") and tags every log line
// of this invocation. The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening case catalog: %w", err)
	}

	return &App{
		cfg:     cfg,
		catalog: cat,
		logger:  &slogAdapter{l: slogger},
		logFile: logFile,
	}, nil
}

// Close releases the catalog and log file.
func (a *App) Close() error {
	err := a.catalog.Close()
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}

// Intake holds the operator-supplied metadata for a new case.
type Intake struct {
	Investigator string
	Victim       string
	Suspect      string
	CrimeType    string
}

// OpenCase normalizes the raw case number, provisions the case directory
// layout, registers the case in the catalog, and starts the audit trail.
func (a *App) OpenCase(rawNumber string, intake Intake) (*forensic.CaseInfo, error) {
	number, err := forensic.NewCaseNumber(rawNumber)
	if err != nil {
		return nil, err
	}

	existing, err := a.catalog.GetCase(number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("case %s already exists", number)
	}

	l := layout.NewCaseLayout(a.cfg.BaseDir, number)
	if err := l.Ensure(); err != nil {
		return nil, err
	}

	info := &forensic.CaseInfo{
		Number:       number,
		Investigator: intake.Investigator,
		Victim:       intake.Victim,
		Suspect:      intake.Suspect,
		CrimeType:    intake.CrimeType,
		OpenedAt:     time.Now(),
	}
	if err := a.catalog.CreateCase(info); err != nil {
		return nil, err
	}

	log, err := audit.NewFileAuditLog(l.LogFile(), forensic.RealClock{})
	if err != nil {
		return nil, fmt.Errorf("starting audit trail: %w", err)
	}
	entries := []string{
		fmt.Sprintf("=== CASE %s STARTED ===", number),
		"Investigator: " + info.Investigator,
		"Victim: " + info.Victim,
		"Suspect: " + info.Suspect,
		"Crime Type: " + info.CrimeType,
		"Folders created: " + l.CaseDir(),
	}
	for _, e := range entries {
		if err := log.Append(e); err != nil {
			return nil, err
		}
	}

	a.logger.Info("case opened", "case", number.String(), "dir", l.CaseDir())
	return info, nil
}

// ListCases returns all cases in the catalog.
func (a *App) ListCases() ([]*forensic.CaseInfo, error) {
	return a.catalog.ListCases()
}

// Session is a case-scoped view of the app: the wired service plus the
// collaborators that consume its ledger.
type Session struct {
	app    *App
	info   *forensic.CaseInfo
	layout *layout.CaseLayout
	audit  *audit.FileAuditLog
	svc    *forensic.CaseService
}

// Session opens a session against an existing case. The ledger is seeded
// with the case's records from the catalog so list, verify, report and
// upload see evidence processed in earlier invocations.
func (a *App) Session(rawNumber string) (*Session, error) {
	number, err := forensic.NewCaseNumber(rawNumber)
	if err != nil {
		return nil, err
	}

	info, err := a.catalog.GetCase(number)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("case %s does not exist (run 'flab case open' first)", number)
	}

	l := layout.NewCaseLayout(a.cfg.BaseDir, number)
	if !l.Exists() {
		return nil, fmt.Errorf("case directory missing: %s", l.CaseDir())
	}

	log, err := audit.NewFileAuditLog(l.LogFile(), forensic.RealClock{})
	if err != nil {
		return nil, fmt.Errorf("opening audit trail: %w", err)
	}

	ledger := forensic.NewLedger()
	records, err := a.catalog.ListEvidence(number)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		ledger.Append(r)
	}

	clock := forensic.RealClock{}
	classifier := fs.NewOSClassifier()
	evStore := store.NewFilesystemStore(l.EvidenceDir(), l.HashesDir(), l.QuarantineDir(), classifier, clock)
	svc := forensic.NewCaseService(number, evStore, forensic.NewSHA256Digester(), log,
		a.catalog, ledger, a.logger, clock, forensic.UUIDGenerator{})

	return &Session{app: a, info: info, layout: l, audit: log, svc: svc}, nil
}

// Info returns the case intake metadata.
func (s *Session) Info() *forensic.CaseInfo { return s.info }

// AddEvidence processes the given source paths through the acquisition
// pipeline, continuing past individual failures.
func (s *Session) AddEvidence(paths []string) *forensic.BatchResult {
	return s.svc.ProcessEvidenceFiles(paths)
}

// ListEvidence returns the case's evidence records in canonical order.
func (s *Session) ListEvidence() []*forensic.EvidenceRecord {
	return s.svc.Ledger().Records()
}

// Verify re-hashes every stored copy against its recorded digest.
func (s *Session) Verify() ([]*forensic.VerificationResult, error) {
	return s.svc.Verify()
}

// Summary aggregates case statistics.
func (s *Session) Summary() (*forensic.CaseSummary, error) {
	return s.svc.Summary()
}

// GenerateReport renders the HTML report into the case reports directory
// and returns its path.
func (s *Session) GenerateReport() (string, error) {
	renderer, err := report.NewRenderer(forensic.RealClock{})
	if err != nil {
		return "", err
	}

	summary, err := s.svc.Summary()
	if err != nil {
		return "", err
	}

	path, err := renderer.Generate(s.layout.ReportsDir(), s.info, summary, s.svc.Ledger().Records())
	if err != nil {
		return "", err
	}

	if err := s.audit.Appendf("Professional forensic report generated: %s", filepath.Base(path)); err != nil {
		return "", err
	}
	return path, nil
}

// Upload pushes every evidence file and digest file to the configured S3
// bucket. The upload outcome is audited either way.
func (s *Session) Upload(ctx context.Context, uploadCfg config.UploadConfig) (*upload.Result, error) {
	uploader, err := upload.NewS3Uploader(ctx, uploadCfg, s.app.logger)
	if err != nil {
		return nil, err
	}

	result, err := uploader.UploadCase(ctx, s.info.Number, s.svc.Ledger().Records())
	if err != nil {
		if auditErr := s.audit.Appendf("S3 upload failed: %v", err); auditErr != nil {
			s.app.logger.Warn("audit write failed", "error", auditErr)
		}
		return nil, err
	}

	if err := s.auditUploadOutcome(result); err != nil {
		return result, err
	}
	return result, nil
}

// auditUploadOutcome records the upload result in the case audit trail.
func (s *Session) auditUploadOutcome(result *upload.Result) error {
	if len(result.Failures) > 0 {
		return s.audit.Appendf("S3 upload incomplete: %d uploaded, %d failed", result.Uploaded, len(result.Failures))
	}
	return s.audit.Appendf("Files uploaded to S3: %d files", result.Uploaded)
}

// Seal packs and encrypts the whole case directory for custody transfer and
// returns the sealed archive path.
func (s *Session) Seal(sealer *export.Sealer) (string, error) {
	outPath := filepath.Join(s.app.cfg.BaseDir, fmt.Sprintf("case_%s.tar.age", s.info.Number))
	if err := sealer.SealCase(s.layout.CaseDir(), outPath); err != nil {
		return "", err
	}

	if err := s.audit.Appendf("Case sealed for transfer: %s", filepath.Base(outPath)); err != nil {
		return "", err
	}
	return outPath, nil
}
