package forensic

import (
	"fmt"
	"os"
	"path/filepath"
)

// Catalog is the durable mirror of the ledger. Records inserted here survive
// the session so later invocations can list, verify, report and upload
// against the same case.
type Catalog interface {
	InsertEvidence(record *EvidenceRecord) error
}

// CaseService orchestrates the acquire → hash → record → log pipeline for a
// single case session. It owns the case number and the ledger and drives the
// evidence store, digest engine, audit log and catalog in a fixed order for
// each file.
type CaseService struct {
	caseNumber CaseNumber
	store      EvidenceStore
	digester   Digester
	audit      AuditLog
	catalog    Catalog
	ledger     *Ledger
	logger     Logger
	clock      Clock
	idgen      IDGenerator
}

// NewCaseService creates a CaseService with the provided dependencies.
// The ledger may be pre-seeded with records loaded from the catalog when the
// session continues an existing case.
func NewCaseService(caseNumber CaseNumber, store EvidenceStore, digester Digester, audit AuditLog, catalog Catalog, ledger *Ledger, logger Logger, clock Clock, idgen IDGenerator) *CaseService {
	return &CaseService{
		caseNumber: caseNumber,
		store:      store,
		digester:   digester,
		audit:      audit,
		catalog:    catalog,
		ledger:     ledger,
		logger:     logger,
		clock:      clock,
		idgen:      idgen,
	}
}

// CaseNumber returns the normalized case number this session operates on.
func (s *CaseService) CaseNumber() CaseNumber { return s.caseNumber }

// Ledger returns the session ledger. Reporting and upload consume it
// read-only via Records().
func (s *CaseService) Ledger() *Ledger { return s.ledger }

// ProcessEvidenceFile runs the full pipeline for one source file:
// acquire into the store, digest the stored copy, persist the digest file,
// record in the catalog, append an audit entry, and append to the ledger.
//
// On any failure the ledger is left untouched and a *ProcessingError is
// returned. A failure after the copy already exists on disk quarantines the
// stored copy so the evidence directory never holds a file without a
// matching ledger entry.
func (s *CaseService) ProcessEvidenceFile(sourcePath string) (*EvidenceRecord, error) {
	storedPath, desc, err := s.store.Acquire(sourcePath)
	if err != nil {
		s.auditError("Failed to process %s: %v", sourcePath, err)
		s.logger.Error("acquisition failed", "path", sourcePath, "error", err)
		if _, ok := err.(*ProcessingError); ok {
			return nil, err
		}
		return nil, &ProcessingError{Kind: KindCopyFailed, Path: sourcePath, Err: err}
	}
	if err := s.audit.Appendf("File copied: %s -> %s", sourcePath, storedPath); err != nil {
		s.logger.Warn("audit append failed", "error", err)
	}

	record, err := s.hashAndRecord(sourcePath, storedPath, desc)
	if err != nil {
		// The copy exists but could not be promoted. Quarantine it so a
		// stored file without a ledger entry never sits in the evidence
		// directory.
		if qerr := s.store.Quarantine(storedPath); qerr != nil {
			s.logger.Error("quarantine failed", "path", storedPath, "error", qerr)
		}
		s.auditError("Failed to process %s: %v", sourcePath, err)
		s.logger.Error("hash or persist failed", "path", sourcePath, "error", err)
		return nil, &ProcessingError{Kind: KindHashOrPersistFailed, Path: sourcePath, Err: err}
	}

	s.ledger.Append(record)
	s.logger.Info("evidence processed", "file", record.StoredFilename, "sha256", record.SHA256)
	return record, nil
}

// hashAndRecord digests the stored copy, writes the digest file, inserts the
// catalog row and builds the evidence record. The ledger is not touched; the
// caller appends only when every step here has succeeded.
func (s *CaseService) hashAndRecord(sourcePath, storedPath string, desc *FileDescriptor) (*EvidenceRecord, error) {
	f, err := os.Open(storedPath)
	if err != nil {
		return nil, fmt.Errorf("opening stored copy: %w", err)
	}
	digest, err := s.digester.Digest(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("hashing stored copy: %w", err)
	}

	digestPath, err := s.store.WriteDigestFile(storedPath, digest)
	if err != nil {
		return nil, fmt.Errorf("writing digest file: %w", err)
	}

	record := &EvidenceRecord{
		ID:               s.idgen.New(),
		CaseNumber:       s.caseNumber,
		OriginalPath:     sourcePath,
		StoredPath:       storedPath,
		DigestPath:       digestPath,
		StoredFilename:   filepath.Base(storedPath),
		OriginalFilename: desc.Filename,
		SHA256:           digest,
		Descriptor:       *desc,
		ProcessedAt:      s.clock.Now(),
	}

	if err := s.catalog.InsertEvidence(record); err != nil {
		return nil, fmt.Errorf("recording evidence in catalog: %w", err)
	}

	if err := s.audit.Appendf("Hash calculated for %s: %s", record.StoredFilename, digest); err != nil {
		return nil, fmt.Errorf("appending audit entry: %w", err)
	}

	return record, nil
}

// BatchResult is the outcome of processing a set of source paths.
type BatchResult struct {
	Records  []*EvidenceRecord
	Failures []BatchFailure
}

// BatchFailure describes one source path that could not be processed.
type BatchFailure struct {
	Path string
	Kind ErrorKind
	Err  error
}

// Failed returns the number of paths that could not be processed.
func (r *BatchResult) Failed() int { return len(r.Failures) }

// ProcessEvidenceFiles applies ProcessEvidenceFile independently to each
// path. One bad file does not abort the batch; failures are collected for
// the caller to surface.
func (s *CaseService) ProcessEvidenceFiles(sourcePaths []string) *BatchResult {
	result := &BatchResult{}
	for _, path := range sourcePaths {
		record, err := s.ProcessEvidenceFile(path)
		if err != nil {
			result.Failures = append(result.Failures, BatchFailure{
				Path: path,
				Kind: KindOf(err),
				Err:  err,
			})
			continue
		}
		result.Records = append(result.Records, record)
	}
	if err := s.audit.Appendf("Evidence collection completed. Total files: %d, failures: %d",
		len(result.Records), len(result.Failures)); err != nil {
		s.logger.Warn("audit append failed", "error", err)
	}
	return result
}

// auditError writes an ERROR-prefixed audit entry, matching the log format
// used for failed acquisition attempts.
func (s *CaseService) auditError(format string, args ...any) {
	if err := s.audit.Appendf("ERROR: "+format, args...); err != nil {
		s.logger.Warn("audit append failed", "error", err)
	}
}
