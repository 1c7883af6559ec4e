package forensic

import (
	"fmt"
	"os"
)

// VerificationStatus is the outcome of re-checking one evidence record
// against the store.
type VerificationStatus string

const (
	// StatusVerified means the stored copy re-hashes to the recorded digest
	// and the digest file agrees.
	StatusVerified VerificationStatus = "verified"
	// StatusTampered means the stored copy exists but its current digest
	// differs from the recorded one.
	StatusTampered VerificationStatus = "tampered"
	// StatusMissing means the stored copy or its digest file is gone.
	StatusMissing VerificationStatus = "missing"
)

// VerificationResult reports the integrity of one evidence record.
type VerificationResult struct {
	Record         *EvidenceRecord
	Status         VerificationStatus
	CurrentDigest  string
	RecordedDigest string
	Err            error
}

// Verify re-hashes every stored copy in the ledger and compares the result
// against both the ledger record and the on-disk digest file. A mismatch
// surfaces as StatusTampered; the store is never modified.
func (s *CaseService) Verify() ([]*VerificationResult, error) {
	records := s.ledger.Records()
	results := make([]*VerificationResult, 0, len(records))
	tampered := 0

	for _, r := range records {
		result := s.verifyRecord(r)
		if result.Status != StatusVerified {
			tampered++
		}
		results = append(results, result)
	}

	if err := s.audit.Appendf("Integrity verification: %d records checked, %d failed",
		len(results), tampered); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *CaseService) verifyRecord(r *EvidenceRecord) *VerificationResult {
	result := &VerificationResult{Record: r, RecordedDigest: r.SHA256}

	f, err := os.Open(r.StoredPath)
	if err != nil {
		result.Status = StatusMissing
		result.Err = fmt.Errorf("opening stored copy: %w", err)
		return result
	}
	defer f.Close()

	current, err := s.digester.Digest(f)
	if err != nil {
		result.Status = StatusMissing
		result.Err = fmt.Errorf("hashing stored copy: %w", err)
		return result
	}
	result.CurrentDigest = current

	fileDigest, err := s.store.ReadDigestFile(r.DigestPath)
	if err != nil {
		result.Status = StatusMissing
		result.Err = fmt.Errorf("reading digest file: %w", err)
		return result
	}

	if current != r.SHA256 || fileDigest != r.SHA256 {
		result.Status = StatusTampered
		return result
	}
	result.Status = StatusVerified
	return result
}
