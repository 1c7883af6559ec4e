package forensic

import "sync"

// Ledger is the in-memory, append-only collection of evidence records for
// the active case session. Insertion order is preserved and defines the
// canonical evidence numbering used in reports.
//
// Invariant: every record in the ledger has a corresponding stored file and
// digest file on disk at the moment of insertion. The service enforces this
// by appending only after all persistence steps succeed.
type Ledger struct {
	mu      sync.Mutex
	records []*EvidenceRecord
}

func NewLedger() *Ledger { return &Ledger{} }

// Append adds a record to the ledger. Records are never removed.
func (l *Ledger) Append(r *EvidenceRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

// Records returns the records in insertion order. The returned slice is a
// copy; consumers must not mutate the records themselves.
func (l *Ledger) Records() []*EvidenceRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*EvidenceRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
