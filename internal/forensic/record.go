package forensic

import (
	"fmt"
	"time"
)

// CaseNumber is a normalized case identifier: digits only, left-padded with
// zeros to a fixed width. It is created once at session start and never
// changes for the lifetime of the session.
type CaseNumber string

// caseNumberWidth is the fixed width of a normalized case number.
const caseNumberWidth = 3

// NewCaseNumber normalizes a raw case number string.
// "5" and "005" normalize to the same CaseNumber.
func NewCaseNumber(raw string) (CaseNumber, error) {
	if raw == "" {
		return "", fmt.Errorf("case number is empty")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("case number must be numeric: %q", raw)
		}
	}
	if len(raw) < caseNumberWidth {
		return CaseNumber(fmt.Sprintf("%0*s", caseNumberWidth, raw)), nil
	}
	return CaseNumber(raw), nil
}

func (n CaseNumber) String() string { return string(n) }

// CaseInfo holds the intake metadata collected when a case is opened.
type CaseInfo struct {
	Number       CaseNumber
	Investigator string
	Victim       string
	Suspect      string
	CrimeType    string
	OpenedAt     time.Time
}

// Category is the coarse media classification derived from a file extension.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryDocument Category = "document"
	CategoryArchive  Category = "archive"
	CategoryUnknown  Category = "unknown"
)

// FileDescriptor describes a file's filesystem metadata at classification time.
// It is derived purely from stat data and the extension table and is never
// mutated after creation.
type FileDescriptor struct {
	Filename  string
	Size      int64
	SizeMiB   float64
	Created   time.Time
	Modified  time.Time
	MIMEType  string
	Category  Category
	Extension string
}

// EvidenceRecord is the durable, immutable description of one successfully
// acquired and hashed file. Records are exclusively owned by the Ledger for
// the duration of a case session; reporting and upload hold references only.
type EvidenceRecord struct {
	ID               string
	CaseNumber       CaseNumber
	OriginalPath     string
	StoredPath       string
	DigestPath       string
	StoredFilename   string
	OriginalFilename string
	SHA256           string
	Descriptor       FileDescriptor
	ProcessedAt      time.Time
}
