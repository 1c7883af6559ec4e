package forensic

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a per-file pipeline failure. Every kind is recoverable
// at the caller level; a failed file never aborts a batch.
type ErrorKind string

const (
	// KindSourceNotFound means the source path did not resolve to an
	// existing file.
	KindSourceNotFound ErrorKind = "source_not_found"
	// KindClassificationFailed means file metadata could not be derived.
	KindClassificationFailed ErrorKind = "classification_failed"
	// KindCopyFailed means the byte copy into the evidence store failed.
	// No partial destination is ever promoted into the ledger.
	KindCopyFailed ErrorKind = "copy_failed"
	// KindHashOrPersistFailed means the digest computation, digest-file
	// write, or catalog insert failed after a successful copy. The stored
	// copy is quarantined.
	KindHashOrPersistFailed ErrorKind = "hash_or_persist_failed"
)

// ProcessingError is the result of a failed per-file pipeline run.
type ProcessingError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind of err, or the empty string if err is not a
// ProcessingError.
func KindOf(err error) ErrorKind {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
