package forensic

// EvidenceStore copies source files into the case-scoped evidence directory
// and manages the digest files that accompany them.
//
// Acquire and WriteDigestFile are separate steps on purpose: the digest is
// computed over the stored copy after the copy completes, never over the
// original, so a later re-hash of the store verifies exactly what was written.
type EvidenceStore interface {
	// Acquire copies sourcePath into the evidence directory under a
	// collision-resistant, timestamp-prefixed name. The returned descriptor
	// reflects the original file; only content is re-verified from the copy.
	// Failures carry a ProcessingError kind: KindSourceNotFound,
	// KindClassificationFailed or KindCopyFailed. A failed copy leaves no
	// partial destination behind.
	Acquire(sourcePath string) (storedPath string, desc *FileDescriptor, err error)

	// WriteDigestFile persists hexDigest for a stored copy and returns the
	// digest file path. The on-disk format is a single line:
	// "{64 lower-case hex chars}  {absolute stored path}\n".
	WriteDigestFile(storedPath, hexDigest string) (digestPath string, err error)

	// ReadDigestFile returns the hex digest recorded for a stored copy.
	ReadDigestFile(digestPath string) (hexDigest string, err error)

	// Quarantine moves a stored copy out of the evidence directory after a
	// post-copy failure, so the evidence directory only ever holds files
	// with a matching ledger entry.
	Quarantine(storedPath string) error
}
