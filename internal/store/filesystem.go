// Package store implements the filesystem evidence store.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

// storedNameFormat is the timestamp prefix for stored copies, second precision.
const storedNameFormat = "20060102_150405"

// digestFileExt is the extension of digest files in the hashes directory.
const digestFileExt = ".sha256"

// FilesystemStore copies evidence into a case-scoped directory layout:
//
//	evidence/    <timestamp>_<original name>   (stored copies)
//	hashes/      <stored name>.sha256          (digest files)
//	quarantine/  stored copies whose hash/persist step failed
type FilesystemStore struct {
	evidenceDir   string
	hashesDir     string
	quarantineDir string
	classifier    forensic.Classifier
	clock         forensic.Clock
}

// NewFilesystemStore creates a store over the given case directories.
// The directories must already exist and be writable; provisioning them is
// the layout package's job.
func NewFilesystemStore(evidenceDir, hashesDir, quarantineDir string, classifier forensic.Classifier, clock forensic.Clock) *FilesystemStore {
	return &FilesystemStore{
		evidenceDir:   evidenceDir,
		hashesDir:     hashesDir,
		quarantineDir: quarantineDir,
		classifier:    classifier,
		clock:         clock,
	}
}

// Acquire copies sourcePath into the evidence directory under a
// timestamp-prefixed name and returns the destination path together with the
// descriptor computed on the original file. Size and category reflect the
// source; content is re-verified from the copy by the caller.
func (s *FilesystemStore) Acquire(sourcePath string) (string, *forensic.FileDescriptor, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		if os.IsNotExist(err) {
			return "", nil, &forensic.ProcessingError{Kind: forensic.KindSourceNotFound, Path: sourcePath, Err: err}
		}
		return "", nil, &forensic.ProcessingError{Kind: forensic.KindSourceNotFound, Path: sourcePath, Err: fmt.Errorf("stat source: %w", err)}
	}

	desc, err := s.classifier.Classify(sourcePath)
	if err != nil {
		return "", nil, &forensic.ProcessingError{Kind: forensic.KindClassificationFailed, Path: sourcePath, Err: err}
	}

	destPath := s.destinationPath(desc.Filename)
	if err := s.copyFile(sourcePath, destPath, desc); err != nil {
		return "", nil, &forensic.ProcessingError{Kind: forensic.KindCopyFailed, Path: sourcePath, Err: err}
	}

	return destPath, desc, nil
}

// destinationPath builds a unique destination for a stored copy. The primary
// collision-avoidance mechanism is the second-precision timestamp prefix;
// when two files with the same original name arrive in the same second, a
// counter is inserted before the extension so no acquisition is ever
// silently dropped.
func (s *FilesystemStore) destinationPath(originalName string) string {
	ts := s.clock.Now().Format(storedNameFormat)
	dest := filepath.Join(s.evidenceDir, ts+"_"+originalName)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}

	ext := filepath.Ext(originalName)
	stem := strings.TrimSuffix(originalName, ext)
	for n := 2; ; n++ {
		dest = filepath.Join(s.evidenceDir, fmt.Sprintf("%s_%s_%d%s", ts, stem, n, ext))
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest
		}
	}
}

// copyFile copies src to dest via a temp file and atomic rename, then
// restores the source's modification time on the copy. A failed copy leaves
// nothing behind at dest.
func (s *FilesystemStore) copyFile(src, dest string, desc *forensic.FileDescriptor) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	tmpFile, err := os.CreateTemp(s.evidenceDir, ".acquire-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, in)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("copying content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if written != desc.Size {
		return fmt.Errorf("size mismatch: expected %d bytes, copied %d", desc.Size, written)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	success = true

	// Preserve basic filesystem timestamps on the copy. Failure here is not
	// fatal; the copy and its digest are what custody depends on.
	_ = os.Chtimes(dest, desc.Modified, desc.Modified)

	return nil
}

// WriteDigestFile persists hexDigest for a stored copy. The digest file is
// named after the stored file's full base name and contains exactly one line:
// "{64 lower-case hex chars}  {absolute stored path}\n". Keeping the whole
// base name (extension included) keeps the hashes namespace in one-to-one
// correspondence with the evidence namespace: same-second acquisitions that
// differ only in extension get distinct digest files.
func (s *FilesystemStore) WriteDigestFile(storedPath, hexDigest string) (string, error) {
	absStored, err := filepath.Abs(storedPath)
	if err != nil {
		return "", fmt.Errorf("resolving stored path: %w", err)
	}

	base := filepath.Base(storedPath)
	digestPath := filepath.Join(s.hashesDir, base+digestFileExt)

	line := fmt.Sprintf("%s  %s\n", hexDigest, absStored)
	if err := os.WriteFile(digestPath, []byte(line), 0644); err != nil {
		return "", fmt.Errorf("writing digest file: %w", err)
	}
	return digestPath, nil
}

// ReadDigestFile returns the hex digest recorded in a digest file.
func (s *FilesystemStore) ReadDigestFile(digestPath string) (string, error) {
	data, err := os.ReadFile(digestPath)
	if err != nil {
		return "", fmt.Errorf("reading digest file: %w", err)
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return "", fmt.Errorf("malformed digest file: %s", digestPath)
	}
	return fields[0], nil
}

// Quarantine moves a stored copy into the quarantine directory. It is called
// when the hash/persist step fails after a successful copy, so the evidence
// directory only holds files with a matching ledger entry.
func (s *FilesystemStore) Quarantine(storedPath string) error {
	base := filepath.Base(storedPath)
	dest := filepath.Join(s.quarantineDir, base)
	for n := 2; ; n++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(s.quarantineDir, fmt.Sprintf("%s.%d", base, n))
	}
	if err := os.Rename(storedPath, dest); err != nil {
		return fmt.Errorf("moving to quarantine: %w", err)
	}
	return nil
}

// Compile-time check that FilesystemStore implements forensic.EvidenceStore.
var _ forensic.EvidenceStore = (*FilesystemStore)(nil)
