// Package fs implements the OS-backed file classifier.
package fs

import (
	"fmt"
	"math"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

const bytesPerMiB = 1024 * 1024

// OSClassifier derives FileDescriptors from the real filesystem.
type OSClassifier struct{}

// NewOSClassifier creates a classifier that operates on the real filesystem.
func NewOSClassifier() *OSClassifier {
	return &OSClassifier{}
}

// Classify stats path and derives its descriptor. It fails if the path does
// not resolve to an existing regular file at call time. A TOCTOU race here
// is acceptable; this is metadata collection, not a security boundary.
func (c *OSClassifier) Classify(path string) (*forensic.FileDescriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "unknown"
	}

	// Size in MiB is a reporting convenience, rounded to 2 decimal places.
	// It plays no part in integrity checks.
	sizeMiB := math.Round(float64(info.Size())/bytesPerMiB*100) / 100

	return &forensic.FileDescriptor{
		Filename:  filepath.Base(path),
		Size:      info.Size(),
		SizeMiB:   sizeMiB,
		Created:   changeTime(info),
		Modified:  info.ModTime(),
		MIMEType:  mimeType,
		Category:  forensic.CategoryForExtension(ext),
		Extension: ext,
	}, nil
}

// Compile-time check that OSClassifier implements forensic.Classifier.
var _ forensic.Classifier = (*OSClassifier)(nil)
