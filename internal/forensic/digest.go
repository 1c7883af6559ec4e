package forensic

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Digester computes a cryptographic content digest of a byte stream.
// Implementations must be deterministic: identical bytes always yield
// identical output.
type Digester interface {
	// Digest consumes r to EOF and returns the hex-encoded digest.
	Digest(r io.Reader) (string, error)
}

// SHA256Digester computes SHA-256 digests as 64 lower-case hex characters.
type SHA256Digester struct{}

func NewSHA256Digester() *SHA256Digester { return &SHA256Digester{} }

func (*SHA256Digester) Digest(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

var _ Digester = (*SHA256Digester)(nil)
