// Package export produces sealed case archives for custody transfer: the
// whole case directory is packed into a tar archive and encrypted with age.
package export

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// Sealer encrypts case archives for one or more age recipients.
type Sealer struct {
	recipients []age.Recipient
}

// NewRecipientSealer creates a Sealer from a file of age recipients
// (one per line, as written by age-keygen).
func NewRecipientSealer(recipientPath string) (*Sealer, error) {
	data, err := os.ReadFile(recipientPath)
	if err != nil {
		return nil, fmt.Errorf("reading recipient file: %w", err)
	}

	recipients, err := age.ParseRecipients(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipients found in %s", recipientPath)
	}

	return &Sealer{recipients: recipients}, nil
}

// NewPassphraseSealer creates a Sealer that encrypts with age's scrypt-based
// passphrase encryption.
func NewPassphraseSealer(passphrase string) (*Sealer, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	return &Sealer{recipients: []age.Recipient{recipient}}, nil
}

// SealCase packs caseDir into a tar archive, encrypts it, and writes the
// result to outPath. The archive entries are rooted at the case directory's
// base name, so unsealing recreates case_<NNN>/... as-is.
func (s *Sealer) SealCase(caseDir, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating sealed archive: %w", err)
	}
	defer out.Close()

	encWriter, err := age.Encrypt(out, s.recipients...)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}

	if err := writeTar(encWriter, caseDir); err != nil {
		return fmt.Errorf("archiving case directory: %w", err)
	}

	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Unseal decrypts a sealed archive with the given identity and unpacks it
// under destDir.
func Unseal(sealedPath, destDir string, identity age.Identity) error {
	in, err := os.Open(sealedPath)
	if err != nil {
		return fmt.Errorf("opening sealed archive: %w", err)
	}
	defer in.Close()

	decReader, err := age.Decrypt(in, identity)
	if err != nil {
		return fmt.Errorf("decrypting archive: %w", err)
	}

	return readTar(decReader, destDir)
}

// writeTar packs dir into a tar stream. Only directories and regular files
// are archived; the evidence layout contains nothing else.
func writeTar(w io.Writer, dir string) error {
	tw := tar.NewWriter(w)
	root := filepath.Dir(dir)

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("tar header for %s: %w", p, err)
		}
		header.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("writing tar header: %w", err)
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("opening %s: %w", p, err)
		}
		defer f.Close()

		if _, err := io.Copy(tw, f); err != nil {
			return fmt.Errorf("archiving %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return tw.Close()
}

// readTar unpacks a tar stream under destDir.
func readTar(r io.Reader, destDir string) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		target := filepath.Join(destDir, filepath.FromSlash(header.Name))
		if !filepath.IsLocal(header.Name) {
			return fmt.Errorf("archive entry escapes destination: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, fs.FileMode(header.Mode)); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", target, err)
			}
			f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fs.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return fmt.Errorf("extracting %s: %w", target, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", target, err)
			}
		}
	}
}
