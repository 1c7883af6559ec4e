package forensic_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

// emptySHA256 is the well-known SHA-256 of the empty byte sequence.
const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestSHA256Digester_Digest(t *testing.T) {
	d := forensic.NewSHA256Digester()

	t.Run("empty input yields known digest", func(t *testing.T) {
		got, err := d.Digest(bytes.NewReader(nil))
		if err != nil {
			t.Fatalf("Digest() error = %v", err)
		}
		if got != emptySHA256 {
			t.Errorf("Digest(empty) = %s, want %s", got, emptySHA256)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		input := []byte("evidence bytes")
		first, err := d.Digest(bytes.NewReader(input))
		if err != nil {
			t.Fatalf("Digest() error = %v", err)
		}
		second, err := d.Digest(bytes.NewReader(input))
		if err != nil {
			t.Fatalf("Digest() error = %v", err)
		}
		if first != second {
			t.Errorf("digests differ for identical input: %s vs %s", first, second)
		}
	})

	t.Run("distinct inputs yield distinct digests", func(t *testing.T) {
		inputs := [][]byte{
			[]byte("a"),
			[]byte("b"),
			[]byte("ab"),
			bytes.Repeat([]byte{0x00}, 1024),
			bytes.Repeat([]byte{0xff}, 1024),
		}
		seen := make(map[string]int)
		for i, input := range inputs {
			digest, err := d.Digest(bytes.NewReader(input))
			if err != nil {
				t.Fatalf("Digest() error = %v", err)
			}
			if prev, ok := seen[digest]; ok {
				t.Errorf("inputs %d and %d produced the same digest %s", prev, i, digest)
			}
			seen[digest] = i
		}
	})

	t.Run("output is 64 lower-case hex chars", func(t *testing.T) {
		got, err := d.Digest(strings.NewReader("hello"))
		if err != nil {
			t.Fatalf("Digest() error = %v", err)
		}
		if len(got) != 64 {
			t.Errorf("digest length = %d, want 64", len(got))
		}
		if got != strings.ToLower(got) {
			t.Errorf("digest is not lower-case: %s", got)
		}
	})
}
