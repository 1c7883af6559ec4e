package testutil

import (
	"path/filepath"
	"testing"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/catalog"
)

// NewTestCatalog creates a throwaway SQLite catalog with the schema applied.
// The catalog is automatically closed when the test completes.
func NewTestCatalog(t *testing.T) *catalog.SQLiteCatalog {
	t.Helper()

	c, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}

	t.Cleanup(func() {
		c.Close()
	})

	return c
}
