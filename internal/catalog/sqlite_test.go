package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

func openTestCatalog(t *testing.T) *SQLiteCatalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func testCase(number string, openedAt time.Time) *forensic.CaseInfo {
	return &forensic.CaseInfo{
		Number:       forensic.CaseNumber(number),
		Investigator: "J. Reyes",
		Victim:       "Acme Corp",
		Suspect:      "unknown",
		CrimeType:    "data exfiltration",
		OpenedAt:     openedAt,
	}
}

func testRecord(id, caseNumber string) *forensic.EvidenceRecord {
	return &forensic.EvidenceRecord{
		ID:               id,
		CaseNumber:       forensic.CaseNumber(caseNumber),
		OriginalPath:     "/mnt/usb/photo.jpg",
		StoredPath:       "/cases/case_" + caseNumber + "/evidence/20240115_103000_photo.jpg",
		DigestPath:       "/cases/case_" + caseNumber + "/hashes/20240115_103000_photo.jpg.sha256",
		StoredFilename:   "20240115_103000_photo.jpg",
		OriginalFilename: "photo.jpg",
		SHA256:           "aa11bb22cc33dd44ee55ff6677889900aa11bb22cc33dd44ee55ff6677889900",
		Descriptor: forensic.FileDescriptor{
			Filename:  "photo.jpg",
			Size:      2048,
			SizeMiB:   0.0,
			Created:   time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			Modified:  time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC),
			MIMEType:  "image/jpeg",
			Category:  forensic.CategoryImage,
			Extension: ".jpg",
		},
		ProcessedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestSQLiteCatalog_Cases(t *testing.T) {
	t.Run("round-trips intake metadata", func(t *testing.T) {
		c := openTestCatalog(t)
		opened := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

		if err := c.CreateCase(testCase("042", opened)); err != nil {
			t.Fatalf("CreateCase() error = %v", err)
		}

		got, err := c.GetCase(forensic.CaseNumber("042"))
		if err != nil {
			t.Fatalf("GetCase() error = %v", err)
		}
		if got == nil {
			t.Fatal("GetCase() = nil, want case")
		}
		if got.Number.String() != "042" {
			t.Errorf("number = %s, want 042", got.Number)
		}
		if got.Investigator != "J. Reyes" || got.CrimeType != "data exfiltration" {
			t.Errorf("intake metadata mismatch: %+v", got)
		}
		if !got.OpenedAt.Equal(opened) {
			t.Errorf("opened at = %v, want %v", got.OpenedAt, opened)
		}
	})

	t.Run("unknown case returns nil", func(t *testing.T) {
		c := openTestCatalog(t)

		got, err := c.GetCase(forensic.CaseNumber("999"))
		if err != nil {
			t.Fatalf("GetCase() error = %v", err)
		}
		if got != nil {
			t.Errorf("GetCase() = %+v, want nil", got)
		}
	})

	t.Run("rejects duplicate case numbers", func(t *testing.T) {
		c := openTestCatalog(t)
		opened := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

		if err := c.CreateCase(testCase("007", opened)); err != nil {
			t.Fatalf("CreateCase() error = %v", err)
		}
		if err := c.CreateCase(testCase("007", opened.Add(time.Hour))); err == nil {
			t.Fatal("CreateCase() expected error for duplicate case number")
		}
	})

	t.Run("lists cases by open time", func(t *testing.T) {
		c := openTestCatalog(t)
		base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

		if err := c.CreateCase(testCase("002", base.Add(time.Hour))); err != nil {
			t.Fatalf("CreateCase() error = %v", err)
		}
		if err := c.CreateCase(testCase("001", base)); err != nil {
			t.Fatalf("CreateCase() error = %v", err)
		}

		cases, err := c.ListCases()
		if err != nil {
			t.Fatalf("ListCases() error = %v", err)
		}
		if len(cases) != 2 {
			t.Fatalf("ListCases() returned %d cases, want 2", len(cases))
		}
		if cases[0].Number.String() != "001" || cases[1].Number.String() != "002" {
			t.Errorf("order = [%s %s], want [001 002]", cases[0].Number, cases[1].Number)
		}
	})
}

func TestSQLiteCatalog_Evidence(t *testing.T) {
	t.Run("round-trips records in insertion order", func(t *testing.T) {
		c := openTestCatalog(t)
		opened := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		if err := c.CreateCase(testCase("042", opened)); err != nil {
			t.Fatalf("CreateCase() error = %v", err)
		}

		first := testRecord("id-1", "042")
		second := testRecord("id-2", "042")
		second.OriginalFilename = "dump.bin"
		second.Descriptor.Filename = "dump.bin"
		if err := c.InsertEvidence(first); err != nil {
			t.Fatalf("InsertEvidence() error = %v", err)
		}
		if err := c.InsertEvidence(second); err != nil {
			t.Fatalf("InsertEvidence() error = %v", err)
		}

		records, err := c.ListEvidence(forensic.CaseNumber("042"))
		if err != nil {
			t.Fatalf("ListEvidence() error = %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("ListEvidence() returned %d records, want 2", len(records))
		}
		if records[0].ID != "id-1" || records[1].ID != "id-2" {
			t.Errorf("order = [%s %s], want [id-1 id-2]", records[0].ID, records[1].ID)
		}

		got := records[0]
		if got.SHA256 != first.SHA256 {
			t.Errorf("sha256 = %s, want %s", got.SHA256, first.SHA256)
		}
		if got.StoredFilename != first.StoredFilename {
			t.Errorf("stored name = %s, want %s", got.StoredFilename, first.StoredFilename)
		}
		if got.Descriptor.Category != forensic.CategoryImage {
			t.Errorf("category = %s, want %s", got.Descriptor.Category, forensic.CategoryImage)
		}
		if got.Descriptor.Filename != "photo.jpg" {
			t.Errorf("descriptor filename = %s, want photo.jpg", got.Descriptor.Filename)
		}
		if !got.ProcessedAt.Equal(first.ProcessedAt) {
			t.Errorf("processed at = %v, want %v", got.ProcessedAt, first.ProcessedAt)
		}
		if !got.Descriptor.Modified.Equal(first.Descriptor.Modified) {
			t.Errorf("modified = %v, want %v", got.Descriptor.Modified, first.Descriptor.Modified)
		}
	})

	t.Run("scopes listing to the case", func(t *testing.T) {
		c := openTestCatalog(t)
		opened := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		if err := c.CreateCase(testCase("001", opened)); err != nil {
			t.Fatalf("CreateCase() error = %v", err)
		}
		if err := c.CreateCase(testCase("002", opened)); err != nil {
			t.Fatalf("CreateCase() error = %v", err)
		}
		if err := c.InsertEvidence(testRecord("id-1", "001")); err != nil {
			t.Fatalf("InsertEvidence() error = %v", err)
		}

		records, err := c.ListEvidence(forensic.CaseNumber("002"))
		if err != nil {
			t.Fatalf("ListEvidence() error = %v", err)
		}
		if len(records) != 0 {
			t.Errorf("ListEvidence() returned %d records for empty case, want 0", len(records))
		}
	})

	t.Run("rejects evidence for an unknown case", func(t *testing.T) {
		c := openTestCatalog(t)

		if err := c.InsertEvidence(testRecord("id-1", "404")); err == nil {
			t.Fatal("InsertEvidence() expected foreign key error for unknown case")
		}
	})
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	opened := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	if err := c.CreateCase(testCase("001", opened)); err != nil {
		t.Fatalf("CreateCase() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening an up-to-date catalog must be a no-op migration.
	c2, err := Open(path)
	if err != nil {
		t.Fatalf("Open() on existing catalog error = %v", err)
	}
	defer c2.Close()

	got, err := c2.GetCase(forensic.CaseNumber("001"))
	if err != nil {
		t.Fatalf("GetCase() error = %v", err)
	}
	if got == nil {
		t.Fatal("case lost after reopen")
	}
	if err := c2.CheckMigrations(); err != nil {
		t.Errorf("CheckMigrations() error = %v", err)
	}
}
