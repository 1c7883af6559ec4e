// Package catalog persists case and evidence records in SQLite. It is the
// durable mirror of the in-memory ledger, so later invocations can list,
// verify, report on and upload a case's evidence.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/catalog/migrations"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteCatalog implements the case catalog over a SQLite database.
type SQLiteCatalog struct {
	db *sql.DB
}

// Open opens (creating if necessary) the catalog at path and brings its
// schema up to date. path can be a file path or ":memory:".
func Open(path string) (*SQLiteCatalog, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.Apply(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating catalog: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the catalog relies on. Exported for tools and tests that need a properly
// configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// SQLite ships with foreign keys off for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Close releases the database connection.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

// CheckMigrations verifies the catalog schema is up-to-date.
func (c *SQLiteCatalog) CheckMigrations() error {
	return migrations.Check(c.db)
}

// CreateCase records a newly opened case. It fails if the case number is
// already in use.
func (c *SQLiteCatalog) CreateCase(info *forensic.CaseInfo) error {
	_, err := c.db.Exec(
		`INSERT INTO cases (id, case_number, investigator, victim, suspect, crime_type, opened_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), info.Number.String(), info.Investigator, info.Victim,
		info.Suspect, info.CrimeType, info.OpenedAt,
	)
	if err != nil {
		return fmt.Errorf("creating case %s: %w", info.Number, err)
	}
	return nil
}

// GetCase returns the intake metadata for a case, or nil if the case does
// not exist.
func (c *SQLiteCatalog) GetCase(number forensic.CaseNumber) (*forensic.CaseInfo, error) {
	row := c.db.QueryRow(
		`SELECT case_number, investigator, victim, suspect, crime_type, opened_at
		 FROM cases WHERE case_number = ?`, number.String(),
	)

	var info forensic.CaseInfo
	var num string
	err := row.Scan(&num, &info.Investigator, &info.Victim, &info.Suspect, &info.CrimeType, &info.OpenedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding case %s: %w", number, err)
	}
	info.Number = forensic.CaseNumber(num)
	return &info, nil
}

// ListCases returns all cases ordered by open time.
func (c *SQLiteCatalog) ListCases() ([]*forensic.CaseInfo, error) {
	rows, err := c.db.Query(
		`SELECT case_number, investigator, victim, suspect, crime_type, opened_at
		 FROM cases ORDER BY opened_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}
	defer rows.Close()

	var cases []*forensic.CaseInfo
	for rows.Next() {
		var info forensic.CaseInfo
		var num string
		if err := rows.Scan(&num, &info.Investigator, &info.Victim, &info.Suspect, &info.CrimeType, &info.OpenedAt); err != nil {
			return nil, fmt.Errorf("scanning case row: %w", err)
		}
		info.Number = forensic.CaseNumber(num)
		cases = append(cases, &info)
	}
	return cases, rows.Err()
}

// InsertEvidence persists one evidence record.
func (c *SQLiteCatalog) InsertEvidence(record *forensic.EvidenceRecord) error {
	_, err := c.db.Exec(
		`INSERT INTO evidence (id, case_number, original_path, stored_path, digest_path,
		                       stored_name, original_name, sha256, size_bytes, size_mib,
		                       category, mime_type, extension, created_at, modified_at, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.CaseNumber.String(), record.OriginalPath, record.StoredPath,
		record.DigestPath, record.StoredFilename, record.OriginalFilename, record.SHA256,
		record.Descriptor.Size, record.Descriptor.SizeMiB, string(record.Descriptor.Category),
		record.Descriptor.MIMEType, record.Descriptor.Extension,
		record.Descriptor.Created, record.Descriptor.Modified, record.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting evidence record: %w", err)
	}
	return nil
}

// ListEvidence returns a case's evidence records in insertion order, which
// matches the canonical evidence numbering of the session ledger.
func (c *SQLiteCatalog) ListEvidence(number forensic.CaseNumber) ([]*forensic.EvidenceRecord, error) {
	rows, err := c.db.Query(
		`SELECT id, case_number, original_path, stored_path, digest_path,
		        stored_name, original_name, sha256, size_bytes, size_mib,
		        category, mime_type, extension, created_at, modified_at, processed_at
		 FROM evidence WHERE case_number = ? ORDER BY rowid`, number.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing evidence: %w", err)
	}
	defer rows.Close()

	var records []*forensic.EvidenceRecord
	for rows.Next() {
		record, err := scanEvidence(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanEvidence(rows *sql.Rows) (*forensic.EvidenceRecord, error) {
	var r forensic.EvidenceRecord
	var num, category string
	var created, modified sql.NullTime
	err := rows.Scan(
		&r.ID, &num, &r.OriginalPath, &r.StoredPath, &r.DigestPath,
		&r.StoredFilename, &r.OriginalFilename, &r.SHA256,
		&r.Descriptor.Size, &r.Descriptor.SizeMiB, &category,
		&r.Descriptor.MIMEType, &r.Descriptor.Extension,
		&created, &modified, &r.ProcessedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning evidence row: %w", err)
	}
	r.CaseNumber = forensic.CaseNumber(num)
	r.Descriptor.Filename = r.OriginalFilename
	r.Descriptor.Category = forensic.Category(category)
	if created.Valid {
		r.Descriptor.Created = created.Time
	}
	if modified.Valid {
		r.Descriptor.Modified = modified.Time
	}
	return &r, nil
}

// Compile-time check that SQLiteCatalog satisfies the service's Catalog.
var _ forensic.Catalog = (*SQLiteCatalog)(nil)
