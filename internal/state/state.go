// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package state

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the local SQLite ledger of extractions: which source PDF content
// each module's artifacts were produced from. It makes re-extraction
// idempotent without touching artifact mtimes.
type DB struct {
	db *sql.DB
}

// Record is one module's extraction entry.
type Record struct {
	Slug        string
	PDFHash     string
	Method      string
	ExtractedAt sql.NullTime
}

// Open creates and initializes the ledger at dbPath.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	s := &DB{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS extractions (
		slug TEXT PRIMARY KEY,
		pdf_hash TEXT NOT NULL,
		method TEXT NOT NULL,
		extracted_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_extractions_hash ON extractions(pdf_hash);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get retrieves a module's extraction record, or nil when never extracted.
func (s *DB) Get(slug string) (*Record, error) {
	var rec Record
	err := s.db.QueryRow(
		"SELECT slug, pdf_hash, method, extracted_at FROM extractions WHERE slug = ?",
		slug,
	).Scan(&rec.Slug, &rec.PDFHash, &rec.Method, &rec.ExtractedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query extraction record: %w", err)
	}
	return &rec, nil
}

// MarkExtracted upserts the extraction record for a module.
func (s *DB) MarkExtracted(slug, pdfHash, method string) error {
	const query = `
		INSERT INTO extractions (slug, pdf_hash, method, extracted_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slug) DO UPDATE SET
			pdf_hash = excluded.pdf_hash,
			method = excluded.method,
			extracted_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, slug, pdfHash, method); err != nil {
		return fmt.Errorf("failed to upsert extraction record: %w", err)
	}
	return nil
}

// Forget drops a module's record, forcing the next run to re-extract.
func (s *DB) Forget(slug string) error {
	_, err := s.db.Exec("DELETE FROM extractions WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("failed to delete extraction record: %w", err)
	}
	return nil
}

// HashFile calculates the SHA-256 hash of a file's content.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// Decision is the outcome of asking whether a module needs re-extraction.
type Decision struct {
	Slug          string
	PDFHash       string
	ShouldProcess bool
	Reason        string
}

// Decide determines whether a module's PDF needs extraction. force always
// processes; otherwise a matching stored hash means the artifacts are
// already derived from this exact PDF. A nil db always processes.
func Decide(db *DB, slug, pdfPath string, force bool) (*Decision, error) {
	hash, err := HashFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", pdfPath, err)
	}

	d := &Decision{Slug: slug, PDFHash: hash, ShouldProcess: true}
	if force {
		d.Reason = "forced re-extraction"
		return d, nil
	}
	if db == nil {
		d.Reason = "no state ledger, processing"
		return d, nil
	}

	rec, err := db.Get(slug)
	if err != nil {
		return nil, err
	}
	switch {
	case rec == nil:
		d.Reason = "never extracted"
	case rec.PDFHash != hash:
		d.Reason = "source PDF changed"
	default:
		d.ShouldProcess = false
		d.Reason = "up-to-date (hash matches)"
	}
	return d, nil
}
