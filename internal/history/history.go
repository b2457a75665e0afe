// Copyright Ogrodnik Labs, 2026. All rights reserved.

// Package history keeps a local ledger of conversion runs in SQLite.
// The ledger is best-effort bookkeeping: a write failure never fails
// the conversion that produced the record.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ogrodnik/pdf2md/pkg/types"
)

const dbFile = "history.db"

// DefaultDBPath returns the per-user ledger location.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dbFile)
	}
	return filepath.Join(home, ".local", "share", "pdf2md", dbFile)
}

// Store manages the conversion ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at dbPath, creating the schema when
// needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		backend TEXT NOT NULL,
		language TEXT,
		status TEXT NOT NULL,
		pages INTEGER,
		ocr_pages INTEGER,
		characters INTEGER,
		output_bytes INTEGER,
		convert_ms INTEGER,
		export_ms INTEGER,
		finished_at TEXT NOT NULL
	)`)
	return err
}

// Append records one conversion. Records must name their input path.
func (s *Store) Append(ctx context.Context, rec types.Record) error {
	if rec.InputPath == "" {
		return fmt.Errorf("recording conversion: empty input path")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
		(input_path, output_path, backend, language, status,
		 pages, ocr_pages, characters, output_bytes, convert_ms, export_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.InputPath, rec.OutputPath, rec.Backend, rec.Language, string(rec.Status),
		rec.Stats.Pages, rec.Stats.OCRPages, rec.Stats.Characters, rec.Stats.OutputBytes,
		rec.Stats.ConvertDuration.Milliseconds(), rec.Stats.ExportDuration.Milliseconds(),
		rec.FinishedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// AppendAll records each entry, writing a warning to warn for any that
// fail and moving on to the next. One bad row must not drop the rest
// of a batch from the ledger.
func (s *Store) AppendAll(ctx context.Context, warn io.Writer, recs ...types.Record) {
	for _, rec := range recs {
		if err := s.Append(ctx, rec); err != nil {
			fmt.Fprintf(warn, "warning: %v\n", err)
		}
	}
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT input_path, output_path, backend, language, status,
		        pages, ocr_pages, characters, output_bytes, convert_ms, export_ms, finished_at
		 FROM conversions ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var rec types.Record
		var status, finished string
		var convertMs, exportMs int64
		if err := rows.Scan(
			&rec.InputPath, &rec.OutputPath, &rec.Backend, &rec.Language, &status,
			&rec.Stats.Pages, &rec.Stats.OCRPages, &rec.Stats.Characters,
			&rec.Stats.OutputBytes, &convertMs, &exportMs, &finished,
		); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		rec.Status = types.ConversionStatus(status)
		rec.Stats.ConvertDuration = time.Duration(convertMs) * time.Millisecond
		rec.Stats.ExportDuration = time.Duration(exportMs) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339, finished); err == nil {
			rec.FinishedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Write renders records as a table, newest first.
func Write(w io.Writer, records []types.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-8s  %6s  %8s  %s\n",
		"Finished", "Status", "Backend", "Pages", "Chars", "Input")
	for _, rec := range records {
		fmt.Fprintf(w, "%-20s  %-9s  %-8s  %6d  %8d  %s\n",
			rec.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Status, rec.Backend, rec.Stats.Pages, rec.Stats.Characters,
			rec.InputPath)
	}
}
