// Package store owns durable access to the spreadsheet-backed tables. Each
// table is one xlsx file with a header row; every mutation rewrites the whole
// file. A single lock serializes access across all tables.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// Store reads and writes tables under a data directory. All operations
// serialize on one mutex, so reads and writes of independent tables never
// overlap.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the data directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the backing file path for a table.
func (s *Store) Path(table string) string {
	return filepath.Join(s.dir, table+".xlsx")
}

// Exists reports whether the table's backing file is present.
func (s *Store) Exists(table string) bool {
	_, err := os.Stat(s.Path(table))
	return err == nil
}

// Read returns all data rows of the table, excluding the header row. A
// missing or zero-length file is an empty table; an unreadable file is an
// error, so callers can tell data loss apart from "no rows yet".
func (s *Store) Read(table string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readRows(table)
}

// Write replaces the table's entire contents with header plus rows. The new
// file is assembled in a temp file and renamed over the target, so a failed
// write never leaves a truncated table behind.
func (s *Store) Write(table string, header []string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeRows(table, header, rows)
}

// Update applies fn to the table's current rows and persists the result,
// holding the lock across the whole read-modify-write. If fn returns an
// error the table is left untouched.
func (s *Store) Update(table string, header []string, fn func(rows [][]string) ([][]string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows(table)
	if err != nil {
		return err
	}
	updated, err := fn(rows)
	if err != nil {
		return err
	}
	return s.writeRows(table, header, updated)
}

func (s *Store) readRows(table string) ([][]string, error) {
	path := s.Path(table)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat table %s: %w", table, err)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", table, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", table, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func (s *Store) writeRows(table string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write table %s: %w", table, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write table %s: %w", table, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write table %s: %w", table, err)
		}
	}

	tmp, err := os.CreateTemp(s.dir, table+"-*.xlsx")
	if err != nil {
		return fmt.Errorf("write table %s: %w", table, err)
	}
	tmpName := tmp.Name()
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write table %s: %w", table, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write table %s: %w", table, err)
	}
	if err := os.Rename(tmpName, s.Path(table)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write table %s: %w", table, err)
	}
	return nil
}
