package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one completed clip download.
type Record struct {
	ID         int64
	URL        string
	Source     string
	StartSec   int
	EndSec     int
	OutputPath string
	CreatedAt  time.Time
}

// Store persists completed clips in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories as needed. Migration is idempotent.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating history directory: %v", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening history database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to history database: %v", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS clips (
			id INTEGER PRIMARY KEY,
			url TEXT NOT NULL,
			source TEXT NOT NULL,
			start_sec INTEGER NOT NULL,
			end_sec INTEGER NOT NULL,
			output_path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("error migrating history database: %v", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a completed clip.
func (s *Store) Append(rec Record) error {
	_, err := s.db.Exec(
		`INSERT INTO clips (url, source, start_sec, end_sec, output_path) VALUES (?, ?, ?, ?, ?)`,
		rec.URL, rec.Source, rec.StartSec, rec.EndSec, rec.OutputPath,
	)
	if err != nil {
		return fmt.Errorf("error recording clip: %v", err)
	}
	return nil
}

// List returns the most recent clips, newest first.
func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, url, source, start_sec, end_sec, output_path, created_at
		 FROM clips ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing clips: %v", err)
	}
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Source, &rec.StartSec, &rec.EndSec, &rec.OutputPath, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning clip row: %v", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all recorded clips.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM clips`)
	if err != nil {
		return fmt.Errorf("error clearing history: %v", err)
	}
	return nil
}
