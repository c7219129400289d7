// Package store persists extracted records in a local SQLite database.
//
// Each source sheet owns a set of events. A sync replaces that set
// wholesale in one transaction, so readers see either the previous run
// or the new one, never a mix.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
)

// ErrSheetNotFound indicates an unknown sheet id.
var ErrSheetNotFound = errors.New("sheet not found")

// DefaultColor tags sheets created without an explicit color.
const DefaultColor = "#4285F4"

// Sheet is a registered record source: one sheet of one workbook.
type Sheet struct {
	ID         string
	Source     string
	Name       string
	Color      string
	LastRunID  string
	EventCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Event is a stored record.
type Event struct {
	ID        int64
	SheetID   string
	RunID     string
	Title     string
	Name      string
	Phone     string
	Date      models.Date
	Time      models.Clock
	Procedure string
	Facility  string
	SourceRow int
	Color     string
}

// EventFilter narrows ListEvents. Zero fields do not filter.
type EventFilter struct {
	From    models.Date
	To      models.Date
	SheetID string
	Limit   int
}

// StoreConfig holds configuration for NewStore.
type StoreConfig struct {
	DBPath string
}

// Store defines the record storage interface.
type Store interface {
	UpsertSheet(ctx context.Context, source, name, color string) (*Sheet, error)
	GetSheet(ctx context.Context, id string) (*Sheet, error)
	ListSheets(ctx context.Context) ([]Sheet, error)
	DeleteSheet(ctx context.Context, id string) error

	ReplaceRecords(ctx context.Context, sheetID string, records []models.ExtractedRecord) (string, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// NewStore creates a new SQLite-backed Store.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(cfg StoreConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("opening database: empty path")
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Pragmas apply per connection and ":memory:" databases per
	// connection too, so the pool holds exactly one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{
		db:     db,
		dbPath: cfg.DBPath,
		now:    func() time.Time { return time.Now().UTC() },
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
