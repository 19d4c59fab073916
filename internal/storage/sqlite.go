package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// MemoryPath opens a database that lives only as long as the process.
const MemoryPath = ":memory:"

// DefaultHistoryLimit is how many identifications a session keeps.
const DefaultHistoryLimit = 50

// SQLiteStorage implements HistoryStore using SQLite.
type SQLiteStorage struct {
	db           *sql.DB
	now          func() time.Time
	newID        func() string
	dbPath       string
	historyLimit int
}

// Option configures a SQLiteStorage.
type Option func(*SQLiteStorage)

// WithHistoryLimit bounds the number of history entries kept.
func WithHistoryLimit(limit int) Option {
	return func(s *SQLiteStorage) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithClock sets the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStorage) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSQLiteStorage creates a new SQLite storage instance. Use MemoryPath for
// a session-only store.
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := dbPath
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{
		db:           db,
		dbPath:       dbPath,
		historyLimit: DefaultHistoryLimit,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// HistoryLimit returns the maximum number of entries kept.
func (s *SQLiteStorage) HistoryLimit() int {
	return s.historyLimit
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// IsBusy reports whether err came from another connection holding the
// database lock. Such writes can be retried.
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}
