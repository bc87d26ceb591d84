package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maloquacious/dbseed/internal/store"
	_ "modernc.org/sqlite"
)

// ErrNotOpen is returned by operations on a store that has not been opened.
var ErrNotOpen = errors.New("database not opened")

// Options tune the connection opened by a SQLiteStore.
type Options struct {
	// BusyTimeout is the SQLite busy_timeout in milliseconds. Zero leaves the driver default.
	BusyTimeout int
}

// SQLiteStore implements the Store interface using modernc.org/sqlite.
type SQLiteStore struct {
	dbPath string
	opts   Options
	db     *sql.DB
}

var _ store.Store = (*SQLiteStore)(nil)

// New creates a new SQLiteStore.
func New(dbPath string, opts Options) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
		opts:   opts,
	}
}

// Open opens the SQLite database with a single connection.
// Pragmas set here are per connection, so the pool is capped at one.
func (s *SQLiteStore) Open(ctx context.Context) error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if s.opts.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d", s.opts.BusyTimeout)
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ApplySchema runs the schema batch: foreign keys on, then both tables.
func (s *SQLiteStore) ApplySchema(ctx context.Context) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// InsertSetting appends one row to settings.
func (s *SQLiteStore) InsertSetting(ctx context.Context, description string) (store.WriteResult, error) {
	if s.db == nil {
		return store.WriteResult{}, ErrNotOpen
	}

	res, err := s.db.ExecContext(ctx, insertSetting, description)
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("failed to insert setting: %w", err)
	}

	var wr store.WriteResult
	if wr.RowsAffected, err = res.RowsAffected(); err != nil {
		return wr, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if wr.LastInsertID, err = res.LastInsertId(); err != nil {
		return wr, fmt.Errorf("failed to read last insert id: %w", err)
	}
	return wr, nil
}

// CheckState returns the current state of the datastore.
func (s *SQLiteStore) CheckState(ctx context.Context) (store.StoreState, error) {
	if s.db == nil {
		return store.StateMissing, ErrNotOpen
	}

	var count int
	err := s.db.QueryRowContext(ctx, countTables).Scan(&count)
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to check tables: %w", err)
	}

	if count < 2 {
		return store.StateUninitialized, nil
	}
	return store.StateReady, nil
}

// CountSettings returns the number of settings rows.
func (s *SQLiteStore) CountSettings(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, ErrNotOpen
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, countSettings).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count settings: %w", err)
	}
	return n, nil
}
