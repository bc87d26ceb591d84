package store

import "context"

// StoreState represents the initialization state of the datastore.
type StoreState int

const (
	StateMissing       StoreState = iota // File doesn't exist
	StateUninitialized                   // File exists but tables are missing
	StateReady                           // Both tables present
)

func (s StoreState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// WriteResult reports the effect of a single insert.
type WriteResult struct {
	RowsAffected int64
	LastInsertID int64
}

// Store defines the datastore contract.
// A Store holds at most one connection and is not meant to be shared between phases.
type Store interface {
	// Open opens the datastore connection
	Open(ctx context.Context) error

	// Close closes the datastore connection
	Close() error

	// ApplySchema enables foreign keys and creates the settings and project tables
	ApplySchema(ctx context.Context) error

	// InsertSetting appends a settings row with the given description
	InsertSetting(ctx context.Context, description string) (WriteResult, error)

	// CheckState returns the current state of the datastore
	CheckState(ctx context.Context) (StoreState, error)

	// CountSettings returns the number of rows in the settings table
	CountSettings(ctx context.Context) (int64, error)
}
