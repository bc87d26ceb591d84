// Package bootstrap creates the settings store on first use and appends the seed row.
//
// The flow has two phases, each opening and closing its own connection:
// the Initializer creates the store file and schema when the file is absent,
// then the SeedWriter inserts one settings row. Schema failures are reported
// in InitResult and do not stop the flow; everything else is returned as an
// error for the caller to act on.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/maloquacious/dbseed/internal/logger"
	"github.com/maloquacious/dbseed/internal/store"
	"github.com/maloquacious/dbseed/internal/store/sqlite"
)

// SeedDescription is the description written by every seed row.
const SeedDescription = "testing"

// Opener returns an unopened store for a filesystem path.
type Opener func(dbPath string) store.Store

// SQLiteOpener returns an Opener for SQLite stores using opts.
func SQLiteOpener(opts sqlite.Options) Opener {
	return func(dbPath string) store.Store {
		return sqlite.New(dbPath, opts)
	}
}

// Outcome describes what the Initializer did.
type Outcome int

const (
	OutcomeNone         Outcome = iota // initializer did not finish
	OutcomeCreated                     // store created and schema applied
	OutcomeExisted                     // store found, nothing done
	OutcomeSchemaFailed                // store created, schema batch failed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCreated:
		return "created"
	case OutcomeExisted:
		return "existed"
	case OutcomeSchemaFailed:
		return "schema_failed"
	}
	return "unknown"
}

// InitResult is returned by Initializer.Run.
type InitResult struct {
	Path    string
	Outcome Outcome
	// SchemaErr is set when Outcome is OutcomeSchemaFailed.
	SchemaErr error
}

// Message is the status line printed for the result.
func (r InitResult) Message() string {
	switch r.Outcome {
	case OutcomeCreated:
		return "Database created successfully"
	case OutcomeExisted:
		return "Database already exists"
	}
	return fmt.Sprintf("Error: %v", r.SchemaErr)
}

// SeedResult is returned by SeedWriter.Run.
type SeedResult struct {
	RowsAffected int64
	LastInsertID int64
}

func (r SeedResult) String() string {
	return fmt.Sprintf("SeedResult{RowsAffected:%d LastInsertID:%d}", r.RowsAffected, r.LastInsertID)
}

// Run executes the Initializer and then the SeedWriter against dbURL.
// The seed phase runs even when schema application failed.
func Run(ctx context.Context, dbURL string, open Opener, log logger.Logger) (InitResult, SeedResult, error) {
	initializer, err := NewInitializer(dbURL, open, log)
	if err != nil {
		return InitResult{}, SeedResult{}, err
	}
	ir, err := initializer.Run(ctx)
	if err != nil {
		return ir, SeedResult{}, err
	}

	seed, err := NewSeedWriter(dbURL, open, log)
	if err != nil {
		return ir, SeedResult{}, err
	}
	sr, err := seed.Run(ctx)
	return ir, sr, err
}
