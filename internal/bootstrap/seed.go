package bootstrap

import (
	"context"
	"fmt"

	"github.com/maloquacious/dbseed/internal/logger"
	"github.com/maloquacious/dbseed/internal/store"
)

// SeedWriter appends one settings row per Run.
type SeedWriter struct {
	path string
	open Opener
	log  logger.Logger
}

// NewSeedWriter parses dbURL and returns a SeedWriter for it.
func NewSeedWriter(dbURL string, open Opener, log logger.Logger) (*SeedWriter, error) {
	path, err := store.ParseURL(dbURL)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Default
	}
	return &SeedWriter{path: path, open: open, log: log}, nil
}

// Run opens the store, inserts the seed row and closes the store.
// The store must already exist; Run never creates it.
func (w *SeedWriter) Run(ctx context.Context) (res SeedResult, err error) {
	exists, err := store.CheckExists(w.path)
	if err != nil {
		return res, fmt.Errorf("seed %s: %w", w.path, err)
	}
	if !exists {
		return res, fmt.Errorf("seed %s: %w", w.path, store.ErrMissing)
	}

	s := w.open(w.path)
	if err := s.Open(ctx); err != nil {
		return res, fmt.Errorf("seed %s: %w", w.path, err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("seed %s: failed to close store: %w", w.path, cerr)
		}
	}()

	wr, err := s.InsertSetting(ctx, SeedDescription)
	if err != nil {
		return res, fmt.Errorf("seed %s: %w", w.path, err)
	}
	w.log.Debug("seed row %d written to %s", wr.LastInsertID, w.path)

	res = SeedResult{RowsAffected: wr.RowsAffected, LastInsertID: wr.LastInsertID}
	return res, nil
}
