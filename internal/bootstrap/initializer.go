package bootstrap

import (
	"context"
	"fmt"

	"github.com/maloquacious/dbseed/internal/logger"
	"github.com/maloquacious/dbseed/internal/store"
)

// Initializer creates the store and applies the schema when the store is absent.
type Initializer struct {
	path string
	open Opener
	log  logger.Logger
}

// NewInitializer parses dbURL and returns an Initializer for it.
func NewInitializer(dbURL string, open Opener, log logger.Logger) (*Initializer, error) {
	path, err := store.ParseURL(dbURL)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Default
	}
	return &Initializer{path: path, open: open, log: log}, nil
}

// Run checks for the store and, when it is missing, creates it and applies the schema.
// An existing store is left untouched.
// Errors from the existence check or from creating the file are returned;
// a schema failure is recorded in the result instead.
func (i *Initializer) Run(ctx context.Context) (InitResult, error) {
	res := InitResult{Path: i.path}

	exists, err := store.CheckExists(i.path)
	if err != nil {
		return res, err
	}
	if exists {
		i.log.Debug("store %s exists, skipping schema", i.path)
		res.Outcome = OutcomeExisted
		return res, nil
	}

	if err := store.Create(i.path); err != nil {
		return res, err
	}
	i.log.Debug("store %s created", i.path)

	if err := i.applySchema(ctx); err != nil {
		i.log.Error("schema for %s: %v", i.path, err)
		res.Outcome = OutcomeSchemaFailed
		res.SchemaErr = err
		return res, nil
	}

	i.log.Info("store %s initialized", i.path)
	res.Outcome = OutcomeCreated
	return res, nil
}

func (i *Initializer) applySchema(ctx context.Context) (err error) {
	s := i.open(i.path)
	if err := s.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close store: %w", cerr)
		}
	}()
	return s.ApplySchema(ctx)
}
