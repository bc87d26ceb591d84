package bootstrap

import (
	"context"
	"fmt"

	"github.com/maloquacious/dbseed/internal/store"
)

// Report summarizes the store at a location.
type Report struct {
	Path     string
	State    store.StoreState
	Settings int64
}

func (r Report) String() string {
	if r.State != store.StateReady {
		return fmt.Sprintf("%s: %s", r.Path, r.State)
	}
	return fmt.Sprintf("%s: %s (%d settings rows)", r.Path, r.State, r.Settings)
}

// Verify reports the state of the store at dbURL without creating it.
func Verify(ctx context.Context, dbURL string, open Opener) (rep Report, err error) {
	path, err := store.ParseURL(dbURL)
	if err != nil {
		return rep, err
	}
	rep.Path = path

	exists, err := store.CheckExists(path)
	if err != nil {
		return rep, err
	}
	if !exists {
		rep.State = store.StateMissing
		return rep, nil
	}

	s := open(path)
	if err := s.Open(ctx); err != nil {
		return rep, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close store: %w", cerr)
		}
	}()

	if rep.State, err = s.CheckState(ctx); err != nil {
		return rep, err
	}
	if rep.State == store.StateReady {
		if rep.Settings, err = s.CountSettings(ctx); err != nil {
			return rep, err
		}
	}
	return rep, nil
}
