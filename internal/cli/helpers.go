package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cmorrow/canopy/internal/store"
)

// openStore opens the resolved store database.
// Caller is responsible for calling s.Close().
func openStore() (*store.Store, error) {
	s, err := store.Open(getDBPath())
	if err != nil {
		return nil, err
	}
	return s, nil
}

// parseID parses a positive decimal identifier from a CLI argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s '%s': expected a positive integer", what, arg)
	}
	return id, nil
}

// storeErrorCode maps store sentinel errors to stable CLI error codes.
func storeErrorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrTaxonomyNotFound):
		return ErrUnknownTaxonomy
	case errors.Is(err, store.ErrPostTypeNotFound):
		return ErrUnknownPostType
	case errors.Is(err, store.ErrTermNotFound):
		return ErrTermNotFound
	case errors.Is(err, store.ErrPostNotFound):
		return ErrPostNotFound
	default:
		return ErrDatabaseError
	}
}
