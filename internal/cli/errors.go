// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Store errors
	ErrStoreNotFound     = "STORE_NOT_FOUND"
	ErrStoreNotSpecified = "STORE_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"
	ErrDatabaseError     = "DATABASE_ERROR"

	// Taxonomy errors
	ErrUnknownTaxonomy         = "UNKNOWN_TAXONOMY"
	ErrNonHierarchicalTaxonomy = "NON_HIERARCHICAL_TAXONOMY"
	ErrTermNotFound            = "TERM_NOT_FOUND"
	ErrInvalidTermID           = "INVALID_TERM_ID"

	// Content errors
	ErrUnknownPostType = "UNKNOWN_POST_TYPE"
	ErrPostNotFound    = "POST_NOT_FOUND"

	// Rollup errors
	ErrNoAffectedPosts = "NO_AFFECTED_POSTS"

	// File errors
	ErrFileReadError = "FILE_READ_ERROR"
	ErrImportInvalid = "IMPORT_INVALID"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnPartialFailure = "PARTIAL_FAILURE"
	WarnSkipped        = "SKIPPED"
)
