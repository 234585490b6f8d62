// Package testutil provides reusable store fixtures for tests.
package testutil

import (
	"testing"

	"github.com/cmorrow/canopy/internal/store"
)

// NewTestStore opens an in-memory store that is closed when the test ends.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// MustCreateTaxonomy creates a taxonomy or fails the test.
func MustCreateTaxonomy(t *testing.T, s *store.Store, name string, hierarchical bool) {
	t.Helper()
	if err := s.CreateTaxonomy(name, "", hierarchical); err != nil {
		t.Fatalf("failed to create taxonomy %q: %v", name, err)
	}
}

// MustCreateTerm creates a term or fails the test.
func MustCreateTerm(t *testing.T, s *store.Store, taxonomy, name string, parent int64) int64 {
	t.Helper()
	id, err := s.CreateTerm(taxonomy, name, "", parent)
	if err != nil {
		t.Fatalf("failed to create term %q: %v", name, err)
	}
	return id
}

// MustCreatePost creates a post with optional term assignments, or fails
// the test.
func MustCreatePost(t *testing.T, s *store.Store, postType string, termIDs ...int64) int64 {
	t.Helper()
	id, err := s.CreatePost(postType, "publish", "")
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if len(termIDs) > 0 {
		if err := s.AssignTerms(id, termIDs); err != nil {
			t.Fatalf("failed to assign terms: %v", err)
		}
	}
	return id
}
