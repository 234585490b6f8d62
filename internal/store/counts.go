package store

import "fmt"

// DeferTermCounting toggles incremental term-count maintenance.
//
// Batch jobs suspend counting at the start of a run and trigger one full
// RecountTerms at the end instead of paying a count update on every write.
func (s *Store) DeferTermCounting(deferred bool) {
	s.deferCounts = deferred
}

// CountingDeferred reports whether incremental counting is suspended.
func (s *Store) CountingDeferred() bool {
	return s.deferCounts
}

// RecountTerms recomputes the assignment count of every term in a taxonomy
// in a single pass.
func (s *Store) RecountTerms(taxonomy string) error {
	if _, err := s.GetTaxonomy(taxonomy); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		UPDATE terms
		SET count = (
			SELECT COUNT(*) FROM term_assignments ta WHERE ta.term_id = terms.id
		)
		WHERE taxonomy = ?
	`, taxonomy)
	if err != nil {
		return fmt.Errorf("failed to recount terms for '%s': %w", taxonomy, err)
	}
	return nil
}
