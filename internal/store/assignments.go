package store

import (
	"database/sql"
	"fmt"

	"github.com/cmorrow/canopy/internal/sqlutil"
)

// AssignTerms associates terms with a post using append semantics: the
// post's assignment set becomes the union of its existing assignments and
// termIDs. Existing assignments are never removed.
//
// Term counts are maintained incrementally unless counting is deferred.
func (s *Store) AssignTerms(postID int64, termIDs []int64) error {
	if _, err := s.GetPost(postID); err != nil {
		return err
	}
	for _, termID := range termIDs {
		if _, err := s.GetTerm(termID); err != nil {
			return fmt.Errorf("term %d: %w", termID, err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, termID := range termIDs {
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO term_assignments (post_id, term_id) VALUES (?, ?)",
			postID, termID,
		)
		if err != nil {
			return fmt.Errorf("failed to assign term %d to post %d: %w", termID, postID, err)
		}

		if s.deferCounts {
			continue
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if inserted > 0 {
			if _, err := tx.Exec("UPDATE terms SET count = count + 1 WHERE id = ?", termID); err != nil {
				return fmt.Errorf("failed to bump count for term %d: %w", termID, err)
			}
		}
	}

	return tx.Commit()
}

// PostTerms returns the full term rows assigned to a post within one
// taxonomy, ordered by term ID.
func (s *Store) PostTerms(postID int64, taxonomy string) ([]Term, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.taxonomy, t.name, t.slug, t.parent, t.count
		FROM terms t
		JOIN term_assignments ta ON ta.term_id = t.id
		WHERE ta.post_id = ? AND t.taxonomy = ?
		ORDER BY t.id
	`, postID, taxonomy)
	if err != nil {
		return nil, err
	}

	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (Term, error) {
		var term Term
		err := rows.Scan(&term.ID, &term.Taxonomy, &term.Name, &term.Slug, &term.Parent, &term.Count)
		return term, err
	})
}

// PostTermIDs returns the IDs of terms assigned to a post within one taxonomy.
func (s *Store) PostTermIDs(postID int64, taxonomy string) ([]int64, error) {
	terms, err := s.PostTerms(postID, taxonomy)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(terms))
	for i, term := range terms {
		ids[i] = term.ID
	}
	return ids, nil
}
