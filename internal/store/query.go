package store

import (
	"fmt"

	"github.com/cmorrow/canopy/internal/sqlutil"
)

// CountPostsWithTerms returns the number of posts of the given type whose
// own term assignments intersect termIDs. Status is not filtered and
// descendant terms are not expanded: only direct assignments match.
func (s *Store) CountPostsWithTerms(postType string, termIDs []int64) (int, error) {
	placeholders, args := sqlutil.InClauseIDs(termIDs)
	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT p.id)
		FROM posts p
		JOIN term_assignments ta ON ta.post_id = p.id
		WHERE p.post_type = ? AND ta.term_id IN (%s)
	`, placeholders)

	var count int
	err := s.db.QueryRow(query, append([]any{postType}, args...)...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// PostIDsWithTerms returns one page of IDs of posts matching the same
// filter as CountPostsWithTerms, ordered by post ID. Pages are 1-based.
func (s *Store) PostIDsWithTerms(postType string, termIDs []int64, page, pageSize int) ([]int64, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be >= 1, got %d", pageSize)
	}

	placeholders, args := sqlutil.InClauseIDs(termIDs)
	query := fmt.Sprintf(`
		SELECT DISTINCT p.id
		FROM posts p
		JOIN term_assignments ta ON ta.post_id = p.id
		WHERE p.post_type = ? AND ta.term_id IN (%s)
		ORDER BY p.id
		LIMIT ? OFFSET ?
	`, placeholders)

	queryArgs := append([]any{postType}, args...)
	queryArgs = append(queryArgs, pageSize, (page-1)*pageSize)

	rows, err := s.db.Query(query, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
