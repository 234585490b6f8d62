package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmorrow/canopy/internal/slugs"
)

// Term is a single classification value within a taxonomy.
// Parent is 0 for root terms.
type Term struct {
	ID       int64
	Taxonomy string
	Name     string
	Slug     string
	Parent   int64
	Count    int
}

// CreateTerm adds a term to a taxonomy and returns its ID.
// An empty slug is derived from the name. A non-zero parent must be an
// existing term in the same taxonomy.
func (s *Store) CreateTerm(taxonomy, name, slug string, parent int64) (int64, error) {
	tax, err := s.GetTaxonomy(taxonomy)
	if err != nil {
		return 0, err
	}

	if name == "" {
		return 0, fmt.Errorf("term name is required")
	}
	if slug == "" {
		slug = slugs.TermSlug(name)
	}

	if parent != 0 {
		if !tax.Hierarchical {
			return 0, fmt.Errorf("taxonomy '%s' is not hierarchical; terms cannot have parents", taxonomy)
		}
		parentTerm, err := s.GetTerm(parent)
		if err != nil {
			return 0, fmt.Errorf("parent term %d: %w", parent, err)
		}
		if parentTerm.Taxonomy != taxonomy {
			return 0, fmt.Errorf("parent term %d belongs to taxonomy '%s', not '%s'", parent, parentTerm.Taxonomy, taxonomy)
		}
	}

	res, err := s.db.Exec(
		"INSERT INTO terms (taxonomy, name, slug, parent) VALUES (?, ?, ?, ?)",
		taxonomy, name, slug, parent,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create term '%s': %w", name, err)
	}
	return res.LastInsertId()
}

// GetTerm returns a term by ID, or ErrTermNotFound.
func (s *Store) GetTerm(id int64) (*Term, error) {
	var term Term
	err := s.db.QueryRow(
		"SELECT id, taxonomy, name, slug, parent, count FROM terms WHERE id = ?", id,
	).Scan(&term.ID, &term.Taxonomy, &term.Name, &term.Slug, &term.Parent, &term.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTermNotFound
	}
	if err != nil {
		return nil, err
	}
	return &term, nil
}

// GetTermBySlug returns a term by taxonomy and slug, or ErrTermNotFound.
func (s *Store) GetTermBySlug(taxonomy, slug string) (*Term, error) {
	var term Term
	err := s.db.QueryRow(
		"SELECT id, taxonomy, name, slug, parent, count FROM terms WHERE taxonomy = ? AND slug = ?",
		taxonomy, slug,
	).Scan(&term.ID, &term.Taxonomy, &term.Name, &term.Slug, &term.Parent, &term.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTermNotFound
	}
	if err != nil {
		return nil, err
	}
	return &term, nil
}

// ListTerms returns all terms in a taxonomy ordered by ID.
func (s *Store) ListTerms(taxonomy string) ([]Term, error) {
	if _, err := s.GetTaxonomy(taxonomy); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT id, taxonomy, name, slug, parent, count FROM terms WHERE taxonomy = ? ORDER BY id",
		taxonomy,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []Term
	for rows.Next() {
		var term Term
		if err := rows.Scan(&term.ID, &term.Taxonomy, &term.Name, &term.Slug, &term.Parent, &term.Count); err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

// TermIDs returns the IDs of every term in a taxonomy. This is the
// fields-only lookup used when resolving an "all" term selector.
func (s *Store) TermIDs(taxonomy string) ([]int64, error) {
	if _, err := s.GetTaxonomy(taxonomy); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT id FROM terms WHERE taxonomy = ? ORDER BY id", taxonomy)
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

// AncestorChain returns the ancestor term IDs of a term, ordered from the
// root down to the immediate parent. Root terms return an empty chain.
//
// Results are memoized until InvalidateCache is called.
func (s *Store) AncestorChain(termID int64) ([]int64, error) {
	if chain, ok := s.ancestorCache[termID]; ok {
		return chain, nil
	}

	term, err := s.GetTerm(termID)
	if err != nil {
		return nil, err
	}

	var chain []int64
	seen := map[int64]bool{termID: true}
	for term.Parent != 0 {
		if seen[term.Parent] {
			return nil, fmt.Errorf("parent cycle detected at term %d", term.Parent)
		}
		seen[term.Parent] = true

		parent, err := s.GetTerm(term.Parent)
		if err != nil {
			return nil, fmt.Errorf("ancestor lookup for term %d: %w", termID, err)
		}
		// Prepend so the chain reads root first.
		chain = append([]int64{parent.ID}, chain...)
		term = parent
	}

	s.ancestorCache[termID] = chain
	return chain, nil
}

// InvalidateCache drops memoized ancestor chains. Batch jobs call this
// between pages to bound memory across long runs.
func (s *Store) InvalidateCache() {
	s.ancestorCache = make(map[int64][]int64)
}
