package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Taxonomy is a named classification scheme for posts.
type Taxonomy struct {
	Name         string
	Label        string
	Hierarchical bool
}

// CreateTaxonomy registers a new taxonomy.
func (s *Store) CreateTaxonomy(name, label string, hierarchical bool) error {
	if name == "" {
		return fmt.Errorf("taxonomy name is required")
	}
	_, err := s.db.Exec(
		"INSERT INTO taxonomies (name, label, hierarchical) VALUES (?, ?, ?)",
		name, label, boolToInt(hierarchical),
	)
	if err != nil {
		return fmt.Errorf("failed to create taxonomy '%s': %w", name, err)
	}
	return nil
}

// GetTaxonomy returns a taxonomy by name, or ErrTaxonomyNotFound.
func (s *Store) GetTaxonomy(name string) (*Taxonomy, error) {
	var tax Taxonomy
	var hierarchical int
	err := s.db.QueryRow(
		"SELECT name, label, hierarchical FROM taxonomies WHERE name = ?", name,
	).Scan(&tax.Name, &tax.Label, &hierarchical)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaxonomyNotFound
	}
	if err != nil {
		return nil, err
	}
	tax.Hierarchical = hierarchical != 0
	return &tax, nil
}

// ListTaxonomies returns all taxonomies ordered by name.
func (s *Store) ListTaxonomies() ([]Taxonomy, error) {
	rows, err := s.db.Query("SELECT name, label, hierarchical FROM taxonomies ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taxonomies []Taxonomy
	for rows.Next() {
		var tax Taxonomy
		var hierarchical int
		if err := rows.Scan(&tax.Name, &tax.Label, &hierarchical); err != nil {
			return nil, err
		}
		tax.Hierarchical = hierarchical != 0
		taxonomies = append(taxonomies, tax)
	}
	return taxonomies, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
