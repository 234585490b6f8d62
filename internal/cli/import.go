package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmorrow/canopy/internal/store"
	"github.com/cmorrow/canopy/internal/ui"
)

// importFile is the YAML shape accepted by 'canopy import'.
type importFile struct {
	Taxonomies []importTaxonomy `yaml:"taxonomies"`
}

type importTaxonomy struct {
	Name         string       `yaml:"name"`
	Label        string       `yaml:"label"`
	Hierarchical bool         `yaml:"hierarchical"`
	Terms        []importTerm `yaml:"terms"`
}

type importTerm struct {
	Name  string       `yaml:"name"`
	Slug  string       `yaml:"slug"`
	Terms []importTerm `yaml:"terms"`
}

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Seed taxonomies and term trees from a YAML file",
	Long: `Seeds taxonomies and nested term trees from a YAML file. Existing
taxonomies are reused; terms are always created.

File format:

  taxonomies:
    - name: category
      label: Categories
      hierarchical: true
      terms:
        - name: News
          terms:
            - name: Local News`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		var file importFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return handleError(ErrImportInvalid, fmt.Errorf("failed to parse %s: %w", path, err), "")
		}
		if len(file.Taxonomies) == 0 {
			return handleErrorMsg(ErrImportInvalid, "no taxonomies found in import file", "")
		}

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		taxonomies := 0
		terms := 0
		for _, tax := range file.Taxonomies {
			if tax.Name == "" {
				return handleErrorMsg(ErrImportInvalid, "taxonomy entry is missing a name", "")
			}

			_, lookupErr := s.GetTaxonomy(tax.Name)
			if errors.Is(lookupErr, store.ErrTaxonomyNotFound) {
				if err := s.CreateTaxonomy(tax.Name, tax.Label, tax.Hierarchical); err != nil {
					return handleError(ErrDatabaseError, err, "")
				}
				taxonomies++
			} else if lookupErr != nil {
				return handleError(ErrDatabaseError, lookupErr, "")
			}

			created, err := importTerms(s, tax.Name, tax.Terms, 0)
			if err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
			terms += created
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"taxonomies_created": taxonomies,
				"terms_created":      terms,
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Imported %s and %s",
			ui.Count(taxonomies, "taxonomy", "taxonomies"),
			ui.Count(terms, "term", "terms")))
		return nil
	},
}

func importTerms(s *store.Store, taxonomy string, terms []importTerm, parent int64) (int, error) {
	created := 0
	for _, term := range terms {
		if term.Name == "" {
			return created, fmt.Errorf("term entry in '%s' is missing a name", taxonomy)
		}
		id, err := s.CreateTerm(taxonomy, term.Name, term.Slug, parent)
		if err != nil {
			return created, err
		}
		created++

		childCount, err := importTerms(s, taxonomy, term.Terms, id)
		created += childCount
		if err != nil {
			return created, err
		}
	}
	return created, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
