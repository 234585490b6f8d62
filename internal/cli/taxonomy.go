package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/ui"
)

var (
	taxonomyLabel        string
	taxonomyHierarchical bool
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Manage taxonomies",
}

var taxonomyAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new taxonomy",
	Long: `Registers a new taxonomy.

Examples:
  canopy taxonomy add category --hierarchical --label Categories
  canopy taxonomy add format`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		if err := s.CreateTaxonomy(name, taxonomyLabel, taxonomyHierarchical); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":         name,
				"hierarchical": taxonomyHierarchical,
			}, nil)
			return nil
		}

		kind := "flat"
		if taxonomyHierarchical {
			kind = "hierarchical"
		}
		fmt.Println(ui.Successf("Created %s taxonomy '%s'", kind, name))
		return nil
	},
}

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List taxonomies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		start := time.Now()
		taxonomies, err := s.ListTaxonomies()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			items := make([]map[string]interface{}, len(taxonomies))
			for i, tax := range taxonomies {
				items[i] = map[string]interface{}{
					"name":         tax.Name,
					"label":        tax.Label,
					"hierarchical": tax.Hierarchical,
				}
			}
			outputSuccess(map[string]interface{}{"taxonomies": items}, &Meta{Count: len(items), QueryTimeMs: elapsed})
			return nil
		}

		if len(taxonomies) == 0 {
			fmt.Println("No taxonomies registered.")
			fmt.Println(ui.Hint("Run 'canopy taxonomy add <name>' to create one"))
			return nil
		}

		fmt.Printf("Taxonomies (%d):\n\n", len(taxonomies))
		for _, tax := range taxonomies {
			kind := "flat"
			if tax.Hierarchical {
				kind = "hierarchical"
			}
			fmt.Printf("  %-20s %s\n", ui.Accent.Render(tax.Name), ui.Muted.Render(kind))
		}
		return nil
	},
}

func init() {
	taxonomyAddCmd.Flags().StringVar(&taxonomyLabel, "label", "", "Human-readable label")
	taxonomyAddCmd.Flags().BoolVar(&taxonomyHierarchical, "hierarchical", false, "Allow parent/child term relationships")
	taxonomyCmd.AddCommand(taxonomyAddCmd)
	taxonomyCmd.AddCommand(taxonomyListCmd)
	rootCmd.AddCommand(taxonomyCmd)
}
