package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/store"
	"github.com/cmorrow/canopy/internal/ui"
)

var (
	termParent int64
	termSlug   string
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Manage terms within a taxonomy",
}

var termAddCmd = &cobra.Command{
	Use:   "add <taxonomy> <name>",
	Short: "Add a term to a taxonomy",
	Long: `Adds a term to a taxonomy. The slug is derived from the name unless
--slug is given. Use --parent to place the term under an existing term
in a hierarchical taxonomy.

Examples:
  canopy term add category News
  canopy term add category "Local News" --parent 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy, name := args[0], args[1]

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		id, err := s.CreateTerm(taxonomy, name, termSlug, termParent)
		if err != nil {
			return handleError(storeErrorCode(err), err, "")
		}

		term, err := s.GetTerm(id)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(termView(*term), nil)
			return nil
		}

		fmt.Println(ui.Successf("Created term '%s' (%d) in '%s'", term.Name, term.ID, taxonomy))
		return nil
	},
}

var termListCmd = &cobra.Command{
	Use:   "list <taxonomy>",
	Short: "List terms in a taxonomy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy := args[0]

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		start := time.Now()
		terms, err := s.ListTerms(taxonomy)
		if err != nil {
			return handleError(storeErrorCode(err), err, "Run 'canopy taxonomy list' to see taxonomies")
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			items := make([]map[string]interface{}, len(terms))
			for i, term := range terms {
				items[i] = termView(term)
			}
			outputSuccess(map[string]interface{}{
				"taxonomy": taxonomy,
				"terms":    items,
			}, &Meta{Count: len(items), QueryTimeMs: elapsed})
			return nil
		}

		if len(terms) == 0 {
			fmt.Printf("No terms in '%s'.\n", taxonomy)
			return nil
		}

		fmt.Printf("Terms in '%s' (%d):\n\n", taxonomy, len(terms))
		for _, term := range terms {
			parent := ""
			if term.Parent != 0 {
				parent = ui.Muted.Render(fmt.Sprintf("parent=%d", term.Parent))
			}
			fmt.Printf("  %4d  %-24s %-24s %s %s\n",
				term.ID, ui.Accent.Render(term.Name), ui.Muted.Render(term.Slug),
				ui.Muted.Render(fmt.Sprintf("count=%d", term.Count)), parent)
		}
		return nil
	},
}

var termTreeCmd = &cobra.Command{
	Use:   "tree <taxonomy>",
	Short: "Show a taxonomy's terms as a tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy := args[0]

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		terms, err := s.ListTerms(taxonomy)
		if err != nil {
			return handleError(storeErrorCode(err), err, "Run 'canopy taxonomy list' to see taxonomies")
		}

		if isJSONOutput() {
			items := make([]map[string]interface{}, len(terms))
			for i, term := range terms {
				items[i] = termView(term)
			}
			outputSuccess(map[string]interface{}{
				"taxonomy": taxonomy,
				"terms":    items,
			}, &Meta{Count: len(items)})
			return nil
		}

		if len(terms) == 0 {
			fmt.Printf("No terms in '%s'.\n", taxonomy)
			return nil
		}

		children := make(map[int64][]store.Term)
		for _, term := range terms {
			children[term.Parent] = append(children[term.Parent], term)
		}
		printTermTree(children, 0, 0)
		return nil
	},
}

func printTermTree(children map[int64][]store.Term, parent int64, depth int) {
	for _, term := range children[parent] {
		indent := ""
		for i := 0; i < depth; i++ {
			indent += "  "
		}
		fmt.Printf("%s%s %s %s\n", indent,
			ui.Accent.Render(term.Name),
			ui.Muted.Render(fmt.Sprintf("(%d)", term.ID)),
			ui.Muted.Render(fmt.Sprintf("count=%d", term.Count)))
		printTermTree(children, term.ID, depth+1)
	}
}

func termView(term store.Term) map[string]interface{} {
	return map[string]interface{}{
		"id":       term.ID,
		"taxonomy": term.Taxonomy,
		"name":     term.Name,
		"slug":     term.Slug,
		"parent":   term.Parent,
		"count":    term.Count,
	}
}

func init() {
	termAddCmd.Flags().Int64Var(&termParent, "parent", 0, "Parent term ID (hierarchical taxonomies only)")
	termAddCmd.Flags().StringVar(&termSlug, "slug", "", "Explicit slug (derived from name when omitted)")
	termCmd.AddCommand(termAddCmd)
	termCmd.AddCommand(termListCmd)
	termCmd.AddCommand(termTreeCmd)
	rootCmd.AddCommand(termCmd)
}
