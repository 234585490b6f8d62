package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Long: `Displays entity counts for the store.

Examples:
  canopy stats
  canopy stats --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		stats, err := s.Stats()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"taxonomies":  stats.TaxonomyCount,
				"terms":       stats.TermCount,
				"posts":       stats.PostCount,
				"assignments": stats.AssignmentCount,
			}, &Meta{QueryTimeMs: elapsed})
			return nil
		}

		fmt.Println(ui.Header("Store Statistics"))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Taxonomies: "), ui.Accent.Render(fmt.Sprintf("%d", stats.TaxonomyCount)))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Terms:      "), ui.Accent.Render(fmt.Sprintf("%d", stats.TermCount)))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Posts:      "), ui.Accent.Render(fmt.Sprintf("%d", stats.PostCount)))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Assignments:"), ui.Accent.Render(fmt.Sprintf("%d", stats.AssignmentCount)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
