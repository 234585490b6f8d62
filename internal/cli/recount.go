package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/ui"
)

var recountCmd = &cobra.Command{
	Use:   "recount <taxonomy>",
	Short: "Recompute term assignment counts",
	Long: `Recomputes the assignment count of every term in a taxonomy in a
single pass. Useful after external edits to the database.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy := args[0]

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		if err := s.RecountTerms(taxonomy); err != nil {
			return handleError(storeErrorCode(err), err, "Run 'canopy taxonomy list' to see taxonomies")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"taxonomy": taxonomy}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Recounted terms in '%s'", taxonomy))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recountCmd)
}
