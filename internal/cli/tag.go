package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/ui"
)

var tagCmd = &cobra.Command{
	Use:   "tag <post-id> <taxonomy> <term-id>...",
	Short: "Assign terms to a post",
	Long: `Assigns one or more terms to a post. Assignment is additive: the
post's existing terms are kept.

Examples:
  canopy tag 42 category 3
  canopy tag 42 category 3 7 12`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0], "post ID")
		if err != nil {
			return handleErrorMsg(ErrInvalidInput, err.Error(), "")
		}
		taxonomy := args[1]

		termIDs := make([]int64, 0, len(args)-2)
		for _, arg := range args[2:] {
			id, err := parseID(arg, "term ID")
			if err != nil {
				return handleErrorMsg(ErrInvalidTermID, err.Error(), "")
			}
			termIDs = append(termIDs, id)
		}

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		// Terms must live in the named taxonomy before they are attached.
		for _, termID := range termIDs {
			term, err := s.GetTerm(termID)
			if err != nil {
				return handleError(storeErrorCode(err), fmt.Errorf("term %d: %w", termID, err), "")
			}
			if term.Taxonomy != taxonomy {
				return handleErrorMsg(ErrInvalidTermID,
					fmt.Sprintf("term %d belongs to taxonomy '%s', not '%s'", termID, term.Taxonomy, taxonomy), "")
			}
		}

		if err := s.AssignTerms(postID, termIDs); err != nil {
			return handleError(storeErrorCode(err), err, "")
		}

		assigned, err := s.PostTermIDs(postID, taxonomy)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"post_id":  postID,
				"taxonomy": taxonomy,
				"terms":    assigned,
			}, &Meta{Count: len(assigned)})
			return nil
		}

		fmt.Println(ui.Successf("Post %d now has %s in '%s'",
			postID, ui.Count(len(assigned), "term", "terms"), taxonomy))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
}
