package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/rollup"
	"github.com/cmorrow/canopy/internal/ui"
)

var rollupPostType string

var rollupCmd = &cobra.Command{
	Use:   "rollup <taxonomy> <term-id>...|all",
	Short: "Tag posts with the ancestors of their assigned terms",
	Long: `Finds every post tagged with the selected terms and additionally tags
each one with all ancestor terms of its assignments that are not already
present. Assignments are only ever added, never removed.

The term selector is either the literal token 'all' (every term in the
taxonomy) or one or more term IDs. With an explicit ID list, ancestor
propagation is scoped to the listed terms: other terms on a matched post
are left alone.

Examples:
  canopy rollup category all
  canopy rollup category 12 34 --post_type=article
  canopy rollup category all --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy := args[0]
		terms := args[1:]

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		rollupCfg := getConfig().Rollup

		var progress *ui.Progress
		opts := rollup.Options{
			Taxonomy: taxonomy,
			Terms:    terms,
			PostType: rollupPostType,
			PageSize: rollupCfg.PageSize,
			Preflight: func(matched int) {
				if !isJSONOutput() {
					progress = ui.NewProgress("Rolling up posts", matched)
				}
			},
			PageDone: func(count int) {
				if progress != nil {
					progress.Advance(count)
				}
			},
		}
		if rollupCfg.SleepMs > 0 {
			opts.Sleep = time.Duration(rollupCfg.SleepMs) * time.Millisecond
		}

		start := time.Now()
		summary, err := rollup.Run(s, opts)
		if progress != nil {
			progress.Done()
		}
		if err != nil {
			return handleRollupError(err)
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			if len(summary.Failures) > 0 {
				warnings := []Warning{{
					Code:    WarnPartialFailure,
					Message: fmt.Sprintf("%d posts failed and were skipped", len(summary.Failures)),
				}}
				outputSuccessWithWarnings(summary, warnings, &Meta{Count: summary.Processed, QueryTimeMs: elapsed})
			} else {
				outputSuccess(summary, &Meta{Count: summary.Processed, QueryTimeMs: elapsed})
			}
			return nil
		}

		for _, failure := range summary.Failures {
			fmt.Println(ui.Warningf("post %d: %s", failure.PostID, failure.Reason))
		}
		fmt.Println(ui.Successf("Rolled up %s across %s: %s added, term counts updated.",
			ui.Count(summary.Processed, "post", "posts"),
			ui.Count(summary.Pages, "page", "pages"),
			ui.Count(summary.TermsAdded, "assignment", "assignments")))
		return nil
	},
}

func handleRollupError(err error) error {
	switch {
	case errors.Is(err, rollup.ErrUnknownTaxonomy):
		return handleError(ErrUnknownTaxonomy, err, "Run 'canopy taxonomy list' to see taxonomies")
	case errors.Is(err, rollup.ErrNonHierarchicalTaxonomy):
		return handleError(ErrNonHierarchicalTaxonomy, err, "Rollup only applies to hierarchical taxonomies")
	case errors.Is(err, rollup.ErrUnknownPostType):
		return handleError(ErrUnknownPostType, err, "Run 'canopy post types' to see content types")
	case errors.Is(err, rollup.ErrInvalidTermID):
		return handleError(ErrInvalidTermID, err, "Term selectors are 'all' or positive term IDs")
	case errors.Is(err, rollup.ErrNoAffectedPosts):
		return handleError(ErrNoAffectedPosts, err, "")
	default:
		return handleError(ErrDatabaseError, err, "")
	}
}

func init() {
	rollupCmd.Flags().StringVar(&rollupPostType, "post_type", "post", "Restrict the rollup to one content type")
	rootCmd.AddCommand(rollupCmd)
}
