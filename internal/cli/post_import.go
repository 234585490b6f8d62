package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/frontmatter"
	"github.com/cmorrow/canopy/internal/store"
	"github.com/cmorrow/canopy/internal/ui"
)

var postImportCmd = &cobra.Command{
	Use:   "import <taxonomy> <file.md>...",
	Short: "Import markdown files as posts",
	Long: `Imports markdown files as posts. YAML frontmatter supplies the title,
post_type, status, and term slugs (resolved within the given taxonomy);
when the title is absent, the first heading is used, then the filename.

Example frontmatter:

  ---
  title: Storm Warning
  post_type: post
  status: publish
  terms:
    - local-news
  ---

Files with unknown term slugs are skipped with a warning rather than
aborting the whole import.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy := args[0]
		files := args[1:]

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		if _, err := s.GetTaxonomy(taxonomy); err != nil {
			return handleError(storeErrorCode(err), err, "Run 'canopy taxonomy list' to see taxonomies")
		}

		imported := 0
		var warnings []Warning
		for _, path := range files {
			postID, err := importPostFile(s, taxonomy, path)
			if err != nil {
				warnings = append(warnings, Warning{
					Code:    WarnSkipped,
					Message: fmt.Sprintf("%s: %v", path, err),
				})
				continue
			}
			imported++
			if !isJSONOutput() {
				fmt.Printf("  %s %s %s\n", ui.SymbolSuccess, path, ui.Muted.Render(fmt.Sprintf("(post %d)", postID)))
			}
		}

		if isJSONOutput() {
			data := map[string]interface{}{
				"imported": imported,
				"skipped":  len(warnings),
			}
			if len(warnings) > 0 {
				outputSuccessWithWarnings(data, warnings, &Meta{Count: imported})
			} else {
				outputSuccess(data, &Meta{Count: imported})
			}
			return nil
		}

		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		fmt.Println(ui.Successf("Imported %s", ui.Count(imported, "post", "posts")))
		return nil
	},
}

func importPostFile(s *store.Store, taxonomy, path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	fm, body, err := frontmatter.Parse(string(data))
	if err != nil {
		return 0, err
	}
	if fm == nil {
		fm = &frontmatter.Frontmatter{}
	}

	postType := fm.PostType
	if postType == "" {
		postType = "post"
	}

	title := fm.Title
	if title == "" {
		title = frontmatter.FirstHeading(body)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	// Resolve slugs before creating anything, so bad files skip cleanly.
	termIDs := make([]int64, 0, len(fm.Terms))
	for _, slug := range fm.Terms {
		term, err := s.GetTermBySlug(taxonomy, slug)
		if errors.Is(err, store.ErrTermNotFound) {
			return 0, fmt.Errorf("unknown term slug '%s' in taxonomy '%s'", slug, taxonomy)
		}
		if err != nil {
			return 0, err
		}
		termIDs = append(termIDs, term.ID)
	}

	postID, err := s.CreatePost(postType, fm.Status, title)
	if err != nil {
		return 0, err
	}
	if len(termIDs) > 0 {
		if err := s.AssignTerms(postID, termIDs); err != nil {
			return 0, err
		}
	}
	return postID, nil
}

func init() {
	postCmd.AddCommand(postImportCmd)
}
