package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/ui"
)

var (
	postStatus   string
	postTypeFlag string
	postLabel    string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage content items",
}

var postAddCmd = &cobra.Command{
	Use:   "add <type> [title]",
	Short: "Create a content item",
	Long: `Creates a content item of the given type.

Examples:
  canopy post add post "Hello World"
  canopy post add page "About" --status draft`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		postType := args[0]
		title := ""
		if len(args) > 1 {
			title = args[1]
		}

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		id, err := s.CreatePost(postType, postStatus, title)
		if err != nil {
			return handleError(storeErrorCode(err), err, "Run 'canopy post types' to see content types")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"id":        id,
				"post_type": postType,
				"status":    postStatus,
				"title":     title,
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Created %s %d", postType, id))
		return nil
	},
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List content items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		start := time.Now()
		posts, err := s.ListPosts(postTypeFlag)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			items := make([]map[string]interface{}, len(posts))
			for i, post := range posts {
				items[i] = map[string]interface{}{
					"id":        post.ID,
					"post_type": post.PostType,
					"status":    post.Status,
					"title":     post.Title,
				}
			}
			outputSuccess(map[string]interface{}{"posts": items}, &Meta{Count: len(items), QueryTimeMs: elapsed})
			return nil
		}

		if len(posts) == 0 {
			fmt.Println("No posts found.")
			return nil
		}

		fmt.Printf("Posts (%d):\n\n", len(posts))
		for _, post := range posts {
			title := post.Title
			if title == "" {
				title = ui.Muted.Render("(untitled)")
			}
			fmt.Printf("  %4d  %-10s %-10s %s\n", post.ID,
				ui.Muted.Render(post.PostType), ui.Muted.Render(post.Status), title)
		}
		return nil
	},
}

var postTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered content types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		types, err := s.ListPostTypes()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			items := make([]map[string]interface{}, len(types))
			for i, pt := range types {
				items[i] = map[string]interface{}{"name": pt.Name, "label": pt.Label}
			}
			outputSuccess(map[string]interface{}{"post_types": items}, &Meta{Count: len(items)})
			return nil
		}

		for _, pt := range types {
			fmt.Printf("  %-12s %s\n", ui.Accent.Render(pt.Name), ui.Muted.Render(pt.Label))
		}
		return nil
	},
}

var postTypeAddCmd = &cobra.Command{
	Use:   "type-add <name>",
	Short: "Register a new content type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		if err := s.CreatePostType(name, postLabel); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"name": name, "label": postLabel}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Registered content type '%s'", name))
		return nil
	},
}

func init() {
	postAddCmd.Flags().StringVar(&postStatus, "status", "publish", "Post status")
	postListCmd.Flags().StringVar(&postTypeFlag, "post_type", "", "Restrict to one content type")
	postTypeAddCmd.Flags().StringVar(&postLabel, "label", "", "Human-readable label")
	postCmd.AddCommand(postAddCmd)
	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postTypesCmd)
	postCmd.AddCommand(postTypeAddCmd)
	rootCmd.AddCommand(postCmd)
}
