package cli

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/cmorrow/canopy/docs"
	"github.com/cmorrow/canopy/internal/ui"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse bundled guides",
	Long: `Lists or renders the guides bundled with the canopy binary.

Examples:
  canopy docs            # list topics
  canopy docs rollup     # render the rollup guide`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := docsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Println(ui.Header("Guides"))
			for _, topic := range topics {
				fmt.Printf("  %s\n", ui.Accent.Render(topic))
			}
			fmt.Println(ui.Hint("\nRun 'canopy docs <topic>' to read one"))
			return nil
		}

		topic := args[0]
		content, err := builtindocs.FS.ReadFile(path.Join("guide", topic+".md"))
		if err != nil {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown topic '%s'", topic),
				fmt.Sprintf("Known topics: %s", strings.Join(topics, ", ")))
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"topic":    topic,
				"markdown": string(content),
			}, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(string(content), display.TermWidth)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Print(rendered)
		return nil
	},
}

func docsTopics() ([]string, error) {
	var topics []string
	err := fs.WalkDir(builtindocs.FS, "guide", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".md") {
			topics = append(topics, strings.TrimSuffix(path.Base(p), ".md"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(topics)
	return topics, nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
