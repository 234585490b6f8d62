package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/config"
	"github.com/cmorrow/canopy/internal/store"
	"github.com/cmorrow/canopy/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create a new store database",
	Long: `Creates a new store database at the specified path, with the schema
and built-in content types in place.

To make the new store the default, add it to ` + "`[stores]`" + ` in
your config and set default_store:

  default_store = "main"

  [stores]
  main = "/path/to/store.db"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if _, err := os.Stat(path); err == nil {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("store already exists: %s", path), "")
		}

		s, err := store.Open(path)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer s.Close()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Created store at %s", path))
		fmt.Println(ui.Hint(fmt.Sprintf("Add it to %s to use it by name", config.DefaultPath())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
