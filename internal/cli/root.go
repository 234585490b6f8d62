// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmorrow/canopy/internal/config"
)

var (
	// Global flags
	storeName  string // Named store from config
	dbPathFlag string // Explicit database path (rare)
	configPath string

	// Resolved values
	resolvedDBPath string
	cfg            *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Canopy - a taxonomy-aware content store",
	Long: `Canopy is a small content store with hierarchical taxonomies and one
headline administrative operation: rolling a post's term assignments up
so every ancestor of an assigned term is also assigned.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store resolution for commands that don't need one
		switch cmd.Name() {
		case "init", "completion", "help", "version", "docs":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Resolve database path: explicit path > named store > default
		if dbPathFlag != "" {
			resolvedDBPath = dbPathFlag
		} else {
			resolvedDBPath, err = cfg.GetStorePath(storeName)
			if err != nil {
				if storeName != "" {
					return fmt.Errorf("store '%s' not found in config\n\nAdd it under [stores] in %s", storeName, config.DefaultPath())
				}
				return fmt.Errorf(`no store specified

Either:
  1. Use --store <name> (from config)
  2. Use --db /path/to/store.db
  3. Set default_store in %s
  4. Run 'canopy init /path/to/store.db' to create one`, config.DefaultPath())
			}
		}

		if _, err := os.Stat(resolvedDBPath); os.IsNotExist(err) {
			return fmt.Errorf("store not found: %s\n\nRun 'canopy init %s' to create it", resolvedDBPath, resolvedDBPath)
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&storeName, "store", "s", "", "Named store from config")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Explicit path to store database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getDBPath returns the resolved store database path.
func getDBPath() string {
	return resolvedDBPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func loadGlobalConfig() (*config.Config, error) {
	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}
	return loadedCfg, nil
}
