// Package cmd implements the codex command-line interface: library
// management and document inspection against the on-disk store.
package cmd

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/codexreader/codex-core/internal/config"
	"github.com/codexreader/codex-core/internal/di"
)

// env holds the wiring shared by all subcommands, built once in the root's
// PersistentPreRunE.
type env struct {
	cfg      *config.Config
	injector *do.RootScope
}

// NewRootCmd creates the root command for codex.
func NewRootCmd() *cobra.Command {
	e := &env{}

	var dataPath, legacyPath, logLevel string

	root := &cobra.Command{
		Use:   "codex",
		Short: "Manage the codex document library",
		Long: `Inspect and manage the codex reading library from the terminal.

codex provides tools to:
- Import documents into the library
- List and remove library entries
- Show reading statistics and streaks
- Dump the stored state of a document`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(nil)
			if err != nil {
				return err
			}
			if dataPath != "" {
				cfg.Storage.DataPath = dataPath
			}
			if legacyPath != "" {
				cfg.Storage.LegacyPath = legacyPath
			}
			if logLevel != "" {
				cfg.Logger.Level = logLevel
			}

			e.cfg = cfg
			e.injector = di.NewContainerWith(cfg)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.injector == nil {
				return nil
			}
			return e.injector.Shutdown()
		},
	}

	root.PersistentFlags().StringVar(&dataPath, "data-path", "", "Directory for the document store")
	root.PersistentFlags().StringVar(&legacyPath, "legacy-path", "", "Path to a legacy-format database")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newImportCmd(e))
	root.AddCommand(newListCmd(e))
	root.AddCommand(newRemoveCmd(e))
	root.AddCommand(newStatsCmd(e))
	root.AddCommand(newInspectCmd(e))

	return root
}
