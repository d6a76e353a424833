package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/codexreader/codex-core/internal/service"
)

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Import documents into the library",
		Long: `Import one or more document files into the library.

Re-importing a file that is already in the library (same name and size)
refreshes its last-read position in the list instead of duplicating it.

Examples:
  codex import thesis.pdf
  codex import ~/papers/*.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := do.MustInvoke[*service.LibraryService](e.injector)

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}

				meta := lib.Add(data, filepath.Base(path), int64(len(data)))
				fmt.Printf("Imported %s (%s)\n", meta.Title, meta.ID)
			}
			return nil
		},
	}
}
