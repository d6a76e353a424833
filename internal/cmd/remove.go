package cmd

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/codexreader/codex-core/internal/service"
)

func newRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Remove documents from the library",
		Long: `Remove documents and everything stored for them: the file bytes,
the reading state (position, highlights, bookmarks, statistics) and the
library entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := do.MustInvoke[*service.LibraryService](e.injector)

			for _, id := range args {
				meta := lib.Get(id)
				if meta == nil {
					fmt.Printf("No document with ID %s\n", id)
					continue
				}
				lib.Remove(id)
				fmt.Printf("Removed %s\n", meta.Title)
			}
			return nil
		},
	}
}
