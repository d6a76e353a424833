package cmd

import (
	"encoding/json/v2"
	"fmt"
	"os"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/codexreader/codex-core/internal/di/providers"
	"github.com/codexreader/codex-core/internal/errors"
	"github.com/codexreader/codex-core/internal/service"
	"github.com/codexreader/codex-core/internal/store"
)

func newInspectCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <id>",
		Short: "Dump the stored state of a document",
		Long: `Print a document's metadata record and its full persisted state
(position, highlights, bookmarks, settings, statistics) as JSON. Useful for
debugging the store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := do.MustInvoke[*service.LibraryService](e.injector)
			sh := do.MustInvoke[*providers.StoreHandle](e.injector)

			id := args[0]
			meta := lib.Get(id)
			if meta == nil {
				return errors.NotFoundf("no document with ID %s", id)
			}

			fmt.Println("=== Metadata ===")
			if err := json.MarshalWrite(os.Stdout, meta); err != nil {
				return err
			}
			fmt.Println()

			state, err := sh.LoadState(id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					fmt.Println("No stored state (never opened).")
					return nil
				}
				return err
			}

			fmt.Println("=== State ===")
			if err := json.MarshalWrite(os.Stdout, state); err != nil {
				return err
			}
			fmt.Println()
			return nil
		},
	}
}
