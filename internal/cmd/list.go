package cmd

import (
	"encoding/json/v2"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/codexreader/codex-core/internal/service"
)

func newListCmd(e *env) *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents in the library",
		Long: `List library documents, most recently read first.

Examples:
  codex list             # List all documents
  codex list --limit 10  # Only the 10 most recent
  codex list --json      # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := do.MustInvoke[*service.LibraryService](e.injector)

			docs := lib.List()
			if limit > 0 && len(docs) > limit {
				docs = docs[:limit]
			}

			if len(docs) == 0 {
				fmt.Println("No documents in library.")
				fmt.Println("Use 'codex import <file>' to add documents.")
				return nil
			}

			if asJSON {
				return json.MarshalWrite(os.Stdout, docs)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPAGES\tLAST READ")
			for _, d := range docs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					d.ID, d.Title, d.TotalPages,
					time.UnixMilli(d.LastReadAt).Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit results")

	return cmd
}
