package cmd

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/codexreader/codex-core/internal/di/providers"
	"github.com/codexreader/codex-core/internal/errors"
	"github.com/codexreader/codex-core/internal/service"
	"github.com/codexreader/codex-core/internal/store"
)

func newStatsCmd(e *env) *cobra.Command {
	var sessions bool

	cmd := &cobra.Command{
		Use:   "stats <id>",
		Short: "Show reading statistics for a document",
		Long: `Display the reading statistics recorded for a document: totals,
per-session averages and the current and longest daily reading streaks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := do.MustInvoke[*service.LibraryService](e.injector)
			sh := do.MustInvoke[*providers.StoreHandle](e.injector)

			id := args[0]
			meta := lib.Get(id)
			if meta == nil {
				return errors.NotFoundf("no document with ID %s", id)
			}

			state, err := sh.LoadState(id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					fmt.Printf("%s has never been opened.\n", meta.Title)
					return nil
				}
				return err
			}

			s := state.Stats
			fmt.Printf("Reading statistics for %s\n\n", meta.Title)
			fmt.Printf("  Total minutes read:  %d\n", s.TotalMinutesRead)
			fmt.Printf("  Total pages read:    %d\n", s.TotalPagesRead)
			fmt.Printf("  Reading days:        %d\n", s.SessionsCount)
			fmt.Printf("  Avg pages per day:   %d\n", s.AveragePagesPerSession)
			fmt.Printf("  Current streak:      %d\n", s.CurrentStreak)
			fmt.Printf("  Longest streak:      %d\n", s.LongestStreak)

			if sessions && len(s.Sessions) > 0 {
				fmt.Println("\n  Sessions:")
				for _, sess := range s.Sessions {
					fmt.Printf("    %s  %3d min  %3d pages\n", sess.Date, sess.MinutesRead, sess.PagesRead)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sessions, "sessions", false, "Include the per-day session list")

	return cmd
}
