package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"scribe/internal/runstore"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transcription runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := runstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([]table.Row, 0, len(runs))
			for _, run := range runs {
				detail := run.SubtitlePath
				if run.Status == runstore.StatusFailed {
					detail = run.Error
				}
				rows = append(rows, table.Row{
					run.ID,
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.VideoPath,
					run.Backend,
					run.Status,
					run.Segments,
					run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				table.Row{"ID", "Started", "Video", "Backend", "Status", "Segments", "Elapsed", "Detail"},
				rows, 1, 6, 7,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
