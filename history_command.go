package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/songdl/internal/errmsg"
)

func newHistoryCommand(app *appContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently acquired songs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.close()

			store, err := app.openHistory()
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpHistoryOpen, err))
			}
			entries, err := store.Recent(limit)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpHistoryList, err))
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No songs acquired yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				size := "-"
				if e.SizeBytes > 0 {
					size = humanize.Bytes(uint64(e.SizeBytes))
				}
				placed := "no"
				if e.Placed {
					placed = "yes"
				}
				rows = append(rows, []string{
					humanize.Time(e.AcquiredAt),
					e.Title,
					e.Artists,
					size,
					placed,
					e.Path,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Title", "Artists", "Size", "Placed", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")
	return cmd
}
