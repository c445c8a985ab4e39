package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/errmsg"
	"github.com/llehouerou/songdl/internal/pipeline"
	"github.com/llehouerou/songdl/internal/shell"
)

func newGetCommand(app *appContext) *cobra.Command {
	var artist string
	var pick int

	cmd := &cobra.Command{
		Use:   "get <title>",
		Short: "Run one search-download-tag cycle without the TUI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			out := cmd.OutOrStdout()
			prompter := shell.NewLinePrompter(cmd.InOrStdin(), out)

			s, err := app.loadOrCreateSettings(prompter, out)
			if err != nil {
				return err
			}
			if err := app.initLogger(s, true); err != nil {
				return err
			}
			p, err := app.newPipeline(s)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpInitialize, err))
			}

			choose := prompter.Chooser()
			if pick > 0 {
				choose = func(cands []catalog.Candidate) (string, error) {
					fmt.Fprint(out, shell.FormatCandidates(cands))
					return strconv.Itoa(pick), nil
				}
			}

			q := catalog.Query{Title: strings.Join(args, " "), Artist: artist}
			outcome, err := p.Acquire(ctx, *s, q, choose)
			if err != nil {
				return errors.New(pipeline.Message(err))
			}
			if outcome.NoResults {
				fmt.Fprintf(out, "No results for %s\n", q.String())
				return nil
			}

			res := outcome.Result
			fmt.Fprintf(out, "Saved %s", res.Path)
			if res.SizeBytes > 0 {
				fmt.Fprintf(out, " (%s)", humanize.Bytes(uint64(res.SizeBytes)))
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Title:  %s\n  Artist: %s\n", res.Tag.Title, res.Tag.Artist)
			if !res.Placed {
				fmt.Fprintln(cmd.ErrOrStderr(), "note: no destination folder configured; run `songdl config --folder <dir>` to set one")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Artist to narrow the search")
	cmd.Flags().IntVarP(&pick, "pick", "p", 0, "Pick the Nth result without asking")
	return cmd
}
