package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llehouerou/songdl/internal/errmsg"
	"github.com/llehouerou/songdl/internal/notify"
	"github.com/llehouerou/songdl/internal/shell"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	app := newAppContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "songdl",
		Short:         "Search, download and tag songs for your music folder",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.close()
			return runShell(cmd.Context(), app)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Settings file path")

	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newGetCommand(app))
	rootCmd.AddCommand(newHistoryCommand(app))

	return rootCmd
}

func runShell(cmdCtx context.Context, app *appContext) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("songdl needs an interactive terminal; use `songdl get` for line mode")
	}

	ctx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := app.loadOrCreateSettings(shell.NewTermPrompter(), os.Stdout)
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

	app.logger.Info("starting shell", "destination", s.DestinationFolder, "quality", string(s.AudioQuality))
	return shell.Run(ctx, p, *s, notify.New())
}
