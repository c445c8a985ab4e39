package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/songdl/internal/config"
	"github.com/llehouerou/songdl/internal/errmsg"
	"github.com/llehouerou/songdl/internal/shell"
)

func newConfigCommand(app *appContext) *cobra.Command {
	var folder, quality, mode string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or change the settings",
		Long: "Create or change the settings. Without flags the setup questions are asked again;\n" +
			"with flags only the given values change.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.close()

			path, err := app.settingsPath()
			if err != nil {
				return err
			}
			current, err := config.Load(path)
			if err != nil && !errors.Is(err, config.ErrNotConfigured) {
				// A corrupt record is replaced only through explicit reconfiguration.
				fmt.Fprintf(cmd.ErrOrStderr(), "warn: %s\n", errmsg.FormatWith(errmsg.OpSettingsLoad, path, err))
				current = nil
			}

			flags := cmd.Flags()
			var s *config.Settings
			if flags.Changed("folder") || flags.Changed("quality") || flags.Changed("mode") {
				a := answersFrom(current)
				if flags.Changed("folder") {
					a.Destination = folder
				}
				if flags.Changed("quality") {
					a.Quality = qualityChoice(quality)
				}
				if flags.Changed("mode") {
					a.Convention = conventionChoice(mode)
				}
				s, err = config.FromAnswers(current, a)
			} else {
				s, err = config.CreateInteractively(current, newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
			}
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpSettingsCreate, err))
			}

			if err := s.Save(path); err != nil {
				return errors.New(errmsg.Format(errmsg.OpSettingsSave, err))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Settings saved to %s\n", path)
			printSettings(out, s)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Destination folder (empty for none)")
	cmd.Flags().StringVar(&quality, "quality", "", "Audio quality: high, medium or default")
	cmd.Flags().StringVar(&mode, "mode", "", "Tagging convention: gta or plain")
	return cmd
}

// newPrompter picks the TUI prompt on a terminal and plain lines otherwise.
func newPrompter(in io.Reader, out io.Writer) config.Prompter {
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return shell.NewTermPrompter()
	}
	return shell.NewLinePrompter(in, out)
}

// answersFrom turns existing settings back into setup answers so flags can
// change one value and keep the others.
func answersFrom(s *config.Settings) config.Answers {
	if s == nil {
		return config.Answers{}
	}
	a := config.Answers{
		Destination: s.DestinationFolder,
		Convention:  "1",
	}
	switch s.AudioQuality {
	case config.QualityHigh:
		a.Quality = "1"
	case config.QualityMedium:
		a.Quality = "2"
	}
	if !s.GameConvention {
		a.Convention = "2"
	}
	return a
}

func qualityChoice(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high", "1":
		return "1"
	case "medium", "2":
		return "2"
	default:
		return ""
	}
}

func conventionChoice(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "plain", "normal", "2":
		return "2"
	default:
		return "1"
	}
}

func printSettings(w io.Writer, s *config.Settings) {
	dest := s.DestinationFolder
	if dest == "" {
		dest = "(none, files stay in " + s.DownloadDir() + ")"
	}
	mode := "gta"
	if !s.GameConvention {
		mode = "plain"
	}
	fmt.Fprintf(w, "  Destination: %s\n", dest)
	fmt.Fprintf(w, "  Quality:     %s\n", s.AudioQuality.Label())
	fmt.Fprintf(w, "  Tagging:     %s\n", mode)
}
