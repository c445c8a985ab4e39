package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Setup questions, asked in this order.
const (
	QuestionDestination = "Path to your GTA user music folder (or any destination folder, empty to skip)"
	QuestionQuality     = "Audio quality: (1) high, (2) medium, enter for default"
	QuestionConvention  = "(1) Tag audio files for GTA, (2) tag normally (default 1)"
)

// Prompter asks the user a single question and returns the raw answer.
type Prompter interface {
	Ask(question string) (string, error)
}

// Answers are the raw setup answers, from prompts or from flags.
type Answers struct {
	Destination string
	Quality     string
	Convention  string
}

// FromAnswers builds a settings record from setup answers. Engine and log
// options are carried over from base; a nil base starts from Defaults.
func FromAnswers(base *Settings, a Answers) (*Settings, error) {
	dest, err := validateDestination(a.Destination)
	if err != nil {
		return nil, err
	}

	s := Defaults()
	if base != nil {
		s.Engine = base.Engine
		s.Log = base.Log
	}
	s.DestinationFolder = dest
	s.AudioQuality = QualityFromChoice(a.Quality)
	s.GameConvention = conventionFromChoice(a.Convention)
	return s, nil
}

// CreateInteractively asks the setup questions through p. An invalid
// destination fails before the remaining questions are asked.
func CreateInteractively(base *Settings, p Prompter) (*Settings, error) {
	var a Answers
	var err error

	if a.Destination, err = p.Ask(QuestionDestination); err != nil {
		return nil, err
	}
	if _, err := validateDestination(a.Destination); err != nil {
		return nil, err
	}
	if a.Quality, err = p.Ask(QuestionQuality); err != nil {
		return nil, err
	}
	if a.Convention, err = p.Ask(QuestionConvention); err != nil {
		return nil, err
	}

	return FromAnswers(base, a)
}

// validateDestination returns the absolute destination, or "" for no
// placement. Only checked here, at creation time.
func validateDestination(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	path := expandPath(input)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDestination, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidDestination, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDestination, err)
	}
	return abs, nil
}

func conventionFromChoice(choice string) bool {
	return strings.TrimSpace(choice) != "2"
}
