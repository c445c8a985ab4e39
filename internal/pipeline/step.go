package pipeline

import (
	"errors"
	"fmt"

	"github.com/llehouerou/songdl/internal/errmsg"
)

// Step names a stage of the acquisition cycle.
type Step string

const (
	StepSearch   Step = "search"
	StepSelect   Step = "selection"
	StepDownload Step = "download"
	StepTag      Step = "tagging"
	StepPlace    Step = "placement"
)

// Op returns the user-facing operation for the step.
func (s Step) Op() errmsg.Op {
	switch s {
	case StepSearch:
		return errmsg.OpSearch
	case StepSelect:
		return errmsg.OpSelect
	case StepDownload:
		return errmsg.OpDownload
	case StepTag:
		return errmsg.OpTag
	case StepPlace:
		return errmsg.OpPlace
	default:
		return errmsg.Op(s)
	}
}

// StepError reports which step of the cycle failed and why.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Message renders the error for display, e.g.
// "Failed to download audio: download failed: Video unavailable".
func (e *StepError) Message() string {
	return errmsg.Format(e.Step.Op(), e.Err)
}

// Message renders any cycle error for display; errors that did not come
// from a step are returned as is.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *StepError
	if errors.As(err, &se) {
		return se.Message()
	}
	return err.Error()
}
