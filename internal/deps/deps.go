// Package deps checks for the external programs songdl shells out to.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrDependencyMissing is returned when a required program is not installed.
var ErrDependencyMissing = errors.New("dependency missing")

// Requirement defines an external program songdl relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Path        string // resolved executable when available
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Require checks every requirement and returns an ErrDependencyMissing
// error naming each unavailable one.
func Require(requirements []Requirement) ([]Status, error) {
	statuses := CheckBinaries(requirements)
	var missing []string
	for _, s := range statuses {
		if !s.Available {
			missing = append(missing, fmt.Sprintf("%s (%s)", s.Name, s.Detail))
		}
	}
	if len(missing) > 0 {
		return statuses, fmt.Errorf("%w: %s", ErrDependencyMissing, strings.Join(missing, ", "))
	}
	return statuses, nil
}
