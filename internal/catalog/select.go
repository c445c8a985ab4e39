package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Select returns the candidate at the 1-based index shown to the user.
func Select(candidates []Candidate, index int) (Candidate, error) {
	if index < 1 || index > len(candidates) {
		return Candidate{}, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidSelection, index, len(candidates))
	}
	return candidates[index-1], nil
}

// SelectInput parses a typed choice such as "3" and resolves it with Select.
func SelectInput(candidates []Candidate, input string) (Candidate, error) {
	input = strings.TrimSpace(input)
	index, err := strconv.Atoi(input)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, input)
	}
	return Select(candidates, index)
}
