package flags

import (
	"fmt"
	"regexp"
)

var stepNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)

// ValidateLimit validates that limit is non-negative.
func ValidateLimit(v int) error {
	if v < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", v)
	}
	return nil
}

// ValidateStepName validates a step name given on the command line.
func ValidateStepName(v string) error {
	if !stepNamePattern.MatchString(v) {
		return fmt.Errorf("invalid step name %q", v)
	}
	return nil
}
