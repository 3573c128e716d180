// Package flags provides common flag types and validators for the CLI.
package flags

import (
	"flag"
	"fmt"
	"strings"
)

// BoolFlag is a boolean flag that tracks whether it was explicitly set.
// This is useful for differentiating between an unset flag and a flag explicitly set to false.
type BoolFlag struct {
	Value  bool
	WasSet bool
}

// Set parses and sets the boolean value.
func (b *BoolFlag) Set(s string) error {
	if s == "" {
		b.Value = true
		b.WasSet = true
		return nil
	}
	switch strings.ToLower(s) {
	case "true", "1":
		b.Value = true
	case "false", "0":
		b.Value = false
	default:
		return fmt.Errorf("invalid boolean %q", s)
	}
	b.WasSet = true
	return nil
}

// String returns the string representation of the boolean value.
func (b *BoolFlag) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// IsBoolFlag returns true, indicating this is a boolean flag that doesn't require a value.
func (b *BoolFlag) IsBoolFlag() bool { return true }

// Resolve returns the flag value when it was given, otherwise fallback.
func (b BoolFlag) Resolve(fallback bool) bool {
	if b.WasSet {
		return b.Value
	}
	return fallback
}

// ParseInterspersed parses fs allowing flags after positional arguments,
// so that "run foo --dry-run" works like "run --dry-run foo". A bare "--"
// ends flag parsing.
func ParseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
