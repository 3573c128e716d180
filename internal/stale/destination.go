package stale

import (
	"strings"
)

// Destination is the destination side of a FileGroup: either a single glob
// pattern or an ordered list of them. Build one with SinglePattern or
// PatternList.
type Destination struct {
	patterns []string
	list     bool
}

// SinglePattern returns a destination made of one glob pattern.
func SinglePattern(pattern string) Destination {
	return Destination{patterns: []string{pattern}}
}

// PatternList returns a destination made of an ordered list of patterns.
func PatternList(patterns ...string) Destination {
	return Destination{patterns: append([]string(nil), patterns...), list: true}
}

// Patterns returns the patterns in declaration order.
func (d Destination) Patterns() []string {
	return append([]string(nil), d.patterns...)
}

// IsList reports whether the destination was declared as a pattern list.
func (d Destination) IsList() bool {
	return d.list
}

// IsZero reports whether no pattern was declared at all.
func (d Destination) IsZero() bool {
	return len(d.patterns) == 0
}

func (d Destination) String() string {
	if !d.list && len(d.patterns) == 1 {
		return d.patterns[0]
	}
	return "[" + strings.Join(d.patterns, ", ") + "]"
}

// isDirPattern reports whether a pattern names directories whose entries
// are compared by source base name (a trailing slash, like "build/multi/").
func isDirPattern(pattern string) bool {
	return len(pattern) > 1 && strings.HasSuffix(pattern, "/")
}
