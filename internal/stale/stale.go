// Package stale decides whether the destinations of a build step are older
// than its sources by comparing modification times.
//
// Evaluation is sequential and ordered: groups in declaration order,
// destinations before sources within a group, sources in listed order. The
// first source found strictly newer than its group's newest destination
// ends the evaluation for every remaining source and group.
package stale

import (
	"context"
	"path/filepath"
	"time"

	"github.com/mehmetkoksal-w/newer/internal/fsutil"
	"github.com/mehmetkoksal-w/newer/internal/logger"
)

// FileGroup is one unit of staleness evaluation. Sources are literal paths;
// any pattern expansion happens before they get here.
type FileGroup struct {
	Sources []string
	Dest    Destination
	Actions []string
}

// FS is the file-system view the checker needs.
type FS interface {
	Stat(path string) fsutil.FileStat
	Glob(pattern string) ([]string, error)
}

// Marker is the most recently modified existing destination of a group.
// The zero value is (empty path, zero time).
type Marker struct {
	Path    string
	ModTime time.Time
}

// IsZero reports whether no existing destination was found.
func (m Marker) IsZero() bool {
	return m.Path == "" && m.ModTime.IsZero()
}

// Phase is the evaluation state of one invocation.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseResolving
	PhaseScanning
	PhaseStale
	PhaseFresh
	PhaseTriggering
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseResolving:
		return "resolving-destinations"
	case PhaseScanning:
		return "scanning-sources"
	case PhaseStale:
		return "stale"
	case PhaseFresh:
		return "fresh"
	case PhaseTriggering:
		return "triggering"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Result is the outcome of one evaluation.
type Result struct {
	// Stale is the verdict.
	Stale bool
	// Group is the index of the group that made the verdict stale, -1 if fresh.
	Group int
	// OutOfDate is the newest destination that was found older than Source.
	// Empty when the group had no existing destination.
	OutOfDate string
	// Source is the first source found newer than OutOfDate.
	Source string
	// Unresolved lists destination patterns that matched nothing.
	Unresolved []string
	// Missing lists the sources that could not be stat'ed, in scan order.
	Missing []string
	// Actions are the actions of the stale group.
	Actions []string
}

// Checker evaluates file groups against a file system.
// A Checker is not safe for concurrent use.
type Checker struct {
	fs       FS
	reporter Reporter
	phase    Phase
}

// NewChecker creates a checker. A nil reporter discards diagnostics.
func NewChecker(fsys FS, reporter Reporter) *Checker {
	if reporter == nil {
		reporter = discard{}
	}
	return &Checker{fs: fsys, reporter: reporter}
}

// Phase returns the state reached by the last evaluation.
func (c *Checker) Phase() Phase {
	return c.phase
}

func (c *Checker) enter(p Phase) {
	logger.Debug("phase %s -> %s", c.phase, p)
	c.phase = p
}

// Evaluate decides the verdict for groups without triggering anything.
func (c *Checker) Evaluate(groups []FileGroup) Result {
	c.phase = PhaseInit
	res := Result{Group: -1}

	for i, g := range groups {
		if c.evaluateGroup(g, &res) {
			res.Stale = true
			res.Group = i
			res.Actions = append([]string(nil), g.Actions...)
			c.enter(PhaseStale)
			return res
		}
	}
	c.enter(PhaseFresh)
	return res
}

// Run evaluates groups and, when stale, hands the actions of the stale group
// to exec in a single call. The only error returned is the executor's.
func (c *Checker) Run(ctx context.Context, groups []FileGroup, exec Executor) (Result, error) {
	res := c.Evaluate(groups)
	if !res.Stale {
		c.reporter.Report(Event{Kind: NothingChanged})
		c.enter(PhaseDone)
		return res, nil
	}

	c.enter(PhaseTriggering)
	c.reporter.Report(Event{Kind: ActionsTriggered, Actions: res.Actions})
	var err error
	if exec != nil {
		err = exec.Execute(ctx, res.Actions)
	}
	c.enter(PhaseDone)
	return res, err
}

func (c *Checker) evaluateGroup(g FileGroup, res *Result) bool {
	c.enter(PhaseResolving)
	marker, unresolved := c.Resolve(g)
	if len(unresolved) > 0 {
		res.Unresolved = append(res.Unresolved, unresolved...)
		return true
	}

	c.enter(PhaseScanning)
	for _, src := range g.Sources {
		st := c.fs.Stat(src)
		if !st.Exists() {
			c.reporter.Report(Event{Kind: SourceMissing, Path: src})
			res.Missing = append(res.Missing, src)
			continue
		}
		logger.Debug("source %s mtime=%s newest=%s", src, st.ModTime.Format(time.RFC3339Nano), marker.ModTime.Format(time.RFC3339Nano))
		if st.NewerThan(marker.ModTime) {
			c.reporter.Report(Event{Kind: OutOfDate, Path: marker.Path, Source: src})
			res.OutOfDate = marker.Path
			res.Source = src
			return true
		}
	}
	return false
}

// Resolve expands the destination patterns of g and returns the newest
// existing destination. When any pattern matches nothing the offending
// patterns are returned instead and no destination is stat'ed.
func (c *Checker) Resolve(g FileGroup) (Marker, []string) {
	var (
		candidates []string
		unresolved []string
	)
	for _, pattern := range g.Dest.Patterns() {
		matches, err := c.expand(pattern, g.Sources)
		if len(matches) == 0 {
			c.reporter.Report(Event{Kind: DestinationUnresolved, Pattern: pattern, Err: err})
			unresolved = append(unresolved, pattern)
			continue
		}
		candidates = append(candidates, matches...)
	}
	if len(unresolved) > 0 {
		return Marker{}, unresolved
	}

	var newest Marker
	for _, dest := range candidates {
		st := c.fs.Stat(dest)
		if st.NewerThan(newest.ModTime) {
			newest = Marker{Path: dest, ModTime: st.ModTime}
		}
	}
	logger.Debug("newest destination of %s: %q", g.Dest, newest.Path)
	return newest, nil
}

// expand resolves one destination pattern into candidate files. A trailing
// slash pattern matches directories; each directory contributes one
// candidate per source, named after the source's base name.
func (c *Checker) expand(pattern string, sources []string) ([]string, error) {
	if !isDirPattern(pattern) {
		return c.fs.Glob(pattern)
	}

	matches, err := c.fs.Glob(pattern[:len(pattern)-1])
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, m := range matches {
		if c.fs.Stat(m).IsDir {
			dirs = append(dirs, m)
		}
	}
	if len(dirs) == 0 {
		return nil, nil
	}
	var out []string
	for _, dir := range dirs {
		for _, src := range sources {
			out = append(out, filepath.Join(dir, filepath.Base(src)))
		}
	}
	return out, nil
}
