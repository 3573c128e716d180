// Package report renders staleness diagnostics for humans.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/mehmetkoksal-w/newer/internal/stale"
)

// Options controls console output.
type Options struct {
	// Quiet drops informational lines; warnings are always written.
	Quiet bool
	// NoColor disables ANSI colors even on a terminal.
	NoColor bool
}

// Console writes diagnostics to a pair of writers. Informational lines go to
// out, warnings to errOut.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	quiet  bool

	path   *color.Color
	action *color.Color
	faint  *color.Color
	header *color.Color
}

// NewConsole creates a console reporter. Nil writers default to stdout/stderr.
func NewConsole(out, errOut io.Writer, opts Options) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	c := &Console{
		out:    out,
		errOut: errOut,
		quiet:  opts.Quiet,
		path:   color.New(color.FgRed),
		action: color.New(color.FgGreen),
		faint:  color.New(color.Faint),
		header: color.New(color.Underline),
	}
	if opts.NoColor || !isTerminal(out) {
		for _, col := range []*color.Color{c.path, c.action, c.faint, c.header} {
			col.DisableColor()
		}
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return f == os.Stdout && !color.NoColor
}

// Step prints the banner that precedes the diagnostics of one step.
func (c *Console) Step(name string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\n%s\n", c.header.Sprintf("Checking %q", name))
}

// Report implements stale.Reporter.
func (c *Console) Report(ev stale.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case stale.SourceMissing:
		fmt.Fprintf(c.errOut, ">> Source file \"%s\" not found.\n", c.path.Sprint(ev.Path))
	case stale.DestinationUnresolved:
		if ev.Err != nil {
			fmt.Fprintf(c.errOut, ">> No destination files matching \"%s\" found (%v).\n", c.path.Sprint(ev.Pattern), ev.Err)
			return
		}
		fmt.Fprintf(c.errOut, ">> No destination files matching \"%s\" found.\n", c.path.Sprint(ev.Pattern))
	case stale.OutOfDate:
		if c.quiet {
			return
		}
		if ev.Path == "" {
			fmt.Fprintf(c.out, "No destination file exists; source \"%s\" is new.\n", c.path.Sprint(ev.Source))
			return
		}
		fmt.Fprintf(c.out, "Destination file \"%s\" out-of-date.\n", c.path.Sprint(ev.Path))
	case stale.ActionsTriggered:
		if c.quiet {
			return
		}
		if len(ev.Actions) == 0 {
			fmt.Fprintln(c.out, "No tasks configured.")
			return
		}
		names := make([]string, len(ev.Actions))
		for i, a := range ev.Actions {
			names[i] = c.action.Sprint(a)
		}
		fmt.Fprintf(c.out, "Running tasks: \"%s\"\n", strings.Join(names, "\", \""))
	case stale.NothingChanged:
		if c.quiet {
			return
		}
		fmt.Fprintln(c.out, c.faint.Sprint("Nothing changed."))
	}
}

// Pending prints the tasks a stale step would run, for evaluation-only
// callers that never trigger them.
func (c *Console) Pending(actions []string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(actions) == 0 {
		fmt.Fprintln(c.out, "Stale; no tasks configured.")
		return
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = c.action.Sprint(a)
	}
	fmt.Fprintf(c.out, "Would run tasks: \"%s\"\n", strings.Join(names, "\", \""))
}

// Recorder keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []stale.Event
}

// Report implements stale.Reporter.
func (r *Recorder) Report(ev stale.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []stale.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]stale.Event(nil), r.events...)
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind stale.EventKind) int {
	n := 0
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Tee fans events out to several reporters in order.
func Tee(reporters ...stale.Reporter) stale.Reporter {
	return stale.ReporterFunc(func(ev stale.Event) {
		for _, r := range reporters {
			if r != nil {
				r.Report(ev)
			}
		}
	})
}
