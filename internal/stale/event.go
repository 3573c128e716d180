package stale

import (
	"context"
)

// EventKind classifies a diagnostic emitted during evaluation.
type EventKind int

const (
	// SourceMissing: a declared source file could not be stat'ed. Non-fatal.
	SourceMissing EventKind = iota + 1
	// DestinationUnresolved: a destination pattern matched nothing. Forces staleness.
	DestinationUnresolved
	// OutOfDate: a source is newer than the newest destination.
	OutOfDate
	// ActionsTriggered: the verdict is stale and the actions are handed off.
	ActionsTriggered
	// NothingChanged: the verdict is fresh.
	NothingChanged
)

func (k EventKind) String() string {
	switch k {
	case SourceMissing:
		return "source-missing"
	case DestinationUnresolved:
		return "destination-unresolved"
	case OutOfDate:
		return "out-of-date"
	case ActionsTriggered:
		return "actions-triggered"
	case NothingChanged:
		return "nothing-changed"
	default:
		return "unknown"
	}
}

// Event is one diagnostic. Path is set for SourceMissing (the source) and
// OutOfDate (the newest destination, possibly empty when none existed).
// Pattern is set for DestinationUnresolved, Actions for ActionsTriggered.
type Event struct {
	Kind    EventKind
	Path    string
	Source  string
	Pattern string
	Actions []string
	Err     error
}

// Reporter receives diagnostics in the order they happen.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to a Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(ev Event) { f(ev) }

type discard struct{}

func (discard) Report(Event) {}

// Executor runs the action identifiers of a stale step. It is called at most
// once per evaluation, with the full ordered list.
type Executor interface {
	Execute(ctx context.Context, actions []string) error
}

// ExecutorFunc adapts a function to an Executor.
type ExecutorFunc func(ctx context.Context, actions []string) error

func (f ExecutorFunc) Execute(ctx context.Context, actions []string) error {
	return f(ctx, actions)
}
