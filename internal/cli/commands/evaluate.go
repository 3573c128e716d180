package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mehmetkoksal-w/newer/internal/action"
	"github.com/mehmetkoksal-w/newer/internal/cli/flags"
	"github.com/mehmetkoksal-w/newer/internal/cli/util"
	"github.com/mehmetkoksal-w/newer/internal/config"
	"github.com/mehmetkoksal-w/newer/internal/fsutil"
	"github.com/mehmetkoksal-w/newer/internal/journal"
	"github.com/mehmetkoksal-w/newer/internal/logger"
	"github.com/mehmetkoksal-w/newer/internal/report"
	"github.com/mehmetkoksal-w/newer/internal/stale"
)

// EvalOptions are shared by the commands that evaluate steps.
type EvalOptions struct {
	Root    string
	Config  string
	Steps   []string
	Verbose bool
	Debug   bool
	Quiet   bool
	NoColor bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// StepResult is the verdict of one step.
type StepResult struct {
	Step       string   `json:"step"`
	Stale      bool     `json:"stale"`
	Group      int      `json:"group"`
	OutOfDate  string   `json:"outOfDate,omitempty"`
	Source     string   `json:"source,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
	Missing    []string `json:"missing,omitempty"`
	Actions    []string `json:"actions,omitempty"`
	Warnings   int      `json:"warnings"`
}

func newStepResult(step string, res stale.Result, events *report.Recorder) StepResult {
	return StepResult{
		Step:       step,
		Stale:      res.Stale,
		Group:      res.Group,
		OutOfDate:  res.OutOfDate,
		Source:     res.Source,
		Unresolved: res.Unresolved,
		Missing:    res.Missing,
		Actions:    res.Actions,
		Warnings:   events.Count(stale.SourceMissing) + events.Count(stale.DestinationUnresolved),
	}
}

// evaluator runs steps of one loaded configuration. A nil runner makes it
// evaluate only.
type evaluator struct {
	cfg     *config.Config
	console *report.Console
	journal *journal.Journal
	runner  *action.Runner
	dryRun  bool
	stdout  io.Writer
	stderr  io.Writer

	active  []string
	results []StepResult
}

func configureLogging(verbose, debug bool, stderr io.Writer) {
	switch {
	case debug:
		logger.SetLevel(logger.LevelDebug)
	case verbose:
		logger.SetLevel(logger.LevelInfo)
	default:
		logger.SetLevel(logger.LevelOff)
	}
	logger.SetOutput(stderr)
}

func openEvaluator(opts EvalOptions) (*evaluator, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	configureLogging(opts.Verbose, opts.Debug, opts.Stderr)

	cfg, err := config.Load(opts.Root, opts.Config)
	if err != nil {
		return nil, err
	}
	for _, name := range opts.Steps {
		if err := flags.ValidateStepName(name); err != nil {
			return nil, err
		}
		if _, ok := cfg.Step(name); !ok {
			return nil, fmt.Errorf("unknown step %q (have %s)", name, util.QuoteList(cfg.StepNames()))
		}
	}
	logger.Info("loaded %s (%d steps)", cfg.Path, len(cfg.Steps))

	console := report.NewConsole(opts.Stdout, opts.Stderr, report.Options{
		Quiet:   opts.Quiet,
		NoColor: opts.NoColor,
	})
	return &evaluator{
		cfg:     cfg,
		console: console,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
	}, nil
}

// enableActions makes the evaluator run the tasks of stale steps.
func (e *evaluator) enableActions(dryRun bool) {
	e.dryRun = dryRun
	e.runner = action.NewRunner(e.cfg,
		action.WithDryRun(dryRun),
		action.WithOutput(e.stdout, e.stderr),
		action.WithStepFunc(func(ctx context.Context, step string) error {
			_, err := e.runStep(ctx, step)
			return err
		}),
	)
}

// enableJournal opens the workspace journal when requested on the command
// line or, failing that, by the configuration.
func (e *evaluator) enableJournal(requested flags.BoolFlag) error {
	if !requested.Resolve(e.cfg.Journal) {
		return nil
	}
	j, err := journal.Open(e.cfg.Root)
	if err != nil {
		return err
	}
	e.journal = j
	return nil
}

func (e *evaluator) close() {
	if e.journal != nil {
		if err := e.journal.Close(); err != nil {
			logger.Warn("close journal: %v", err)
		}
	}
}

func (e *evaluator) stepNames(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	return e.cfg.StepNames()
}

// runStep evaluates one step and, when actions are enabled and the step is
// stale, runs its tasks. Steps re-entered through "newer:" tasks are
// rejected.
func (e *evaluator) runStep(ctx context.Context, name string) (StepResult, error) {
	step, ok := e.cfg.Step(name)
	if !ok {
		return StepResult{}, fmt.Errorf("unknown step %q", name)
	}
	if slices.Contains(e.active, name) {
		return StepResult{}, fmt.Errorf("step %s re-entered via %s", name, strings.Join(append(slices.Clone(e.active), name), " -> "))
	}
	e.active = append(e.active, name)
	defer func() { e.active = e.active[:len(e.active)-1] }()

	e.console.Step(name)
	groups := e.cfg.Groups(step)
	logger.Debug("step %s: %d group(s)", name, len(groups))
	events := &report.Recorder{}
	checker := stale.NewChecker(fsutil.Dir(e.cfg.Root), report.Tee(e.console, events))

	start := time.Now()
	var (
		res stale.Result
		err error
	)
	if e.runner == nil {
		res = checker.Evaluate(groups)
		if res.Stale {
			e.console.Pending(res.Actions)
		} else {
			e.console.Report(stale.Event{Kind: stale.NothingChanged})
		}
	} else {
		res, err = checker.Run(ctx, groups, e.runner)
	}
	logger.Debug("step %s: %s after %s", name, checker.Phase(), util.FormatDuration(time.Since(start)))
	e.record(ctx, name, res, start, err)

	out := newStepResult(name, res, events)
	e.results = append(e.results, out)
	return out, err
}

func (e *evaluator) record(ctx context.Context, step string, res stale.Result, start time.Time, runErr error) {
	if e.journal == nil {
		return
	}
	entry := journal.Entry{
		Step:       step,
		Stale:      res.Stale,
		OutOfDate:  res.OutOfDate,
		Source:     res.Source,
		Unresolved: res.Unresolved,
		Missing:    res.Missing,
		Actions:    res.Actions,
		DryRun:     e.dryRun,
		StartedAt:  start,
		Duration:   time.Since(start),
	}
	if runErr != nil {
		entry.ActionError = runErr.Error()
	}
	// The context may already be cancelled when an action was interrupted.
	if _, err := e.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("journal: %v", err)
	}
}
