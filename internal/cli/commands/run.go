package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/mehmetkoksal-w/newer/internal/cli/flags"
)

func init() {
	Register(&Command{
		Name:        "run",
		Description: "Run the tasks of steps whose sources are newer than their destinations",
		Run:         RunRun,
	})
}

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	EvalOptions
	DryRun  bool
	Journal flags.BoolFlag
}

// RunRun executes the run command with parsed arguments.
func RunRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	cfg := flags.AddConfigFlag(fs)
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	quiet := flags.AddQuietFlag(fs)
	noColor := flags.AddNoColorFlag(fs)
	dryRun := fs.Bool("dry-run", false, "print the tasks of stale steps instead of running them")
	var journalFlag flags.BoolFlag
	fs.Var(&journalFlag, "journal", "record runs in .newer/journal.db (default from config)")
	steps, err := flags.ParseInterspersed(fs, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ExecuteRun(ctx, RunOptions{
		EvalOptions: EvalOptions{
			Root:    *root,
			Config:  *cfg,
			Steps:   steps,
			Verbose: *verbose,
			Debug:   *debug,
			Quiet:   *quiet,
			NoColor: *noColor,
		},
		DryRun:  *dryRun,
		Journal: journalFlag,
	})
}

// ExecuteRun evaluates the requested steps in order and runs the tasks of
// each stale one. It stops at the first failing task.
func ExecuteRun(ctx context.Context, opts RunOptions) error {
	ev, err := openEvaluator(opts.EvalOptions)
	if err != nil {
		return err
	}
	defer ev.close()

	if err := ev.enableJournal(opts.Journal); err != nil {
		return err
	}
	ev.enableActions(opts.DryRun)

	for _, name := range ev.stepNames(opts.Steps) {
		if _, err := ev.runStep(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
