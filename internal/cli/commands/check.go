package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mehmetkoksal-w/newer/internal/cli/flags"
)

func init() {
	Register(&Command{
		Name:        "check",
		Description: "Report which steps are out of date without running anything",
		Run:         RunCheck,
	})
}

// CheckOptions contains the configuration for the check command.
type CheckOptions struct {
	EvalOptions
	JSON bool
}

// CheckReport is the JSON document printed by check --json.
type CheckReport struct {
	Stale bool         `json:"stale"`
	Steps []StepResult `json:"steps"`
}

// RunCheck executes the check command with parsed arguments.
func RunCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	cfg := flags.AddConfigFlag(fs)
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	quiet := flags.AddQuietFlag(fs)
	noColor := flags.AddNoColorFlag(fs)
	jsonOut := flags.AddJSONFlag(fs)
	steps, err := flags.ParseInterspersed(fs, args)
	if err != nil {
		return err
	}

	return ExecuteCheck(context.Background(), CheckOptions{
		EvalOptions: EvalOptions{
			Root:    *root,
			Config:  *cfg,
			Steps:   steps,
			Verbose: *verbose,
			Debug:   *debug,
			Quiet:   *quiet,
			NoColor: *noColor,
		},
		JSON: *jsonOut,
	})
}

// ExecuteCheck evaluates the requested steps and returns an ExitError with
// code 2 when any of them is stale.
func ExecuteCheck(ctx context.Context, opts CheckOptions) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	evalOpts := opts.EvalOptions
	if opts.JSON {
		// Diagnostics would corrupt the document; warnings still reach stderr.
		evalOpts.Stdout = io.Discard
	}

	ev, err := openEvaluator(evalOpts)
	if err != nil {
		return err
	}
	defer ev.close()

	var stale []string
	for _, name := range ev.stepNames(opts.Steps) {
		res, err := ev.runStep(ctx, name)
		if err != nil {
			return err
		}
		if res.Stale {
			stale = append(stale, res.Step)
		}
	}

	if opts.JSON {
		doc := CheckReport{Stale: len(stale) > 0, Steps: ev.results}
		if doc.Steps == nil {
			doc.Steps = []StepResult{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}

	if len(stale) > 0 {
		return &ExitError{Code: 2, Err: fmt.Errorf("%w: %s", ErrStale, strings.Join(stale, ", "))}
	}
	return nil
}
