// Package action runs the tasks of a stale step.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mehmetkoksal-w/newer/internal/config"
	"github.com/mehmetkoksal-w/newer/internal/logger"
)

// ErrUnknownAction is returned for a task that is neither a configured
// action nor a step reference.
var ErrUnknownAction = errors.New("unknown action")

// StepFunc evaluates another step by name. It backs "newer:<step>" tasks.
type StepFunc func(ctx context.Context, step string) error

// Runner executes configured actions in order and stops at the first
// failure. It implements stale.Executor.
type Runner struct {
	root    string
	actions map[string]config.Action
	step    StepFunc
	dryRun  bool
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where command output goes.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithDryRun makes the runner print commands instead of running them.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) { r.dryRun = dryRun }
}

// WithStepFunc wires "newer:<step>" tasks back into the evaluator.
func WithStepFunc(fn StepFunc) Option {
	return func(r *Runner) { r.step = fn }
}

// NewRunner creates a runner for the actions of cfg.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		root:    cfg.Root,
		actions: cfg.Actions,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs ids in order.
func (r *Runner) Execute(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.run(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) run(ctx context.Context, id string) error {
	if step, ok := strings.CutPrefix(id, config.StepPrefix); ok {
		if r.step == nil {
			return fmt.Errorf("%w: %s (step tasks are not available here)", ErrUnknownAction, id)
		}
		logger.Info("running step %s", step)
		if err := r.step(ctx, step); err != nil {
			return fmt.Errorf("task %s: %w", id, err)
		}
		return nil
	}

	a, ok := r.actions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, id)
	}
	if r.dryRun {
		fmt.Fprintf(r.stdout, "[dry-run] %s: %s\n", id, a.CommandLine())
		return nil
	}

	if a.Shell == "" && len(a.Run) == 0 {
		return fmt.Errorf("action %s: nothing to run", id)
	}
	cmd := r.command(ctx, a)
	logger.Info("running action %s: %s (in %s)", id, a.CommandLine(), cmd.Dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("action %s: %w", id, err)
	}
	return nil
}

func (r *Runner) command(ctx context.Context, a config.Action) *exec.Cmd {
	var cmd *exec.Cmd
	if a.Shell != "" {
		cmd = exec.CommandContext(ctx, "sh", "-c", a.Shell)
	} else {
		cmd = exec.CommandContext(ctx, a.Run[0], a.Run[1:]...)
	}
	cmd.Dir = r.root
	if a.Dir != "" {
		if filepath.IsAbs(a.Dir) {
			cmd.Dir = a.Dir
		} else {
			cmd.Dir = filepath.Join(r.root, a.Dir)
		}
	}
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if len(a.Env) > 0 {
		cmd.Env = append(os.Environ(), envList(a.Env)...)
	}
	return cmd
}

func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
