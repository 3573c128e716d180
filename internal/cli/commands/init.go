package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mehmetkoksal-w/newer/internal/cli/flags"
	"github.com/mehmetkoksal-w/newer/internal/config"
	"github.com/mehmetkoksal-w/newer/starter"
)

func init() {
	Register(&Command{
		Name:        "init",
		Description: "Write a starter newer.jsonc",
		Run:         RunInit,
	})
}

// InitOptions contains the configuration for the init command.
type InitOptions struct {
	Root   string
	Force  bool
	Step   string
	Action string
	Stdout io.Writer
}

// RunInit executes the init command with parsed arguments.
func RunInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	force := flags.AddForceFlag(fs)
	step := fs.String("step", "build", "name of the starter step")
	actionName := fs.String("action", "copy", "name of the starter action")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := flags.ValidateStepName(*step); err != nil {
		return err
	}

	return ExecuteInit(InitOptions{
		Root:   *root,
		Force:  *force,
		Step:   *step,
		Action: *actionName,
	})
}

// ExecuteInit writes the starter configuration into the workspace root and
// makes sure it loads.
func ExecuteInit(opts InitOptions) error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	if opts.Step == "" {
		opts.Step = "build"
	}
	if opts.Action == "" {
		opts.Action = "copy"
	}
	rootPath, err := filepath.Abs(opts.Root)
	if err != nil {
		return err
	}

	for _, name := range config.FileNames {
		existing := filepath.Join(rootPath, name)
		if _, err := os.Stat(existing); err == nil && !opts.Force {
			return fmt.Errorf("%s already exists (use --force to overwrite %s)", existing, starter.Config)
		}
	}

	dest := filepath.Join(rootPath, starter.Config)
	replacements := map[string]string{
		"step":   opts.Step,
		"action": opts.Action,
	}
	if err := config.WriteTemplate(dest, starter.Config, replacements, opts.Force); err != nil {
		return err
	}
	if _, err := config.LoadFile(dest); err != nil {
		return fmt.Errorf("starter configuration does not load: %w", err)
	}

	fmt.Fprintf(out, "created %s\n", dest)
	return nil
}
