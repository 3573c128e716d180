package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mehmetkoksal-w/newer/internal/cli/flags"
	"github.com/mehmetkoksal-w/newer/internal/cli/util"
	"github.com/mehmetkoksal-w/newer/internal/config"
	"github.com/mehmetkoksal-w/newer/schemas"
)

func init() {
	Register(&Command{
		Name:        "validate",
		Description: "Validate the configuration against its schema and rules",
		Run:         RunValidate,
	})
}

// ValidateOptions contains the configuration for the validate command.
type ValidateOptions struct {
	Root        string
	Config      string
	PrintSchema bool // Print the embedded schema instead of validating
	Stdout      io.Writer
}

// RunValidate executes the validate command with parsed arguments.
func RunValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	cfg := flags.AddConfigFlag(fs)
	printSchema := fs.Bool("schema", false, "print the configuration JSON schema and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return ExecuteValidate(ValidateOptions{
		Root:        *root,
		Config:      *cfg,
		PrintSchema: *printSchema,
	})
}

// ExecuteValidate loads the configuration and reports whether it is usable.
func ExecuteValidate(opts ValidateOptions) error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	if opts.PrintSchema {
		b, err := schemas.Get(schemas.Config)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	}

	cfg, err := config.Load(opts.Root, opts.Config)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	name := cfg.Path
	if rel, err := filepath.Rel(cfg.Root, cfg.Path); err == nil {
		name = rel
	}
	fmt.Fprintf(out, "✓ %s is valid (%s, %s)\n", name,
		util.Plural(len(cfg.Steps), "step"), util.Plural(len(cfg.Actions), "action"))
	return nil
}
