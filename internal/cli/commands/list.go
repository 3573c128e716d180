package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mehmetkoksal-w/newer/internal/cli/flags"
	"github.com/mehmetkoksal-w/newer/internal/config"
	"github.com/mehmetkoksal-w/newer/internal/fsutil"
)

func init() {
	Register(&Command{
		Name:        "list",
		Aliases:     []string{"ls"},
		Description: "List configured steps with their files and tasks",
		Run:         RunList,
	})
}

// ListOptions contains the configuration for the list command.
type ListOptions struct {
	Root    string
	Config  string
	Sources bool // Expand source globs
	Stdout  io.Writer
}

// RunList executes the list command with parsed arguments.
func RunList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	cfg := flags.AddConfigFlag(fs)
	sources := fs.Bool("sources", false, "also print the expanded source files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return ExecuteList(ListOptions{
		Root:    *root,
		Config:  *cfg,
		Sources: *sources,
	})
}

// ExecuteList prints every step of the configuration.
func ExecuteList(opts ListOptions) error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	cfg, err := config.Load(opts.Root, opts.Config)
	if err != nil {
		return err
	}

	if len(cfg.Steps) == 0 {
		fmt.Fprintln(out, "No steps configured.")
		return nil
	}
	for _, s := range cfg.Steps {
		if s.Description != "" {
			fmt.Fprintf(out, "%s - %s\n", s.Name, s.Description)
		} else {
			fmt.Fprintln(out, s.Name)
		}
		for i, p := range s.Pairs() {
			fmt.Fprintf(out, "  [%d] %s -> %s\n", i+1, formatPatterns(p.Src), p.Dest.Destination())
			if opts.Sources {
				for _, src := range config.ExpandSources(fsutil.Dir(cfg.Root), p.Src.Values, cfg.Ignore) {
					fmt.Fprintf(out, "        %s\n", src)
				}
			}
		}
		if len(s.Tasks) > 0 {
			fmt.Fprintf(out, "  tasks: %s\n", strings.Join(s.Tasks, ", "))
		}
	}
	return nil
}

func formatPatterns(p config.Patterns) string {
	if !p.List && len(p.Values) == 1 {
		return p.Values[0]
	}
	return "[" + strings.Join(p.Values, ", ") + "]"
}
