package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mehmetkoksal-w/newer/internal/cli/flags"
	"github.com/mehmetkoksal-w/newer/internal/cli/util"
	"github.com/mehmetkoksal-w/newer/internal/config"
	"github.com/mehmetkoksal-w/newer/internal/journal"
)

func init() {
	Register(&Command{
		Name:        "history",
		Description: "Show runs recorded in the journal",
		Run:         RunHistory,
	})
}

// HistoryOptions contains the configuration for the history command.
type HistoryOptions struct {
	Root   string
	Step   string
	Limit  int
	JSON   bool
	Stdout io.Writer
}

// RunHistory executes the history command with parsed arguments.
func RunHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	limit := flags.AddLimitFlag(fs, 20)
	step := fs.String("step", "", "only show runs of this step")
	jsonOut := flags.AddJSONFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := flags.ValidateLimit(*limit); err != nil {
		return err
	}
	if *step != "" {
		if err := flags.ValidateStepName(*step); err != nil {
			return err
		}
	}

	return ExecuteHistory(HistoryOptions{
		Root:  *root,
		Step:  *step,
		Limit: *limit,
		JSON:  *jsonOut,
	})
}

// ExecuteHistory prints journal entries, newest first.
func ExecuteHistory(opts HistoryOptions) error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	rootPath := util.MustAbs(opts.Root)

	var entries []journal.Entry
	dbPath := filepath.Join(rootPath, config.StateDir, journal.FileName)
	if _, err := os.Stat(dbPath); err == nil {
		j, err := journal.OpenPath(dbPath)
		if err != nil {
			return err
		}
		defer j.Close()
		entries, err = j.List(context.Background(), journal.Filter{Step: opts.Step, Limit: opts.Limit})
		if err != nil {
			return err
		}
	}

	if opts.JSON {
		if entries == nil {
			entries = []journal.Entry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No runs recorded. Enable the journal with --journal or \"journal\": true.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSTEP\tVERDICT\tDURATION\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.StartedAt.Local().Format(time.DateTime),
			e.Step,
			verdict(e),
			util.FormatDuration(e.Duration),
			util.TruncateLine(detail(e), 80),
		)
	}
	return w.Flush()
}

func verdict(e journal.Entry) string {
	switch {
	case !e.Stale:
		return "fresh"
	case e.ActionError != "":
		return "failed"
	case e.DryRun:
		return "stale (dry-run)"
	default:
		return "stale"
	}
}

func detail(e journal.Entry) string {
	var parts []string
	switch {
	case len(e.Unresolved) > 0:
		parts = append(parts, "no match for "+strings.Join(e.Unresolved, ", "))
	case e.Stale && e.OutOfDate != "":
		parts = append(parts, fmt.Sprintf("%s newer than %s", e.Source, e.OutOfDate))
	case e.Stale && e.Source != "":
		parts = append(parts, e.Source+" is new")
	}
	if len(e.Missing) > 0 {
		parts = append(parts, util.Plural(len(e.Missing), "missing source"))
	}
	if e.ActionError != "" {
		parts = append(parts, e.ActionError)
	}
	return strings.Join(parts, "; ")
}
