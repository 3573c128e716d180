package commands

import (
	"fmt"
	"strings"
)

func init() {
	Register(&Command{
		Name:        "help",
		Aliases:     []string{"-h", "--help"},
		Description: "Show help for a command",
		Run:         RunHelp,
	})
}

// RunHelp executes the help command with parsed arguments.
func RunHelp(args []string) error {
	if len(args) == 0 {
		return ShowUsage()
	}

	topic := strings.ToLower(strings.TrimSpace(args[0]))
	return ShowHelpTopic(topic)
}

// ShowUsage displays the main usage message.
func ShowUsage() error {
	fmt.Print(`newer - run tasks only when sources are newer than their destinations

COMMANDS
  run       Run the tasks of out-of-date steps (default command)
  check     Report out-of-date steps without running anything
  list      List configured steps with their files and tasks
  validate  Validate the configuration
  init      Write a starter newer.jsonc
  history   Show runs recorded in the journal
  help      Show help for a command
  version   Show version information

EXAMPLES
  newer                          # Run every step in config order
  newer run foo bar              # Run steps foo and bar
  newer run --dry-run            # Show what would run
  newer check --json             # Exit status 2 when anything is stale
  newer list --sources           # Show expanded source files
  newer history --step foo -l 5  # Last five runs of foo

Run 'newer help <command>' for detailed help on a command.
`)
	return nil
}

// ShowHelpTopic displays help for a specific topic.
func ShowHelpTopic(topic string) error {
	switch topic {
	case "run":
		fmt.Print(`newer run - Run the tasks of out-of-date steps

Usage: newer run [options] [step...]

Each step is checked group by group. The first group with a source newer
than the newest matching destination, or with a destination pattern that
matches nothing, makes the step stale; its tasks then run once, in order.
Tasks named "newer:<step>" run another step.

Options:
  --root, -r <path>     Workspace root (default: current directory)
  --config, -c <file>   Configuration file (default: newer.jsonc, newer.json, newer.toml)
  --dry-run             Print tasks instead of running them
  --journal[=false]     Record runs in .newer/journal.db (default from config)
  --verbose, -v         Show progress
  --debug               Trace every glob and stat
  --quiet, -q           Only print warnings
  --no-color            Disable colored output

Examples:
  newer run
  newer run foo --dry-run
  newer -c newer.toml
`)
	case "check":
		fmt.Print(`newer check - Report out-of-date steps

Usage: newer check [options] [step...]

Never runs tasks. Exits with status 2 when any step is stale.

Options:
  --root, -r <path>     Workspace root (default: current directory)
  --config, -c <file>   Configuration file
  --json                Print a JSON report
  --verbose, -v         Show progress
  --debug               Trace every glob and stat
  --quiet, -q           Only print warnings
  --no-color            Disable colored output
`)
	case "list", "ls":
		fmt.Print(`newer list - List configured steps

Usage: newer list [options]

Options:
  --root, -r <path>     Workspace root (default: current directory)
  --config, -c <file>   Configuration file
  --sources             Also print the expanded source files
`)
	case "validate":
		fmt.Print(`newer validate - Validate the configuration

Usage: newer validate [options]

Checks the file against the embedded JSON schema, then checks step names,
patterns, task references and step cycles.

Options:
  --root, -r <path>     Workspace root (default: current directory)
  --config, -c <file>   Configuration file
  --schema              Print the configuration JSON schema instead
`)
	case "init":
		fmt.Print(`newer init - Write a starter newer.jsonc

Usage: newer init [options]

Options:
  --root, -r <path>     Workspace root (default: current directory)
  --force, -f           Overwrite an existing configuration
  --step <name>         Name of the starter step (default: build)
  --action <name>       Name of the starter action (default: copy)
`)
	case "history":
		fmt.Print(`newer history - Show recorded runs

Usage: newer history [options]

Options:
  --root, -r <path>     Workspace root (default: current directory)
  --step <name>         Only show runs of this step
  --limit, -l <n>       Maximum entries (default: 20, 0 for all)
  --json                Print JSON
`)
	case "version":
		fmt.Print(`newer version - Show version information

Usage: newer version
`)
	case "help":
		fmt.Print(`newer help - Show help

Usage: newer help [command]
`)
	default:
		return fmt.Errorf("unknown help topic: %s\nRun 'newer help' for available commands", topic)
	}
	return nil
}
