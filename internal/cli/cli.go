// Package cli dispatches the newer command line.
package cli

import (
	"fmt"
	"strings"

	"github.com/mehmetkoksal-w/newer/internal/cli/commands"
)

// Run executes the command named by args[0]. With no command, or when the
// first argument is a flag, the run command is used.
func Run(args []string) error {
	if len(args) == 0 {
		return commands.RunRun(nil)
	}

	switch args[0] {
	case "version", "--version":
		return cmdVersion(args[1:])
	}
	if cmd, ok := commands.Get(args[0]); ok {
		return cmd.Run(args[1:])
	}
	if strings.HasPrefix(args[0], "-") {
		return commands.RunRun(args)
	}
	return fmt.Errorf("unknown command: %s\nRun 'newer help' for available commands", args[0])
}
