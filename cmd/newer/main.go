package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mehmetkoksal-w/newer/internal/cli"
	"github.com/mehmetkoksal-w/newer/internal/cli/commands"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "newer: %v\n", err)
		var exit *commands.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		os.Exit(1)
	}
}
