package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plugtester/internal/cli"
	"plugtester/internal/cli/commands"
	"plugtester/internal/config"
)

// Exit codes: 0 all resolved tests passed; 1 a test failed, a module
// failed to load, or a path failed to resolve; 2 malformed command line
// or no arguments given.
const (
	exitSuccess        = 0
	exitFailure        = 1
	exitBadCommandLine = 2
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "plugtester [flags] plugin[=parameters]... [:testPath]",
		Short: "Run tests contributed by dynamically loaded plug-ins",
		Long: `plugtester loads one or more test plug-in modules, composes the tests
they contribute into a single tree, runs the whole tree or the subtree
addressed by :testPath, and renders the result as text, compiler
diagnostics and/or XML.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.NewUsageError("%v", err)
	})

	cfg := config.New()
	var flags cli.Flags
	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	if len(os.Args) < 2 {
		rootCmd.Usage()
		os.Exit(exitBadCommandLine)
	}

	if err := rootCmd.Execute(); err != nil {
		var usageErr *cli.UsageError
		switch {
		case errors.As(err, &usageErr):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			rootCmd.Usage()
			os.Exit(exitBadCommandLine)
		case errors.Is(err, cli.ErrTestsFailed):
			// the report has already been rendered
			os.Exit(exitFailure)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
	}
	os.Exit(exitSuccess)
}
