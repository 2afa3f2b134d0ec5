package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plugtester/engine"
	"plugtester/internal/cli"
	"plugtester/internal/config"
	"plugtester/internal/discovery"
	"plugtester/plugin"
	"plugtester/registry"
)

// ListCommand loads the named plug-ins and prints the contributed test
// tree without running anything.
type ListCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter

	out io.Writer

	newManager func(reg *registry.Registry) *plugin.Manager
}

// NewListCommand creates a new ListCommand.
func NewListCommand(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter) *ListCommand {
	return &ListCommand{config: cfg, scanner: scanner, filter: filter, newManager: plugin.NewManager}
}

// Execute runs the command.
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	plugins, testPath, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	modules, err := expandModules(lc.scanner, lc.filter, lc.config.Flags.Filter, plugins)
	if err != nil {
		return err
	}

	out := lc.out
	if out == nil {
		out = os.Stdout
	}

	reg := registry.New("")
	manager := lc.newManager(reg)
	for _, p := range modules {
		if err := manager.Load(p.Path, p.Parameters); err != nil {
			return fmt.Errorf("failed to load plug-in: %w", err)
		}
	}

	test := reg.MakeTest()
	if testPath != "" {
		resolved, err := engine.ParsePath(testPath).Resolve(test)
		if err != nil {
			return fmt.Errorf("failed to resolve test path %q: %w", testPath, err)
		}
		test = resolved
	}

	if test.CountCases() == 0 {
		fmt.Fprintln(out, color.YellowString("No tests contributed"))
	} else {
		printTree(out, test, 0)
		fmt.Fprintf(out, "\n%d test cases\n", test.CountCases())
	}

	return manager.Close()
}

func printTree(w io.Writer, t engine.Test, depth int) {
	indent := strings.Repeat("  ", depth)
	if suite, ok := t.(*engine.Suite); ok {
		fmt.Fprintf(w, "%s%s (%d)\n", indent, color.CyanString(t.Describe()), t.CountCases())
		for _, child := range suite.Tests() {
			printTree(w, child, depth+1)
		}
		return
	}
	fmt.Fprintf(w, "%s- %s\n", indent, t.Name())
}
