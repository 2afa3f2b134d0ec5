// Package commands wires the application's collaborators and registers
// the cobra commands: the root command runs plug-in tests, "list"
// prints the contributed tree without running it.
package commands

import (
	"github.com/spf13/cobra"

	"plugtester/internal/cli"
	"plugtester/internal/config"
	"plugtester/internal/discovery"
	"plugtester/internal/ui"
)

// Commands holds all CLI commands.
type Commands struct {
	Run  *RunCommand
	List *ListCommand
}

// NewCommands creates all commands with dependencies.
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner(cfg.IgnoreDirs)
	filter := discovery.NewFilter()
	viewer := ui.NewViewer()

	return &Commands{
		Run:  NewRunCommand(cfg, scanner, filter, viewer),
		List: NewListCommand(cfg, scanner, filter),
	}
}

// Register attaches flags and commands to the root command. The root
// command itself runs the tests; list is a subcommand.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.RunE = c.Run.Execute
	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		flags.XMLRequested = cmd.Flags().Changed("xml")
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	rootCmd.Flags().BoolVarP(&flags.Compiler, "compiler", "c", false, "Report failures with the compiler-diagnostic outputter")
	rootCmd.Flags().StringVarP(&flags.XMLFile, "xml", "x", "", "Write the XML report (to the output stream if no filename is given)")
	rootCmd.Flags().Lookup("xml").NoOptDefVal = "-"
	rootCmd.Flags().StringVarP(&flags.StyleSheet, "xsl", "s", "", "XML stylesheet reference for the XML report")
	rootCmd.Flags().StringVarP(&flags.Encoding, "encoding", "e", "", "XML report text encoding (UTF-8, ISO-8859-1, ...)")
	rootCmd.Flags().BoolVarP(&flags.BriefProgress, "brief-progress", "b", false, "Print one line per test instead of dots")
	rootCmd.Flags().BoolVarP(&flags.NoProgress, "no-progress", "n", false, "Show no test progress")
	rootCmd.Flags().BoolVarP(&flags.Text, "text", "t", false, "Report with the plain text outputter")
	rootCmd.Flags().BoolVarP(&flags.Cout, "cout", "o", false, "Write reports to stdout instead of stderr")
	rootCmd.Flags().BoolVarP(&flags.Wait, "wait", "w", false, "Wait for the user to press Enter before exit")
	rootCmd.Flags().BoolVar(&flags.Bar, "bar", false, "Show progress as a bar with live counts")
	rootCmd.Flags().BoolVar(&flags.View, "view", false, "Open the interactive failure viewer after a failing run")
	rootCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter plug-ins discovered from a directory by name pattern (wildcards allowed)")

	listCmd := &cobra.Command{
		Use:   "list plugin[=parameters]... [:testPath]",
		Short: "List contributed tests",
		Long:  "Load the named plug-ins and print the test tree they contribute, without running anything.",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(flags.ToConfigFlags())
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter plug-ins discovered from a directory by name pattern (wildcards allowed)")
	rootCmd.AddCommand(listCmd)
}
