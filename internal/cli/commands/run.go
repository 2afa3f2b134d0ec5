package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"plugtester/engine"
	"plugtester/internal/cli"
	"plugtester/internal/config"
	"plugtester/internal/discovery"
	"plugtester/internal/ui"
	"plugtester/plugin"
	"plugtester/registry"
	"plugtester/report"
)

// RunCommand loads the named plug-ins, runs the addressed (sub)tree and
// renders the result.
type RunCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
	viewer  *ui.Viewer

	// streams are fields so tests can capture output
	out io.Writer
	in  io.Reader

	// newManager is a seam so tests can substitute a fake module loader
	newManager func(reg *registry.Registry) *plugin.Manager
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	viewer *ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:     cfg,
		scanner:    scanner,
		filter:     filter,
		viewer:     viewer,
		in:         os.Stdin,
		newManager: plugin.NewManager,
	}
}

// Execute runs the command. Everything the plug-ins contributed is
// detached before the manager's Close, which is the last action taken.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	plugins, testPath, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	modules, err := expandModules(rc.scanner, rc.filter, rc.config.Flags.Filter, plugins)
	if err != nil {
		return err
	}

	stream := rc.out
	if stream == nil {
		stream = os.Stderr
		if rc.config.UseCout {
			stream = os.Stdout
		}
	}

	reg := registry.New("")
	manager := rc.newManager(reg)

	collector := engine.NewCollector()
	wasSuccessful, err := rc.runScoped(manager, reg, collector, modules, testPath, stream)
	// teardown happens after every contributed object has been
	// detached and the outputters are done with the collector
	if closeErr := manager.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if !wasSuccessful {
		return cli.ErrTestsFailed
	}
	return nil
}

// runScoped is the caller scope of the release-before-unload contract:
// the controller, progress listener and outputters all live and die
// here, before the manager is closed.
func (rc *RunCommand) runScoped(
	manager *plugin.Manager,
	reg *registry.Registry,
	collector *engine.Collector,
	modules []cli.PluginArg,
	testPath string,
	stream io.Writer,
) (bool, error) {
	controller := engine.NewController()
	controller.AddListener(collector)

	for _, mod := range modules {
		if err := manager.Load(mod.Path, mod.Parameters); err != nil {
			return false, fmt.Errorf("failed to load plug-in: %w", err)
		}
	}

	test := reg.MakeTest()
	if testPath != "" {
		resolved, err := engine.ParsePath(testPath).Resolve(test)
		if err != nil {
			// abort before any listener sees a single event
			return false, fmt.Errorf("failed to resolve test path %q: %w", testPath, err)
		}
		test = resolved
	}

	progress := ui.ForStyle(rc.config.Progress, test.CountCases(), stream)
	if progress != nil {
		controller.AddListener(progress)
	}
	manager.AddListeners(controller)

	test.Run(controller)

	if progress != nil {
		progress.Finish()
		controller.RemoveListener(progress)
	}
	manager.RemoveListeners(controller)

	if err := rc.render(manager, collector, stream); err != nil {
		return false, err
	}

	if rc.config.View && !collector.WasSuccessful() {
		if err := rc.viewer.View(collector); err != nil {
			return false, err
		}
	}
	if rc.config.Wait {
		fmt.Fprint(stream, "Press <Enter> to continue...")
		bufio.NewReader(rc.in).ReadString('\n')
	}

	return collector.WasSuccessful(), nil
}

// render writes the selected reports. XML hooks are attached around
// exactly one Write call.
func (rc *RunCommand) render(manager *plugin.Manager, collector *engine.Collector, stream io.Writer) error {
	if rc.config.UseCompiler {
		if err := report.NewCompilerOutputter(collector, stream).Write(); err != nil {
			return err
		}
	}
	if rc.config.UseText {
		if err := report.NewTextOutputter(collector, stream).Write(); err != nil {
			return err
		}
	}
	if !rc.config.UseXML {
		return nil
	}

	xmlStream := stream
	var xmlFile *os.File
	if rc.config.XMLToFile() {
		f, err := os.Create(rc.config.XMLFile)
		if err != nil {
			return fmt.Errorf("create xml report file: %w", err)
		}
		xmlFile = f
		xmlStream = f
	}

	outputter := report.NewXMLOutputter(collector, xmlStream, rc.config.Encoding)
	outputter.SetStyleSheet(rc.config.StyleSheet)
	manager.AddXMLHooks(outputter)
	err := outputter.Write()
	manager.RemoveXMLHooks(outputter)

	if xmlFile != nil {
		if closeErr := xmlFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// expandModules resolves directory positionals into the plug-in modules
// they contain, narrowed by the name filter. Parameters given on a
// directory are passed to every module found in it.
func expandModules(scanner *discovery.Scanner, filter *discovery.Filter, pattern string, plugins []cli.PluginArg) ([]cli.PluginArg, error) {
	var modules []cli.PluginArg
	for _, p := range plugins {
		info, err := os.Stat(p.Path)
		if err != nil || !info.IsDir() {
			modules = append(modules, p)
			continue
		}
		found, err := scanner.Scan(p.Path)
		if err != nil {
			return nil, err
		}
		found = filter.FilterByName(found, pattern)
		if len(found) == 0 {
			return nil, errors.New("no plug-in modules found in " + p.Path)
		}
		for _, path := range found {
			modules = append(modules, cli.PluginArg{Path: path, Parameters: p.Parameters})
		}
	}
	return modules, nil
}
