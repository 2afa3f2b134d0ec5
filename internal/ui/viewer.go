package ui

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"plugtester/engine"
)

// Viewer displays a run's failures in an interactive TUI: the failure
// list on the left, details for the selected failure on the right. It
// consumes the finished collector read-only.
type Viewer struct{}

// NewViewer creates a new Viewer.
func NewViewer() *Viewer {
	return &Viewer{}
}

// View opens the TUI. It returns once the user quits (q or Escape).
func (v *Viewer) View(collector *engine.Collector) error {
	failures := collector.Failures()
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, f := range failures {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s", i+1, f.Test.Name()), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	list.SetBorder(true).SetTitle(fmt.Sprintf(" Failures (%d) ", len(failures)))

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	details.SetBorder(true).SetTitle(" Details ")

	showDetails := func(index int) {
		if index < 0 || index >= len(failures) {
			return
		}
		f := failures[index]
		text := fmt.Sprintf("[yellow]Test:[white] %s\n[yellow]Kind:[white] %s\n\n[red]%s[white]",
			f.Test.Describe(), f.Kind(), tview.Escape(f.Message()))
		var pe *engine.PanicError
		if errors.As(f.Fault, &pe) {
			text += fmt.Sprintf("\n\n[yellow]Stack:[white]\n%s", tview.Escape(string(pe.Stack)))
		}
		details.SetText(text).ScrollToBeginning()
	}
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		showDetails(index)
	})
	showDetails(0)

	stats := tview.NewTextView().SetDynamicColors(true)
	stats.SetText(fmt.Sprintf(" [cyan]Run:[white] %d   [red]Failures:[white] %d   [red]Errors:[white] %d   [gray](q to quit)",
		collector.RunCount(), collector.AssertionCount(), collector.ErrorCount()))

	body := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(stats, 1, 0, false).
		AddItem(body, 0, 1, true)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}
