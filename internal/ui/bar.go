package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"plugtester/engine"
)

// BarListener renders run progress as a progress bar with live
// passed/failed counts.
type BarListener struct {
	engine.BaseListener
	bar        *progressbar.ProgressBar
	passed     int
	failed     int
	testFailed bool
}

// NewBarListener creates a bar sized for the given number of cases.
func NewBarListener(total int) *BarListener {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(describeBar(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &BarListener{bar: bar}
}

func describeBar(passed, failed int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}

// StartTest resets the per-test failure marker.
func (l *BarListener) StartTest(engine.Test) {
	l.testFailed = false
}

// AddFailure marks the running test as failed.
func (l *BarListener) AddFailure(engine.Failure) {
	l.testFailed = true
}

// EndTest advances the bar and refreshes the counts.
func (l *BarListener) EndTest(engine.Test) {
	if l.testFailed {
		l.failed++
	} else {
		l.passed++
	}
	l.bar.Add(1)
	l.bar.Describe(describeBar(l.passed, l.failed))
}

// Finish completes the bar.
func (l *BarListener) Finish() {
	l.bar.Finish()
}
