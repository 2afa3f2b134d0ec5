// Package ui renders run progress and failures for a terminal: the
// dot/brief/bar progress listeners and the interactive failure viewer.
package ui

import (
	"io"

	"plugtester/engine"
	"plugtester/internal/config"
)

// ProgressListener is an engine.Listener that renders run progress and
// needs a final flush once the run completes.
type ProgressListener interface {
	engine.Listener
	Finish()
}

// ForStyle returns the progress listener for a configured style, or nil
// for config.ProgressNone. Total is the number of cases about to run
// (used by the bar style).
func ForStyle(style string, total int, w io.Writer) ProgressListener {
	switch style {
	case config.ProgressNone:
		return nil
	case config.ProgressBrief:
		return NewBriefListener(w)
	case config.ProgressBar:
		return NewBarListener(total)
	default:
		return NewDotListener(w)
	}
}
