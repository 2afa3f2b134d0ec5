// Package cli holds the command-line surface: flag values, the
// positional-argument grammar (plug-in names with optional parameters
// and an optional :testPath), and the error kinds the exit-code mapping
// distinguishes.
package cli

import "plugtester/internal/config"

// Flags holds command-line flags.
type Flags struct {
	Compiler      bool
	XMLFile       string
	XMLRequested  bool
	StyleSheet    string
	Encoding      string
	BriefProgress bool
	NoProgress    bool
	Bar           bool
	Text          bool
	Cout          bool
	Wait          bool
	View          bool
	Filter        string
}

// ToConfigFlags converts CLI flags to config flags.
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Compiler:   f.Compiler,
		XML:        f.XMLRequested,
		XMLFile:    f.XMLFile,
		StyleSheet: f.StyleSheet,
		Encoding:   f.Encoding,
		Brief:      f.BriefProgress,
		NoProgress: f.NoProgress,
		Bar:        f.Bar,
		Text:       f.Text,
		Cout:       f.Cout,
		Wait:       f.Wait,
		View:       f.View,
		Filter:     f.Filter,
	}
}
