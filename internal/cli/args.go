package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTestsFailed marks a run in which at least one test failed. The
// report has already been rendered when it is returned; the driver only
// maps it to the failure exit code.
var ErrTestsFailed = errors.New("test run failed")

// UsageError marks a malformed command line. The driver maps it to the
// bad-command-line exit code.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// NewUsageError creates a UsageError.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Reason: fmt.Sprintf(format, args...)}
}

// PluginArg is one positional plug-in entry: a module path (or
// directory) and its opaque parameter string.
type PluginArg struct {
	Path       string
	Parameters string
}

// ParseArgs parses positional arguments: one or more
// "plugin[=parameters]" entries and at most one ":testPath". Parameters
// may be double-quoted to carry spaces; the quotes are stripped.
func ParseArgs(args []string) ([]PluginArg, string, error) {
	if len(args) == 0 {
		return nil, "", NewUsageError("no plug-in modules given")
	}

	var plugins []PluginArg
	var testPath string
	for _, arg := range args {
		if strings.HasPrefix(arg, ":") {
			if testPath != "" {
				return nil, "", NewUsageError("only one test path can be specified, got %q and %q", ":"+testPath, arg)
			}
			testPath = strings.TrimPrefix(arg, ":")
			if testPath == "" {
				return nil, "", NewUsageError("empty test path")
			}
			continue
		}

		path, params, _ := strings.Cut(arg, "=")
		if path == "" {
			return nil, "", NewUsageError("malformed plug-in argument %q", arg)
		}
		plugins = append(plugins, PluginArg{Path: path, Parameters: unquote(params)})
	}

	if len(plugins) == 0 {
		return nil, "", NewUsageError("no plug-in modules given")
	}
	return plugins, testPath, nil
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
