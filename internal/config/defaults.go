package config

const (
	// DefaultEncoding is the default XML report text encoding.
	DefaultEncoding = "UTF-8"
	// DefaultConfigFile is the optional YAML config file name, looked
	// up in the working directory.
	DefaultConfigFile = "plugtester.yaml"
	// DefaultEnvFile is the optional env file loaded at startup.
	DefaultEnvFile = ".env"
)

// Progress styles.
const (
	ProgressDots  = "dots"
	ProgressBrief = "brief"
	ProgressBar   = "bar"
	ProgressNone  = "none"
)

// Environment variables recognized after the env file is loaded.
const (
	EnvEncoding   = "PLUGTESTER_ENCODING"
	EnvStyleSheet = "PLUGTESTER_XSL"
	EnvProgress   = "PLUGTESTER_PROGRESS"
)

// DefaultIgnoreDirs are skipped when a plug-in directory is scanned.
var DefaultIgnoreDirs = []string{".git", "vendor", "node_modules"}
