package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application. Values are
// layered: defaults, then the optional YAML config file, then the
// environment (after the optional env file is loaded), then CLI flags.
type Config struct {
	// Report settings
	Encoding   string
	StyleSheet string
	XMLFile    string

	// Outputter selection
	UseCompiler bool
	UseText     bool
	UseXML      bool

	// Driver behavior
	Progress string
	UseCout  bool
	Wait     bool
	View     bool

	// Directories skipped when scanning a plug-in directory
	IgnoreDirs []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flag values as parsed by the CLI layer.
type Flags struct {
	Compiler   bool
	XML        bool
	XMLFile    string
	StyleSheet string
	Encoding   string
	Brief      bool
	NoProgress bool
	Bar        bool
	Text       bool
	Cout       bool
	Wait       bool
	View       bool
	Filter     string
}

// fileConfig is the YAML config file shape.
type fileConfig struct {
	Encoding   string   `yaml:"encoding"`
	StyleSheet string   `yaml:"stylesheet"`
	Progress   string   `yaml:"progress"`
	IgnoreDirs []string `yaml:"ignore_dirs"`
}

// New creates a Config with defaults.
func New() *Config {
	cfg := &Config{
		Encoding: DefaultEncoding,
		Progress: ProgressDots,
	}
	cfg.IgnoreDirs = make([]string, len(DefaultIgnoreDirs))
	copy(cfg.IgnoreDirs, DefaultIgnoreDirs)
	return cfg
}

// Load creates a config with every layer applied.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.applyFile(DefaultConfigFile); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.Apply(flags)
	return cfg, nil
}

// applyFile overlays the YAML config file if it exists.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.Encoding != "" {
		c.Encoding = fc.Encoding
	}
	if fc.StyleSheet != "" {
		c.StyleSheet = fc.StyleSheet
	}
	if fc.Progress != "" {
		c.Progress = fc.Progress
	}
	if len(fc.IgnoreDirs) > 0 {
		c.IgnoreDirs = fc.IgnoreDirs
	}
	return nil
}

// applyEnv overlays environment variables. A missing env file is fine.
func (c *Config) applyEnv() {
	_ = godotenv.Load(DefaultEnvFile)
	if v := os.Getenv(EnvEncoding); v != "" {
		c.Encoding = v
	}
	if v := os.Getenv(EnvStyleSheet); v != "" {
		c.StyleSheet = v
	}
	if v := os.Getenv(EnvProgress); v != "" {
		c.Progress = v
	}
}

// Apply overlays parsed command-line flags; flags win over every other
// layer.
func (c *Config) Apply(flags Flags) {
	c.Flags = flags

	c.UseCompiler = flags.Compiler
	c.UseText = flags.Text
	c.UseXML = flags.XML
	if flags.XMLFile != "" {
		c.XMLFile = flags.XMLFile
	}
	if flags.StyleSheet != "" {
		c.StyleSheet = flags.StyleSheet
	}
	if flags.Encoding != "" {
		c.Encoding = flags.Encoding
	}
	c.UseCout = flags.Cout
	c.Wait = flags.Wait
	c.View = flags.View

	switch {
	case flags.NoProgress:
		c.Progress = ProgressNone
	case flags.Brief:
		c.Progress = ProgressBrief
	case flags.Bar:
		c.Progress = ProgressBar
	}
}

// XMLToFile reports whether the XML report goes to a named file rather
// than the output stream. The CLI records "-" when -x is given without
// a filename.
func (c *Config) XMLToFile() bool {
	return c.UseXML && c.XMLFile != "" && c.XMLFile != "-"
}
