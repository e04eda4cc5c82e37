package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imdario/mergo"
)

// DefaultExclude lists directories never counted: repository metadata and the
// CI configuration directory, which also holds the cache and chart outputs.
var DefaultExclude = []string{".git", ".github"}

type Config struct {
	Verbose       bool       `json:"verbose,omitempty"`
	Quiet         bool       `json:"quiet,omitempty"`
	Dryrun        bool       `json:"dryrun,omitempty"`
	InCI          bool       `json:"ci,omitempty"`
	Exclude       []string   `json:"exclude,omitempty"`
	DateFormat    string     `json:"date_format,omitempty"`
	TimeFormat    string     `json:"time_format,omitempty"`
	FallbackTheme string     `json:"fallback_theme,omitempty"`
	Counter       string     `json:"counter,omitempty"`
	OutputDir     string     `json:"output_dir,omitempty"`
	Term          TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

// FromEnv builds a Config containing only attributes set in the environment.
// Intended to be passed to New as overrides.
func FromEnv() *Config {
	cfg := &Config{}
	if v := os.Getenv("EXCLUDE"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.Exclude = append(cfg.Exclude, part)
			}
		}
	}
	cfg.DateFormat = os.Getenv("DATE_FORMAT")
	cfg.TimeFormat = os.Getenv("TIME_FORMAT")
	cfg.FallbackTheme = strings.ToLower(os.Getenv("FALLBACK_THEME"))
	cfg.Counter = os.Getenv("LOC_COUNTER")
	cfg.OutputDir = os.Getenv("OUTPUT_DIR")
	return cfg
}

func (c Config) Validate() error {
	switch c.FallbackTheme {
	case "light", "dark":
	default:
		return fmt.Errorf("config: invalid fallback theme %q", c.FallbackTheme)
	}
	switch c.Counter {
	case "", "cloc", "embedded":
	default:
		return fmt.Errorf("config: invalid counter %q", c.Counter)
	}
	return nil
}

// ExcludeDirs returns the configured exclusions merged with DefaultExclude.
func (c Config) ExcludeDirs() []string {
	dirs := make([]string, 0, len(DefaultExclude)+len(c.Exclude))
	dirs = append(dirs, DefaultExclude...)
	for _, d := range c.Exclude {
		if !oneOf(d, dirs) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (c Config) CachePath() string {
	return filepath.Join(c.OutputDir, "loc_history.json")
}

func (c Config) ChartPath(theme string) string {
	return filepath.Join(c.OutputDir, fmt.Sprintf("loc-history-%s.svg", theme))
}

func (c Config) FallbackChartPath() string {
	return filepath.Join(c.OutputDir, "loc-history.svg")
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Printf(msg, args...)
}

func oneOf(s string, l []string) bool {
	for _, cand := range l {
		if s == cand {
			return true
		}
	}
	return false
}
