package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/botforge-pro/loc-graph-action/config"
	"github.com/botforge-pro/loc-graph-action/counter"
	"github.com/botforge-pro/loc-graph-action/counter/cloccli"
	"github.com/botforge-pro/loc-graph-action/counter/embedded"
	"github.com/botforge-pro/loc-graph-action/history"
	"github.com/botforge-pro/loc-graph-action/runner"
	"github.com/botforge-pro/loc-graph-action/vcs/gitcli"
)

// Version is overridden by go build -X
var Version string

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(config.FromEnv())

	var help bool
	var version bool
	var cfgFile string
	flags := pflag.NewFlagSet("loc-graph", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.BoolVarP(&cfg.Dryrun, "dry-run", "n", cfg.Dryrun, "list unmeasured commits without touching the working tree")
	flags.BoolVar(&cfg.InCI, "ci", false, "Run in CI mode")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.StringArrayVarP(&cfg.Exclude, "exclude", "e", cfg.Exclude, "exclude `dir` from line counts")
	flags.StringVar(&cfg.DateFormat, "date-format", cfg.DateFormat, "go time `layout` for date labels")
	flags.StringVar(&cfg.TimeFormat, "time-format", cfg.TimeFormat, "go time `layout` for time labels")
	flags.StringVar(&cfg.FallbackTheme, "fallback-theme", cfg.FallbackTheme, "`theme` copied to the un-themed chart (light|dark)")
	flags.StringVar(&cfg.Counter, "counter", cfg.Counter, "line counter to use (cloc|embedded)")
	flags.StringVarP(&cfg.OutputDir, "out-dir", "o", cfg.OutputDir, "`directory` for the cache and charts")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}
	if !cfg.InCI {
		if env := os.Getenv("CI"); env == "true" || env == "1" || env == "yes" {
			cfg.InCI = true
		}
	}

	locYAML, err := readLocGraphYAML(cfgFile)
	if err != nil {
		return err
	}
	if locYAML != nil {
		if err := mergo.Merge(&cfg, locYAML, mergo.WithOverride); err != nil {
			return err
		}
		if locYAML.Exclude != nil && len(locYAML.Exclude) == 0 && !flags.Lookup("exclude").Changed {
			cfg.Exclude = locYAML.Exclude
		}
	}
	if cfg.Verbose {
		b, err := json.MarshalIndent(cfg, "", "  ")
		die(err)
		cfg.Debugf("config: %s", string(b))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	// done setting up config

	git := gitcli.New(cfg, "")
	store := history.New(cfg.CachePath())
	rnr := runner.New(cfg, git, newCounter(cfg), store)
	ctx := context.Background()

	if err := rnr.Run(ctx); err != nil {
		return err
	}
	if cfg.Dryrun {
		return nil
	}

	istty := isatty.IsTerminal(os.Stdout.Fd()) && !cfg.InCI
	if cfg.Quiet {
		if istty {
			fmt.Println(cfg.FallbackChartPath())
		} else {
			fmt.Print(cfg.FallbackChartPath())
		}
	} else {
		cfg.Printf("-> %s", cfg.FallbackChartPath())
	}
	return nil
}

func newCounter(cfg config.Config) counter.Interface {
	switch cfg.Counter {
	case "cloc":
		return cloccli.New(cfg, "")
	case "embedded":
		return embedded.New()
	}
	if cloccli.Available() {
		cfg.Debugf("using cloc from PATH")
		return cloccli.New(cfg, "")
	}
	cfg.Debugf("cloc not found, using the embedded counter")
	return embedded.New()
}

func die(err error) {
	if err != nil {
		panic(err)
	}
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s

Renders a repository's lines-of-code history as SVG charts. Each commit is
measured once and cached in .github/loc_history.json, so repeat runs only
measure new commits.

FLAGS
%s
EXAMPLES

# measure new commits and regenerate the charts
$ loc-graph

# see what would be measured
$ loc-graph --dry-run

# skip generated directories
$ loc-graph -e vendor -e node_modules
`, os.Args[0], flags.FlagUsages())
}

func readLocGraphYAML(p string) (*config.Config, error) {
	if p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		candPath := filepath.Join(wd, "loc-graph.yaml")
		b, err := os.ReadFile(candPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				wd, _ = filepath.Split(filepath.Clean(wd))
				if wd == "/" {
					break
				}
				continue
			}
			return nil, err
		}

		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}
