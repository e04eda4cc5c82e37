// Package locgraph renders a repository's lines-of-code history as SVG line
// charts. It walks commits oldest to newest, measures each one with a line
// counter, and caches results so repeat runs only measure new commits.
//
// Related packages: config, chart, counter, history, model, runner, vcs, vcs/gitcli
package locgraph

import "github.com/botforge-pro/loc-graph-action/config"

// Config holds most of the configuration variables for loc-graph. This struct
// is intended for command-line use, so not all of its attributes are
// applicable to every operation.
//
// See "go doc github.com/botforge-pro/loc-graph-action/config Config" for more
// information.
type Config = config.Config
