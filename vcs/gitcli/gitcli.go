// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/botforge-pro/loc-graph-action/config"
	"github.com/botforge-pro/loc-graph-action/model"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

const expectedLogParts = 2

func (g *Git) ReadCommits(ctx context.Context) ([]*model.Commit, error) {
	args := []string{"log", "--format=%H %cI", "--reverse"}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}

	var commits []*model.Commit
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	for scanner.Scan() {
		s := scanner.Text()
		if strings.TrimSpace(s) == "" {
			continue
		}
		parts := strings.SplitN(s, " ", expectedLogParts)
		if len(parts) != expectedLogParts {
			return nil, fmt.Errorf("gitcli: unexpected git log line: %q", s)
		}

		date, err := ParseCommitDate(parts[1])
		if err != nil {
			return nil, err
		}
		commits = append(commits, &model.Commit{
			SHA:  parts[0],
			Date: date,
		})
	}
	return commits, scanner.Err()
}

func (g *Git) Checkout(ctx context.Context, ref string) error {
	args := []string{"checkout", "--quiet", ref}
	if g.cfg.Dryrun {
		g.cfg.Printf("+ git %s (dryrun)", ArgsString(args))
		return nil
	}
	_, err := g.call(ctx, args)
	return err
}

func (g *Git) CurrentRef(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"})
	if err != nil {
		return "", err
	}
	ref := strings.TrimSpace(string(b))
	if ref != "HEAD" {
		return ref, nil
	}
	// detached HEAD: restoring to the literal "HEAD" would go nowhere, so
	// report the exact commit instead
	b, err = g.call(ctx, []string{"rev-parse", "HEAD"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
