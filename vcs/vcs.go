// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"

	"github.com/botforge-pro/loc-graph-action/model"
)

// Interface is the surface the measurement loop needs: enumerate commits,
// move the working tree, and read the ref it must restore afterwards.
type Interface interface {
	// ReadCommits returns every commit in the repository, oldest first.
	ReadCommits(ctx context.Context) ([]*model.Commit, error)
	// Checkout moves the working tree to ref.
	Checkout(ctx context.Context, ref string) error
	// CurrentRef reports the checked-out branch name, or the exact commit
	// when detached. Checkout of the result must return the working tree
	// to its current state.
	CurrentRef(ctx context.Context) (string, error)
}
