package vcs

import (
	"context"
	"time"

	"github.com/botforge-pro/loc-graph-action/model"
)

// Mock implements Interface in memory and records every checkout, so tests
// can assert the working tree ends up back where it started.
type Mock struct {
	t            time.Time
	ref          string
	current      string
	commits      []*model.Commit
	checkouts    []string
	checkoutErrs map[string]error
}

func NewMock() *Mock {
	return &Mock{
		t:            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		ref:          "main",
		current:      "main",
		checkoutErrs: make(map[string]error),
	}
}

func (m *Mock) SetRef(ref string) *Mock {
	m.ref = ref
	m.current = ref
	return m
}

// SetCommits installs commits oldest-first. Commits with a zero date get
// ascending timestamps a minute apart.
func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.Date.IsZero() {
			c.Date = m.t
			m.t = m.t.Add(time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

// FailCheckout makes Checkout of ref return err.
func (m *Mock) FailCheckout(ref string, err error) *Mock {
	m.checkoutErrs[ref] = err
	return m
}

func (m *Mock) ReadCommits(ctx context.Context) ([]*model.Commit, error) {
	return m.commits, nil
}

func (m *Mock) Checkout(ctx context.Context, ref string) error {
	m.checkouts = append(m.checkouts, ref)
	if err := m.checkoutErrs[ref]; err != nil {
		return err
	}
	m.current = ref
	return nil
}

func (m *Mock) CurrentRef(ctx context.Context) (string, error) {
	return m.current, nil
}

// Checkouts returns every ref passed to Checkout, in order.
func (m *Mock) Checkouts() []string { return m.checkouts }

// Current returns the ref the working tree is on now.
func (m *Mock) Current() string { return m.current }
