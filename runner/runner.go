// Package runner sequences a run: enumerate commits, measure the ones the
// cache is missing, persist the cache, and render the charts.
package runner

import (
	"context"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/botforge-pro/loc-graph-action/chart"
	"github.com/botforge-pro/loc-graph-action/config"
	"github.com/botforge-pro/loc-graph-action/counter"
	"github.com/botforge-pro/loc-graph-action/history"
	"github.com/botforge-pro/loc-graph-action/model"
	"github.com/botforge-pro/loc-graph-action/vcs"
)

type Runner struct {
	cfg     config.Config
	vcs     vcs.Interface
	counter counter.Interface
	store   *history.Store
	nump    *message.Printer
}

func New(cfg config.Config, vcs vcs.Interface, counter counter.Interface, store *history.Store) *Runner {
	return &Runner{
		cfg:     cfg,
		vcs:     vcs,
		counter: counter,
		store:   store,
		nump:    message.NewPrinter(language.English),
	}
}

// Run executes one full pass. When measurement fails mid-loop the working
// tree is still restored, partial progress is still persisted, and the
// measurement error is returned.
func (r *Runner) Run(ctx context.Context) error {
	commits, err := r.vcs.ReadCommits(ctx)
	if err != nil {
		return err
	}
	hist, err := r.store.Load()
	if err != nil {
		return err
	}

	pending := pendingCommits(commits, hist)
	r.cfg.Debugf("%d commits, %d cached, %d to measure", len(commits), len(hist), len(pending))

	if r.cfg.Dryrun {
		for _, c := range pending {
			r.cfg.Printf("would measure %s (%s)", c.ShortSHA(), c.Date.Format(time.RFC3339))
		}
		return nil
	}

	measured, merr := r.measure(ctx, pending)
	hist = model.Merge(hist, measured)

	// the cache is written only after measure has restored the starting
	// ref, so an interrupted run never leaves the checkout wrong
	if len(measured) > 0 || r.chartsMissing() {
		if err := r.store.Save(hist); err != nil {
			return err
		}
		if err := r.render(hist); err != nil {
			return err
		}
	}
	return merr
}

// measure checks out each commit in turn and counts its lines. The starting
// ref is restored on every exit path before the entries are returned.
func (r *Runner) measure(ctx context.Context, pending []*model.Commit) (entries model.History, err error) {
	if len(pending) == 0 {
		return nil, nil
	}

	startRef, err := r.vcs.CurrentRef(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := r.vcs.Checkout(ctx, startRef); rerr != nil && err == nil {
			err = rerr
		}
	}()

	for _, c := range pending {
		if err = r.vcs.Checkout(ctx, c.SHA); err != nil {
			return entries, err
		}
		var loc int
		loc, err = r.counter.Count(ctx, ".", r.cfg.ExcludeDirs())
		if err != nil {
			return entries, err
		}
		r.cfg.Debugf("%s: %s lines", c.ShortSHA(), r.nump.Sprintf("%d", loc))
		entries = append(entries, model.Entry{
			SHA:  c.SHA,
			Date: c.Date.Format(time.RFC3339),
			LOC:  loc,
		})
	}
	return entries, nil
}

func pendingCommits(commits []*model.Commit, hist model.History) []*model.Commit {
	done := hist.SHASet()
	var pending []*model.Commit
	for _, c := range commits {
		if _, ok := done[c.SHA]; !ok {
			pending = append(pending, c)
		}
	}
	return pending
}

func (r *Runner) chartsMissing() bool {
	for _, theme := range chart.Themes {
		if _, err := os.Stat(r.cfg.ChartPath(theme.Name)); err != nil {
			return true
		}
	}
	return false
}

func (r *Runner) render(hist model.History) error {
	points := make([]chart.Point, 0, len(hist))
	for _, e := range hist {
		date, err := e.Time()
		if err != nil {
			return err
		}
		points = append(points, chart.Point{Date: date, LOC: e.LOC})
	}

	opts := chart.DefaultOptions()
	opts.DateFormat = r.cfg.DateFormat
	opts.TimeFormat = r.cfg.TimeFormat

	for _, theme := range chart.Themes {
		svg := chart.Render(points, theme, opts)
		if err := os.WriteFile(r.cfg.ChartPath(theme.Name), []byte(svg), 0644); err != nil {
			return err
		}
		r.cfg.Debugf("wrote %s", r.cfg.ChartPath(theme.Name))
	}

	// older consumers read a single un-themed file, so one theme doubles
	// as the fallback
	fallback, err := os.ReadFile(r.cfg.ChartPath(r.cfg.FallbackTheme))
	if err != nil {
		return err
	}
	return os.WriteFile(r.cfg.FallbackChartPath(), fallback, 0644)
}
