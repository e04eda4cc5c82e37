package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botforge-pro/loc-graph-action/config"
	"github.com/botforge-pro/loc-graph-action/history"
	"github.com/botforge-pro/loc-graph-action/model"
	"github.com/botforge-pro/loc-graph-action/vcs"
)

type countFunc func(ctx context.Context, dir string, exclude []string) (int, error)

func (f countFunc) Count(ctx context.Context, dir string, exclude []string) (int, error) {
	return f(ctx, dir, exclude)
}

func testConfig(t *testing.T) config.Config {
	return config.New(&config.Config{OutputDir: t.TempDir(), Quiet: true})
}

func TestRunnerMeasuresUncached(t *testing.T) {
	cfg := testConfig(t)
	mock := vcs.NewMock().SetCommits(
		&model.Commit{SHA: "aaa"},
		&model.Commit{SHA: "bbb"},
		&model.Commit{SHA: "ccc"},
	)
	store := history.New(cfg.CachePath())
	require.NoError(t, store.Save(model.History{
		{SHA: "aaa", Date: "2023-01-01T00:00:00Z", LOC: 10},
	}))

	locs := map[string]int{"bbb": 20, "ccc": 30}
	cnt := countFunc(func(ctx context.Context, dir string, exclude []string) (int, error) {
		assert.Equal(t, []string{".git", ".github"}, exclude)
		return locs[mock.Current()], nil
	})

	rnr := New(cfg, mock, cnt, store)
	require.NoError(t, rnr.Run(context.Background()))

	// only uncached commits were checked out, then the starting ref
	assert.Equal(t, []string{"bbb", "ccc", "main"}, mock.Checkouts())
	assert.Equal(t, "main", mock.Current())

	hist, err := store.Load()
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, "aaa", hist[0].SHA)
	assert.Equal(t, 20, hist[1].LOC)
	assert.Equal(t, 30, hist[2].LOC)

	for _, name := range []string{"loc-history-light.svg", "loc-history-dark.svg", "loc-history.svg"} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunnerRestoresRefOnFailure(t *testing.T) {
	cfg := testConfig(t)
	mock := vcs.NewMock().SetRef("trunk").SetCommits(
		&model.Commit{SHA: "aaa"},
		&model.Commit{SHA: "bbb"},
	)
	store := history.New(cfg.CachePath())

	boom := errors.New("counter crashed")
	cnt := countFunc(func(ctx context.Context, dir string, exclude []string) (int, error) {
		if mock.Current() == "bbb" {
			return 0, boom
		}
		return 10, nil
	})

	rnr := New(cfg, mock, cnt, store)
	err := rnr.Run(context.Background())
	assert.ErrorIs(t, err, boom)

	// the failing run still put the tree back where it started
	assert.Equal(t, "trunk", mock.Current())

	// partial progress survived
	hist, lerr := store.Load()
	require.NoError(t, lerr)
	require.Len(t, hist, 1)
	assert.Equal(t, "aaa", hist[0].SHA)
}

func TestRunnerRestoresRefOnCheckoutFailure(t *testing.T) {
	cfg := testConfig(t)
	boom := errors.New("checkout failed")
	mock := vcs.NewMock().SetCommits(
		&model.Commit{SHA: "aaa"},
		&model.Commit{SHA: "bbb"},
	).FailCheckout("bbb", boom)
	store := history.New(cfg.CachePath())

	cnt := countFunc(func(ctx context.Context, dir string, exclude []string) (int, error) {
		return 10, nil
	})

	err := New(cfg, mock, cnt, store).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "main", mock.Current())
}

func TestRunnerIdempotent(t *testing.T) {
	cfg := testConfig(t)
	mock := vcs.NewMock().SetCommits(
		&model.Commit{SHA: "aaa"},
		&model.Commit{SHA: "bbb"},
	)
	store := history.New(cfg.CachePath())
	cnt := countFunc(func(ctx context.Context, dir string, exclude []string) (int, error) {
		return 42, nil
	})

	rnr := New(cfg, mock, cnt, store)
	require.NoError(t, rnr.Run(context.Background()))
	first, err := os.ReadFile(cfg.CachePath())
	require.NoError(t, err)
	checkouts := len(mock.Checkouts())

	require.NoError(t, rnr.Run(context.Background()))
	second, err := os.ReadFile(cfg.CachePath())
	require.NoError(t, err)

	assert.Equal(t, first, second, "cache file changed on a no-op run")
	assert.Equal(t, checkouts, len(mock.Checkouts()), "no-op run touched the working tree")
}

func TestRunnerDryrun(t *testing.T) {
	cfg := config.New(&config.Config{OutputDir: t.TempDir(), Quiet: true, Dryrun: true})
	mock := vcs.NewMock().SetCommits(&model.Commit{SHA: "aaa"})
	store := history.New(cfg.CachePath())
	cnt := countFunc(func(ctx context.Context, dir string, exclude []string) (int, error) {
		t.Fatal("dry run must not count")
		return 0, nil
	})

	require.NoError(t, New(cfg, mock, cnt, store).Run(context.Background()))
	assert.Empty(t, mock.Checkouts())
	_, err := os.Stat(cfg.CachePath())
	assert.True(t, os.IsNotExist(err))
}

func TestRunnerMalformedCache(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0755))
	require.NoError(t, os.WriteFile(cfg.CachePath(), []byte("{nope"), 0644))

	mock := vcs.NewMock().SetCommits(&model.Commit{SHA: "aaa"})
	cnt := countFunc(func(ctx context.Context, dir string, exclude []string) (int, error) {
		return 0, nil
	})

	err := New(cfg, mock, cnt, history.New(cfg.CachePath())).Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, mock.Checkouts(), "malformed cache must abort before any checkout")
}
