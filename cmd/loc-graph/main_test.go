package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/botforge-pro/loc-graph-action/vcs/gitcli"
)

func TestLocGraph(t *testing.T) {
	if testing.Short() {
		t.Skip("-short")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	ctx := context.Background()
	repo := t.TempDir()

	currDir, err := os.Getwd()
	die(err)
	defer os.Chdir(currDir)
	die(os.Chdir(repo))

	t.Setenv("LOC_COUNTER", "embedded")
	t.Setenv("CI", "")

	call(ctx, t, "2023-05-01T10:00:00+00:00", "init")
	writeFile(t, "main.go", "package main\n\nfunc main() {\n}\n")
	call(ctx, t, "2023-05-01T10:00:00+00:00", "add", ".")
	call(ctx, t, "2023-05-01T10:00:00+00:00", "commit", "-m", "initial")

	writeFile(t, "lib.go", "package main\n\nvar x = 1\nvar y = 2\n")
	call(ctx, t, "2023-05-02T10:00:00+00:00", "add", ".")
	call(ctx, t, "2023-05-02T10:00:00+00:00", "commit", "-m", "more code")

	startRef := gitOutput(ctx, t, "rev-parse", "--abbrev-ref", "HEAD")

	callLocGraph(t, "-q")

	// the run must leave the checkout where it started
	if ref := gitOutput(ctx, t, "rev-parse", "--abbrev-ref", "HEAD"); ref != startRef {
		t.Fatalf("expected restored ref %q, got %q", startRef, ref)
	}

	for _, name := range []string{"loc_history.json", "loc-history-light.svg", "loc-history-dark.svg", "loc-history.svg"} {
		if _, err := os.Stat(filepath.Join(".github", name)); err != nil {
			t.Fatalf("expected output %s: %v", name, err)
		}
	}

	var entries []struct {
		SHA  string `json:"sha"`
		Date string `json:"date"`
		LOC  int    `json:"loc"`
	}
	cacheb, err := os.ReadFile(filepath.Join(".github", "loc_history.json"))
	die(err)
	die(json.Unmarshal(cacheb, &entries))
	if len(entries) != 2 {
		t.Fatalf("expected 2 cache entries, got %d", len(entries))
	}
	if entries[0].LOC != 3 || entries[1].LOC != 6 {
		t.Fatalf("unexpected line counts: %d, %d", entries[0].LOC, entries[1].LOC)
	}

	// fallback defaults to the light chart
	light, err := os.ReadFile(filepath.Join(".github", "loc-history-light.svg"))
	die(err)
	fallback, err := os.ReadFile(filepath.Join(".github", "loc-history.svg"))
	die(err)
	if !bytes.Equal(light, fallback) {
		t.Fatal("fallback chart should be a copy of the light theme")
	}

	// a second run with no new commits must not change the cache
	callLocGraph(t, "-q")
	cacheb2, err := os.ReadFile(filepath.Join(".github", "loc_history.json"))
	die(err)
	if !bytes.Equal(cacheb, cacheb2) {
		t.Fatalf("cache changed on a no-op run:\n%s\n---\n%s", cacheb, cacheb2)
	}
}

func TestLocGraphDarkFallback(t *testing.T) {
	if testing.Short() {
		t.Skip("-short")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	ctx := context.Background()
	repo := t.TempDir()

	currDir, err := os.Getwd()
	die(err)
	defer os.Chdir(currDir)
	die(os.Chdir(repo))

	t.Setenv("LOC_COUNTER", "embedded")
	t.Setenv("FALLBACK_THEME", "dark")

	call(ctx, t, "2023-05-01T10:00:00+00:00", "init")
	writeFile(t, "main.go", "package main\n")
	call(ctx, t, "2023-05-01T10:00:00+00:00", "add", ".")
	call(ctx, t, "2023-05-01T10:00:00+00:00", "commit", "-m", "initial")

	callLocGraph(t, "-q")

	dark, err := os.ReadFile(filepath.Join(".github", "loc-history-dark.svg"))
	die(err)
	fallback, err := os.ReadFile(filepath.Join(".github", "loc-history.svg"))
	die(err)
	if !bytes.Equal(dark, fallback) {
		t.Fatal("fallback chart should be a copy of the dark theme")
	}
}

func callLocGraph(t *testing.T, args ...string) {
	t.Helper()
	t.Logf("loc-graph(%s)", gitcli.ArgsString(args))
	if err := run(append([]string{"loc-graph"}, args...)); err != nil {
		t.Fatal(err)
	}
}

func call(ctx context.Context, t *testing.T, date string, args ...string) {
	t.Helper()
	t.Logf("+ git %s", gitcli.ArgsString(args))
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(gitEnv(),
		"GIT_AUTHOR_DATE="+date,
		"GIT_COMMITTER_DATE="+date,
	)
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
}

func gitOutput(ctx context.Context, t *testing.T, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = gitEnv()
	out, err := cmd.Output()
	if err != nil {
		t.Fatal(err)
	}
	return strings.TrimSpace(string(out))
}

func gitEnv() []string {
	return []string{
		"GIT_AUTHOR_NAME=loc-graph-test",
		"GIT_AUTHOR_EMAIL=loc-graph-test@example.com",
		"GIT_COMMITTER_NAME=loc-graph-test",
		"GIT_COMMITTER_EMAIL=loc-graph-test@example.com",
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + os.Getenv("HOME"),
	}
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
