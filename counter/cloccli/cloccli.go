// Package cloccli implements counter.Interface using the cloc commandline
// tool.
package cloccli

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/botforge-pro/loc-graph-action/config"
)

// Cloc shells out to cloc and reads its JSON report.
type Cloc struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Cloc {
	return &Cloc{
		cfg: cfg,
		wd:  wd,
	}
}

// Available reports whether the cloc binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("cloc")
	return err == nil
}

var CommandContext = exec.CommandContext

func (c *Cloc) Count(ctx context.Context, dir string, exclude []string) (int, error) {
	args := []string{"--json", "--quiet"}
	if len(exclude) > 0 {
		args = append(args, "--exclude-dir="+strings.Join(exclude, ","))
	}
	args = append(args, dir)

	cmd := CommandContext(ctx, "cloc", args...)
	cmd.Dir = c.wd

	eb := &bytes.Buffer{}
	ob := &bytes.Buffer{}
	cmd.Stderr = eb
	cmd.Stdout = ob

	if err := cmd.Run(); err != nil {
		return 0, errors.Wrapf(err, "exec: cloc %q failed: %s", args, eb.String())
	}
	return ParseCodeLines(ob.Bytes())
}

// ParseCodeLines extracts SUM.code from cloc's JSON report. cloc emits an
// empty document when nothing was counted, which counts as zero.
func ParseCodeLines(b []byte) (int, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return 0, nil
	}
	var report struct {
		Sum struct {
			Code int `json:"code"`
		} `json:"SUM"`
	}
	if err := json.Unmarshal(b, &report); err != nil {
		return 0, errors.Wrap(err, "cloccli: parsing cloc report")
	}
	return report.Sum.Code, nil
}
