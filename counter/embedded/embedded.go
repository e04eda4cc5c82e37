// Package embedded implements counter.Interface in-process with gocloc, for
// environments where the cloc tool is not installed.
package embedded

import (
	"context"
	"regexp"
	"strings"

	"github.com/hhatto/gocloc"
	"github.com/pkg/errors"
)

type Counter struct{}

func New() *Counter {
	return &Counter{}
}

func (c *Counter) Count(ctx context.Context, dir string, exclude []string) (int, error) {
	options := gocloc.NewClocOptions()
	if re := excludeRegexp(exclude); re != nil {
		options.ReNotMatchDir = re
	}

	processor := gocloc.NewProcessor(gocloc.NewDefinedLanguages(), options)
	result, err := processor.Analyze([]string{dir})
	if err != nil {
		return 0, errors.Wrap(err, "embedded: counting lines")
	}
	if result.Total == nil {
		return 0, nil
	}
	return int(result.Total.Code), nil
}

// excludeRegexp builds a pattern matching any path containing one of the
// named directories as a component.
func excludeRegexp(exclude []string) *regexp.Regexp {
	if len(exclude) == 0 {
		return nil
	}
	quoted := make([]string, len(exclude))
	for i, dir := range exclude {
		quoted[i] = regexp.QuoteMeta(dir)
	}
	return regexp.MustCompile(`(^|/)(` + strings.Join(quoted, "|") + `)($|/)`)
}
