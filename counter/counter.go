// Package counter abstracts lines-of-code measurement. Two implementations
// exist: the external cloc tool (counter/cloccli) and an in-process engine
// (counter/embedded).
package counter

import "context"

type Interface interface {
	// Count returns the aggregate code line count under dir, skipping the
	// named directories at any depth.
	Count(ctx context.Context, dir string, exclude []string) (int, error)
}
