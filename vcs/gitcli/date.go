package gitcli

import (
	"time"
)

// git log %cI emits strict ISO-8601, e.g. 2020-08-17T16:26:10-07:00, which is
// also RFC 3339.
func ParseCommitDate(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
