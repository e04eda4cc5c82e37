package model

import "time"

// Commit is one entry from the repository log, oldest-first ordering is the
// enumerator's responsibility.
type Commit struct {
	SHA  string
	Date time.Time
}

func (c *Commit) ShortSHA() string {
	if len(c.SHA) < 8 {
		return c.SHA
	}
	return c.SHA[:8]
}
