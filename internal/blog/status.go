package blog

import "time"

// Status is the derived publication state of a post. It is recomputed
// from (pub_date, now) on every write and on every read; the stored
// column is a projection, never an input.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusScheduled Status = "scheduled"
)

// DeriveStatus classifies a post by its publication timestamp. A post
// whose pub_date is not after now is published, otherwise scheduled.
func DeriveStatus(pubDate, now time.Time) Status {
	if pubDate.After(now) {
		return StatusScheduled
	}
	return StatusPublished
}
