package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pubDate time.Time
		want    Status
	}{
		{"PastDateIsPublished", now.Add(-time.Hour), StatusPublished},
		{"ExactlyNowIsPublished", now, StatusPublished},
		{"FutureDateIsScheduled", now.Add(time.Hour), StatusScheduled},
		{"FarFutureIsScheduled", now.AddDate(1, 0, 0), StatusScheduled},
		{"OneSecondAheadIsScheduled", now.Add(time.Second), StatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.pubDate, now))
		})
	}
}

func TestDeriveStatus_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	pubDate := now.Add(30 * time.Minute)

	first := DeriveStatus(pubDate, now)
	second := DeriveStatus(pubDate, now)

	assert.Equal(t, first, second, "same inputs must derive the same status")
}
