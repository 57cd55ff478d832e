package repository

import (
	"fmt"
	"time"
)

// timestampLayout sorts lexicographically, so range filters work on the
// stored text directly.
const timestampLayout = "2006-01-02 15:04:05.000"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}
