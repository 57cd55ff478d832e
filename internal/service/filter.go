package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wellbeing_station/internal/models"
)

// ErrInvalidFilter wraps every journal query the caller has to correct.
var ErrInvalidFilter = errors.New("invalid journal filter")

// journalTypes are the event types the control loop writes.
var journalTypes = []string{models.EventSession, models.EventAlert, models.EventConnectivity}

// LogFilter supports journal filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SESSION", "ALERT", "CONNECTIVITY"; case-insensitive
}

// normalized returns f with both bounds in UTC and Type upper-cased. An
// inverted range or a type the station never journals is rejected.
func (f LogFilter) normalized() (LogFilter, error) {
	out := LogFilter{
		From: utc(f.From),
		To:   utc(f.To),
		Type: strings.ToUpper(strings.TrimSpace(f.Type)),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter,
			out.From.Format(time.RFC3339), out.To.Format(time.RFC3339))
	}
	if out.Type != "" && !isJournalType(out.Type) {
		return LogFilter{}, fmt.Errorf("%w: unknown event type %q, want one of %s", ErrInvalidFilter,
			f.Type, strings.Join(journalTypes, ", "))
	}
	return out, nil
}

func isJournalType(t string) bool {
	for _, known := range journalTypes {
		if t == known {
			return true
		}
	}
	return false
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
