// Package posture detects continuous periods in which the user sits outside
// the acceptable distance band from the screen.
package posture

import (
	"time"

	"wellbeing_station/internal/thresholds"
)

// Band is an inclusive acceptable distance range in centimetres.
type Band struct {
	MinCM float64
	MaxCM float64
}

// Contains reports whether d lies inside the band (bounds inclusive).
func (b Band) Contains(d float64) bool {
	return d >= b.MinCM && d <= b.MaxCM
}

// DefaultBand returns the compiled-in ergonomic band.
func DefaultBand() Band {
	return Band{MinCM: thresholds.PostureMinCM, MaxCM: thresholds.PostureMaxCM}
}

// Monitor accumulates the duration of the current violation. A zero
// startedAt means no violation is active.
type Monitor struct {
	band        Band
	threshold   time.Duration
	startedAt   time.Time
	accumulated time.Duration
}

// NewMonitor returns a monitor that alerts once a single violation lasts
// longer than threshold.
func NewMonitor(band Band, threshold time.Duration) *Monitor {
	return &Monitor{band: band, threshold: threshold}
}

// Check feeds one distance sample taken at now and reports whether the
// violation threshold was exceeded on this sample. After firing the tracker
// is cleared, so the next alert needs a fresh full-length violation.
func (m *Monitor) Check(now time.Time, distanceCM float64) bool {
	if m.band.Contains(distanceCM) {
		m.reset()
		return false
	}

	if m.startedAt.IsZero() {
		m.startedAt = now
	}
	m.accumulated = now.Sub(m.startedAt)

	if m.accumulated > m.threshold {
		m.reset()
		return true
	}
	return false
}

// Active reports whether a violation is currently being timed.
func (m *Monitor) Active() bool { return !m.startedAt.IsZero() }

// Accumulated returns the length of the active violation, or 0.
func (m *Monitor) Accumulated() time.Duration {
	if !m.Active() {
		return 0
	}
	return m.accumulated
}

func (m *Monitor) reset() {
	m.startedAt = time.Time{}
	m.accumulated = 0
}
