// Package timer provides the drift-tolerant interval timers the control loop
// polls once per iteration.
package timer

import "time"

// Periodic fires at most once per interval of elapsed time. It is polled, not
// scheduled: the actual spacing is at least interval, skewed by however long
// the caller's loop iteration took.
type Periodic struct {
	interval    time.Duration
	lastFiredAt time.Time
}

// NewPeriodic returns a timer anchored at start. The first fire happens once
// more than interval has elapsed since start.
func NewPeriodic(interval time.Duration, start time.Time) *Periodic {
	return &Periodic{interval: interval, lastFiredAt: start}
}

// Due reports whether more than interval has passed since the last fire and,
// if so, re-anchors the timer at now.
func (p *Periodic) Due(now time.Time) bool {
	if now.Sub(p.lastFiredAt) <= p.interval {
		return false
	}
	p.lastFiredAt = now
	return true
}
