// Package session implements the work/break cycle as an explicit state
// machine. Time is always passed in; the machine never reads a clock.
package session

import (
	"time"

	"wellbeing_station/internal/models"
	"wellbeing_station/internal/thresholds"
)

// Durations is the timing of one session cycle.
type Durations struct {
	Work      time.Duration
	Break     time.Duration
	AlertLead time.Duration
}

// DefaultDurations returns the compiled-in cycle timing.
func DefaultDurations() Durations {
	return Durations{
		Work:      thresholds.WorkDuration,
		Break:     thresholds.BreakDuration,
		AlertLead: thresholds.AlertLead,
	}
}

// Transition is the outcome of one Advance call. Notice and Pulse are only set
// when Changed is true, so delivering them is edge-triggered by construction.
type Transition struct {
	From    models.SessionState
	To      models.SessionState
	Changed bool
	Notice  string        // status text to publish, "" if none
	Pulse   time.Duration // buzzer pulse to issue, 0 if none
}

// Machine tracks the current phase and the instant it was anchored.
type Machine struct {
	d         Durations
	state     models.SessionState
	enteredAt time.Time
}

// NewMachine starts a cycle in Working anchored at now.
func NewMachine(d Durations, now time.Time) *Machine {
	return &Machine{d: d, state: models.Working, enteredAt: now}
}

// Advance compares the time spent since the anchor against the cycle timing
// and moves at most one step forward.
func (m *Machine) Advance(now time.Time) Transition {
	from := m.state
	elapsed := now.Sub(m.enteredAt)

	switch m.state {
	case models.Working:
		// The pre-break alert overlays the work phase and keeps its anchor.
		// Its window is the half-open [Work-AlertLead, Work). elapsed >= Work
		// can only be seen here after a stalled iteration skipped the window;
		// step into the alert anyway so the cycle never skips a phase.
		if elapsed >= m.d.Work-m.d.AlertLead {
			m.state = m.state.Next()
			return Transition{From: from, To: m.state, Changed: true, Notice: models.NoticeBreakSoon}
		}
	case models.AlertBeforeBreak:
		if elapsed >= m.d.Work {
			m.state = m.state.Next()
			m.enteredAt = now
			return Transition{From: from, To: m.state, Changed: true, Notice: models.NoticeBreakStarted, Pulse: thresholds.BreakPulse}
		}
	case models.OnBreak:
		if elapsed >= m.d.Break {
			m.state = m.state.Next()
			m.enteredAt = now
			return Transition{From: from, To: m.state, Changed: true, Notice: models.NoticeWorkStarted, Pulse: thresholds.WorkPulse}
		}
	}
	return Transition{From: from, To: from}
}

// State returns the current phase.
func (m *Machine) State() models.SessionState { return m.state }

// EnteredAt returns the current anchor.
func (m *Machine) EnteredAt() time.Time { return m.enteredAt }

// Progress returns time since the anchor and time left until the next
// scheduled phase change.
func (m *Machine) Progress(now time.Time) (elapsed, remaining time.Duration) {
	elapsed = now.Sub(m.enteredAt)
	var end time.Duration
	switch m.state {
	case models.Working:
		end = m.d.Work - m.d.AlertLead
	case models.AlertBeforeBreak:
		end = m.d.Work
	case models.OnBreak:
		end = m.d.Break
	}
	remaining = end - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return elapsed, remaining
}
