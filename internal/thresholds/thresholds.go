// Package thresholds holds the station's compile-time tuning constants.
// Nothing here is read from configuration.
package thresholds

import "time"

// Session timing. Demo-length values; a real desk cycle is 25m/5m.
const (
	WorkDuration  = 25 * time.Second
	BreakDuration = 10 * time.Second
	AlertLead     = 5 * time.Second
)

// Environment comfort limits.
const (
	ComfortMinC    = 20.0 // °C, inclusive
	ComfortMaxC    = 25.0 // °C, inclusive
	DarknessBelow  = 1000 // raw light units
	PostureMinCM   = 30.0 // cm, inclusive
	PostureMaxCM   = 50.0 // cm, inclusive
	PostureMaxHold = 10 * time.Second
)

// Scheduler periods.
const (
	SampleInterval  = 5 * time.Second
	PostureInterval = 2 * time.Second
	LoopIdle        = 10 * time.Millisecond
)

// Buzzer pulse lengths.
const (
	BreakPulse   = 500 * time.Millisecond
	WorkPulse    = 200 * time.Millisecond
	PosturePulse = 100 * time.Millisecond
)

// Connectivity retry delays.
const (
	AssociateRetryDelay = 500 * time.Millisecond
	BrokerRetryDelay    = 5 * time.Second
)
