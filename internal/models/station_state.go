package models

import "time"

// StationState is the latest snapshot of the station, as shown by the status API.
type StationState struct {
	ID               int       `json:"id"`
	Session          string    `json:"session"`                 // WORKING | ALERT_BEFORE_BREAK | ON_BREAK
	ElapsedSeconds   int       `json:"elapsed_seconds"`         // since the current phase anchor
	RemainingSeconds int       `json:"remaining_seconds"`       // until the next phase change
	TemperatureC     float64   `json:"temperature_c,omitempty"` // last valid sample
	HumidityPct      float64   `json:"humidity_pct,omitempty"`
	Luminosity       float64   `json:"luminosity,omitempty"` // raw sensor units
	DistanceCM       float64   `json:"distance_cm,omitempty"`
	PostureSeconds   float64   `json:"posture_seconds"` // current continuous violation
	Connectivity     string    `json:"connectivity"`    // DISCONNECTED | CONNECTING | CONNECTED
	UpdatedAt        time.Time `json:"updated_at"`
}
