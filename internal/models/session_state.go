package models

// SessionState is the phase of the work/break cycle.
type SessionState int

const (
	Working SessionState = iota
	AlertBeforeBreak
	OnBreak
)

func (s SessionState) String() string {
	switch s {
	case Working:
		return "WORKING"
	case AlertBeforeBreak:
		return "ALERT_BEFORE_BREAK"
	case OnBreak:
		return "ON_BREAK"
	default:
		return "UNKNOWN"
	}
}

// Next returns the only state s may move to.
func (s SessionState) Next() SessionState {
	switch s {
	case Working:
		return AlertBeforeBreak
	case AlertBeforeBreak:
		return OnBreak
	default:
		return Working
	}
}
