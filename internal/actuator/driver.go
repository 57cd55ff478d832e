// Package actuator maps the session state onto the indicator LEDs and drives
// the buzzer.
package actuator

import (
	"fmt"
	"time"

	"wellbeing_station/internal/hardware"
	"wellbeing_station/internal/models"
)

// Outputs is the level of every actuator pin as last driven.
type Outputs struct {
	Green  bool
	Yellow bool
	Red    bool
	Buzzer bool
}

// Driver owns the indicator and buzzer pins.
type Driver struct {
	green, yellow, red, buzzer hardware.OutputPin
	sleep                      func(time.Duration)
	out                        Outputs
}

// NewDriver wraps the actuator pins of board.
func NewDriver(board hardware.Board) *Driver {
	return &Driver{
		green:  board.Green,
		yellow: board.Yellow,
		red:    board.Red,
		buzzer: board.Buzzer,
		sleep:  time.Sleep,
	}
}

// indicatorFor is the one-hot LED pattern of a session state.
func indicatorFor(s models.SessionState) (green, yellow, red bool) {
	switch s {
	case models.Working:
		return true, false, false
	case models.AlertBeforeBreak:
		return false, true, false
	case models.OnBreak:
		return false, false, true
	default:
		return false, false, false
	}
}

// SetIndicator lights exactly the LED belonging to s.
func (d *Driver) SetIndicator(s models.SessionState) error {
	g, y, r := indicatorFor(s)
	for _, p := range []struct {
		pin  hardware.OutputPin
		high bool
		dst  *bool
		name string
	}{
		{d.green, g, &d.out.Green, "green"},
		{d.yellow, y, &d.out.Yellow, "yellow"},
		{d.red, r, &d.out.Red, "red"},
	} {
		if err := p.pin.Set(p.high); err != nil {
			return fmt.Errorf("set %s led: %w", p.name, err)
		}
		*p.dst = p.high
	}
	return nil
}

// Pulse sounds the buzzer for dur. It blocks the caller for the whole pulse.
func (d *Driver) Pulse(dur time.Duration) error {
	if dur <= 0 {
		return nil
	}
	if err := d.buzzer.Set(true); err != nil {
		return fmt.Errorf("buzzer on: %w", err)
	}
	d.out.Buzzer = true
	d.sleep(dur)
	d.out.Buzzer = false
	if err := d.buzzer.Set(false); err != nil {
		return fmt.Errorf("buzzer off: %w", err)
	}
	return nil
}

// Outputs returns the current pin levels.
func (d *Driver) Outputs() Outputs { return d.out }
