// Package hardware defines the pin-level primitives the station drives and
// reads. Concrete drivers live behind these interfaces; the station ships a
// simulated desk backend and logging output pins.
package hardware

import (
	"context"
	"errors"
	"time"
)

// ErrNoReading is returned by a climate probe that produced no data this cycle.
var ErrNoReading = errors.New("hardware: sensor returned no reading")

// ErrPulseTimeout is returned when no echo pulse arrives within the timeout.
var ErrPulseTimeout = errors.New("hardware: echo pulse timeout")

// OutputPin is a single digital output.
type OutputPin interface {
	Set(high bool) error
}

// EchoInput measures the width of the next high pulse on an input pin.
type EchoInput interface {
	PulseWidth(ctx context.Context, timeout time.Duration) (time.Duration, error)
}

// AnalogInput is a raw ADC channel.
type AnalogInput interface {
	Read() (int, error)
}

// ClimateProbe is a combined temperature/humidity sensor. Either value may be
// NaN when the sensor could only partially answer.
type ClimateProbe interface {
	Read() (tempC, humidityPct float64, err error)
}

// Board groups every pin the station uses.
type Board struct {
	Climate ClimateProbe
	Light   AnalogInput
	Trigger OutputPin
	Echo    EchoInput

	Green  OutputPin
	Yellow OutputPin
	Red    OutputPin
	Buzzer OutputPin
}
