// Package sensors turns raw pin readings into calibrated station readings.
package sensors

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"wellbeing_station/internal/hardware"
)

// Ultrasonic ranging constants.
const (
	SoundCMPerMicros = 0.034 // speed of sound, cm per µs
	MaxRangeCM       = 400.0 // sensor's specified maximum range
	triggerSettle    = 2 * time.Microsecond
	triggerWidth     = 10 * time.Microsecond
)

// EchoTimeout is the round-trip time of an echo from MaxRangeCM.
var EchoTimeout = time.Duration(math.Ceil(MaxRangeCM*2/SoundCMPerMicros)) * time.Microsecond

// ErrNoEcho reports that the ranging pulse never came back. The distance
// returned alongside it is 0.
var ErrNoEcho = errors.New("sensors: no echo within range")

// Reading is a tagged sensor value.
type Reading struct {
	Value float64
	Valid bool
}

// Environment is one correlated temperature/humidity sample.
type Environment struct {
	TemperatureC Reading
	HumidityPct  Reading
}

// Valid reports whether both halves of the sample can be acted upon.
func (e Environment) Valid() bool {
	return e.TemperatureC.Valid && e.HumidityPct.Valid
}

// Station reads the three sensors of a Board.
type Station struct {
	board hardware.Board
	sleep func(time.Duration)
}

// NewStation wraps the sensor pins of board.
func NewStation(board hardware.Board) *Station {
	return &Station{board: board, sleep: time.Sleep}
}

// ReadEnvironment samples temperature and humidity. A probe error or a NaN
// value yields an invalid reading for that half.
func (s *Station) ReadEnvironment(ctx context.Context) Environment {
	temp, hum, err := s.board.Climate.Read()
	if err != nil {
		return Environment{}
	}
	return Environment{
		TemperatureC: reading(temp),
		HumidityPct:  reading(hum),
	}
}

// ReadLight returns the raw light intensity. An ADC error reads as 0.
func (s *Station) ReadLight(ctx context.Context) float64 {
	v, err := s.board.Light.Read()
	if err != nil {
		return 0
	}
	return float64(v)
}

// ReadDistance fires the ultrasonic trigger and converts the echo width to
// centimetres. It blocks for at most EchoTimeout after the trigger.
func (s *Station) ReadDistance(ctx context.Context) (float64, error) {
	if err := s.trigger(); err != nil {
		return 0, fmt.Errorf("trigger ranging pulse: %w", err)
	}

	width, err := s.board.Echo.PulseWidth(ctx, EchoTimeout)
	if err != nil {
		if errors.Is(err, hardware.ErrPulseTimeout) {
			return 0, ErrNoEcho
		}
		return 0, fmt.Errorf("measure echo: %w", err)
	}
	return DistanceFromEcho(width), nil
}

// trigger drives the 2 µs low / 10 µs high / low trigger sequence.
func (s *Station) trigger() error {
	if err := s.board.Trigger.Set(false); err != nil {
		return err
	}
	s.sleep(triggerSettle)
	if err := s.board.Trigger.Set(true); err != nil {
		return err
	}
	s.sleep(triggerWidth)
	return s.board.Trigger.Set(false)
}

// DistanceFromEcho converts a round-trip echo width into centimetres.
func DistanceFromEcho(width time.Duration) float64 {
	micros := float64(width) / float64(time.Microsecond)
	return micros * SoundCMPerMicros / 2
}

func reading(v float64) Reading {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Reading{}
	}
	return Reading{Value: v, Valid: true}
}
