package hardware

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Add(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestDesk() (*Desk, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	return NewDesk(clk.Now, 1, nil), clk
}

func TestApproach_MovesTowardTargetAndClamps(t *testing.T) {
	if got := approach(20, 25, 2); got != 22 {
		t.Fatalf("approach up = %v, want 22", got)
	}
	if got := approach(24, 25, 2); got != 25 {
		t.Fatalf("approach must clamp at target, got %v", got)
	}
	if got := approach(30, 25, 1); got != 29 {
		t.Fatalf("approach down = %v, want 29", got)
	}
}

func TestDesk_DistanceFollowsProfile(t *testing.T) {
	d, clk := newTestDesk()

	board := d.Board(nil)
	ctx := context.Background()
	timeout := 25 * time.Millisecond

	w, err := board.Echo.PulseWidth(ctx, timeout)
	if err != nil {
		t.Fatalf("PulseWidth: %v", err)
	}
	cm := float64(w.Microseconds()) * SoundCMPerMicros / 2
	if math.Abs(cm-42) > 0.1 {
		t.Fatalf("distance at start = %.2f, want ~42", cm)
	}

	clk.Add(25 * time.Second) // inside the leaning-in segment
	w, _ = board.Echo.PulseWidth(ctx, timeout)
	cm = float64(w.Microseconds()) * SoundCMPerMicros / 2
	if math.Abs(cm-22) > 0.1 {
		t.Fatalf("distance while leaning = %.2f, want ~22", cm)
	}
}

func TestDesk_EchoTimesOutWhenUserAway(t *testing.T) {
	d, clk := newTestDesk()
	clk.Add(46 * time.Second) // away segment

	_, err := d.Board(nil).Echo.PulseWidth(context.Background(), time.Millisecond)
	if !errors.Is(err, ErrPulseTimeout) {
		t.Fatalf("expected ErrPulseTimeout, got %v", err)
	}
}

func TestDesk_ClimateDropsEveryNthRead(t *testing.T) {
	d, clk := newTestDesk()
	d.setDropEvery(3)
	board := d.Board(nil)

	for i := 1; i <= 6; i++ {
		clk.Add(time.Second)
		temp, hum, err := board.Climate.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		partial := math.IsNaN(temp) || math.IsNaN(hum)
		if want := i%3 == 0; partial != want {
			t.Fatalf("read %d: partial=%v, want %v (temp=%v hum=%v)", i, partial, want, temp, hum)
		}
	}
}

func TestDesk_LightDipsDuringCloud(t *testing.T) {
	d, clk := newTestDesk()
	board := d.Board(nil)

	v, _ := board.Light.Read()
	if v < 1000 {
		t.Fatalf("daylight reading %d should be bright", v)
	}
	clk.Add(cloudPeriod - cloudLength + time.Second)
	v, _ = board.Light.Read()
	if v >= 1000 {
		t.Fatalf("cloud reading %d should be dark", v)
	}
}

func TestLogPin_TracksLevel(t *testing.T) {
	p := NewLogPin("led", nil)
	if p.High() {
		t.Fatalf("pin must start low")
	}
	_ = p.Set(true)
	if !p.High() {
		t.Fatalf("pin must be high after Set(true)")
	}
}
