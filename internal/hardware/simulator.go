package hardware

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"wellbeing_station/internal/logger"
)

// ----------- Simulation constants -----------
const (
	AmbientC         = 22.5   // room temperature baseline °C
	SunSwingC        = 4.0    // peak warming from the window °C
	DriftCPerSec     = 0.05   // how fast the room follows its target
	HumidityBasePct  = 55.0   // baseline relative humidity
	DaylightRaw      = 2400.0 // desk lamp + daylight, raw ADC units
	CloudRaw         = 700.0  // light level while a cloud passes
	SoundCMPerMicros = 0.034  // speed of sound used to fake echo widths
	climatePeriod    = 3 * time.Minute
	cloudPeriod      = 45 * time.Second
	cloudLength      = 8 * time.Second
)

// PostureStep is one segment of the scripted sitting profile.
type PostureStep struct {
	For        time.Duration
	DistanceCM float64
}

// DefaultPostureProfile sits well, leans in long enough to trip the posture
// alert, recovers, then walks away (no echo).
func DefaultPostureProfile() []PostureStep {
	return []PostureStep{
		{For: 20 * time.Second, DistanceCM: 42},
		{For: 14 * time.Second, DistanceCM: 22},
		{For: 10 * time.Second, DistanceCM: 46},
		{For: 6 * time.Second, DistanceCM: 500},
	}
}

// Desk simulates the sensors of a workstation over time.
type Desk struct {
	mu  sync.Mutex
	now func() time.Time
	rnd *rand.Rand

	started   time.Time
	updatedAt time.Time
	tempC     float64
	humidity  float64

	profile   []PostureStep
	dropEvery int // every Nth climate read yields no data; 0 disables
	reads     int
}

// NewDesk returns a simulated desk. now defaults to time.Now.
func NewDesk(now func() time.Time, seed int64, profile []PostureStep) *Desk {
	if now == nil {
		now = time.Now
	}
	if len(profile) == 0 {
		profile = DefaultPostureProfile()
	}
	start := now()
	return &Desk{
		now:       now,
		rnd:       rand.New(rand.NewSource(seed)),
		started:   start,
		updatedAt: start,
		tempC:     AmbientC,
		humidity:  HumidityBasePct,
		profile:   profile,
		dropEvery: 7,
	}
}

// setDropEvery makes every nth climate read fail; 0 disables failures.
func (d *Desk) setDropEvery(n int) {
	d.mu.Lock()
	d.dropEvery = n
	d.mu.Unlock()
}

// Board wires the simulated inputs together with logging output pins.
func (d *Desk) Board(log *logger.Logger) Board {
	return Board{
		Climate: simClimate{d},
		Light:   simLight{d},
		Trigger: NewLogPin("trigger", nil),
		Echo:    simEcho{d},
		Green:   NewLogPin("led_green", log),
		Yellow:  NewLogPin("led_yellow", log),
		Red:     NewLogPin("led_red", log),
		Buzzer:  NewLogPin("buzzer", log),
	}
}

// advance moves the room climate toward its time-of-day target.
func (d *Desk) advance(now time.Time) {
	elapsed := now.Sub(d.updatedAt).Seconds()
	if elapsed <= 0 {
		return
	}
	phase := 2 * math.Pi * now.Sub(d.started).Seconds() / climatePeriod.Seconds()
	targetC := AmbientC + SunSwingC*math.Sin(phase)
	d.tempC = approach(d.tempC, targetC, DriftCPerSec*elapsed)
	d.humidity = HumidityBasePct - 2*(d.tempC-AmbientC)
	d.updatedAt = now
}

func (d *Desk) climate() (float64, float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.advance(d.now())
	d.reads++
	if d.dropEvery > 0 && d.reads%d.dropEvery == 0 {
		// Mimic the single-wire sensor answering with only one value.
		if d.rnd.Intn(2) == 0 {
			return math.NaN(), d.humidity, nil
		}
		return d.tempC, math.NaN(), nil
	}
	return d.tempC + d.noise(0.1), d.humidity + d.noise(0.5), nil
}

func (d *Desk) light() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	since := d.now().Sub(d.started) % cloudPeriod
	base := DaylightRaw
	if since >= cloudPeriod-cloudLength {
		base = CloudRaw
	}
	return int(base + d.noise(40))
}

// distance returns the scripted distance at the current time.
func (d *Desk) distance() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	var total time.Duration
	for _, s := range d.profile {
		total += s.For
	}
	pos := d.now().Sub(d.started) % total
	for _, s := range d.profile {
		if pos < s.For {
			return s.DistanceCM
		}
		pos -= s.For
	}
	return d.profile[len(d.profile)-1].DistanceCM
}

func (d *Desk) noise(amp float64) float64 {
	return (d.rnd.Float64()*2 - 1) * amp
}

type simClimate struct{ d *Desk }

func (s simClimate) Read() (float64, float64, error) { return s.d.climate() }

type simLight struct{ d *Desk }

func (s simLight) Read() (int, error) { return s.d.light(), nil }

type simEcho struct{ d *Desk }

// PulseWidth converts the scripted distance into a round-trip echo width.
// Out-of-range targets block until the timeout like a real receiver.
func (s simEcho) PulseWidth(ctx context.Context, timeout time.Duration) (time.Duration, error) {
	cm := s.d.distance()
	width := time.Duration(cm*2/SoundCMPerMicros) * time.Microsecond
	if width > timeout {
		t := time.NewTimer(timeout)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-t.C:
			return 0, ErrPulseTimeout
		}
	}
	return width, nil
}

// helpers
func approach(cur, target, step float64) float64 {
	if cur < target {
		return math.Min(cur+step, target)
	}
	return math.Max(cur-step, target)
}
