package sensors

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"wellbeing_station/internal/hardware"
)

// ---- Test doubles ----

type climateStub struct {
	temp, hum float64
	err       error
}

func (c climateStub) Read() (float64, float64, error) { return c.temp, c.hum, c.err }

type lightStub struct {
	v   int
	err error
}

func (l lightStub) Read() (int, error) { return l.v, l.err }

type echoStub struct {
	width      time.Duration
	err        error
	gotTimeout time.Duration
	calls      int
}

func (e *echoStub) PulseWidth(ctx context.Context, timeout time.Duration) (time.Duration, error) {
	e.calls++
	e.gotTimeout = timeout
	return e.width, e.err
}

type pinRecorder struct{ levels []bool }

func (p *pinRecorder) Set(high bool) error {
	p.levels = append(p.levels, high)
	return nil
}

func newTestStation(board hardware.Board) *Station {
	s := NewStation(board)
	s.sleep = func(time.Duration) {}
	return s
}

// ---- Tests ----

func TestEchoTimeout_CoversMaxRangeRoundTrip(t *testing.T) {
	// 400 cm out and back at 0.034 cm/µs ≈ 23.5 ms.
	if EchoTimeout != 23530*time.Microsecond {
		t.Fatalf("EchoTimeout = %v, want 23.53ms (800cm at 0.034cm/µs, rounded up)", EchoTimeout)
	}
}

func TestDistanceFromEcho(t *testing.T) {
	cases := []struct {
		width time.Duration
		want  float64
	}{
		{0, 0},
		{1000 * time.Microsecond, 17},
		{2353 * time.Microsecond, 40.001},
	}
	for _, tc := range cases {
		if got := DistanceFromEcho(tc.width); math.Abs(got-tc.want) > 0.01 {
			t.Errorf("DistanceFromEcho(%v) = %.3f, want %.3f", tc.width, got, tc.want)
		}
	}
}

func TestReadDistance_TriggersAndConverts(t *testing.T) {
	trig := &pinRecorder{}
	echo := &echoStub{width: 2000 * time.Microsecond}
	s := newTestStation(hardware.Board{Trigger: trig, Echo: echo})

	d, err := s.ReadDistance(context.Background())
	if err != nil {
		t.Fatalf("ReadDistance: %v", err)
	}
	if math.Abs(d-34) > 0.001 {
		t.Fatalf("distance = %v, want 34", d)
	}
	want := []bool{false, true, false}
	if len(trig.levels) != len(want) {
		t.Fatalf("trigger sequence = %v, want %v", trig.levels, want)
	}
	for i := range want {
		if trig.levels[i] != want[i] {
			t.Fatalf("trigger sequence = %v, want %v", trig.levels, want)
		}
	}
	if echo.gotTimeout != EchoTimeout {
		t.Fatalf("echo timeout = %v, want %v", echo.gotTimeout, EchoTimeout)
	}
}

func TestReadDistance_TimeoutReadsAsZero(t *testing.T) {
	s := newTestStation(hardware.Board{
		Trigger: &pinRecorder{},
		Echo:    &echoStub{err: hardware.ErrPulseTimeout},
	})
	d, err := s.ReadDistance(context.Background())
	if !errors.Is(err, ErrNoEcho) {
		t.Fatalf("expected ErrNoEcho, got %v", err)
	}
	if d != 0 {
		t.Fatalf("distance on timeout = %v, want 0", d)
	}
}

func TestReadEnvironment_Validity(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name      string
		probe     climateStub
		wantValid bool
	}{
		{"both valid", climateStub{temp: 22.5, hum: 50}, true},
		{"temperature missing", climateStub{temp: nan, hum: 50}, false},
		{"humidity missing", climateStub{temp: 22.5, hum: nan}, false},
		{"probe error", climateStub{err: hardware.ErrNoReading}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStation(hardware.Board{Climate: tc.probe})
			env := s.ReadEnvironment(context.Background())
			if env.Valid() != tc.wantValid {
				t.Fatalf("Valid() = %v, want %v (%+v)", env.Valid(), tc.wantValid, env)
			}
		})
	}
}

func TestReadLight(t *testing.T) {
	s := newTestStation(hardware.Board{Light: lightStub{v: 999}})
	if got := s.ReadLight(context.Background()); got != 999 {
		t.Fatalf("ReadLight = %v", got)
	}
	s = newTestStation(hardware.Board{Light: lightStub{err: errors.New("adc busy")}})
	if got := s.ReadLight(context.Background()); got != 0 {
		t.Fatalf("ReadLight on error = %v, want 0", got)
	}
}
