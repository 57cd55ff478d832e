package scheduler

import (
	"context"
	"time"

	"wellbeing_station/internal/connectivity"
	"wellbeing_station/internal/models"
	"wellbeing_station/internal/sensors"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

// at moves the clock to t0+d.
func (c *fakeClock) at(d time.Duration) { c.t = t0.Add(d) }

type publication struct {
	topic   string
	payload string
}

type fakeNetwork struct {
	connected    bool
	connectErr   error
	ensureCalls  int
	serviceCalls int
	published    []publication
}

func (n *fakeNetwork) Connected() bool { return n.connected }

func (n *fakeNetwork) EnsureConnected(ctx context.Context) error {
	n.ensureCalls++
	if n.connectErr != nil {
		return n.connectErr
	}
	n.connected = true
	return nil
}

func (n *fakeNetwork) Service(ctx context.Context) { n.serviceCalls++ }

func (n *fakeNetwork) Publish(ctx context.Context, topic, payload string) {
	n.published = append(n.published, publication{topic, payload})
}

func (n *fakeNetwork) State() connectivity.State {
	if n.connected {
		return connectivity.Connected
	}
	return connectivity.Disconnected
}

func (n *fakeNetwork) on(topic string) []string {
	var out []string
	for _, p := range n.published {
		if p.topic == topic {
			out = append(out, p.payload)
		}
	}
	return out
}

type fakeSensors struct {
	env           sensors.Environment
	light         float64
	distance      float64
	distanceErr   error
	distanceReads int
}

func (s *fakeSensors) ReadEnvironment(ctx context.Context) sensors.Environment { return s.env }

func (s *fakeSensors) ReadLight(ctx context.Context) float64 { return s.light }

func (s *fakeSensors) ReadDistance(ctx context.Context) (float64, error) {
	s.distanceReads++
	return s.distance, s.distanceErr
}

func validEnv(temp, hum float64) sensors.Environment {
	return sensors.Environment{
		TemperatureC: sensors.Reading{Value: temp, Valid: true},
		HumidityPct:  sensors.Reading{Value: hum, Valid: true},
	}
}

type fakeActuators struct {
	indicator models.SessionState
	pulses    []time.Duration
}

func (a *fakeActuators) SetIndicator(s models.SessionState) error {
	a.indicator = s
	return nil
}

func (a *fakeActuators) Pulse(d time.Duration) error {
	if d > 0 {
		a.pulses = append(a.pulses, d)
	}
	return nil
}

type recordedEvent struct {
	typ         string
	description string
	meta        map[string]any
}

type fakeJournal struct {
	events    []recordedEvent
	snapshots []models.StationState
}

func (j *fakeJournal) Record(ctx context.Context, typ, description string, meta map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.events = append(j.events, recordedEvent{typ, description, meta})
	return nil
}

func (j *fakeJournal) SaveSnapshot(ctx context.Context, s models.StationState) error {
	j.snapshots = append(j.snapshots, s)
	return nil
}

func (j *fakeJournal) ofType(typ string) []recordedEvent {
	var out []recordedEvent
	for _, e := range j.events {
		if e.typ == typ {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	clock   *fakeClock
	net     *fakeNetwork
	sensors *fakeSensors
	act     *fakeActuators
	journal *fakeJournal
	loop    *Loop
}

// newHarness builds a connected loop at t0 with a comfortable, bright,
// well-seated desk.
func newHarness() *harness {
	h := &harness{
		clock:   &fakeClock{t: t0},
		net:     &fakeNetwork{connected: true},
		sensors: &fakeSensors{env: validEnv(22, 45), light: 1500, distance: 40},
		act:     &fakeActuators{},
		journal: &fakeJournal{},
	}
	h.loop = New(Deps{
		Network:   h.net,
		Sensors:   h.sensors,
		Actuators: h.act,
		Journal:   h.journal,
		Topics:    NewTopics("wellbeing/station"),
		Clock:     h.clock.Now,
	})
	return h
}

// tickAt runs one iteration at t0+d.
func (h *harness) tickAt(d time.Duration) error {
	h.clock.at(d)
	return h.loop.Tick(context.Background())
}
