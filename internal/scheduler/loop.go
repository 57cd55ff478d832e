// Package scheduler runs the station's cooperative control loop. One
// goroutine owns the session machine, the posture monitor and both interval
// timers; each iteration keeps the network up, advances the session, and
// polls the timers for sensor work.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wellbeing_station/internal/connectivity"
	"wellbeing_station/internal/logger"
	"wellbeing_station/internal/models"
	"wellbeing_station/internal/posture"
	"wellbeing_station/internal/sensors"
	"wellbeing_station/internal/service"
	"wellbeing_station/internal/session"
	"wellbeing_station/internal/thresholds"
	"wellbeing_station/internal/timer"
)

// Network is the part of connectivity.Manager the loop drives.
type Network interface {
	Connected() bool
	EnsureConnected(ctx context.Context) error
	Service(ctx context.Context)
	Publish(ctx context.Context, topic, payload string)
	State() connectivity.State
}

// Sensors is the part of sensors.Station the loop reads.
type Sensors interface {
	ReadEnvironment(ctx context.Context) sensors.Environment
	ReadLight(ctx context.Context) float64
	ReadDistance(ctx context.Context) (float64, error)
}

// Actuators is the part of actuator.Driver the loop drives.
type Actuators interface {
	SetIndicator(s models.SessionState) error
	Pulse(d time.Duration) error
}

// Deps are the collaborators of a Loop. Clock defaults to time.Now.
type Deps struct {
	Network   Network
	Sensors   Sensors
	Actuators Actuators
	Journal   service.Journal
	Topics    Topics
	Log       *logger.Logger
	Clock     func() time.Time
}

// Loop is the control loop. It is not safe for concurrent use; Run owns it.
type Loop struct {
	net     Network
	sensors Sensors
	act     Actuators
	journal service.Journal
	topics  Topics
	log     *logger.Logger
	now     func() time.Time
	idle    time.Duration

	session      *session.Machine
	posture      *posture.Monitor
	sampleTimer  *timer.Periodic
	postureTimer *timer.Periodic

	// last valid sample, kept for the snapshot
	lastEnv      sensors.Environment
	lastLight    float64
	lastDistance float64
}

// New starts the session in Working and anchors both timers at the current time.
func New(d Deps) *Loop {
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}
	log := d.Log
	if log == nil {
		log = logger.NewNop()
	}
	start := clock()
	return &Loop{
		net:          d.Network,
		sensors:      d.Sensors,
		act:          d.Actuators,
		journal:      d.Journal,
		topics:       d.Topics,
		log:          log,
		now:          clock,
		idle:         thresholds.LoopIdle,
		session:      session.NewMachine(session.DefaultDurations(), start),
		posture:      posture.NewMonitor(posture.DefaultBand(), thresholds.PostureMaxHold),
		sampleTimer:  timer.NewPeriodic(thresholds.SampleInterval, start),
		postureTimer: timer.NewPeriodic(thresholds.PostureInterval, start),
	}
}

// Run iterates Tick until ctx is cancelled, idling between iterations.
func (l *Loop) Run(ctx context.Context) {
	l.log.Infow("loop_started", "session", l.session.State().String())

	t := time.NewTicker(l.idle)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			l.log.Infow("loop_stopped")
			return
		case <-t.C:
			if err := l.Tick(ctx); err != nil {
				l.log.Infow("loop_stopped", "err", err)
				return
			}
		}
	}
}

// Tick runs one iteration. It only fails when ctx is cancelled while
// waiting for the network.
func (l *Loop) Tick(ctx context.Context) error {
	if !l.net.Connected() {
		if err := l.net.EnsureConnected(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// bounded retry gave up: keep the station running offline
			l.log.Warnw("network_unavailable", "err", err)
		}
	}
	l.net.Service(ctx)

	now := l.now()
	changed := l.stepSession(ctx, now)

	sampled := false
	if l.sampleTimer.Due(now) {
		sampled = l.sample(ctx)
	}
	checked := false
	if l.postureTimer.Due(now) {
		checked = l.checkPosture(ctx, now)
	}

	if changed || sampled || checked {
		l.saveSnapshot(ctx, now)
	}
	return nil
}

// stepSession advances the session, delivers the notice and pulse of a
// phase change exactly once, and refreshes the LEDs.
func (l *Loop) stepSession(ctx context.Context, now time.Time) bool {
	tr := l.session.Advance(now)
	if tr.Changed {
		l.log.Infow("session_transition", "from", tr.From.String(), "to", tr.To.String())
		l.net.Publish(ctx, l.topics.Status, tr.Notice)
		if err := l.act.Pulse(tr.Pulse); err != nil {
			l.log.Warnw("buzzer_failed", "err", err)
		}
		l.record(ctx, models.EventSession, tr.Notice, map[string]any{
			"from": tr.From.String(),
			"to":   tr.To.String(),
		})
	}
	if err := l.act.SetIndicator(l.session.State()); err != nil {
		l.log.Warnw("indicator_failed", "err", err)
	}
	return tr.Changed
}

// sample reads every sensor and, when the climate probe answered, publishes
// telemetry and the comfort alerts. It reports whether the sample was valid.
func (l *Loop) sample(ctx context.Context) bool {
	env := l.sensors.ReadEnvironment(ctx)
	light := l.sensors.ReadLight(ctx)
	distance := l.readDistance(ctx)

	if !env.Valid() {
		l.log.Debugw("sample_skipped", "reason", "climate probe returned no reading")
		return false
	}
	temp, hum := env.TemperatureC.Value, env.HumidityPct.Value
	l.lastEnv, l.lastLight, l.lastDistance = env, light, distance

	l.log.Infof("Temp: %.1f C, Humidity: %.1f %%, Light: %.0f, Dist: %.1f cm", temp, hum, light, distance)

	l.net.Publish(ctx, l.topics.Temperature, formatTelemetry(temp))
	l.net.Publish(ctx, l.topics.Humidity, formatTelemetry(hum))
	l.net.Publish(ctx, l.topics.Luminosity, formatTelemetry(light))
	l.net.Publish(ctx, l.topics.Distance, formatTelemetry(distance))

	if !Comfortable(temp) {
		l.alert(ctx, models.NoticeTemperature, map[string]any{"temperature_c": temp})
	}
	if TooDark(light) {
		l.alert(ctx, models.NoticeDarkness, map[string]any{"luminosity": light})
	}
	return true
}

// checkPosture takes its own distance reading and feeds the posture monitor.
func (l *Loop) checkPosture(ctx context.Context, now time.Time) bool {
	d, err := l.sensors.ReadDistance(ctx)
	if err != nil && !errors.Is(err, sensors.ErrNoEcho) {
		l.log.Warnw("posture_read_failed", "err", err)
		return false
	}
	if l.posture.Check(now, d) {
		l.net.Publish(ctx, l.topics.Status, models.NoticePosture)
		if err := l.act.Pulse(thresholds.PosturePulse); err != nil {
			l.log.Warnw("buzzer_failed", "err", err)
		}
		l.log.Infow("posture_alert", "distance_cm", d)
		l.record(ctx, models.EventAlert, models.NoticePosture, map[string]any{"distance_cm": d})
	}
	return true
}

// readDistance returns 0 when no echo came back, like an unanswered pulse.
func (l *Loop) readDistance(ctx context.Context) float64 {
	d, err := l.sensors.ReadDistance(ctx)
	if err != nil {
		l.log.Debugw("distance_unavailable", "err", err)
		return 0
	}
	return d
}

func (l *Loop) alert(ctx context.Context, notice string, meta map[string]any) {
	l.net.Publish(ctx, l.topics.Status, notice)
	l.log.Infow("comfort_alert", "notice", notice)
	l.record(ctx, models.EventAlert, notice, meta)
}

func (l *Loop) record(ctx context.Context, typ, description string, meta map[string]any) {
	if l.journal == nil {
		return
	}
	if err := l.journal.Record(ctx, typ, description, meta); err != nil {
		l.log.Warnw("journal_append_failed", "type", typ, "err", err)
	}
}

func (l *Loop) saveSnapshot(ctx context.Context, now time.Time) {
	if l.journal == nil {
		return
	}
	if err := l.journal.SaveSnapshot(ctx, l.Snapshot(now)); err != nil {
		l.log.Warnw("snapshot_save_failed", "err", err)
	}
}

// Snapshot reports the loop's current view of the station.
func (l *Loop) Snapshot(now time.Time) models.StationState {
	elapsed, remaining := l.session.Progress(now)
	return models.StationState{
		Session:          l.session.State().String(),
		ElapsedSeconds:   int(elapsed / time.Second),
		RemainingSeconds: int(remaining / time.Second),
		TemperatureC:     l.lastEnv.TemperatureC.Value,
		HumidityPct:      l.lastEnv.HumidityPct.Value,
		Luminosity:       l.lastLight,
		DistanceCM:       l.lastDistance,
		PostureSeconds:   l.posture.Accumulated().Seconds(),
		Connectivity:     l.net.State().String(),
		UpdatedAt:        now.UTC(),
	}
}

// Session returns the current phase.
func (l *Loop) Session() models.SessionState { return l.session.State() }

// Comfortable reports whether temp lies inside the inclusive comfort band.
func Comfortable(tempC float64) bool {
	return tempC >= thresholds.ComfortMinC && tempC <= thresholds.ComfortMaxC
}

// TooDark reports whether a raw light reading is below the darkness threshold.
func TooDark(light float64) bool {
	return light < thresholds.DarknessBelow
}

// formatTelemetry renders a reading with two fractional digits.
func formatTelemetry(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
