// Package connectivity keeps the station associated with the wireless network
// and holds a broker session open for fire-and-forget publishing.
//
// EnsureConnected blocks in two phases, each retried with a fixed delay:
//  1. wireless association (skipped once associated)
//  2. broker handshake, re-run whenever Service reports a dropped session
//
// Every established session announces itself on the status topic.
package connectivity

import (
	"context"
	"fmt"
	"sync/atomic"

	"wellbeing_station/internal/logger"
	"wellbeing_station/internal/models"
	"wellbeing_station/internal/thresholds"
)

// State is the connection lifecycle.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "CONNECTING"
	case Connected:
		return "CONNECTED"
	default:
		return "DISCONNECTED"
	}
}

// Options tunes a Manager. Zero values fall back to the compiled-in delays.
type Options struct {
	LinkRetry   RetryPolicy
	BrokerRetry RetryPolicy
	StatusTopic string
	// OnStateChange is called synchronously on every state change.
	OnStateChange func(from, to State)
}

// Manager owns the link and the broker session.
type Manager struct {
	link   Link
	broker Session
	opts   Options
	log    *logger.Logger
	sleep  sleepFunc

	state atomic.Int32
}

// NewManager wires a link and a broker session.
func NewManager(link Link, broker Session, opts Options, log *logger.Logger) *Manager {
	if opts.LinkRetry.Delay <= 0 {
		opts.LinkRetry.Delay = thresholds.AssociateRetryDelay
	}
	if opts.BrokerRetry.Delay <= 0 {
		opts.BrokerRetry.Delay = thresholds.BrokerRetryDelay
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{link: link, broker: broker, opts: opts, log: log, sleep: sleepCtx}
}

// State returns the current connection state. Safe from any goroutine.
func (m *Manager) State() State { return State(m.state.Load()) }

// Connected reports whether a broker session is up.
func (m *Manager) Connected() bool {
	return m.State() == Connected && m.broker.Connected()
}

// EnsureConnected returns immediately when connected. Otherwise it blocks
// until the link is associated and a broker session is established, then
// publishes the online notice. It only fails when ctx is cancelled or a
// bounded retry policy gives up.
func (m *Manager) EnsureConnected(ctx context.Context) error {
	if m.Connected() {
		return nil
	}
	m.setState(Connecting)

	if !m.link.Associated() {
		m.log.Infow("wifi_associating")
		err := m.opts.LinkRetry.Do(ctx, m.sleep, func(attempt int) error {
			err := m.link.Associate(ctx)
			if err != nil {
				m.log.Debugw("wifi_associate_failed", "attempt", attempt, "err", err)
			}
			return err
		})
		if err != nil {
			m.setState(Disconnected)
			return fmt.Errorf("associate wifi: %w", err)
		}
		m.log.Infow("wifi_associated")
	}

	err := m.opts.BrokerRetry.Do(ctx, m.sleep, func(attempt int) error {
		m.log.Infow("mqtt_connecting", "attempt", attempt)
		err := m.broker.Connect(ctx)
		if err != nil {
			m.log.Warnw("mqtt_connect_failed", "attempt", attempt, "retry_in", m.opts.BrokerRetry.Delay.String(), "err", err)
		}
		return err
	})
	if err != nil {
		m.setState(Disconnected)
		return fmt.Errorf("connect broker: %w", err)
	}

	m.setState(Connected)
	m.log.Infow("mqtt_connected")
	m.Publish(ctx, m.opts.StatusTopic, models.NoticeOnline)
	return nil
}

// Service runs the broker client's per-iteration work and notices a dropped
// session, so the next EnsureConnected redoes the handshake.
func (m *Manager) Service(ctx context.Context) {
	if m.State() != Connected {
		return
	}
	if err := m.broker.Service(ctx); err != nil || !m.broker.Connected() {
		m.log.Warnw("mqtt_session_lost", "err", err)
		m.setState(Disconnected)
	}
}

// Publish is fire-and-forget: failures are logged at debug and dropped.
func (m *Manager) Publish(ctx context.Context, topic, payload string) {
	if err := m.broker.Publish(ctx, topic, []byte(payload)); err != nil {
		m.log.Debugw("mqtt_publish_failed", "topic", topic, "err", err)
	}
}

// Close announces the station offline and ends the broker session.
func (m *Manager) Close(ctx context.Context) error {
	if m.Connected() {
		m.Publish(ctx, m.opts.StatusTopic, models.NoticeOffline)
	}
	m.setState(Disconnected)
	return m.broker.Disconnect(ctx)
}

func (m *Manager) setState(to State) {
	from := State(m.state.Swap(int32(to)))
	if from == to {
		return
	}
	if m.opts.OnStateChange != nil {
		m.opts.OnStateChange(from, to)
	}
}
