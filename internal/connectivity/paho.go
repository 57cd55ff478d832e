package connectivity

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/eclipse/paho.golang/paho"

	"wellbeing_station/internal/config"
	"wellbeing_station/internal/logger"
	"wellbeing_station/internal/models"
)

// ErrSessionLost is reported by Service once the broker session has dropped.
var ErrSessionLost = errors.New("connectivity: broker session lost")

const (
	keepAliveSec = 30
	dialTimeout  = 10 * time.Second
)

// Session is a broker session that can be re-established.
type Session interface {
	Connect(ctx context.Context) error
	Connected() bool
	Publish(ctx context.Context, topic string, payload []byte) error
	Service(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// PahoSession is an MQTT v5 session on Eclipse Paho. Each Connect dials a
// fresh TCP (or TLS for mqtts:// and ssl://) connection; paho runs keepalive
// on its own goroutines and reports drops through the client callbacks.
type PahoSession struct {
	cfg       config.MQTT
	willTopic string
	log       *logger.Logger
	dial      func(ctx context.Context, u *url.URL) (net.Conn, error)

	mu      sync.Mutex
	client  *paho.Client
	up      bool
	lastErr error
}

// NewPahoSession prepares a session; it does not connect.
func NewPahoSession(cfg config.MQTT, willTopic string, log *logger.Logger) *PahoSession {
	return &PahoSession{cfg: cfg, willTopic: willTopic, log: log, dial: dialBroker}
}

// Connect performs one broker handshake attempt.
func (s *PahoSession) Connect(ctx context.Context) error {
	u, err := url.Parse(s.cfg.Broker)
	if err != nil {
		return fmt.Errorf("parse mqtt broker URL: %w", err)
	}
	conn, err := s.dial(ctx, u)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u.Host, err)
	}

	clientID := fmt.Sprintf("wellbeing-%04x", rand.Intn(0xffff))
	c := paho.NewClient(paho.ClientConfig{
		ClientID:           clientID,
		Conn:               conn,
		OnClientError:      func(err error) { s.markDown(err) },
		OnServerDisconnect: func(d *paho.Disconnect) { s.markDown(fmt.Errorf("server disconnect, reason %d", d.ReasonCode)) },
	})

	cp := &paho.Connect{
		ClientID:   clientID,
		KeepAlive:  keepAliveSec,
		CleanStart: true,
		WillMessage: &paho.WillMessage{
			Topic:   s.willTopic,
			Payload: []byte(models.NoticeOffline),
			QoS:     1,
		},
	}
	if s.cfg.Username != "" {
		cp.Username = s.cfg.Username
		cp.UsernameFlag = true
	}
	if s.cfg.Password != "" {
		cp.Password = []byte(s.cfg.Password)
		cp.PasswordFlag = true
	}

	ca, err := c.Connect(ctx, cp)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mqtt connect: %w", err)
	}
	if ca.ReasonCode != 0 {
		_ = conn.Close()
		return fmt.Errorf("mqtt connect refused: reason %d", ca.ReasonCode)
	}

	s.mu.Lock()
	s.client = c
	s.up = true
	s.lastErr = nil
	s.mu.Unlock()

	if s.log != nil {
		s.log.Debugw("mqtt_session_established", "client_id", clientID, "broker", u.Host)
	}
	return nil
}

// Connected reports whether the last handshake is still alive.
func (s *PahoSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.up
}

// Publish sends payload at QoS 0.
func (s *PahoSession) Publish(ctx context.Context, topic string, payload []byte) error {
	s.mu.Lock()
	c, up := s.client, s.up
	s.mu.Unlock()
	if !up || c == nil {
		return ErrSessionLost
	}
	_, err := c.Publish(ctx, &paho.Publish{Topic: topic, Payload: payload, QoS: 0})
	return err
}

// Service surfaces a dropped session. Keepalive itself runs inside paho.
func (s *PahoSession) Service(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil && !s.up {
		err := s.lastErr
		s.client = nil
		return errors.Join(ErrSessionLost, err)
	}
	return nil
}

// Disconnect closes the session cleanly.
func (s *PahoSession) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	c := s.client
	s.client = nil
	s.up = false
	s.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Disconnect(&paho.Disconnect{ReasonCode: 0})
}

func (s *PahoSession) markDown(err error) {
	s.mu.Lock()
	s.up = false
	s.lastErr = err
	s.mu.Unlock()
}

// dialBroker opens TCP or TLS depending on the URL scheme.
func dialBroker(ctx context.Context, u *url.URL) (net.Conn, error) {
	dctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	switch u.Scheme {
	case "mqtts", "ssl", "tls":
		d := &tls.Dialer{Config: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: u.Hostname()}}
		return d.DialContext(dctx, "tcp", hostPort(u, "8883"))
	default:
		var d net.Dialer
		return d.DialContext(dctx, "tcp", hostPort(u, "1883"))
	}
}

func hostPort(u *url.URL, defPort string) string {
	if u.Port() != "" {
		return u.Host
	}
	return net.JoinHostPort(u.Hostname(), defPort)
}
