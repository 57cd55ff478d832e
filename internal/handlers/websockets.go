package handlers

import (
	"context"
	"net/http"
	"time"

	"wellbeing_station/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	maxMsgSize  = 1 << 12
	defaultPoll = time.Second
	minPoll     = 100 * time.Millisecond
	maxPoll     = 10 * time.Second
)

// wsEnvelope is one frame of the state stream.
type wsEnvelope struct {
	Type  string               `json:"type"` // "state" | "error"
	Data  *models.StationState `json:"data,omitempty"`
	Error string               `json:"error,omitempty"`
}

// Dashboards are served on the local network only, so any origin is accepted.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stateStream remembers the last snapshot pushed to one client.
type stateStream struct {
	conn *websocket.Conn
	last models.StationState
	sent bool
}

// changed reports whether st differs from the last pushed snapshot. The
// snapshot time alone does not count as a change.
func (s *stateStream) changed(st models.StationState) bool {
	if !s.sent {
		return true
	}
	a, b := s.last, st
	a.UpdatedAt, b.UpdatedAt = time.Time{}, time.Time{}
	return a != b
}

func (s *stateStream) write(env wsEnvelope) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(env)
}

// @Summary      Stream station state
// @Description  Upgrades to a websocket and pushes the station snapshot on connect and whenever the session, readings or connectivity change. The snapshot store is polled every ?poll= (100ms..10s, default 1s).
// @Tags         station
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	poll := pollInterval(c.Query("poll"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.drainClient(conn, done)

	ctx := c.Request.Context()
	stream := &stateStream{conn: conn}
	if err := h.pushIfChanged(ctx, stream); err != nil {
		if h.log != nil {
			h.log.Infow("ws_initial_push_failed", "err", err)
		}
		_ = stream.write(wsEnvelope{Type: "error", Error: "station state unavailable"})
		return
	}

	tick := time.NewTicker(poll)
	ping := time.NewTicker(pingPeriod)
	defer tick.Stop()
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-tick.C:
			if err := h.pushIfChanged(ctx, stream); err != nil {
				if h.log != nil {
					h.log.Infow("ws_push_failed", "err", err)
				}
				return
			}
		}
	}
}

// pushIfChanged reads the stored snapshot and writes it when it moved on.
func (h *Handler) pushIfChanged(ctx context.Context, s *stateStream) error {
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		return err
	}
	if !s.changed(st) {
		return nil
	}
	if err := s.write(wsEnvelope{Type: "state", Data: &st}); err != nil {
		return err
	}
	s.last, s.sent = st, true
	return nil
}

// pollInterval parses ?poll=500ms, falling back to the default when the
// value is malformed or outside [minPoll, maxPoll].
func pollInterval(q string) time.Duration {
	d, err := time.ParseDuration(q)
	if err != nil || d < minPoll || d > maxPoll {
		return defaultPoll
	}
	return d
}

// drainClient reads until the client goes away so control frames are handled.
func (h *Handler) drainClient(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
