package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	maxHeaderBytes    = 1 << 20
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server serves the station's read-only status API.
type Server struct {
	http *http.Server
}

// New binds handler to port. port may be a bare number ("8080"), a colon
// form (":8080") or a full host:port.
func New(port string, handler http.Handler) *Server {
	return &Server{http: &http.Server{
		Addr:              listenAddr(port),
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

func listenAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Addr is the address passed to the listener.
func (s *Server) Addr() string { return s.http.Addr }

// Run blocks until the server fails or Shutdown is called. A server stopped
// by Shutdown returns nil.
func (s *Server) Run() error {
	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
// Websocket streams are hijacked and are ended by their own request context.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
