package handlers

import (
	"context"
	"time"

	"wellbeing_station/internal/models"
	"wellbeing_station/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	state models.StationState
	err   error
	calls int
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.StationState, error) {
	m.calls++
	return m.state, m.err
}

type mockEventLog struct {
	resp     []models.StationEvent
	err      error
	calls    int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.StationEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
