package service

import (
	"context"
	"time"

	"wellbeing_station/internal/models"
	"wellbeing_station/internal/repository"
	"wellbeing_station/internal/thresholds"
)

const connectivityUnknown = "DISCONNECTED"

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted station snapshot.
// If the loop has not saved one yet, returns a baseline snapshot of a fresh work phase.
func (s *MonitoringService) GetState(ctx context.Context) (models.StationState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.StationState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState mirrors the session at boot: Working, full phase remaining.
func (s *MonitoringService) baselineState() models.StationState {
	return models.StationState{
		ID:               1,
		Session:          models.Working.String(),
		ElapsedSeconds:   0,
		RemainingSeconds: int(thresholds.WorkDuration / time.Second),
		Connectivity:     connectivityUnknown,
		UpdatedAt:        time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
