package service

import (
	"context"

	"wellbeing_station/internal/models"
	"wellbeing_station/internal/repository"
)

// Monitoring exposes the latest station snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.StationState, error)
}

// EventLog exposes the append-only journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.StationEvent, error)
}

// Journal is the write side used by the control loop.
type Journal interface {
	Record(ctx context.Context, typ, description string, meta map[string]any) error
	SaveSnapshot(ctx context.Context, s models.StationState) error
}

type Service struct {
	Monitoring
	EventLog
	Journal
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Monitoring: NewMonitoringService(repos.StateRepo),
		EventLog:   NewEventLogService(repos.EventRepo),
		Journal:    NewJournalService(repos.StateRepo, repos.EventRepo),
	}
}
