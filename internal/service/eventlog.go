package service

import (
	"context"

	"wellbeing_station/internal/models"
	"wellbeing_station/internal/repository"
)

// EventLogService answers journal queries from the HTTP API.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// List returns the journal entries matching f, oldest first. Filter errors
// wrap ErrInvalidFilter and never reach the store.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.StationEvent, error) {
	q, err := f.normalized()
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q.From, q.To, q.Type)
}
