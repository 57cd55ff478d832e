package service

import (
	"context"
	"time"

	"wellbeing_station/internal/models"
	"wellbeing_station/internal/repository"

	"github.com/google/uuid"
)

type JournalService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	now       func() time.Time
}

func NewJournalService(stateRepo repository.StateRepo, eventRepo repository.EventRepo) *JournalService {
	return &JournalService{stateRepo: stateRepo, eventRepo: eventRepo, now: time.Now}
}

// Record appends one journal entry stamped with the current wall time.
func (s *JournalService) Record(ctx context.Context, typ, description string, meta map[string]any) error {
	e := models.StationEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Description: description,
	}
	if len(meta) > 0 {
		e.Metadata = meta
	}
	return s.eventRepo.Append(ctx, e)
}

// SaveSnapshot overwrites the single-row station snapshot.
func (s *JournalService) SaveSnapshot(ctx context.Context, st models.StationState) error {
	st.ID = 1 // DB schema enforces single-row state with id=1
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = s.now()
	}
	st.UpdatedAt = st.UpdatedAt.UTC()
	return s.stateRepo.Save(ctx, st)
}
