package repository

import (
	"context"
	"database/sql"
	"time"

	"wellbeing_station/internal/models"
)

// StateRepo persists the latest station snapshot.
type StateRepo interface {
	Save(ctx context.Context, s models.StationState) error
	Load(ctx context.Context) (models.StationState, error)
}

// EventRepo is the append-only station journal.
type EventRepo interface {
	Append(ctx context.Context, e models.StationEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.StationEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
	}
}
