package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wellbeing_station/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	stationStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO station_state (id, session, elapsed_s, remaining_s, temp_c, humidity_pct, luminosity, distance_cm, posture_s, connectivity, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session=excluded.session,
			elapsed_s=excluded.elapsed_s,
			remaining_s=excluded.remaining_s,
			temp_c=excluded.temp_c,
			humidity_pct=excluded.humidity_pct,
			luminosity=excluded.luminosity,
			distance_cm=excluded.distance_cm,
			posture_s=excluded.posture_s,
			connectivity=excluded.connectivity,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, session, elapsed_s, remaining_s, temp_c, humidity_pct, luminosity, distance_cm, posture_s, connectivity, updated_at
		FROM station_state WHERE id=?
	`
)

// Save updates or inserts the station_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, s models.StationState) error {
	ts := s.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		stationStateRowID,
		s.Session,
		s.ElapsedSeconds,
		s.RemainingSeconds,
		s.TemperatureC,
		s.HumidityPct,
		s.Luminosity,
		s.DistanceCM,
		s.PostureSeconds,
		s.Connectivity,
		formatTimestamp(ts),
	)
	return err
}

// Load fetches the single station_state row. A missing row is returned as
// the zero value with ID 0.
func (r *StateSQLite) Load(ctx context.Context) (models.StationState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, stationStateRowID)

	var (
		s       models.StationState
		updated string
	)
	if err := row.Scan(
		&s.ID,
		&s.Session,
		&s.ElapsedSeconds,
		&s.RemainingSeconds,
		&s.TemperatureC,
		&s.HumidityPct,
		&s.Luminosity,
		&s.DistanceCM,
		&s.PostureSeconds,
		&s.Connectivity,
		&updated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StationState{}, nil
		}
		return models.StationState{}, err
	}

	ts, err := parseTimestamp(updated)
	if err != nil {
		return models.StationState{}, err
	}
	s.UpdatedAt = ts
	return s, nil
}
