package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/train-booking/internal/model"
)

// ScheduleRepo reads train_schedule rows.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

const stopColumns = `id, train_number, stop_number, station_code, station_name,
	arrival_time, departure_time, distance_km, seats_1a, seats_2a, seats_3a, seats_sl`

func scanStop(s rowScanner) (model.ScheduleStop, error) {
	var st model.ScheduleStop
	var code, name, arr, dep sql.NullString
	var dist, s1, s2, s3, sl sql.NullInt64
	if err := s.Scan(&st.ID, &st.TrainNumber, &st.StopNumber, &code, &name,
		&arr, &dep, &dist, &s1, &s2, &s3, &sl); err != nil {
		return model.ScheduleStop{}, err
	}
	st.StationCode = nullString(code)
	st.StationName = nullString(name)
	st.ArrivalTime = nullString(arr)
	st.DepartureTime = nullString(dep)
	st.DistanceKM = nullInt(dist)
	st.Seats1A = nullInt(s1)
	st.Seats2A = nullInt(s2)
	st.Seats3A = nullInt(s3)
	st.SeatsSL = nullInt(sl)
	return st, nil
}

func (r *ScheduleRepo) list(ctx context.Context, op, query string, args ...any) ([]model.ScheduleStop, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()
	out := []model.ScheduleStop{}
	for rows.Next() {
		st, err := scanStop(rows)
		if err != nil {
			return nil, storageErr("scan stop", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}

// ListByTrain returns a train's stops ordered by stop_number ascending.
func (r *ScheduleRepo) ListByTrain(ctx context.Context, trainNumber string) ([]model.ScheduleStop, error) {
	return r.list(ctx, "list schedule",
		`SELECT `+stopColumns+` FROM train_schedule WHERE train_number = ? ORDER BY stop_number ASC`,
		trainNumber)
}

// ListByTrains returns every stop belonging to any of the given trains.
// An empty input returns an empty slice without querying.
func (r *ScheduleRepo) ListByTrains(ctx context.Context, trainNumbers []string) ([]model.ScheduleStop, error) {
	if len(trainNumbers) == 0 {
		return []model.ScheduleStop{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(trainNumbers)), ",")
	args := make([]any, 0, len(trainNumbers))
	for _, n := range trainNumbers {
		args = append(args, n)
	}
	return r.list(ctx, "list schedules",
		`SELECT `+stopColumns+` FROM train_schedule WHERE train_number IN (`+placeholders+`)
		 ORDER BY train_number, stop_number`, args...)
}
