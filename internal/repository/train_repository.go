package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-booking/internal/model"
)

// TrainRepo reads the train directory.
type TrainRepo struct {
	db *sql.DB
}

// NewTrainRepo returns a new TrainRepo bound to the given database.
func NewTrainRepo(db *sql.DB) *TrainRepo { return &TrainRepo{db: db} }

const trainColumns = `train_number, train_name, source_station_name, destination_station_name, days`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrain(s rowScanner) (model.Train, error) {
	var t model.Train
	var name, src, dst, days sql.NullString
	if err := s.Scan(&t.TrainNumber, &name, &src, &dst, &days); err != nil {
		return model.Train{}, err
	}
	t.TrainName = nullString(name)
	t.SourceName = nullString(src)
	t.DestinationName = nullString(dst)
	t.Days = nullString(days)
	return t, nil
}

// FindByRoute returns every train whose recorded source and destination
// names equal the given names exactly. On MySQL both route columns use
// utf8mb4_bin so the comparison is case and accent sensitive.
func (r *TrainRepo) FindByRoute(ctx context.Context, source, destination string) ([]model.Train, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+trainColumns+` FROM trains
		 WHERE source_station_name = ? AND destination_station_name = ?
		 ORDER BY train_number`, source, destination)
	if err != nil {
		return nil, storageErr("find trains by route", err)
	}
	defer rows.Close()
	out := []model.Train{}
	for rows.Next() {
		t, err := scanTrain(rows)
		if err != nil {
			return nil, storageErr("scan train", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate trains", err)
	}
	return out, nil
}

// GetByNumber returns a single train. A missing train is reported as
// model.ErrNotFound.
func (r *TrainRepo) GetByNumber(ctx context.Context, trainNumber string) (model.Train, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+trainColumns+` FROM trains WHERE train_number = ? LIMIT 1`, trainNumber)
	t, err := scanTrain(row)
	if err != nil {
		return model.Train{}, storageErr("get train "+trainNumber, err)
	}
	return t, nil
}
