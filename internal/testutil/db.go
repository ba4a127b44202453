// Package testutil builds migrated, seeded sqlite databases for package
// tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-booking/internal/database"
)

// NewDB opens a fresh sqlite file under t.TempDir and applies every
// migration. The handle is closed when the test ends.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Options{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "trains_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, database.DriverSQLite))
	return db
}

// Seeded returns NewDB loaded with the fixture below.
//
// Trains:
//
//	12951 Delhi -> Mumbai          stops 1..4, sleeper counts 10, 0, NULL, 5; 1A on origin = 3
//	11078 Delhi -> Pune            stops 1..2, sleeper on origin = 1
//	12622 Delhi -> Chennai Central stops 1..2, every origin counter = 0
//	99999 Delhi -> Mumbai          no schedule rows
func Seeded(t *testing.T) *sql.DB {
	t.Helper()
	db := NewDB(t)
	stmts := []string{
		`INSERT INTO trains (train_number, train_name, source_station_name, destination_station_name, days) VALUES
			('12951', 'Mumbai Rajdhani', 'Delhi', 'Mumbai', 'Daily'),
			('11078', 'Jhelum Express', 'Delhi', 'Pune', 'Daily'),
			('12622', 'Tamil Nadu Express', 'Delhi', 'Chennai Central', 'Mon,Wed,Fri'),
			('99999', 'Unscheduled Special', 'Delhi', 'Mumbai', NULL)`,
		`INSERT INTO train_schedule (train_number, stop_number, station_code, station_name, arrival_time, departure_time, distance_km, seats_1a, seats_2a, seats_3a, seats_sl) VALUES
			('12951', 1, 'NDLS', 'New Delhi', NULL, '16:55', 0, 3, 10, 20, 10),
			('12951', 2, 'KOTA', 'Kota', '21:40', '21:50', 465, 1, 2, 3, 0),
			('12951', 3, 'BRC', 'Vadodara', '03:49', '03:59', 993, NULL, NULL, NULL, NULL),
			('12951', 4, 'MMCT', 'Mumbai Central', '08:35', NULL, 1384, 0, 1, 2, 5),
			('11078', 1, 'NDLS', 'New Delhi', NULL, '09:45', 0, 0, 4, 6, 1),
			('11078', 2, 'PUNE', 'Pune Junction', '17:20', NULL, 1550, 0, 0, 0, 0),
			('12622', 1, 'NDLS', 'New Delhi', NULL, '22:30', 0, 0, 0, 0, 0),
			('12622', 2, 'MAS', 'Chennai Central', '07:10', NULL, 2182, 0, 0, 0, 0)`,
		`INSERT INTO stations (station_code, station_name) VALUES
			('MAS', 'Chennai Central'),
			('MS', 'Chennai Egmore'),
			('NDLS', 'New Delhi'),
			('MMCT', 'Mumbai Central'),
			('PUNE', 'Pune Junction'),
			('X1', '100% Halt')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
	return db
}
