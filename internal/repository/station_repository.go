package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/train-booking/internal/model"
)

// StationRepo reads the station directory.
type StationRepo struct {
	db *sql.DB
}

// NewStationRepo returns a new StationRepo bound to the given database.
func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

// likeEscaper escapes LIKE wildcards with '!' which both MySQL and sqlite
// accept as an explicit ESCAPE character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// asciiLower folds A-Z only, matching sqlite's built-in LOWER(). MySQL's
// case-insensitive collation handles the remaining letters itself.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Search returns stations whose display name contains query, ignoring
// case. An empty query yields an empty slice without touching the store.
func (r *StationRepo) Search(ctx context.Context, query string) ([]model.Station, error) {
	out := []model.Station{}
	if query == "" {
		return out, nil
	}
	pattern := "%" + likeEscaper.Replace(asciiLower(query)) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT station_name, station_code FROM stations
		 WHERE LOWER(station_name) LIKE ? ESCAPE '!'
		 ORDER BY station_name`, pattern)
	if err != nil {
		return out, storageErr("search stations", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name sql.NullString
		var st model.Station
		if err := rows.Scan(&name, &st.StationCode); err != nil {
			return []model.Station{}, storageErr("scan station", err)
		}
		st.StationName = name.String
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return []model.Station{}, storageErr("iterate stations", err)
	}
	return out, nil
}
