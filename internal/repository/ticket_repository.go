package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/train-booking/internal/model"
)

// TicketRepo persists booked tickets.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// DB exposes the underlying handle so callers can open a transaction
// spanning the seat counter and the ticket insert.
func (r *TicketRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a ticket within the caller's transaction and fills in
// the generated ID and booking time.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	if t.BookedAt.IsZero() {
		t.BookedAt = time.Now().UTC()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (user_id, train_number, name, age, aadhar_number, class, price, booked_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.TrainNumber, t.Name, t.Age, t.AadharNumber, t.Class, t.Price, t.BookedAt)
	if err != nil {
		return storageErr("insert ticket", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("insert ticket", err)
	}
	t.ID = id
	return nil
}

// ListByUser returns a user's tickets, newest first, each joined with
// its train row.
func (r *TicketRepo) ListByUser(ctx context.Context, userID string) ([]model.TicketWithTrain, error) {
	const q = `SELECT t.id, t.user_id, t.train_number, t.name, t.age, t.aadhar_number, t.class, t.price, t.booked_at,
	                  tr.train_number, tr.train_name, tr.source_station_name, tr.destination_station_name, tr.days
	           FROM tickets t
	           LEFT JOIN trains tr ON tr.train_number = t.train_number
	           WHERE t.user_id = ?
	           ORDER BY t.booked_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, storageErr("list tickets", err)
	}
	defer rows.Close()
	out := []model.TicketWithTrain{}
	for rows.Next() {
		var tw model.TicketWithTrain
		var trNum, trName, src, dst, days sql.NullString
		if err := rows.Scan(&tw.ID, &tw.UserID, &tw.TrainNumber, &tw.Name, &tw.Age, &tw.AadharNumber,
			&tw.Class, &tw.Price, &tw.BookedAt,
			&trNum, &trName, &src, &dst, &days); err != nil {
			return nil, storageErr("scan ticket", err)
		}
		if trNum.Valid {
			tw.Train = &model.Train{
				TrainNumber:     trNum.String,
				TrainName:       nullString(trName),
				SourceName:      nullString(src),
				DestinationName: nullString(dst),
				Days:            nullString(days),
			}
		}
		out = append(out, tw)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list tickets", err)
	}
	return out, nil
}
