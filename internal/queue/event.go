// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/train-booking/internal/model"
)

// TicketBookedQueue is the durable queue that carries TicketBookedEvent.
const TicketBookedQueue = "ticket.booked"

// TicketBookedEvent is published after a ticket row has been committed. It
// carries enough for downstream consumers to log or notify without querying
// the primary database.
type TicketBookedEvent struct {
	EventID     string `json:"event_id"`
	TicketID    int64  `json:"ticket_id"`
	UserID      string `json:"user_id"`
	TrainNumber string `json:"train_number"`
	TrainName   string `json:"train_name"`
	Passenger   string `json:"passenger"`
	Class       string `json:"class"`
	Price       int    `json:"price"`
	BookedAt    string `json:"booked_at"`
}

// NewTicketBookedEvent builds the event for a stored ticket.
func NewTicketBookedEvent(t model.Ticket, trainName string) TicketBookedEvent {
	return TicketBookedEvent{
		EventID:     uuid.NewString(),
		TicketID:    t.ID,
		UserID:      t.UserID,
		TrainNumber: t.TrainNumber,
		TrainName:   trainName,
		Passenger:   t.Name,
		Class:       t.Class,
		Price:       t.Price,
		BookedAt:    t.BookedAt.UTC().Format(time.RFC3339),
	}
}
