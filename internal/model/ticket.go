package model

import "time"

// Ticket records one booked seat for one passenger. Tickets are created at
// booking confirmation and never mutated afterwards.
//
// Fields:
//
//	ID           – primary key.
//	UserID       – user who booked the ticket.
//	TrainNumber  – train the seat was taken on.
//	Name, Age    – passenger details.
//	AadharNumber – 12 digit national ID of the passenger.
//	Class        – fare class code (1A, 2A, 3A, SL).
//	Price        – price charged, from the pricing function.
//	BookedAt     – UTC booking time.
type Ticket struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	TrainNumber  string    `json:"train_number"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	AadharNumber string    `json:"aadhar_number"`
	Class        string    `json:"class"`
	Price        int       `json:"price"`
	BookedAt     time.Time `json:"booked_at"`
}

// TicketWithTrain is a ticket joined with its train row, as listed on the
// profile page. Train is nil when the train row has been removed.
type TicketWithTrain struct {
	Ticket
	Train *Train `json:"trains"`
}
