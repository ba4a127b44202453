package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/train-booking/internal/fare"
	"github.com/iliyamo/train-booking/internal/model"
	"github.com/iliyamo/train-booking/internal/queue"
	"github.com/iliyamo/train-booking/internal/repository"
)

const (
	minPassengerAge = 1
	maxPassengerAge = 125
	aadharDigits    = 12
)

// EventPublisher delivers booking events. queue.Publisher satisfies it.
type EventPublisher interface {
	PublishTicketBooked(ctx context.Context, ev queue.TicketBookedEvent) error
}

// BookingService creates and lists tickets.
type BookingService struct {
	Trains    *repository.TrainRepo
	Seats     *repository.SeatRepo
	Tickets   *repository.TicketRepo
	Publisher EventPublisher // optional

	log *logrus.Entry
}

func NewBookingService(tr *repository.TrainRepo, se *repository.SeatRepo, tk *repository.TicketRepo, pub EventPublisher) *BookingService {
	return &BookingService{
		Trains:    tr,
		Seats:     se,
		Tickets:   tk,
		Publisher: pub,
		log:       logrus.WithField("component", "booking"),
	}
}

// TicketRequest is the passenger form submitted at checkout.
type TicketRequest struct {
	TrainNumber  string `json:"train_number"`
	Class        string `json:"class"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	AadharNumber string `json:"aadhar_number"`
}

func (r *TicketRequest) normalize() {
	r.TrainNumber = strings.TrimSpace(r.TrainNumber)
	r.Class = strings.TrimSpace(r.Class)
	r.Name = strings.TrimSpace(r.Name)
	r.AadharNumber = strings.ReplaceAll(strings.TrimSpace(r.AadharNumber), " ", "")
}

func (r TicketRequest) validate() (fare.Class, error) {
	if r.TrainNumber == "" {
		return "", fmt.Errorf("%w: train_number is required", model.ErrValidation)
	}
	c, err := fare.ParseClass(r.Class)
	if err != nil {
		return "", err
	}
	if r.Name == "" {
		return "", fmt.Errorf("%w: passenger name is required", model.ErrValidation)
	}
	if r.Age < minPassengerAge || r.Age > maxPassengerAge {
		return "", fmt.Errorf("%w: age must be between %d and %d", model.ErrValidation, minPassengerAge, maxPassengerAge)
	}
	if len(r.AadharNumber) != aadharDigits || strings.IndexFunc(r.AadharNumber, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return "", fmt.Errorf("%w: aadhar_number must be %d digits", model.ErrValidation, aadharDigits)
	}
	return c, nil
}

// CreateTicket books one seat for userID. The seat counter and the ticket
// row change in one transaction; a sold-out class yields model.ErrSoldOut.
// The ticket.booked event is published after commit and its failure does
// not fail the booking.
func (s *BookingService) CreateTicket(ctx context.Context, userID string, in TicketRequest) (model.Ticket, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Ticket{}, fmt.Errorf("%w: user is required", model.ErrValidation)
	}
	in.normalize()
	class, err := in.validate()
	if err != nil {
		return model.Ticket{}, err
	}
	train, err := s.Trains.GetByNumber(ctx, in.TrainNumber)
	if err != nil {
		return model.Ticket{}, err
	}

	t := model.Ticket{
		UserID:       userID,
		TrainNumber:  in.TrainNumber,
		Name:         in.Name,
		Age:          in.Age,
		AadharNumber: in.AadharNumber,
		Class:        string(class),
		Price:        fare.Price(in.TrainNumber, class),
	}

	tx, err := s.Tickets.DB().BeginTx(ctx, nil)
	if err != nil {
		return model.Ticket{}, fmt.Errorf("%w: begin booking: %v", model.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.Seats.TakeTx(ctx, tx, in.TrainNumber, class); err != nil {
		return model.Ticket{}, err
	}
	if err := s.Tickets.CreateTx(ctx, tx, &t); err != nil {
		return model.Ticket{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Ticket{}, fmt.Errorf("%w: commit booking: %v", model.ErrStorage, err)
	}

	s.log.WithFields(logrus.Fields{
		"ticket_id":    t.ID,
		"train_number": t.TrainNumber,
		"class":        t.Class,
	}).Info("ticket booked")

	if s.Publisher != nil {
		name := ""
		if train.TrainName != nil {
			name = *train.TrainName
		}
		if err := s.Publisher.PublishTicketBooked(ctx, queue.NewTicketBookedEvent(t, name)); err != nil {
			s.log.WithError(err).WithField("ticket_id", t.ID).Warn("ticket.booked not published")
		}
	}
	return t, nil
}

// ListTickets returns the user's tickets, newest first.
func (s *BookingService) ListTickets(ctx context.Context, userID string) ([]model.TicketWithTrain, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user is required", model.ErrValidation)
	}
	return s.Tickets.ListByUser(ctx, userID)
}
