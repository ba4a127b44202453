// Package service holds the train directory and booking use cases. Handlers
// call into it; it talks to the repositories and never to echo.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/train-booking/internal/fare"
	"github.com/iliyamo/train-booking/internal/model"
	"github.com/iliyamo/train-booking/internal/repository"
)

// TrainService answers station, route and schedule questions and applies
// seat decrements.
type TrainService struct {
	Stations *repository.StationRepo
	Trains   *repository.TrainRepo
	Schedule *repository.ScheduleRepo
	Seats    *repository.SeatRepo
}

func NewTrainService(st *repository.StationRepo, tr *repository.TrainRepo, sc *repository.ScheduleRepo, se *repository.SeatRepo) *TrainService {
	return &TrainService{Stations: st, Trains: tr, Schedule: sc, Seats: se}
}

// SearchResult is the train directory answer for one route.
type SearchResult struct {
	Trains   []model.Train        `json:"trains"`
	Schedule []model.ScheduleStop `json:"schedule"`
}

// TrainDetails is the schedule reader answer for one train.
type TrainDetails struct {
	Train            model.Train          `json:"train"`
	Schedule         []model.ScheduleStop `json:"schedule"`
	SeatAvailability fare.Availability    `json:"seatAvailability"`
	Fares            []fare.Quote         `json:"fares"`
}

// StationsLookup returns stations whose name contains query, ignoring case.
// A blank query yields an empty list.
func (s *TrainService) StationsLookup(ctx context.Context, query string) ([]model.Station, error) {
	out, err := s.Stations.Search(ctx, query)
	if err != nil {
		return []model.Station{}, err
	}
	return out, nil
}

// Search returns the trains running exactly from source to destination and
// every stop of those trains.
func (s *TrainService) Search(ctx context.Context, source, destination string) (SearchResult, error) {
	source, destination = strings.TrimSpace(source), strings.TrimSpace(destination)
	if source == "" || destination == "" {
		return SearchResult{}, fmt.Errorf("%w: startStation and endStation are both required", model.ErrValidation)
	}
	trains, err := s.Trains.FindByRoute(ctx, source, destination)
	if err != nil {
		return SearchResult{}, err
	}
	numbers := make([]string, 0, len(trains))
	for _, t := range trains {
		numbers = append(numbers, t.TrainNumber)
	}
	stops, err := s.Schedule.ListByTrains(ctx, numbers)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Trains: trains, Schedule: stops}, nil
}

// Details returns one train, its ordered stops, the per-class seat totals
// summed over all stops and the fare for each class.
func (s *TrainService) Details(ctx context.Context, trainNumber string) (TrainDetails, error) {
	trainNumber = strings.TrimSpace(trainNumber)
	if trainNumber == "" {
		return TrainDetails{}, fmt.Errorf("%w: train_number is required", model.ErrValidation)
	}
	train, err := s.Trains.GetByNumber(ctx, trainNumber)
	if err != nil {
		return TrainDetails{}, err
	}
	stops, err := s.Schedule.ListByTrain(ctx, trainNumber)
	if err != nil {
		return TrainDetails{}, err
	}
	return TrainDetails{
		Train:            train,
		Schedule:         stops,
		SeatAvailability: fare.Aggregate(stops),
		Fares:            fare.Quotes(trainNumber),
	}, nil
}

// Fares prices every class of an existing train.
func (s *TrainService) Fares(ctx context.Context, trainNumber string) ([]fare.Quote, error) {
	trainNumber = strings.TrimSpace(trainNumber)
	if trainNumber == "" {
		return nil, fmt.Errorf("%w: train_number is required", model.ErrValidation)
	}
	if _, err := s.Trains.GetByNumber(ctx, trainNumber); err != nil {
		return nil, err
	}
	return fare.Quotes(trainNumber), nil
}

// DecrementSeat removes one seat of class from the train, flooring at zero.
func (s *TrainService) DecrementSeat(ctx context.Context, trainNumber, class string) error {
	trainNumber = strings.TrimSpace(trainNumber)
	if trainNumber == "" {
		return fmt.Errorf("%w: train_number is required", model.ErrValidation)
	}
	c, err := fare.ParseClass(class)
	if err != nil {
		return err
	}
	return s.Seats.Decrement(ctx, trainNumber, c)
}
