package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-booking/internal/model"
	"github.com/iliyamo/train-booking/internal/service"
)

// TrainHandler serves the public directory endpoints and seat updates.
type TrainHandler struct {
	Trains *service.TrainService
}

func NewTrainHandler(s *service.TrainService) *TrainHandler { return &TrainHandler{Trains: s} }

// StationsSearch: GET /v1/stations-search?query=
func (h *TrainHandler) StationsSearch(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stations, err := h.Trains.StationsLookup(ctx, c.QueryParam("query"))
	if err != nil {
		return fail(c, err, "message", echo.Map{"stations": []model.Station{}})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "stations": stations})
}

// TrainSearch: GET /v1/train-search?startStation=&endStation=
func (h *TrainHandler) TrainSearch(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Trains.Search(ctx, c.QueryParam("startStation"), c.QueryParam("endStation"))
	if err != nil {
		return fail(c, err, "message", nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "trains": res.Trains, "schedule": res.Schedule})
}

// TrainDetails: GET /v1/train-details?train_number=
func (h *TrainHandler) TrainDetails(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Trains.Details(ctx, c.QueryParam("train_number"))
	if err != nil {
		return fail(c, err, "error", nil)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"train":            d.Train,
		"schedule":         d.Schedule,
		"seatAvailability": d.SeatAvailability,
		"fares":            d.Fares,
	})
}

// Fares: GET /v1/fares?train_number=
func (h *TrainHandler) Fares(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trainNumber := c.QueryParam("train_number")
	quotes, err := h.Trains.Fares(ctx, trainNumber)
	if err != nil {
		return fail(c, err, "error", nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "train_number": trainNumber, "fares": quotes})
}

type updateSeatsReq struct {
	TrainNumber string `json:"train_number"`
	Class       string `json:"class"`
}

// UpdateSeats: POST /v1/update-seats {train_number, class}
func (h *TrainHandler) UpdateSeats(c echo.Context) error {
	var req updateSeatsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: invalid body", model.ErrValidation), "error", nil)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Trains.DecrementSeat(ctx, req.TrainNumber, req.Class); err != nil {
		return fail(c, err, "error", nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
