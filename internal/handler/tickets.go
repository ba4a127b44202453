package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-booking/internal/middleware"
	"github.com/iliyamo/train-booking/internal/model"
	"github.com/iliyamo/train-booking/internal/repository"
	"github.com/iliyamo/train-booking/internal/service"
)

// TicketHandler serves booking and the signed-in user's profile.
type TicketHandler struct {
	Bookings *service.BookingService
	Users    *repository.UserRepo
}

func NewTicketHandler(b *service.BookingService, u *repository.UserRepo) *TicketHandler {
	return &TicketHandler{Bookings: b, Users: u}
}

// Create: POST /v1/tickets
func (h *TicketHandler) Create(c echo.Context) error {
	var req service.TicketRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: invalid body", model.ErrValidation), "error", nil)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Bookings.CreateTicket(ctx, middleware.UserID(c), req)
	if err != nil {
		return fail(c, err, "error", nil)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "ticket": t})
}

// List: GET /v1/tickets
func (h *TicketHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Bookings.ListTickets(ctx, middleware.UserID(c))
	if err != nil {
		return fail(c, err, "error", nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "tickets": tickets})
}

// Profile: GET /v1/profile returns the user and their tickets.
func (h *TicketHandler) Profile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid := middleware.UserID(c)
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return fail(c, err, "error", nil)
	}
	tickets, err := h.Bookings.ListTickets(ctx, uid)
	if err != nil {
		return fail(c, err, "error", nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": u, "tickets": tickets})
}
