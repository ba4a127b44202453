package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/train-booking/internal/model"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConcurrency),
		errors.Is(err, model.ErrSoldOut),
		errors.Is(err, model.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, model.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes {"success":false,<key>:<message>} with the status matching
// err. Extra fields are merged into the body.
func fail(c echo.Context, err error, key string, extra echo.Map) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	body := echo.Map{"success": false, key: err.Error()}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(status, body)
}
