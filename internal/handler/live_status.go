package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-booking/internal/livestatus"
)

type LiveStatusHandler struct {
	Client *livestatus.Client
}

func NewLiveStatusHandler(c *livestatus.Client) *LiveStatusHandler {
	return &LiveStatusHandler{Client: c}
}

// LiveStatus: GET /v1/live-status?trainNo=&startDay=
// The provider payload is forwarded as data.
func (h *LiveStatusHandler) LiveStatus(c echo.Context) error {
	data, err := h.Client.Status(c.Request().Context(), c.QueryParam("trainNo"), c.QueryParam("startDay"))
	if err != nil {
		return fail(c, err, "error", nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}
