package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/availability", h.GetAvailability, auth.RequireRole(auth.RoleViewer, auth.RoleScheduler))
}

var instantLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseInstant(s string) (time.Time, error) {
	var err error
	for _, layout := range instantLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func (h *Handler) GetAvailability(c echo.Context) error {
	begin, end, duration := c.QueryParam("begin"), c.QueryParam("end"), c.QueryParam("duration")
	if begin == "" || end == "" || duration == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "begin, end and duration are required")
	}

	var q Query
	var err error
	if q.Begin, err = parseInstant(begin); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid begin")
	}
	if q.End, err = parseInstant(end); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end")
	}
	if q.Duration, err = strconv.Atoi(duration); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidDuration.Error())
	}
	q.AllDayEvents = c.QueryParam("useAllDayEvent") == "yes"
	q.ShowIDs = c.QueryParam("showIds") == "yes"

	slots, err := h.svc.Find(c.Request().Context(), q)
	if err != nil {
		if isQueryError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, slots)
}

func isQueryError(err error) bool {
	return errors.Is(err, ErrMissingWindow) || errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrRangeTooLong) || errors.Is(err, ErrInvalidDuration)
}
