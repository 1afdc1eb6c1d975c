package resource

import (
	"errors"
	"net/http"

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
	api.GET("/resources", h.GetResources, auth.RequireRole(auth.RoleViewer, auth.RoleScheduler))
	api.POST("/resources", h.PostResources, auth.RequireRole(auth.RoleScheduler))
}

func (h *Handler) GetResources(c echo.Context) error {
	cat, err := h.svc.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) PostResources(c echo.Context) error {
	var cat Catalog
	if err := c.Bind(&cat); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(cat.Doctors) == 0 && len(cat.Rooms) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "doctors or rooms are required")
	}
	if err := h.svc.Import(c.Request().Context(), &cat); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, map[string]int{
		"doctors": len(cat.Doctors),
		"rooms":   len(cat.Rooms),
	})
}
