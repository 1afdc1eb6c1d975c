package consultation

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/consultations", h.ListConsultations, auth.RequireRole(auth.RoleViewer, auth.RoleScheduler))
	api.POST("/consultations", h.PostConsultations, auth.RequireRole(auth.RoleScheduler))
}

func (h *Handler) ListConsultations(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Consultation{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg).WithLinks(c.Request().URL.Path, pg))
}

type importRequest struct {
	Consultations []*Consultation `json:"consultations"`
}

func (h *Handler) PostConsultations(c echo.Context) error {
	var req importRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Consultations) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "consultations are required")
	}
	if err := h.svc.Import(c.Request().Context(), req.Consultations); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"consultations": req.Consultations,
	})
}
