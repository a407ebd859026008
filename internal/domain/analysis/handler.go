package analysis

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carelink/portal/internal/domain/identity"
	"github.com/carelink/portal/internal/platform/auth"
	"github.com/carelink/portal/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/analyses", h.List)
	api.GET("/analyses/:id", h.Get)
}

func callerID(c echo.Context) string {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		return ""
	}
	return identity.ResolveUserID(&identity.User{ID: claims.Subject, LegacyID: claims.LegacyID})
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByOwner(c.Request().Context(), callerID(c), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list analyses")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	a, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "analysis not found")
	}
	if a.PatientID != callerID(c) {
		return echo.NewHTTPError(http.StatusNotFound, "analysis not found")
	}
	return c.JSON(http.StatusOK, a)
}
