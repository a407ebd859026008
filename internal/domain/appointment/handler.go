package appointment

import (
	"net/http"
	"strconv"

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
	api.GET("/appointments", h.List)
	api.POST("/appointments", h.Create)
	api.GET("/appointments/trends", h.Trends)
	api.GET("/appointments/:id", h.Get)
	api.PUT("/appointments/:id", h.Update)
	api.POST("/appointments/:id/cancel", h.Cancel)
}

// callerID resolves the acting patient from the request's claims, using
// the same legacy-first rule the identity package applies everywhere.
func callerID(c echo.Context) string {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		return ""
	}
	return identity.ResolveUserID(&identity.User{ID: claims.Subject, LegacyID: claims.LegacyID})
}

func (h *Handler) Create(c echo.Context) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if rec.OwnerID() == "" {
		owner := callerID(c)
		if owner == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		rec.PatientID = &owner
	}
	if err := h.svc.Create(c.Request().Context(), &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) Get(c echo.Context) error {
	rec, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	if owner := callerID(c); rec.OwnerID() != owner {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByOwner(c.Request().Context(), callerID(c), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list appointments")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.Update(c.Request().Context(), c.Param("id"), callerID(c), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Cancel(c echo.Context) error {
	rec, err := h.svc.Cancel(c.Request().Context(), c.Param("id"), callerID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Trends(c echo.Context) error {
	months, _ := strconv.Atoi(c.QueryParam("months"))
	trends, err := h.svc.Trends(c.Request().Context(), callerID(c), months)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load trends")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": trends})
}
