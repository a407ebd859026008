package identity

import (
	"net/http"

	"github.com/labstack/echo/v4"

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
	api.GET("/doctors", h.ListDoctors)
	api.GET("/me", h.Me)
	api.GET("/stats", h.Stats)

	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.GET("/users", h.ListUsers)
	adminGroup.POST("/users", h.CreateUser)
	adminGroup.GET("/users/:id", h.GetUser)
	adminGroup.PUT("/users/:id", h.UpdateUser)
	adminGroup.DELETE("/users/:id", h.DeleteUser)
}

// Me returns the authenticated user's resolved identity.
func (h *Handler) Me(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	u := &User{ID: claims.Subject, LegacyID: claims.LegacyID, Name: claims.Name, Role: claims.Role}
	return c.JSON(http.StatusOK, map[string]string{
		"id":   ResolveUserID(u),
		"name": u.Name,
		"role": u.Role,
	})
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.GetStats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load stats")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stats": stats})
}

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	doctors, total, err := h.svc.ListDoctors(c.Request().Context(), c.QueryParam("specialization"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list doctors")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(doctors, total, pg.Limit, pg.Offset))
}

func (h *Handler) CreateUser(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateUser(c.Request().Context(), &u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) GetUser(c echo.Context) error {
	u, err := h.svc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsers(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListUsers(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list users")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u.ID = c.Param("id")
	if err := h.svc.UpdateUser(c.Request().Context(), &u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete user")
	}
	return c.NoContent(http.StatusNoContent)
}
