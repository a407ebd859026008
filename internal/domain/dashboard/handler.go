package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carelink/portal/internal/domain/identity"
	"github.com/carelink/portal/internal/platform/auth"
)

type Handler struct {
	sources Sources
	logger  zerolog.Logger
}

func NewHandler(sources Sources, logger zerolog.Logger) *Handler {
	return &Handler{sources: sources, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Get)
}

// Get runs one load cycle for the authenticated patient and returns the
// snapshot. Each request is its own cycle; the stateful Loader exists for
// long-lived sessions, not for the request path.
func (h *Handler) Get(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	owner := identity.ResolveUserID(&identity.User{ID: claims.Subject, LegacyID: claims.LegacyID})

	snap := h.sources.Load(c.Request().Context(), owner, h.logger)
	if snap.Err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load dashboard")
	}
	return c.JSON(http.StatusOK, snap)
}
