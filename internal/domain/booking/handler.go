package booking

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carelink/portal/internal/domain/identity"
	"github.com/carelink/portal/internal/platform/auth"
)

type Handler struct {
	view *View
}

func NewHandler(view *View) *Handler {
	return &Handler{view: view}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/bookings", h.Submit)
	api.GET("/bookings/notice", h.Notice)
}

// Submit validates the booking form and, when clean, books through the
// single-flight view. Validation failures return the per-field error map;
// the client renders it next to the fields.
func (h *Handler) Submit(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	patientID := identity.ResolveUserID(&identity.User{ID: claims.Subject, LegacyID: claims.LegacyID})

	var form FormState
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fieldErrs, err := h.view.Submit(c.Request().Context(), patientID, form)
	if err != nil {
		if errors.Is(err, ErrSubmitInFlight) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, "booking failed")
	}
	if !fieldErrs.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{"errors": fieldErrs})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": h.view.NoticeMessage()})
}

// Notice returns the current transient success message, empty once the
// hide timer has fired.
func (h *Handler) Notice(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": h.view.NoticeMessage()})
}
