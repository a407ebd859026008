package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// RequestIDFrom returns the id RequestID assigned to this request, or ""
// when the middleware is not installed.
func RequestIDFrom(c echo.Context) string {
	rid, _ := c.Get("request_id").(string)
	return rid
}

// RequestID assigns each request an id, honoring an inbound X-Request-ID
// header when present, and echoes it back on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(requestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(requestIDHeader, rid)
			return next(c)
		}
	}
}
