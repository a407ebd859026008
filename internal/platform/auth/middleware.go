package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth_claims"

// Claims carries the identity of the logged-in portal user. The subject is
// the auth-layer id; legacy_id is the storage-layer id carried over from the
// historical record store, which wins when both are present.
type Claims struct {
	jwt.RegisteredClaims
	LegacyID string `json:"_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

type JWTConfig struct {
	Secret []byte
}

// JWTMiddleware authenticates requests with an HS256 bearer token and places
// the parsed claims in the request context.
func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return cfg.Secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// DevAuthMiddleware injects a fixed demo patient. Development mode only.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(claimsContextKey, &Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "dev-patient"},
				Name:             "Dev Patient",
				Role:             "patient",
			})
			return next(c)
		}
	}
}

// CurrentClaims returns the authenticated user's claims, or nil when the
// request is unauthenticated.
func CurrentClaims(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// RequireRole rejects requests whose authenticated role is not in the
// allowed set.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := CurrentClaims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !allowed[claims.Role] {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
