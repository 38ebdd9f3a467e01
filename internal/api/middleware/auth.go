package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/auth/token"
)

// Context keys populated by the auth middleware.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Auth validates the bearer token and injects the verified claims into
// the request context. An absent, malformed or invalid token is a 401;
// the three cases are indistinguishable to the caller.
func Auth(verifier token.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid authorization header")
			}

			claims, valid := verifier.Verify(raw)
			if !valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth attaches claims when a valid token is present and lets
// the request through untouched otherwise. Used by endpoints that accept
// anonymous callers, e.g. inquiry creation.
func OptionalAuth(verifier token.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := bearerToken(c); ok {
				if claims, valid := verifier.Verify(raw); valid {
					setClaims(c, claims)
				}
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func setClaims(c echo.Context, claims token.Claims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxRole, claims.Role)
}
