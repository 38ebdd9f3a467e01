package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/api/middleware"
	"github.com/estatehub/realty-platform/internal/auth/token"
)

// ctxClaims extracts the auth claims injected by the Auth middleware.
// An empty role means the middleware never ran on this route; treat it
// as an unauthenticated request rather than panicking downstream.
func ctxClaims(c echo.Context) (token.Claims, error) {
	role, _ := c.Get(middleware.CtxRole).(string)
	if role == "" {
		return token.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get(middleware.CtxUserID).(int64)
	email, _ := c.Get(middleware.CtxEmail).(string)
	return token.Claims{UserID: userID, Email: email, Role: role}, nil
}

// optionalClaims returns the claims when present and nil otherwise.
// Used behind OptionalAuth, where anonymous callers are legitimate.
func optionalClaims(c echo.Context) *token.Claims {
	role, _ := c.Get(middleware.CtxRole).(string)
	if role == "" {
		return nil
	}
	userID, _ := c.Get(middleware.CtxUserID).(int64)
	email, _ := c.Get(middleware.CtxEmail).(string)
	return &token.Claims{UserID: userID, Email: email, Role: role}
}

// bearer returns the raw Authorization token for verbatim forwarding to
// peer services, without the "Bearer " prefix.
func bearer(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// pathID parses the named int64 path parameter or fails with a 400.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
