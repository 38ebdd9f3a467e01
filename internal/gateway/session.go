package gateway

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/client"
	"github.com/estatehub/realty-platform/internal/core/domain"
	redisdb "github.com/estatehub/realty-platform/internal/infrastructure/db/redis"
)

const sessionCookie = "session_id"

// Context keys set by the session middleware: the loaded session, and
// the role taken from the re-verified token.
const (
	ctxSession = "session"
	ctxRole    = "session_role"
)

// loadSession resolves the session cookie when present. Requests without
// a valid session pass through anonymously.
func (g *Gateway) loadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			return next(c)
		}
		sess, err := g.sessions.Get(c.Request().Context(), cookie.Value)
		if err == nil {
			c.Set(ctxSession, sess)
		}
		return next(c)
	}
}

// requireSession rejects anonymous requests and re-verifies the stored
// token against the auth service on every protected call. The session
// row is only a cookie-to-token translation; the role used for access
// decisions always comes out of the verified claims, never the
// denormalized session copy. Must run after loadSession.
func (g *Gateway) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := session(c)
		if sess == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		claims, ok := g.verifier.Verify(sess.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		}
		c.Set(ctxRole, claims.Role)
		return next(c)
	}
}

// requireAgent gates agent-only pages. Must run after requireSession.
func requireAgent(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role := sessionRole(c)
		if role != domain.RoleAgent && role != domain.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "agent access required")
		}
		return next(c)
	}
}

func session(c echo.Context) *redisdb.Session {
	sess, _ := c.Get(ctxSession).(*redisdb.Session)
	return sess
}

func sessionRole(c echo.Context) string {
	role, _ := c.Get(ctxRole).(string)
	return role
}

type credentialsRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register proxies account creation to the auth service and opens a
// session on success.
func (g *Gateway) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := g.auth.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return g.openSession(c, result)
}

// Login proxies authentication to the auth service and opens a session.
func (g *Gateway) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := g.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return g.openSession(c, result)
}

// Logout drops the server-side session and expires the cookie.
func (g *Gateway) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if err := g.sessions.Delete(c.Request().Context(), cookie.Value); err != nil {
			g.log.Warn().Err(err).Msg("session delete failed")
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"status": "logged_out"})
}

// Me returns the session identity, with the role from the verified
// claims rather than the stored copy.
func (g *Gateway) Me(c echo.Context) error {
	sess := session(c)
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": sess.UserID,
		"email":   sess.Email,
		"role":    sessionRole(c),
	})
}

func (g *Gateway) openSession(c echo.Context, result *client.AuthResult) error {
	id, err := g.sessions.Create(c.Request().Context(), redisdb.Session{
		Token:  result.Token,
		UserID: result.User.ID,
		Email:  result.User.Email,
		Role:   result.User.Role,
	})
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"user": result.User})
}
