package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/olzhasbek/qazcargo/internal/auth"
)

// CookieName is the auth cookie carrying the opaque session token. The
// cookie is the authoritative client-side store; a Bearer header is
// accepted as a fallback for non-browser clients.
const CookieName = "authToken"

// TokenFromRequest extracts the session token from the auth cookie or the
// Authorization header. An empty string means the request is anonymous.
func TokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// SessionAuth returns an Echo middleware that resolves the session token
// against the session store and injects the sanitized user into the
// request context. Handlers downstream read it via c.Get("user") (an
// auth.Profile) or c.Get("role"). Requests without a live session are
// rejected with 401; store failures map to 500 so a database outage is not
// mistaken for a logged-out state on protected routes.
func SessionAuth(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
			}
			user, ok, err := svc.ValidateSession(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session check failed"})
			}
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
			}
			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("role", user.Role)
			return next(c)
		}
	}
}
