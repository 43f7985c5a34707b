package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olzhasbek/qazcargo/internal/auth"
	"github.com/olzhasbek/qazcargo/internal/config"
	"github.com/olzhasbek/qazcargo/internal/middleware"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg  config.Config
	Auth *auth.Service
}

func NewAuthHandler(cfg config.Config, svc *auth.Service) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Auth: svc}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	UserType string `json:"user_type"` // user | worker
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type revokeReq struct {
	UserID uint64 `json:"userId"`
}

type authResp struct {
	User         auth.Profile `json:"user"`
	SessionToken string       `json:"sessionToken"`
	RedirectTo   string       `json:"redirectTo"`
}

// Register: create user, open a session and set the auth cookie.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	grant, err := h.Auth.SignUp(ctx, req.Email, req.Password, req.FullName, req.UserType)
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookie(c, grant.Token)
	return c.JSON(http.StatusCreated, authResp{
		User:         grant.User,
		SessionToken: grant.Token,
		RedirectTo:   auth.LandingRoute(grant.User.Role),
	})
}

// Login: verify credentials, open a session and set the auth cookie. The
// redirect target comes from the single landing-route policy.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	grant, err := h.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookie(c, grant.Token)
	return c.JSON(http.StatusOK, authResp{
		User:         grant.User,
		SessionToken: grant.Token,
		RedirectTo:   auth.LandingRoute(grant.User.Role),
	})
}

// Check reports whether the request carries a live session. It fails safe:
// any problem short of a handler panic answers authenticated=false with the
// stale cookie cleared, never a hard error.
func (h *AuthHandler) Check(c echo.Context) error {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, ok, err := h.Auth.ValidateSession(ctx, token)
	if err != nil || !ok {
		h.clearAuthCookie(c)
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"user":          user,
		"redirectTo":    auth.LandingRoute(user.Role),
	})
}

// Logout: drop the session row and clear the cookie. Always succeeds, even
// with an unknown or missing token. Non-browser clients may send the token
// in the body instead of the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		var req struct {
			SessionToken string `json:"sessionToken"`
		}
		_ = c.Bind(&req)
		token = req.SessionToken
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_ = h.Auth.SignOut(ctx, token)
	h.clearAuthCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me returns the authenticated user stored in context by SessionAuth.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := c.Get("user").(auth.Profile)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// RevokeSessions force-logs-out a user everywhere (admin only; the route
// group applies the role gate).
func (h *AuthHandler) RevokeSessions(c echo.Context) error {
	var req revokeReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.RevokeAllSessions(ctx, req.UserID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// setAuthCookie attaches the session token to the response. MaxAge derives
// from the same config knob as the session row expiry, so the cookie can
// never outlive the server-side session or vice versa.
func (h *AuthHandler) setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.Cfg.CookieMaxAge(),
		HttpOnly: true,
		Secure:   h.Cfg.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
}
