package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/api/middleware"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type AuthHandler struct {
	sessions     ports.SessionService
	cookieMaxAge int
}

func NewAuthHandler(sessions ports.SessionService, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookieMaxAge: cookieMaxAge}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6"`
	Phone      string `json:"phone,omitempty"`
	InviteCode string `json:"invite_code" validate:"required,len=6,numeric"`
}

type sessionResponse struct {
	Token string              `json:"token"`
	User  *domain.UserProfile `json:"user"`
}

// Login authenticates against the backend and establishes a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, sess, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, signed, h.cookieMaxAge)
	return c.JSON(http.StatusOK, sessionResponse{Token: signed, User: sess.User})
}

// GuestLogin establishes a synthetic read-only session.
//
// @Summary      Browse as guest
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/guest [post]
func (h *AuthHandler) GuestLogin(c echo.Context) error {
	signed, sess, err := h.sessions.GuestLogin(c.Request().Context())
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, signed, h.cookieMaxAge)
	return c.JSON(http.StatusOK, sessionResponse{Token: signed, User: sess.User})
}

// Register creates an account gated by a six-digit invite code, then logs
// the new account in.
//
// @Summary      Register with an invite code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, sess, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		Phone:      req.Phone,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, signed, h.cookieMaxAge)
	return c.JSON(http.StatusCreated, sessionResponse{Token: signed, User: sess.User})
}

// Logout clears the session unconditionally.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := middleware.SessionIDFromContext(c); sid != "" {
		if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the resolved profile for the current session.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserProfile
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.User)
}
