package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qiaoguanyu11/actorreal/internal/auth"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

// Context keys set by the session middleware.
const (
	ContextSession   = "session"
	ContextSessionID = "session_id"
	// ContextResolving marks requests whose session could not be loaded
	// for a transient reason. The guard turns these into a retry signal
	// instead of a logout.
	ContextResolving = "session_resolving"
)

const sessionCookie = "backoffice_session"

// Session resolves the caller's session from the gateway token and stores
// it in the request context. Requests without a valid token proceed
// anonymously; the guard decides what anonymity means per route.
func Session(sessions ports.SessionService, tokens *auth.TokenManager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return next(c)
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				// Expired or garbage gateway token: anonymous.
				return next(c)
			}

			sess, err := sessions.Resolve(c.Request().Context(), claims.SessionID)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrAuthExpired):
					return next(c)
				case errors.Is(err, domain.ErrSessionResolving):
					log.Warn().Err(err).Str("sid", claims.SessionID).Msg("session temporarily unresolvable")
					c.Set(ContextResolving, true)
					c.Set(ContextSessionID, claims.SessionID)
					return next(c)
				default:
					return err
				}
			}

			c.Set(ContextSession, sess)
			c.Set(ContextSessionID, sess.ID)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// SessionFromContext returns the resolved session, or nil for anonymous
// requests.
func SessionFromContext(c echo.Context) *domain.Session {
	sess, _ := c.Get(ContextSession).(*domain.Session)
	return sess
}

// SessionIDFromContext returns the session id claim even when the session
// itself could not be resolved.
func SessionIDFromContext(c echo.Context) string {
	sid, _ := c.Get(ContextSessionID).(string)
	return sid
}

// SetSessionCookie issues the browser-facing session cookie alongside the
// JSON response so both API and page navigation carry the session.
func SetSessionCookie(c echo.Context, signed string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
