package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qiaoguanyu11/actorreal/internal/api/middleware"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Invalidates the session when the upstream has declared its token dead,
//     so the next request starts clean instead of replaying a stale token.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(sessions ports.SessionService, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrAuthExpired) {
			if sid := middleware.SessionIDFromContext(c); sid != "" {
				if cerr := sessions.Invalidate(c.Request().Context(), sid); cerr != nil {
					log.Warn().Err(cerr).Str("sid", sid).Msg("failed to invalidate expired session")
				}
			}
			middleware.ClearSessionCookie(c)
			_ = c.JSON(http.StatusUnauthorized, errorResponse{
				Error:    "session expired",
				Redirect: "/login",
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Upstream validation detail passes through verbatim.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Detail
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "not logged in"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrInviteCodeInvalid):
		return http.StatusUnprocessableEntity, "invite code is not usable"
	case errors.Is(err, domain.ErrQuerySuperseded):
		return http.StatusConflict, "query superseded by a newer request"
	case errors.Is(err, domain.ErrSessionResolving):
		return http.StatusServiceUnavailable, "session temporarily unavailable"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "backend unavailable"
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, "backend error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
