package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/api/metrics"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

// Decision is the outcome of an authorization check.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionLogin Decision = "login"
	DecisionHome  Decision = "home"
	DecisionRetry Decision = "retry"
)

// GuardInput is the full state the decision function depends on.
type GuardInput struct {
	Resolving     bool
	Authenticated bool
	Guest         bool
	Role          domain.Role
	Path          string
	Required      []domain.Role
}

// Decide runs the authorization checks in a fixed order. Each step assumes
// the previous ones passed, so the order must not be rearranged:
//
//  1. Session still resolving: ask the caller to retry shortly.
//  2. Unauthenticated on a protected route: go to login.
//  3. Guests requesting a route that does not accept guests: go home —
//     except the home page itself when it accepts performers, which guests
//     may view read-only.
//  4. Everyone else is judged by the role partial order.
func Decide(in GuardInput) Decision {
	if len(in.Required) == 0 {
		return DecisionAllow
	}
	if in.Resolving {
		return DecisionRetry
	}
	if !in.Authenticated {
		return DecisionLogin
	}
	if in.Guest && !roleListed(domain.RoleGuest, in.Required) {
		if roleListed(domain.RolePerformer, in.Required) && in.Path == "/" {
			return DecisionAllow
		}
		return DecisionHome
	}
	if domain.SatisfiesAny(in.Role, in.Required) {
		return DecisionAllow
	}
	return DecisionHome
}

func roleListed(role domain.Role, required []domain.Role) bool {
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// Guard enforces the route's required roles. It must run after Session.
// Browser navigation gets redirects; API callers get JSON errors.
func Guard(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFromContext(c)
			resolving, _ := c.Get(ContextResolving).(bool)

			in := GuardInput{
				Resolving:     resolving,
				Authenticated: sess.Authenticated(),
				Guest:         sess.IsGuest(),
				Path:          c.Request().URL.Path,
				Required:      required,
			}
			if sess.Authenticated() {
				in.Role = sess.User.Role
			}

			decision := Decide(in)
			metrics.GuardDecisionsTotal.WithLabelValues(string(decision)).Inc()

			switch decision {
			case DecisionAllow:
				return next(c)
			case DecisionRetry:
				// A store blip is not a logout; the session is intact.
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session temporarily unavailable")
			case DecisionLogin:
				if wantsHTML(c) {
					return c.Redirect(http.StatusFound, "/login")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			default:
				if wantsHTML(c) {
					return c.Redirect(http.StatusFound, "/")
				}
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
		}
	}
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
