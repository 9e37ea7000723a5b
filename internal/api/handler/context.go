package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/api/middleware"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

// ctxSession extracts the session injected by the session middleware and
// fast-fails before any upstream call. The guard has already authorized the
// route; a missing session here means the route was wired without it.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFromContext(c)
	if !sess.Authenticated() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

// queryKey identifies a logical query for supersession tracking: the same
// session re-running the same route supersedes its own previous fetch, but
// never anyone else's.
func queryKey(c echo.Context, sess *domain.Session) string {
	return sess.ID + ":" + c.Path()
}
