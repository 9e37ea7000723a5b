package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

// AuditSink receives audit entries; satisfied by the queue dispatcher.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}

// Audit records every authenticated mutating request after the handler has
// run, capturing the final response status. Reads and anonymous requests
// are not recorded.
func Audit(sink AuditSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			if c.Request().Method == http.MethodGet {
				return err
			}
			sess := SessionFromContext(c)
			if !sess.Authenticated() {
				return err
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			sink.Enqueue(domain.AuditEntry{
				Username: sess.User.Username,
				Role:     sess.User.Role,
				Method:   c.Request().Method,
				Path:     c.Request().URL.Path,
				Status:   status,
				At:       time.Now().UTC(),
			})
			return err
		}
	}
}
