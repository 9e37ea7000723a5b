package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type AuditHandler struct {
	trail ports.AuditLog
}

func NewAuditHandler(trail ports.AuditLog) *AuditHandler {
	return &AuditHandler{trail: trail}
}

// Recent returns the newest audit entries, most recent first.
//
// @Summary      Recent audit trail
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Maximum entries (default 50)"
// @Success      200  {array}  domain.AuditEntry
// @Router       /audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.trail.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
