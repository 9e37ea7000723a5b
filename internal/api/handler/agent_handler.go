package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type AgentHandler struct {
	agents ports.AgentClient
}

func NewAgentHandler(agents ports.AgentClient) *AgentHandler {
	return &AgentHandler{agents: agents}
}

type assignAgentRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
	AgentID int    `json:"agent_id" validate:"required,gt=0"`
}

// Assign puts an actor under a manager.
//
// @Summary      Assign an actor to a manager
// @Tags         agents
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  assignAgentRequest  true  "Assignment"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /agents/assign [post]
func (h *AgentHandler) Assign(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req assignAgentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.agents.Assign(c.Request().Context(), sess.Token, req.ActorID, req.AgentID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Actors returns a manager's roster.
//
// @Summary      List a manager's actors
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Agent id"
// @Success      200  {object}  actorPageResponse
// @Router       /agents/{id}/actors [get]
func (h *AgentHandler) Actors(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	agentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid agent id")
	}

	page, err := h.agents.Actors(c.Request().Context(), sess.Token, agentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actorPageResponse{Items: page.Items, Total: page.Total})
}

// Unassign releases an actor from their manager.
//
// @Summary      Unassign an actor
// @Tags         agents
// @Security     BearerAuth
// @Param        actorId  path  string  true  "Actor id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /agents/actors/{actorId} [delete]
func (h *AgentHandler) Unassign(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.agents.Unassign(c.Request().Context(), sess.Token, c.Param("actorId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
