package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type ActorHandler struct {
	roster ports.RosterService
	actors ports.ActorClient
}

func NewActorHandler(roster ports.RosterService, actors ports.ActorClient) *ActorHandler {
	return &ActorHandler{roster: roster, actors: actors}
}

type actorRequest struct {
	RealName  string `json:"real_name" validate:"required"`
	StageName string `json:"stage_name,omitempty"`
	Gender    string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Age       int    `json:"age,omitempty" validate:"omitempty,gt=0"`
	HeightCm  int    `json:"height,omitempty" validate:"omitempty,gt=0"`
	WeightKg  int    `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Status    string `json:"status,omitempty"`
}

type actorPageResponse struct {
	Items []domain.Actor `json:"items"`
	Total int            `json:"total"`
}

// List returns a page of actors with tags reconciled.
//
// @Summary      List actors
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Param        name       query     string  false  "Name substring filter"
// @Param        tag_ids    query     string  false  "Comma-separated tag ids"
// @Param        status     query     string  false  "Actor status filter"
// @Success      200  {object}  actorPageResponse
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /actors [get]
func (h *ActorHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	page, err := h.roster.List(c.Request().Context(), sess.Token, queryKey(c, sess), listQueryFromRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actorPageResponse{Items: page.Items, Total: page.Total})
}

// ListUnassigned returns actors with no agent.
//
// @Summary      List unassigned actors
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  actorPageResponse
// @Router       /actors/unassigned [get]
func (h *ActorHandler) ListUnassigned(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	page, err := h.roster.ListUnassigned(c.Request().Context(), sess.Token, queryKey(c, sess), listQueryFromRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actorPageResponse{Items: page.Items, Total: page.Total})
}

// Get returns one actor.
//
// @Summary      Get an actor
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Actor id"
// @Success      200  {object}  domain.Actor
// @Failure      404  {object}  map[string]string
// @Router       /actors/{id} [get]
func (h *ActorHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	actor, err := h.actors.Get(c.Request().Context(), sess.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

// Create registers a new actor record.
//
// @Summary      Create an actor
// @Tags         actors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      actorRequest  true  "Actor details"
// @Success      201   {object}  domain.Actor
// @Failure      422   {object}  map[string]string
// @Router       /actors [post]
func (h *ActorHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req actorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := h.actors.Create(c.Request().Context(), sess.Token, actorInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, actor)
}

// Update modifies an actor record.
//
// @Summary      Update an actor
// @Tags         actors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Actor id"
// @Param        body  body      actorRequest  true  "Actor details"
// @Success      200   {object}  domain.Actor
// @Failure      404   {object}  map[string]string
// @Router       /actors/{id} [put]
func (h *ActorHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req actorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, err := h.actors.Update(c.Request().Context(), sess.Token, c.Param("id"), actorInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

// Delete removes an actor record.
//
// @Summary      Delete an actor
// @Tags         actors
// @Security     BearerAuth
// @Param        id  path  string  true  "Actor id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /actors/{id} [delete]
func (h *ActorHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.actors.Delete(c.Request().Context(), sess.Token, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SelfUpdate lets a performer edit their own record.
//
// @Summary      Update own actor profile
// @Tags         actors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      actorRequest  true  "Profile details"
// @Success      200   {object}  domain.Actor
// @Router       /actors/self [put]
func (h *ActorHandler) SelfUpdate(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req actorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, err := h.actors.SelfUpdate(c.Request().Context(), sess.Token, actorInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

func actorInputFromRequest(req actorRequest) ports.ActorInput {
	return ports.ActorInput{
		RealName:  req.RealName,
		StageName: req.StageName,
		Gender:    req.Gender,
		Age:       req.Age,
		HeightCm:  req.HeightCm,
		WeightKg:  req.WeightKg,
		Status:    req.Status,
	}
}

func listQueryFromRequest(c echo.Context) ports.ListActorsQuery {
	q := ports.ListActorsQuery{
		Name:          c.QueryParam("name"),
		Status:        c.QueryParam("status"),
		TagSearchMode: c.QueryParam("tag_search_mode"),
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	if raw := c.QueryParam("tag_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				q.TagIDs = append(q.TagIDs, id)
			}
		}
	}
	return q
}
