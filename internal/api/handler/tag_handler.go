package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type TagHandler struct {
	tags ports.TagClient
}

func NewTagHandler(tags ports.TagClient) *TagHandler {
	return &TagHandler{tags: tags}
}

type tagRequest struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category,omitempty"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

type tagIDsRequest struct {
	TagIDs []int `json:"tag_ids" validate:"required,min=1"`
}

// List returns the full tag taxonomy.
//
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Tag
// @Router       /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	tags, err := h.tags.List(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// Create adds a tag to the taxonomy.
//
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tagRequest  true  "Tag details"
// @Success      201   {object}  domain.Tag
// @Router       /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tags.Create(c.Request().Context(), sess.Token, tagInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tag)
}

// Get returns a single tag.
//
// @Summary      Get a tag
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tag id"
// @Success      200  {object}  domain.Tag
// @Failure      404  {object}  map[string]string
// @Router       /tags/{id} [get]
func (h *TagHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	tagID, err := tagIDParam(c)
	if err != nil {
		return err
	}

	tag, err := h.tags.Get(c.Request().Context(), sess.Token, tagID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

// Update modifies a tag.
//
// @Summary      Update a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int         true  "Tag id"
// @Param        body  body      tagRequest  true  "Tag details"
// @Success      200   {object}  domain.Tag
// @Failure      404   {object}  map[string]string
// @Router       /tags/{id} [put]
func (h *TagHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	tagID, err := tagIDParam(c)
	if err != nil {
		return err
	}

	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	tag, err := h.tags.Update(c.Request().Context(), sess.Token, tagID, tagInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

// Delete removes a tag from the taxonomy.
//
// @Summary      Delete a tag
// @Tags         tags
// @Security     BearerAuth
// @Param        id  path  int  true  "Tag id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	tagID, err := tagIDParam(c)
	if err != nil {
		return err
	}

	if err := h.tags.Delete(c.Request().Context(), sess.Token, tagID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ActorTags returns the tags attached to one actor.
//
// @Summary      List an actor's tags
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Actor id"
// @Success      200  {array}  domain.Tag
// @Router       /actors/{id}/tags [get]
func (h *TagHandler) ActorTags(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	tags, err := h.tags.ActorTags(c.Request().Context(), sess.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// AttachTags adds tags to an actor.
//
// @Summary      Attach tags to an actor
// @Tags         tags
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string         true  "Actor id"
// @Param        body  body  tagIDsRequest  true  "Tag ids"
// @Success      204
// @Router       /actors/{id}/tags [post]
func (h *TagHandler) AttachTags(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req tagIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.tags.AttachTags(c.Request().Context(), sess.Token, c.Param("id"), req.TagIDs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceTags swaps an actor's full tag set.
//
// @Summary      Replace an actor's tags
// @Tags         tags
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string         true  "Actor id"
// @Param        body  body  tagIDsRequest  true  "Tag ids"
// @Success      204
// @Router       /actors/{id}/tags [put]
func (h *TagHandler) ReplaceTags(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req tagIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.tags.ReplaceTags(c.Request().Context(), sess.Token, c.Param("id"), req.TagIDs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DetachTag removes one tag from an actor.
//
// @Summary      Detach a tag from an actor
// @Tags         tags
// @Security     BearerAuth
// @Param        id     path  string  true  "Actor id"
// @Param        tagId  path  int     true  "Tag id"
// @Success      204
// @Router       /actors/{id}/tags/{tagId} [delete]
func (h *TagHandler) DetachTag(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	tagID, err := strconv.Atoi(c.Param("tagId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tag id")
	}

	if err := h.tags.DetachTag(c.Request().Context(), sess.Token, c.Param("id"), tagID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func tagInputFromRequest(req tagRequest) ports.TagInput {
	return ports.TagInput{
		Name:        req.Name,
		Category:    req.Category,
		Color:       req.Color,
		Description: req.Description,
	}
}

func tagIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid tag id")
	}
	return id, nil
}
