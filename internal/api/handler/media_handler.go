package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type MediaHandler struct {
	media ports.MediaClient
}

func NewMediaHandler(media ports.MediaClient) *MediaHandler {
	return &MediaHandler{media: media}
}

// List returns an actor's media items.
//
// @Summary      List an actor's media
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Actor id"
// @Success      200  {array}  domain.MediaItem
// @Router       /actors/{id}/media [get]
func (h *MediaHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	items, err := h.media.List(c.Request().Context(), sess.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Upload forwards a file to the backend for the given actor and media kind.
//
// @Summary      Upload actor media
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Actor id"
// @Param        kind  path      string  true  "Media kind (avatar, photos, videos)"
// @Param        file  formData  file    true  "File to upload"
// @Success      201   {object}  domain.MediaItem
// @Failure      400   {object}  map[string]string
// @Router       /actors/{id}/media/{kind} [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	up, closeFn, err := uploadFromRequest(c)
	if err != nil {
		return err
	}
	defer closeFn()

	item, err := h.media.Upload(c.Request().Context(), sess.Token, c.Param("id"), up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Delete removes one media item.
//
// @Summary      Delete actor media
// @Tags         media
// @Security     BearerAuth
// @Param        id       path  string  true  "Actor id"
// @Param        mediaId  path  string  true  "Media item id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /actors/{id}/media/{mediaId} [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.media.Delete(c.Request().Context(), sess.Token, c.Param("id"), c.Param("mediaId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SelfList returns the caller's own media.
//
// @Summary      List own media
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.MediaItem
// @Router       /my/media [get]
func (h *MediaHandler) SelfList(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	items, err := h.media.SelfList(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// SelfUpload uploads to the caller's own record.
//
// @Summary      Upload own media
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string  true  "Media kind (avatar, photos, videos)"
// @Param        file  formData  file    true  "File to upload"
// @Success      201   {object}  domain.MediaItem
// @Router       /my/media/{kind} [post]
func (h *MediaHandler) SelfUpload(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	up, closeFn, err := uploadFromRequest(c)
	if err != nil {
		return err
	}
	defer closeFn()

	item, err := h.media.SelfUpload(c.Request().Context(), sess.Token, up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// SelfDelete removes one of the caller's own media items.
//
// @Summary      Delete own media
// @Tags         media
// @Security     BearerAuth
// @Param        mediaId  path  string  true  "Media item id"
// @Success      204
// @Router       /my/media/{mediaId} [delete]
func (h *MediaHandler) SelfDelete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.media.SelfDelete(c.Request().Context(), sess.Token, c.Param("mediaId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func uploadFromRequest(c echo.Context) (ports.MediaUpload, func(), error) {
	kind := domain.MediaKind(c.Param("kind"))
	if !domain.ValidMediaKind(kind) {
		return ports.MediaUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid media kind")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return ports.MediaUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return ports.MediaUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}

	up := ports.MediaUpload{
		Kind:        kind,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
	}
	return up, func() { _ = f.Close() }, nil
}
