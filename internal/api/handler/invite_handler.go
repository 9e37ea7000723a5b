package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type InviteHandler struct {
	invites ports.InviteClient
}

func NewInviteHandler(invites ports.InviteClient) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type inviteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active used inactive"`
}

// List returns all invite codes.
//
// @Summary      List invite codes
// @Tags         invites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.InviteCode
// @Router       /invite-codes [get]
func (h *InviteHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	codes, err := h.invites.List(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, codes)
}

// Create mints a new invite code.
//
// @Summary      Create an invite code
// @Tags         invites
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.InviteCode
// @Router       /invite-codes [post]
func (h *InviteHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	code, err := h.invites.Create(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, code)
}

// Update changes an invite code's status.
//
// @Summary      Update an invite code
// @Tags         invites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Invite code id"
// @Param        body  body      inviteStatusRequest  true  "New status"
// @Success      200   {object}  domain.InviteCode
// @Failure      404   {object}  map[string]string
// @Router       /invite-codes/{id} [put]
func (h *InviteHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req inviteStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	code, err := h.invites.Update(c.Request().Context(), sess.Token, c.Param("id"), domain.InviteCodeStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, code)
}

// Verify checks whether a code can still be used for registration. Public:
// the registration form calls it before an account exists.
//
// @Summary      Verify an invite code
// @Tags         invites
// @Produce      json
// @Param        code  path      string  true  "Six-digit invite code"
// @Success      200   {object}  domain.InviteCode
// @Failure      404   {object}  map[string]string
// @Router       /invite-codes/verify/{code} [get]
func (h *InviteHandler) Verify(c echo.Context) error {
	code, err := h.invites.Verify(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, code)
}

// Delete removes an invite code.
//
// @Summary      Delete an invite code
// @Tags         invites
// @Security     BearerAuth
// @Param        id  path  string  true  "Invite code id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /invite-codes/{id} [delete]
func (h *InviteHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.invites.Delete(c.Request().Context(), sess.Token, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
