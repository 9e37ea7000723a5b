package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type UserHandler struct {
	authc ports.AuthClient
}

func NewUserHandler(authc ports.AuthClient) *UserHandler {
	return &UserHandler{authc: authc}
}

type createManagerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
}

// List returns backend user accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page       query    int  false  "Page number"
// @Param        page_size  query    int  false  "Page size"
// @Success      200  {array}  domain.UserProfile
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	users, err := h.authc.ListUsers(c.Request().Context(), sess.Token, page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateManager provisions a manager account.
//
// @Summary      Create a manager account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createManagerRequest  true  "Account details"
// @Success      201   {object}  domain.UserProfile
// @Failure      422   {object}  map[string]string
// @Router       /users/managers [post]
func (h *UserHandler) CreateManager(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createManagerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authc.CreateManager(c.Request().Context(), sess.Token, ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}
