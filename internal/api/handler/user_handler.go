package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bibliotekopol/library-system/internal/core/ports"
)

// UserHandler handles user administration requests.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// updateUserRequest carries a partial edit; absent fields keep stored values.
type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3"`
	Name     *string `json:"name"`
	Role     *string `json:"role"     validate:"omitempty,oneof=student librarian admin"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// List handles GET /api/users?q=. Librarian callers never see admin rows.
//
// @Summary      Search users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  false  "Substring matched against username and name"
// @Success      200  {array}  domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	requester, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.users.Search(c.Request().Context(), c.QueryParam("q"), requester.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	requester, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), c.Param("id"), requester.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/users/:id.
//
// @Summary      Edit a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	requester, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	}, requester.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id — hard removal, admin only.
// Historical borrow records keep their userId reference.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
